package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fledge-tests/fledge-mockserver/framework"
	"github.com/fledge-tests/fledge-mockserver/peers"

	"github.com/alessio/shellescape"
	"github.com/spf13/pflag"
)

const defaultPort = 8443

type serveParams struct {
	port        int
	directory   string
	host        string
	bindAddress string
	certFile    string
	keyFile     string
	configFile  string
	debug       bool
	logFile     string
}

func (p *serveParams) addFlags(fs *pflag.FlagSet) {
	fs.IntVar(&p.port, "port", defaultPort, "port that the mock server will listen on (0 for any free port)")
	fs.StringVar(&p.directory, "directory", ".", "directory to serve static files from")
	fs.StringVar(&p.host, "host", "localhost", "hostname used in the server's address")
	fs.StringVar(&p.bindAddress, "bind", "", "local address to listen on (default all interfaces)")
	fs.StringVar(&p.certFile, "cert", "", "PEM certificate file (a temporary self-signed one is made if omitted)")
	fs.StringVar(&p.keyFile, "key", "", "PEM private key file")
	fs.StringVar(&p.configFile, "config", "", "YAML file describing several peer servers")
	fs.BoolVar(&p.debug, "debug", false, "enable debug logging")
	fs.StringVar(&p.logFile, "log-file", "", "also write log output to this file, with rotation")
}

func (p *serveParams) validate() error {
	if (p.certFile == "") != (p.keyFile == "") {
		return errors.New("--cert and --key must be used together")
	}
	return nil
}

// peersConfig returns the peer configuration to run: the configuration file if there is one,
// otherwise a single peer built from the command-line flags. Flags that were set explicitly
// override the file.
func (p *serveParams) peersConfig(changed func(string) bool) (peers.Config, error) {
	if p.configFile == "" {
		config := peers.Config{
			Host:        p.host,
			BindAddress: p.bindAddress,
			CertFile:    p.certFile,
			KeyFile:     p.keyFile,
			Peers:       []peers.PeerConfig{{Name: "default", Port: p.port, Directory: p.directory}},
		}
		return config, config.Validate()
	}
	config, err := peers.LoadConfig(p.configFile)
	if err != nil {
		return peers.Config{}, err
	}
	if changed("host") {
		config.Host = p.host
	}
	if changed("bind") {
		config.BindAddress = p.bindAddress
	}
	if changed("cert") {
		config.CertFile, config.KeyFile = p.certFile, p.keyFile
	}
	return config, nil
}

type selfTestParams struct {
	host        string
	bindAddress string
	certFile    string
	keyFile     string
	filters     framework.RegexFilters
	debug       bool
	debugAll    bool
}

func (p *selfTestParams) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&p.host, "host", "localhost", "hostname the test servers are addressed by")
	fs.StringVar(&p.bindAddress, "bind", "127.0.0.1", "local address the test servers listen on")
	fs.StringVar(&p.certFile, "cert", "", "PEM certificate file (a temporary self-signed one is made if omitted)")
	fs.StringVar(&p.keyFile, "key", "", "PEM private key file")
	fs.Var(&p.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&p.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&p.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&p.debugAll, "debug-all", false, "enable debug logging for all tests")
}

// peerCommandLine returns a command that runs a single peer of a group on its own, with the
// same settings.
func peerCommandLine(config peers.Config, peer peers.PeerConfig) string {
	var b commandBuilder
	b.add(appName, "serve",
		"--port", strconv.Itoa(peer.Port),
		"--directory", peer.Directory,
		"--host", config.Host)
	if config.BindAddress != "" {
		b.add("--bind", config.BindAddress)
	}
	if config.CertFile != "" {
		b.add("--cert", config.CertFile, "--key", config.KeyFile)
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
