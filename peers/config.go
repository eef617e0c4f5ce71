// Package peers starts the set of mock servers that play the sites in an auction test, such
// as one buyer, one seller, and one publisher, from a YAML description.
package peers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fledge-tests/fledge-mockserver/mockserver"

	"gopkg.in/yaml.v3"
)

// Config describes a group of peer servers. Host, BindAddress, and the certificate apply to
// every peer.
type Config struct {
	Host        string       `yaml:"host"`
	BindAddress string       `yaml:"bindAddress"`
	CertFile    string       `yaml:"certFile"`
	KeyFile     string       `yaml:"keyFile"`
	Peers       []PeerConfig `yaml:"peers"`
}

// PeerConfig describes one peer server. A Port of zero means any free port.
type PeerConfig struct {
	Name      string `yaml:"name"`
	Port      int    `yaml:"port"`
	Directory string `yaml:"directory"`
}

// LoadConfig reads a YAML file. Relative paths in it are resolved against the directory that
// contains the file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read peer configuration: %w", err)
	}
	config, err := ParseConfig(data, filepath.Dir(path))
	if err != nil {
		return Config{}, fmt.Errorf("invalid peer configuration in %s: %w", path, err)
	}
	return config, nil
}

// ParseConfig parses and validates YAML configuration data, resolving relative paths against
// baseDir.
func ParseConfig(data []byte, baseDir string) (Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	config.CertFile = resolvePath(baseDir, config.CertFile)
	config.KeyFile = resolvePath(baseDir, config.KeyFile)
	for i := range config.Peers {
		config.Peers[i].Directory = resolvePath(baseDir, config.Peers[i].Directory)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks that every peer has a distinct name, a directory, and a usable port, and
// that no two peers ask for the same fixed port.
func (c Config) Validate() error {
	if len(c.Peers) == 0 {
		return errors.New("no peers defined")
	}
	names := make(map[string]bool)
	ports := make(map[int]string)
	for _, p := range c.Peers {
		if p.Name == "" {
			return errors.New("every peer must have a name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate peer name %q", p.Name)
		}
		names[p.Name] = true
		if p.Directory == "" {
			return fmt.Errorf("peer %q has no directory", p.Name)
		}
		if p.Port < 0 || p.Port > 65535 {
			return fmt.Errorf("peer %q has invalid port %d", p.Name, p.Port)
		}
		if p.Port != 0 {
			if other, ok := ports[p.Port]; ok {
				return fmt.Errorf("peers %q and %q both use port %d", other, p.Name, p.Port)
			}
			ports[p.Port] = p.Name
		}
	}
	return nil
}

// ServerConfig returns the mock server configuration for one peer.
func (c Config) ServerConfig(p PeerConfig) mockserver.Config {
	return mockserver.Config{
		Host:        c.Host,
		BindAddress: c.BindAddress,
		Port:        p.Port,
		Directory:   p.Directory,
		CertFile:    c.CertFile,
		KeyFile:     c.KeyFile,
	}
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
