package peers

import (
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fledge-tests/fledge-mockserver/framework"
	"github.com/fledge-tests/fledge-mockserver/mockserver"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeGroupConfig(t *testing.T, names ...string) Config {
	dir := t.TempDir()
	config := Config{
		Host:        "127.0.0.1",
		BindAddress: "127.0.0.1",
		CertFile:    filepath.Join(dir, "cert.pem"),
		KeyFile:     filepath.Join(dir, "key.pem"),
	}
	require.NoError(t, httphelpers.MakeSelfSignedCert(config.CertFile, config.KeyFile))
	for _, name := range names {
		peerDir := filepath.Join(dir, name)
		require.NoError(t, os.Mkdir(peerDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(peerDir, name+".js"), []byte("// "+name), 0o644))
		config.Peers = append(config.Peers, PeerConfig{Name: name, Directory: peerDir})
	}
	return config
}

func fetch(t *testing.T, u string) (int, string) {
	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
	}
	resp, err := client.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestGroupStartsEveryPeer(t *testing.T) {
	config := makeGroupConfig(t, "buyer", "seller")
	loggers := make(map[string]*framework.CapturingLogger)
	g, err := Start(config, func(name string) framework.Logger {
		loggers[name] = &framework.CapturingLogger{}
		return loggers[name]
	}, map[string]mockserver.ResponseProvider{
		"seller": func(r mockserver.Request) *mockserver.Response {
			if r.Path() == "/decision" {
				return mockserver.Respond(200, "seller says hi")
			}
			return nil
		},
	})
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, []string{"buyer", "seller"}, g.Names())
	assert.Nil(t, g.Server("publisher"))

	status, body := fetch(t, g.Server("buyer").Address()+"/buyer.js")
	assert.Equal(t, 200, status)
	assert.Equal(t, "// buyer", body)

	status, body = fetch(t, g.Server("seller").Address()+"/decision")
	assert.Equal(t, 200, status)
	assert.Equal(t, "seller says hi", body)

	status, _ = fetch(t, g.Server("buyer").Address()+"/decision")
	assert.Equal(t, 404, status)

	assert.NotEmpty(t, loggers["buyer"].Output())
	assert.NotEmpty(t, loggers["seller"].Output())
}

func TestGroupRollsBackWhenAPeerFails(t *testing.T) {
	config := makeGroupConfig(t, "buyer", "seller")
	first, err := Start(Config{
		Host: config.Host, BindAddress: config.BindAddress, CertFile: config.CertFile, KeyFile: config.KeyFile,
		Peers: config.Peers[:1],
	}, nil, nil)
	require.NoError(t, err)
	defer first.Close()

	config.Peers[1].Port = first.Server("buyer").Port()
	_, err = Start(config, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"seller"`)
}

func TestGroupCloseStopsAll(t *testing.T) {
	config := makeGroupConfig(t, "buyer", "seller")
	g, err := Start(config, nil, nil)
	require.NoError(t, err)
	require.NoError(t, g.Close())

	for _, name := range g.Names() {
		_, err := http.Get(g.Server(name).Address())
		assert.Error(t, err)
	}
}
