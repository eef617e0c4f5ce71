package peers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
host: fledge-tests.creativecdn.net
certFile: ssl/fledge-tests.creativecdn.net.crt
keyFile: /etc/ssl/fledge-tests.creativecdn.net.key
peers:
  - name: buyer
    port: 8081
    directory: resources/buyer
  - name: seller
    port: 8083
    directory: resources/seller
  - name: publisher
    directory: /srv/publisher
`

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(sampleConfig), "/tests/basic")
	require.NoError(t, err)

	assert.Equal(t, "fledge-tests.creativecdn.net", config.Host)
	assert.Equal(t, "/tests/basic/ssl/fledge-tests.creativecdn.net.crt", config.CertFile)
	assert.Equal(t, "/etc/ssl/fledge-tests.creativecdn.net.key", config.KeyFile)
	assert.Equal(t, []PeerConfig{
		{Name: "buyer", Port: 8081, Directory: "/tests/basic/resources/buyer"},
		{Name: "seller", Port: 8083, Directory: "/tests/basic/resources/seller"},
		{Name: "publisher", Port: 0, Directory: "/srv/publisher"},
	}, config.Peers)

	serverConfig := config.ServerConfig(config.Peers[1])
	assert.Equal(t, 8083, serverConfig.Port)
	assert.Equal(t, "/tests/basic/resources/seller", serverConfig.Directory)
	assert.Equal(t, config.CertFile, serverConfig.CertFile)
}

func TestLoadConfigResolvesAgainstFileLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resources/buyer"), config.Peers[0].Directory)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInvalidConfigs(t *testing.T) {
	for name, data := range map[string]string{
		"not yaml":        "peers: [",
		"no peers":        "host: localhost\n",
		"missing name":    "peers:\n  - directory: x\n",
		"duplicate name":  "peers:\n  - {name: a, directory: x}\n  - {name: a, directory: y}\n",
		"no directory":    "peers:\n  - {name: a}\n",
		"bad port":        "peers:\n  - {name: a, directory: x, port: 70000}\n",
		"duplicate ports": "peers:\n  - {name: a, directory: x, port: 8081}\n  - {name: b, directory: y, port: 8081}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(data), "")
			assert.Error(t, err)
		})
	}
}

func TestSeveralPeersMayUsePortZero(t *testing.T) {
	_, err := ParseConfig([]byte("peers:\n  - {name: a, directory: x}\n  - {name: b, directory: y}\n"), "")
	assert.NoError(t, err)
}
