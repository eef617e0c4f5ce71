package selftests

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoLifecycleTests(t *T) {
	t.Run("port zero resolves to a listening port", func(t *T) {
		server := StartServer(t, nil)
		u, err := url.Parse(server.Address())
		require.NoError(t, err)
		assert.Equal(t, "https", u.Scheme)
		assert.Equal(t, strconv.Itoa(server.Port()), u.Port())

		conn, err := net.DialTimeout("tcp", net.JoinHostPort(dialHost(t), u.Port()), time.Second)
		require.NoError(t, err)
		_ = conn.Close()
	})

	t.Run("nothing is recorded after close", func(t *T) {
		server := StartServer(t, auctionFiles)
		server.RequireGet(t, "/buyer/buyer.js")
		require.NoError(t, server.Close())

		_, err := server.Get("/buyer/buyer.js")
		assert.Error(t, err, "request after close should fail to connect")
		assert.Len(t, server.Requests(), 1)
	})
}

func dialHost(t *T) string {
	if t.env.config.BindAddress != "" && t.env.config.BindAddress != "0.0.0.0" && t.env.config.BindAddress != "::" {
		return t.env.config.BindAddress
	}
	return "localhost"
}
