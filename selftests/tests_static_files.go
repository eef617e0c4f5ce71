package selftests

import (
	"github.com/stretchr/testify/assert"
)

var auctionFiles = map[string]string{
	"index.html":         "<html><body>joined interest group</body></html>",
	"buyer/buyer.js":     "function generateBid() { return {bid: 1}; }",
	"seller/decision.js": "function scoreAd() { return 1; }",
}

func DoStaticFileTests(t *T) {
	t.Run("serves existing file", func(t *T) {
		server := StartServer(t, auctionFiles)
		resp := server.RequireGet(t, "/buyer/buyer.js")
		assert.Equal(t, 200, resp.Status)
		assert.Equal(t, auctionFiles["buyer/buyer.js"], resp.Body)
	})

	t.Run("serves index for directory", func(t *T) {
		server := StartServer(t, auctionFiles)
		resp := server.RequireGet(t, "/?name=winner&bid=2")
		assert.Equal(t, 200, resp.Status)
		assert.Contains(t, resp.Body, "joined interest group")
	})

	t.Run("missing file is 404", func(t *T) {
		server := StartServer(t, auctionFiles)
		resp := server.RequireGet(t, "/reportWin")
		assert.Equal(t, 404, resp.Status)
	})

	t.Run("auction headers are always present", func(t *T) {
		server := StartServer(t, auctionFiles)
		for _, path := range []string{"/seller/decision.js", "/missing"} {
			resp := server.RequireGet(t, path)
			assert.Equal(t, "true", resp.Headers.Get("X-Allow-FLEDGE"), path)
			assert.Equal(t, "fenced-frame", resp.Headers.Get("Supports-Loading-Mode"), path)
		}
	})
}
