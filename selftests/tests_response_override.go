package selftests

import (
	"github.com/fledge-tests/fledge-mockserver/mockserver"

	"github.com/stretchr/testify/assert"
)

func DoResponseOverrideTests(t *T) {
	t.Run("status and body", func(t *T) {
		server := StartServer(t, auctionFiles, WithProvider(func(mockserver.Request) *mockserver.Response {
			return mockserver.Respond(201, "ok")
		}))
		resp := server.RequireGet(t, "/buyer/buyer.js")
		assert.Equal(t, 201, resp.Status)
		assert.Equal(t, "2", resp.Headers.Get("Content-Length"))
		assert.Equal(t, "ok", resp.Body)
		assert.Equal(t, "true", resp.Headers.Get("X-Allow-FLEDGE"))
	})

	t.Run("provided headers win over guesses", func(t *T) {
		server := StartServer(t, nil, WithProvider(func(mockserver.Request) *mockserver.Response {
			return mockserver.Respond(200, `{"keys":{}}`,
				mockserver.Header{Name: "Content-Type", Value: "application/json"},
				mockserver.Header{Name: "X-fledge-bidding-signals-format-version", Value: "2"})
		}))
		resp := server.RequireGet(t, "/trusted.txt?keys=a")
		assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
		assert.Equal(t, "2", resp.Headers.Get("X-fledge-bidding-signals-format-version"))
	})

	t.Run("content type guessed from path", func(t *T) {
		server := StartServer(t, nil, WithProvider(func(mockserver.Request) *mockserver.Response {
			return mockserver.Respond(200, "function generateBid() {}")
		}))
		resp := server.RequireGet(t, "/generated.js")
		assert.Contains(t, resp.Headers.Get("Content-Type"), "javascript")
	})

	t.Run("nil falls back to static files", func(t *T) {
		server := StartServer(t, auctionFiles, WithProvider(func(r mockserver.Request) *mockserver.Response {
			if r.Path() == "/override" {
				return mockserver.Respond(200, "overridden")
			}
			return nil
		}))
		assert.Equal(t, "overridden", server.RequireGet(t, "/override").Body)
		assert.Equal(t, auctionFiles["seller/decision.js"], server.RequireGet(t, "/seller/decision.js").Body)
	})

	t.Run("failing provider only breaks its own request", func(t *T) {
		server := StartServer(t, auctionFiles, WithProvider(func(r mockserver.Request) *mockserver.Response {
			if r.Path() == "/broken" {
				panic("deliberate failure")
			}
			return nil
		}))
		_, err := server.Get("/broken")
		assert.Error(t, err)
		assert.Equal(t, 200, server.RequireGet(t, "/buyer/buyer.js").Status)
	})
}
