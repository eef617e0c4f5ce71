package selftests

import (
	"net/url"

	"github.com/stretchr/testify/assert"
)

func DoQueryParameterTests(t *T) {
	t.Run("repeated keys keep submission order", func(t *T) {
		server := StartServer(t, nil)
		server.RequireGet(t, "/bid?a=1&a=2&b=3")

		r := server.RequireLastRequest(t, "/bid")
		assert.Equal(t, url.Values{"a": {"1", "2"}, "b": {"3"}}, r.Params())
	})

	t.Run("path excludes query string", func(t *T) {
		server := StartServer(t, nil)
		server.RequireGet(t, "/reportResult?x=%3F")

		r := server.RequireLastRequest(t, "/reportResult")
		assert.Equal(t, "/reportResult", r.Path())
		assert.Equal(t, []string{"?"}, r.Param("x"))
	})

	t.Run("JSON signals", func(t *T) {
		server := StartServer(t, nil)
		signals := `{"auctionSignals":null,"browserSignals":{"bid":15,"renderUrl":"https://x/ad.html"}}`
		server.RequireGet(t, "/reportWin?signals="+url.QueryEscape(signals))

		r := server.RequireLastRequest(t, "/reportWin")
		browserSignals := r.FirstJSONParam("signals").GetByKey("browserSignals")
		assert.Equal(t, 15, browserSignals.GetByKey("bid").IntValue())
		assert.Equal(t, "https://x/ad.html", browserSignals.GetByKey("renderUrl").StringValue())
	})
}
