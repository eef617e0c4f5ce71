package selftests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoRequestLogTests(t *T) {
	t.Run("last request wins", func(t *T) {
		server := StartServer(t, nil)
		for _, bid := range []string{"1", "2", "3"} {
			server.RequireGet(t, "/reportWin?bid="+bid)
		}
		bid, _ := server.RequireLastRequest(t, "/reportWin").FirstParam("bid")
		assert.Equal(t, "3", bid)

		first, ok := server.FirstRequest("/reportWin")
		require.True(t, ok)
		bid, _ = first.FirstParam("bid")
		assert.Equal(t, "1", bid)
	})

	t.Run("never requested path is none", func(t *T) {
		server := StartServer(t, nil)
		server.RequireGet(t, "/reportWin")
		_, ok := server.LastRequest("/debugReportLoss")
		assert.False(t, ok)
	})

	t.Run("timestamps do not go backwards on one client", func(t *T) {
		server := StartServer(t, nil)
		for i := 0; i < 5; i++ {
			server.RequireGet(t, "/seq")
		}
		requests := server.RequestsTo("/seq")
		require.Len(t, requests, 5)
		for i := 1; i < len(requests); i++ {
			assert.False(t, requests[i].Timestamp().Before(requests[i-1].Timestamp()))
		}
	})
}
