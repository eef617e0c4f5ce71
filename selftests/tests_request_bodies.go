package selftests

import (
	"github.com/fledge-tests/fledge-mockserver/mockserver"

	"github.com/stretchr/testify/assert"
)

func DoRequestBodyTests(t *T) {
	t.Run("POST body is recorded", func(t *T) {
		server := StartServer(t, nil)
		resp := server.RequirePost(t, "/debugReportWin?x=1", `{"bid":2}`)
		assert.Equal(t, 200, resp.Status)
		assert.Equal(t, "", resp.Body)

		r := server.RequireLastRequest(t, "/debugReportWin")
		assert.Equal(t, "POST", r.Method())
		assert.Equal(t, `{"bid":2}`, string(r.Body()))
		assert.Equal(t, []string{"1"}, r.Param("x"))
	})

	t.Run("GET has no body", func(t *T) {
		server := StartServer(t, nil)
		server.RequireGet(t, "/x")
		assert.False(t, server.RequireLastRequest(t, "/x").HasBody())
	})

	t.Run("provider sees POST body", func(t *T) {
		server := StartServer(t, nil, WithProvider(func(r mockserver.Request) *mockserver.Response {
			return mockserver.Respond(200, "echo:"+string(r.Body()))
		}))
		assert.Equal(t, "echo:hello", server.RequirePost(t, "/echo", "hello").Body)
	})
}
