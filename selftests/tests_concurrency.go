package selftests

import (
	"fmt"
	"sync"
	"time"

	"github.com/fledge-tests/fledge-mockserver/mockserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slowResponseDelay = 750 * time.Millisecond

func DoConcurrencyTests(t *T) {
	t.Run("concurrent requests are all recorded", func(t *T) {
		server := StartServer(t, nil)
		const count = 20
		errs := make(chan error, count)
		var wg sync.WaitGroup
		for i := 0; i < count; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := server.Get(fmt.Sprintf("/worklet%d?i=%d", i, i))
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		require.NoError(t, server.Close())

		requests := server.Requests()
		require.Len(t, requests, count)
		for _, r := range requests {
			i, _ := r.FirstParam("i")
			assert.Equal(t, "/worklet"+i, r.Path())
		}
	})

	t.Run("slow response does not block other connections", func(t *T) {
		slowStarted := make(chan struct{})
		var once sync.Once
		server := StartServer(t, auctionFiles, WithProvider(func(r mockserver.Request) *mockserver.Response {
			if r.Path() == "/slow" {
				once.Do(func() { close(slowStarted) })
				time.Sleep(slowResponseDelay)
				return mockserver.Respond(200, "finally")
			}
			return nil
		}))

		slowDone := make(chan error, 1)
		go func() {
			_, err := server.Get("/slow")
			slowDone <- err
		}()
		select {
		case <-slowStarted:
		case <-time.After(clientTimeout):
			t.fatalf("slow request never reached the server")
		}

		const fastCount = 10
		start := time.Now()
		fastErrs := make(chan error, fastCount)
		var wg sync.WaitGroup
		for i := 0; i < fastCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := server.Get("/buyer/buyer.js")
				fastErrs <- err
			}()
		}
		wg.Wait()
		elapsed := time.Since(start)
		close(fastErrs)
		for err := range fastErrs {
			assert.NoError(t, err)
		}
		t.Debug("fast requests finished in %s", elapsed)
		assert.Less(t, int64(elapsed), int64(slowResponseDelay), "fast requests waited for the slow one")

		assert.NoError(t, <-slowDone)
	})
}
