package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	errors   []string
	finished map[string]bool
	skipped  map[string]string
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{finished: make(map[string]bool), skipped: make(map[string]string)}
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.started = append(r.started, id.String()) }

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.errors = append(r.errors, id.String()+": "+err.Error())
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	r.finished[id.String()] = failed
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped[id.String()] = reason
}

func TestRunRecordsPassAndFailure(t *testing.T) {
	logger := newRecordingTestLogger()
	results := Run(nil, logger, func(c *Context) {
		c.Run("good", func(c *Context) {})
		c.Run("bad", func(c *Context) {
			c.Errorf("broken %d", 1)
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Tests, 2)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "bad", results.Failures[0].TestID.String())
	assert.Equal(t, []string{"good", "bad"}, logger.started)
	assert.Equal(t, map[string]bool{"good": false, "bad": true}, logger.finished)
	assert.Equal(t, []string{"bad: broken 1"}, logger.errors)
}

func TestFailNowStopsTest(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Errorf("first")
			c.FailNow()
			reached = true
		})
	})
	assert.False(t, reached)
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 1)
}

func TestPanicIsReportedAsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			panic(errors.New("boom"))
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestSkipWithReason(t *testing.T) {
	logger := newRecordingTestLogger()
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.SkipWithReason("not today")
		})
	})
	assert.True(t, results.OK())
	assert.Equal(t, 1, results.SkippedCount())
	assert.Equal(t, "not today", logger.skipped["a"])
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^b"))
	ran := map[string]bool{}
	logger := newRecordingTestLogger()
	Run(filters.AsFilter, logger, func(c *Context) {
		for _, name := range []string{"a", "b"} {
			name := name
			c.Run(name, func(c *Context) { ran[name] = true })
		}
	})
	assert.Equal(t, map[string]bool{"a": true}, ran)
	assert.Equal(t, "excluded by filter parameters", logger.skipped["b"])
}

func TestDeferredActionsRunInReverseOrderEvenAfterFailure(t *testing.T) {
	var order []int
	Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Defer(func() { order = append(order, 1) })
			c.Defer(func() { order = append(order, 2) })
			c.FailNow()
		})
	})
	assert.Equal(t, []int{2, 1}, order)
}

func TestSubtestIDsDoNotShareBackingArray(t *testing.T) {
	var ids []string
	Run(nil, nil, func(c *Context) {
		c.Run("parent", func(c *Context) {
			c.Run("x", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("y", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})
	assert.Equal(t, []string{"parent/x", "parent/y"}, ids)
}
