package selftests

import (
	"fmt"

	"github.com/fledge-tests/fledge-mockserver/framework"
)

// SuiteConfig contains the parameters shared by every server that the suite starts.
type SuiteConfig struct {
	Host        string
	BindAddress string
	CertFile    string
	KeyFile     string
}

type environment struct {
	config SuiteConfig
}

// T represents a test or subtest in the self-test suite.
//
// It implements the same basic functionality as Go's testing.T, on top of framework.Context.
// To make assertions, use the assert and require packages, passing the *T as if it were a
// *testing.T.
type T struct {
	context *framework.Context
	env     *environment
}

// RunTestSuite runs every self-test and returns the results.
func RunTestSuite(
	config SuiteConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{config: config}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.Run("static files", DoStaticFileTests)
		t.Run("query parameters", DoQueryParameterTests)
		t.Run("response override", DoResponseOverrideTests)
		t.Run("request bodies", DoRequestBodyTests)
		t.Run("request log", DoRequestLogTests)
		t.Run("concurrency", DoConcurrencyTests)
		t.Run("lifecycle", DoLifecycleTests)
	})
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Defer schedules an action to run when the test exits.
func (t *T) Defer(action func()) {
	t.context.Defer(action)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

func (t *T) ID() framework.TestID {
	return t.context.ID()
}

func (t *T) fatalf(format string, args ...interface{}) {
	t.Errorf("%s", fmt.Sprintf(format, args...))
	t.FailNow()
}
