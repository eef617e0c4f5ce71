// Package framework contains the low-level test infrastructure shared by the mock server and
// the self-test suite: logging helpers, and a test context that works like Go's *testing.T
// outside of the Go test runner.
//
// The general model is:
//
// 1. A test run is started with Run, which creates a root Context.
//
// 2. Tests and subtests are declared with Context.Run. Each one gets its own identifier, its
// own captured debug output, and its own list of deferred cleanup actions.
//
// 3. Assertions from the testify assert and require packages can be used directly on a
// Context, since it implements Errorf and FailNow.
//
// Domain-specific code (for instance the selftests package) provides the actual tests and a
// domain-specific API on top of the test context.
package framework
