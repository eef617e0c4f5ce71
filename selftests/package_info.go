// Package selftests contains a self-test suite for the mock server, run by the "selftest"
// command. It starts throwaway servers with the same certificate that the real tests will use
// and checks their behavior with a real HTTPS client, so that a broken environment (such as an
// unreadable certificate or a blocked loopback interface) shows up before any browser test runs.
//
// The test context and result reporting come from the lower-level framework package.
package selftests
