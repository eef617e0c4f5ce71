// Package mockserver implements the HTTPS server that stands in for the buyer, seller, and
// publisher sites of an interest-group auction test.
//
// Each Server serves static files from a directory, records every incoming request so that a
// test can later make assertions about it (for instance, the signals that a worklet passed to
// reportWin), and optionally lets the test take over the response to any request by supplying
// a ResponseProvider.
//
// A Server is started with Start and must be stopped with Close; WithServer does both around a
// function so that the listening socket is released on every exit path.
package mockserver
