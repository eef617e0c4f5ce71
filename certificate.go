package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

// temporaryCertificate creates a self-signed certificate and key in a new temporary directory.
// The returned function removes them.
func temporaryCertificate() (certFile, keyFile string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", appName+"-cert-")
	if err != nil {
		return "", "", nil, fmt.Errorf("could not create certificate directory: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	if err := httphelpers.MakeSelfSignedCert(certFile, keyFile); err != nil {
		cleanup()
		return "", "", nil, fmt.Errorf("could not create self-signed certificate: %w", err)
	}
	return certFile, keyFile, cleanup, nil
}
