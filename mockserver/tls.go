package mockserver

import (
	"crypto/tls"
	"errors"
	"fmt"
)

func loadCertificate(config Config) (tls.Certificate, error) {
	if config.Certificate != nil {
		return *config.Certificate, nil
	}
	if config.CertFile == "" || config.KeyFile == "" {
		return tls.Certificate{}, errors.New("a certificate file and key file are required")
	}
	cert, err := tls.LoadX509KeyPair(config.CertFile, config.KeyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("could not load certificate %s: %w", config.CertFile, err)
	}
	return cert, nil
}

func makeTLSConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"http/1.1"},
	}
}
