package selftests

import (
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fledge-tests/fledge-mockserver/framework"
	"github.com/fledge-tests/fledge-mockserver/mockserver"
)

const clientTimeout = time.Second * 5

// TestServer is a mock server started for a single test, along with a client for talking to
// it. It is closed automatically when the test exits.
type TestServer struct {
	*mockserver.Server
	client *http.Client
	logger framework.Logger
}

// ServerConfigurer is anything that can modify the configuration of a TestServer.
type ServerConfigurer interface {
	ApplyConfiguration(*mockserver.Config)
}

type providerConfigurer mockserver.ResponseProvider

func (p providerConfigurer) ApplyConfiguration(c *mockserver.Config) {
	c.Provider = mockserver.ResponseProvider(p)
}

// WithProvider sets the response provider of a TestServer.
func WithProvider(provider mockserver.ResponseProvider) ServerConfigurer {
	return providerConfigurer(provider)
}

// Response is what the client received from a TestServer.
type Response struct {
	Status  int
	Headers http.Header
	Body    string
}

// StartServer writes the given files into a new temporary directory and starts a mock server
// that serves it. The test fails immediately if the server cannot be started.
func StartServer(t *T, files map[string]string, configurers ...ServerConfigurer) *TestServer {
	dir, err := os.MkdirTemp("", "mockserver-selftest-")
	if err != nil {
		t.fatalf("could not create temporary directory: %s", err)
	}
	t.Defer(func() { _ = os.RemoveAll(dir) })
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.fatalf("could not create directory for %s: %s", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.fatalf("could not write %s: %s", name, err)
		}
	}

	logger := framework.LoggerWithPrefix(t.DebugLogger(), "[mock server] ")
	config := mockserver.Config{
		Host:        t.env.config.Host,
		BindAddress: t.env.config.BindAddress,
		Directory:   dir,
		CertFile:    t.env.config.CertFile,
		KeyFile:     t.env.config.KeyFile,
		Logger:      logger,
	}
	for _, c := range configurers {
		c.ApplyConfiguration(&config)
	}
	s, err := mockserver.Start(config)
	if err != nil {
		t.fatalf("could not start mock server: %s", err)
	}
	t.Defer(func() { _ = s.Close() })

	return &TestServer{
		Server: s,
		client: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				// the suite checks our own server, not the trust setup of the browser
				TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
				DisableKeepAlives: true,
			},
		},
		logger: logger,
	}
}

// Get sends a GET request for a path, which may include a query string.
func (s *TestServer) Get(path string) (Response, error) {
	return s.do("GET", path, "")
}

// Post sends a POST request with a body.
func (s *TestServer) Post(path, body string) (Response, error) {
	return s.do("POST", path, body)
}

// RequireGet is like Get, but fails the test immediately on an I/O error.
func (s *TestServer) RequireGet(t *T, path string) Response {
	resp, err := s.Get(path)
	if err != nil {
		t.fatalf("GET %s failed: %s", path, err)
	}
	return resp
}

// RequirePost is like Post, but fails the test immediately on an I/O error.
func (s *TestServer) RequirePost(t *T, path, body string) Response {
	resp, err := s.Post(path, body)
	if err != nil {
		t.fatalf("POST %s failed: %s", path, err)
	}
	return resp
}

// RequireLastRequest returns the most recent request recorded for a path, failing the test
// immediately if there was none.
func (s *TestServer) RequireLastRequest(t *T, path string) mockserver.Request {
	r, ok := s.LastRequest(path)
	if !ok {
		t.fatalf("server did not record any request for %s", path)
	}
	return r
}

func (s *TestServer) do(method, path, body string) (Response, error) {
	var bodyReader io.Reader
	if method != "GET" {
		bodyReader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.Address()+path, bodyReader)
	if err != nil {
		return Response{}, err
	}
	s.logger.Printf(">> %s %s", method, path)
	resp, err := s.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}
	s.logger.Printf("<< %d (%d bytes)", resp.StatusCode, len(data))
	return Response{Status: resp.StatusCode, Headers: resp.Header, Body: string(data)}, nil
}
