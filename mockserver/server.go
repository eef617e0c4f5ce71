package mockserver

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/fledge-tests/fledge-mockserver/framework"
)

const defaultHost = "localhost"

// Config contains the parameters for Start.
type Config struct {
	// Host is the hostname that the browser uses to reach the server; it only affects Address.
	// The default is "localhost".
	Host string

	// BindAddress is the local interface to listen on. Empty means all interfaces.
	BindAddress string

	// Port is the port to listen on. Zero means any free port; Server.Port reports which one
	// was chosen.
	Port int

	// Directory is the root for static files.
	Directory string

	// CertFile and KeyFile name a PEM certificate and key. They are ignored if Certificate is
	// set.
	CertFile string
	KeyFile  string

	Certificate *tls.Certificate

	// Provider, if not nil, can override the response to any request.
	Provider ResponseProvider

	Logger framework.Logger
}

// Server is a running mock HTTPS server. All methods are safe for concurrent use.
type Server struct {
	directory  string
	address    string
	port       int
	listener   net.Listener
	httpServer *http.Server
	requests   requestLog
	logger     framework.Logger
	serveDone  chan struct{}
	closeOnce  sync.Once
	closeErr   error
}

// Start binds the listening socket and starts serving in the background. It returns as soon as
// the socket is bound, without waiting for any requests. Failure to bind or to load the
// certificate is returned immediately; there is no retry.
func Start(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	host := config.Host
	if host == "" {
		host = defaultHost
	}

	cert, err := loadCertificate(config)
	if err != nil {
		return nil, err
	}

	tcpListener, err := net.Listen("tcp", net.JoinHostPort(config.BindAddress, strconv.Itoa(config.Port)))
	if err != nil {
		return nil, fmt.Errorf("could not listen on port %d: %w", config.Port, err)
	}
	port := tcpListener.Addr().(*net.TCPAddr).Port

	s := &Server{
		directory: config.Directory,
		address:   "https://" + net.JoinHostPort(host, strconv.Itoa(port)),
		port:      port,
		listener:  tls.NewListener(tcpListener, makeTLSConfig(cert)),
		logger:    logger,
		serveDone: make(chan struct{}),
	}
	s.httpServer = &http.Server{
		Handler: newDispatcher(config.Directory, config.Provider, s.record, logger, port),
		// an empty non-nil map turns off HTTP/2
		TLSNextProto: make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
		ErrorLog:     log.New(logWriter{logger}, "", 0),
	}

	logger.Printf("server %s starting, serving %s", s.address, s.directory)
	go s.serve()
	return s, nil
}

// WithServer starts a server, passes it to action, and closes it when action returns or
// panics.
func WithServer(config Config, action func(*Server)) error {
	s, err := Start(config)
	if err != nil {
		return err
	}
	defer s.Close()
	action(s)
	return nil
}

func (s *Server) serve() {
	defer close(s.serveDone)
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Printf("server %s stopped unexpectedly: %s", s.address, err)
	}
}

func (s *Server) record(r Request) {
	if !s.requests.append(r) {
		s.logger.Printf("server %s is closed, dropping record of %s", s.address, r)
	}
}

// Address returns the base URL of the server, such as https://localhost:8083.
func (s *Server) Address() string {
	return s.address
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Directory returns the root directory for static files.
func (s *Server) Directory() string {
	return s.directory
}

// Requests returns every request recorded so far, in the order they were recorded.
func (s *Server) Requests() []Request {
	return s.requests.all()
}

// RequestsTo returns every recorded request for a path, in the order they were recorded.
func (s *Server) RequestsTo(path string) []Request {
	return s.requests.matching(path)
}

// FirstRequest returns the earliest recorded request for a path, or false if there was none.
func (s *Server) FirstRequest(path string) (Request, bool) {
	return s.requests.first(path)
}

// LastRequest returns the most recently recorded request for a path, or false if there was
// none. "Most recent" means last recorded; two requests that arrive on different connections
// at nearly the same moment may be recorded in either order.
func (s *Server) LastRequest(path string) (Request, bool) {
	return s.requests.last(path)
}

// Close stops the server. It closes the listening socket and all open connections without
// waiting for them to finish, then waits for the serving goroutine to exit. After Close
// returns, no more requests are recorded. Calling Close more than once has no further effect.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.requests.close()
		s.closeErr = s.httpServer.Close()
		<-s.serveDone
		s.logger.Printf("server %s stopped", s.address)
	})
	return s.closeErr
}

// logWriter routes net/http's own error messages, such as TLS handshake failures, to a
// framework.Logger.
type logWriter struct {
	logger framework.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.logger.Printf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
