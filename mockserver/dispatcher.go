package mockserver

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/fledge-tests/fledge-mockserver/framework"
)

const (
	allowFledgeHeader         = "X-Allow-FLEDGE"
	supportsLoadingModeHeader = "Supports-Loading-Mode"

	defaultContentType = "application/octet-stream"
)

// dispatcher turns each HTTP exchange into a Request record and a response. net/http calls it
// on a separate goroutine for every connection, so a slow provider only delays its own client.
type dispatcher struct {
	fileServer http.Handler
	provider   ResponseProvider
	observer   func(Request)
	logger     framework.Logger
	port       int
}

func newDispatcher(directory string, provider ResponseProvider, observer func(Request),
	logger framework.Logger, port int) *dispatcher {
	return &dispatcher{
		fileServer: http.FileServer(http.Dir(directory)),
		provider:   provider,
		observer:   observer,
		logger:     logger,
		port:       port,
	}
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// These are required by the browser for every resource involved in an auction, including
	// static worklet scripts and fenced frame contents, so they come before anything else.
	w.Header().Set(allowFledgeHeader, "true")
	w.Header().Set(supportsLoadingModeHeader, "fenced-frame")

	params, err := parseParams(r.URL.RawQuery)
	if err != nil {
		d.logger.Printf("Malformed query string in %s: %s", r.URL.RequestURI(), err)
	}
	req := Request{
		method:    r.Method,
		path:      r.URL.Path,
		params:    params,
		timestamp: time.Now(),
	}

	if methodHasBody(r.Method) {
		if r.ContentLength == 0 && len(r.TransferEncoding) == 0 && r.Header.Get("Content-Length") == "" {
			d.logger.Printf("Rejecting %s %s from %s: no Content-Length", r.Method, req.path, r.RemoteAddr)
			panic(http.ErrAbortHandler)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			d.logger.Printf("Error reading body of %s %s from %s: %s", r.Method, req.path, r.RemoteAddr, err)
			panic(http.ErrAbortHandler)
		}
		if body == nil {
			body = []byte{}
		}
		req.body = body
	}

	d.observer(req)
	d.logger.Printf("%s -> :%d %s", r.RemoteAddr, d.port, req)

	if d.provider != nil {
		if resp := d.provide(req); resp != nil {
			writeResponse(w, r, resp)
			return
		}
	}

	switch {
	case r.Method == http.MethodGet || r.Method == http.MethodHead:
		d.fileServer.ServeHTTP(w, r)
	case methodHasBody(r.Method):
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (d *dispatcher) provide(req Request) *Response {
	defer func() {
		if r := recover(); r != nil {
			if r == http.ErrAbortHandler {
				panic(r)
			}
			d.logger.Printf("Response provider failed for %s: %v", req.path, r)
			panic(http.ErrAbortHandler)
		}
	}()
	return d.provider(req)
}

func writeResponse(w http.ResponseWriter, r *http.Request, resp *Response) {
	header := w.Header()
	for _, h := range resp.headers {
		header.Add(h.Name, h.Value)
	}
	if len(resp.body) > 0 {
		if !resp.hasHeader("Content-Type") {
			header.Set("Content-Type", guessContentType(r.URL.Path))
		}
		if !resp.hasHeader("Content-Length") {
			header.Set("Content-Length", strconv.Itoa(len(resp.body)))
		}
	}
	status := resp.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(resp.body) > 0 && r.Method != http.MethodHead {
		_, _ = w.Write(resp.body)
	}
}

func guessContentType(urlPath string) string {
	if t := mime.TypeByExtension(path.Ext(urlPath)); t != "" {
		return t
	}
	return defaultContentType
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
