package mockserver

import "strings"

// ResponseProvider lets a test take over the response to a request. It is called once for
// every request, after the request has been recorded, and may be called concurrently for
// requests on different connections.
//
// Returning nil means no override: the server falls back to its default behavior of serving a
// static file. A panic in the provider aborts only the connection it was handling.
type ResponseProvider func(Request) *Response

// Header is a single response header.
type Header struct {
	Name  string
	Value string
}

// Response describes the complete response that a ResponseProvider wants to send.
//
// If the body is non-empty, Content-Type (guessed from the request path) and Content-Length
// headers are added automatically unless the provider supplied them.
type Response struct {
	status  int
	headers []Header
	body    []byte
}

// Respond creates a Response with a text body.
func Respond(status int, body string, headers ...Header) *Response {
	var data []byte
	if body != "" {
		data = []byte(body)
	}
	return RespondBytes(status, data, headers...)
}

// RespondBytes creates a Response with a binary body. The body is copied.
func RespondBytes(status int, body []byte, headers ...Header) *Response {
	var data []byte
	if len(body) > 0 {
		data = append([]byte(nil), body...)
	}
	return &Response{
		status:  status,
		headers: append([]Header(nil), headers...),
		body:    data,
	}
}

// WithHeader returns a copy of the Response with one more header appended.
func (r *Response) WithHeader(name, value string) *Response {
	ret := *r
	ret.headers = append(append([]Header(nil), r.headers...), Header{Name: name, Value: value})
	return &ret
}

func (r *Response) Status() int {
	return r.status
}

func (r *Response) Headers() []Header {
	return append([]Header(nil), r.headers...)
}

func (r *Response) Body() []byte {
	return append([]byte(nil), r.body...)
}

func (r *Response) hasHeader(name string) bool {
	for _, h := range r.headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}
