package mockserver

import (
	"fmt"
	"net/url"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Request is a record of one HTTP request received by a Server. It is never modified after it
// has been recorded; accessors that return slices or maps return copies.
type Request struct {
	method    string
	path      string
	params    url.Values
	timestamp time.Time
	body      []byte
}

// Method returns the HTTP method of the request.
func (r Request) Method() string {
	return r.method
}

// Path returns the percent-decoded URL path, without the query string.
func (r Request) Path() string {
	return r.path
}

// Params returns all query parameters. A key that appeared more than once in the query string
// has its values in the order they were submitted.
func (r Request) Params() url.Values {
	ret := make(url.Values, len(r.params))
	for k, v := range r.params {
		ret[k] = append([]string(nil), v...)
	}
	return ret
}

// Param returns every value of a query parameter, or nil if it was not present.
func (r Request) Param(key string) []string {
	values, ok := r.params[key]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// FirstParam returns the first value of a query parameter.
func (r Request) FirstParam(key string) (string, bool) {
	values := r.params[key]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// FirstJSONParam parses the first value of a query parameter as JSON. Reporting worklets send
// their signals this way, e.g. /reportWin?signals={...}. It returns a null value if the
// parameter is missing or is not valid JSON.
func (r Request) FirstJSONParam(key string) ldvalue.Value {
	s, ok := r.FirstParam(key)
	if !ok {
		return ldvalue.Null()
	}
	return ldvalue.Parse([]byte(s))
}

// Timestamp returns the time at which the request headers had been parsed.
func (r Request) Timestamp() time.Time {
	return r.timestamp
}

// HasBody returns true if the request used a method that carries a body, such as POST.
func (r Request) HasBody() bool {
	return r.body != nil
}

// Body returns a copy of the request body, or nil for requests without one.
func (r Request) Body() []byte {
	if r.body == nil {
		return nil
	}
	return append([]byte{}, r.body...)
}

func (r Request) String() string {
	if r.HasBody() {
		return fmt.Sprintf("%s %s params: %v body: %d bytes", r.method, r.path, map[string][]string(r.params), len(r.body))
	}
	return fmt.Sprintf("%s %s params: %v", r.method, r.path, map[string][]string(r.params))
}

// parseParams decodes a raw query string with standard form-encoding rules. Malformed pairs
// are dropped and the rest are kept.
func parseParams(rawQuery string) (url.Values, error) {
	params, err := url.ParseQuery(rawQuery)
	if params == nil {
		params = make(url.Values)
	}
	return params, err
}
