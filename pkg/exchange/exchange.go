// Package exchange models one live HTTP exchange as the mock core sees it.
package exchange

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/getmockd/armmock/pkg/arm"
)

// Request is an inbound ARM request with its body already decoded.
type Request struct {
	// Protocol is http or https.
	Protocol string
	// Host is the Host header value.
	Host string
	// LocalPort is the port the request arrived on.
	LocalPort int
	// Method is the upper-case HTTP method.
	Method string
	// URL is the origin-form target: escaped path plus raw query.
	URL string
	// Query is the parsed query string.
	Query url.Values
	// Header holds the request headers.
	Header http.Header
	// Body is the decoded JSON body, or nil.
	Body any
	// RawBody is the body as received.
	RawBody []byte
}

// NewRequest builds a request from an origin-form or absolute target.
func NewRequest(method, target string, header http.Header, body any) (*Request, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parsing request target: %w", err)
	}
	if header == nil {
		header = http.Header{}
	}
	req := &Request{
		Protocol: "https",
		Host:     u.Host,
		Method:   strings.ToUpper(method),
		URL:      u.RequestURI(),
		Query:    u.Query(),
		Header:   header,
		Body:     body,
	}
	if u.Scheme != "" {
		req.Protocol = u.Scheme
	}
	if req.Host == "" {
		req.Host = header.Get("Host")
	}
	return req, nil
}

// Path returns the escaped path without the query.
func (r *Request) Path() string { return arm.PureURL(r.URL) }

// AbsoluteURL returns protocol://host followed by the request target.
func (r *Request) AbsoluteURL() string {
	return r.Protocol + "://" + r.Host + r.URL
}

// HeaderValue looks a header up case-insensitively, also for maps built
// without canonical keys.
func (r *Request) HeaderValue(name string) (string, bool) {
	if vals, ok := r.Header[http.CanonicalHeaderKey(name)]; ok && len(vals) > 0 {
		return vals[0], true
	}
	for k, vals := range r.Header {
		if strings.EqualFold(k, name) && len(vals) > 0 {
			return vals[0], true
		}
	}
	return "", false
}

// QueryValue looks a query parameter up, falling back to a case-insensitive
// key match.
func (r *Request) QueryValue(name string) ([]string, bool) {
	if vals, ok := r.Query[name]; ok {
		return vals, true
	}
	for k, vals := range r.Query {
		if strings.EqualFold(k, name) {
			return vals, true
		}
	}
	return nil, false
}

// Clone returns a copy whose query and header can be modified independently.
func (r *Request) Clone() *Request {
	cp := *r
	cp.Query = url.Values{}
	for k, v := range r.Query {
		cp.Query[k] = append([]string(nil), v...)
	}
	cp.Header = r.Header.Clone()
	return &cp
}

// WithQuery returns a copy with an extra query parameter appended to both the
// URL and the parsed query.
func (r *Request) WithQuery(key, value string) *Request {
	cp := r.Clone()
	cp.Query.Add(key, value)
	sep := "?"
	if strings.Contains(cp.URL, "?") {
		sep = "&"
	}
	cp.URL += sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
	return cp
}

// Response is the outbound response being assembled.
type Response struct {
	// StatusCode is kept as a string, as example responses key statuses.
	StatusCode string
	Body       any
	Headers    http.Header
}

// NewResponse returns an empty 200 response.
func NewResponse() *Response {
	return &Response{StatusCode: "200", Headers: http.Header{}}
}

// Set replaces status and body, merging headers into the existing ones.
func (r *Response) Set(status string, body any, headers http.Header) {
	r.StatusCode = status
	r.Body = body
	if r.Headers == nil {
		r.Headers = http.Header{}
	}
	for k, v := range headers {
		r.Headers[k] = v
	}
}

// Status returns the numeric status, or 500 for a non-numeric code.
func (r *Response) Status() int {
	code, err := strconv.Atoi(r.StatusCode)
	if err != nil || code < 100 || code > 999 {
		return http.StatusInternalServerError
	}
	return code
}
