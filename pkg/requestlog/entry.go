// Package requestlog records the calls a sandbox has dispatched, so tests
// can assert on what was requested and how it was routed. History is held
// in memory only and cleared together with the sandbox's routes.
package requestlog

import (
	"net/http"
	"time"
)

// Entry captures one dispatched call.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Timestamp is when the call was dispatched.
	Timestamp time.Time `json:"timestamp"`

	// Method is the request method.
	Method string `json:"method"`

	// Path is the request URL path, query excluded.
	Path string `json:"path"`

	// Query is the raw query string.
	Query string `json:"query,omitempty"`

	// Header holds the request headers.
	Header http.Header `json:"header,omitempty"`

	// Body is the request body, if any.
	Body string `json:"body,omitempty"`

	// RouteKey is the matched route key, empty when nothing matched.
	RouteKey string `json:"routeKey,omitempty"`

	// Params are the path parameters captured by the matched route.
	Params map[string]string `json:"params,omitempty"`

	// Status is the response status code, 0 when the call failed.
	Status int `json:"status,omitempty"`

	// Error is the dispatch failure text, empty on success.
	Error string `json:"error,omitempty"`
}

// Matched reports whether the call was routed to a handler.
func (e *Entry) Matched() bool {
	return e.RouteKey != ""
}

// Filter narrows the entries returned by a store query. Zero-value fields
// are ignored.
type Filter struct {
	// Method filters by exact request method.
	Method string

	// PathPrefix filters by request path prefix.
	PathPrefix string

	// RouteKey filters by matched route key.
	RouteKey string

	// Errored filters by failure presence.
	Errored *bool

	// Limit caps the number of returned entries (0 = no cap).
	Limit int
}
