// Package sandbox provides isolated fetch interceptors for tests.
//
// A Sandbox owns a route table mapping route keys ("GET@/users/:id",
// "/ping") to handlers and implements http.RoundTripper: any request sent
// through it is resolved against the table and answered by the matching
// handler, entirely in memory. No bytes ever cross a socket.
//
// Sandboxes are independent: registering routes in one never affects
// another. A package-level default sandbox backs the process-wide
// Install/Uninstall surface for code that uses http.DefaultTransport.
package sandbox

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getmockd/fetchmock/pkg/dispatch"
	"github.com/getmockd/fetchmock/pkg/logging"
	"github.com/getmockd/fetchmock/pkg/requestlog"
	"github.com/getmockd/fetchmock/pkg/route"
	"github.com/getmockd/fetchmock/pkg/stub"
)

// Sandbox is an isolated route table with a fetch implementation bound to
// it. The zero value is not usable; create sandboxes with New.
type Sandbox struct {
	table   *route.Table
	history *requestlog.MemoryStore
	log     *slog.Logger
}

// Option configures a Sandbox at construction time.
type Option func(*Sandbox)

// WithLogger attaches a logger for per-dispatch debug output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sandbox) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHistory bounds the sandbox's call history to max entries.
func WithHistory(max int) Option {
	return func(s *Sandbox) {
		s.history = requestlog.NewMemoryStore(max)
	}
}

// New creates a sandbox with an empty route table. Each call returns a
// fully independent instance.
func New(opts ...Option) *Sandbox {
	s := &Sandbox{
		table:   route.NewTable(),
		history: requestlog.NewMemoryStore(requestlog.DefaultMaxEntries),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MatchOption attaches an extra match predicate to a route registration.
type MatchOption func(*route.Criteria)

// MatchHeader requires a request header to equal value. The value may use
// "*" wildcards for prefix, suffix, and contains matching.
func MatchHeader(name, value string) MatchOption {
	return func(c *route.Criteria) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[name] = value
	}
}

// MatchQuery requires a query parameter to equal value. This refines
// matching for a route; plain routes stay query-insensitive.
func MatchQuery(name, value string) MatchOption {
	return func(c *route.Criteria) {
		if c.Query == nil {
			c.Query = make(map[string]string)
		}
		c.Query[name] = value
	}
}

// MatchBodyContains requires the request body to contain substr.
func MatchBodyContains(substr string) MatchOption {
	return func(c *route.Criteria) {
		c.BodyContains = substr
	}
}

// MatchBodyJSONPath requires the JSONPath expression to select want from
// the request body.
func MatchBodyJSONPath(path string, want any) MatchOption {
	return func(c *route.Criteria) {
		if c.BodyJSONPath == nil {
			c.BodyJSONPath = make(map[string]any)
		}
		c.BodyJSONPath[path] = want
	}
}

// Mock registers a handler under a route key, replacing any previous
// handler for that key. Key validity is not checked: a malformed key
// registers fine and simply never matches.
func (s *Sandbox) Mock(key string, h route.Handler, opts ...MatchOption) {
	if len(opts) == 0 {
		s.table.Put(key, h)
		return
	}
	c := &route.Criteria{}
	for _, opt := range opts {
		opt(c)
	}
	s.table.PutWith(key, h, c)
}

// Remove unregisters a route key. Removing an absent key is a no-op.
func (s *Sandbox) Remove(key string) {
	s.table.Delete(key)
}

// Reset empties the route table and the call history.
func (s *Sandbox) Reset() {
	s.table.Clear()
	s.history.Clear()
}

// Routes returns the registered route keys in registration order.
func (s *Sandbox) Routes() []string {
	return s.table.Keys()
}

// LoadStubs loads a stub file and registers a static route per stub.
func (s *Sandbox) LoadStubs(path string) error {
	c, err := stub.Load(path)
	if err != nil {
		return err
	}
	return stub.Apply(c, s.table)
}

// Client returns an *http.Client whose transport is this sandbox.
func (s *Sandbox) Client() *http.Client {
	return &http.Client{Transport: s}
}

// RoundTrip implements http.RoundTripper. It snapshots the route table,
// dispatches the request against the snapshot, and records the call.
// Mutations made while a round trip is in flight only affect future
// round trips.
func (s *Sandbox) RoundTrip(r *http.Request) (*http.Response, error) {
	snapshot := s.table.Snapshot()

	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	outcome := dispatch.Run(r, snapshot, nil, nil)

	entry := &requestlog.Entry{
		Timestamp: time.Now(),
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		Header:    r.Header.Clone(),
		Body:      string(body),
		RouteKey:  outcome.Key,
		Params:    outcome.Params,
	}

	if outcome.Err != nil {
		entry.Error = outcome.Err.Error()
		s.log.Debug("dispatch failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", outcome.Err,
		)
	} else {
		entry.Status = outcome.Response.StatusCode
		s.log.Debug("request matched",
			"method", r.Method,
			"path", r.URL.Path,
			"key", outcome.Key,
			"score", outcome.Score,
		)
	}
	s.history.Record(entry)

	return outcome.Response, outcome.Err
}

// History returns all recorded calls, oldest first.
func (s *Sandbox) History() []*requestlog.Entry {
	return s.history.List(nil)
}

// Called reports whether any recorded call was routed to the given key.
func (s *Sandbox) Called(key string) bool {
	return len(s.Calls(key)) > 0
}

// Calls returns the recorded calls routed to the given key.
func (s *Sandbox) Calls(key string) []*requestlog.Entry {
	return s.history.List(&requestlog.Filter{RouteKey: key})
}

// Ensure Sandbox implements http.RoundTripper.
var _ http.RoundTripper = (*Sandbox)(nil)
