// Package route provides the route table backing a sandbox: an ordered
// mapping from route keys to handlers.
//
// A route key is either a bare path pattern ("/users/:id"), matching any
// HTTP method, or a method-qualified pattern ("GET@/users/:id"). Keys are
// unique within a table; re-registering a key replaces its handler while
// keeping the original registration position. Malformed keys are accepted
// and simply never match.
package route

import "net/http"

// Params holds the path segments captured by a matched route pattern,
// keyed by parameter name (or wildcard index for "*" segments).
type Params map[string]string

// Handler fabricates the response for a matched request. It receives the
// full request, query string included, plus the captured path parameters.
// Returning an error fails the originating fetch with that exact error.
type Handler func(r *http.Request, params Params) (*http.Response, error)

// Criteria are optional request predicates attached to a route beyond its
// key. All configured predicates must hold for the route to match.
type Criteria struct {
	// Headers maps header names to expected values. Values may use "*"
	// wildcards for prefix, suffix, and contains matching.
	Headers map[string]string

	// Query maps query parameter names to exact expected values. Query
	// predicates refine matching but query strings never take part in
	// path matching itself.
	Query map[string]string

	// BodyContains requires the request body to contain the substring.
	BodyContains string

	// BodyJSONPath maps JSONPath expressions to expected values evaluated
	// against the request body.
	BodyJSONPath map[string]any
}

// IsEmpty reports whether no predicates are configured.
func (c *Criteria) IsEmpty() bool {
	return c == nil ||
		(len(c.Headers) == 0 && len(c.Query) == 0 &&
			c.BodyContains == "" && len(c.BodyJSONPath) == 0)
}

// Entry is a single registered route as seen in a table snapshot.
type Entry struct {
	// Key is the raw registration key.
	Key string

	// Handler is invoked when the entry wins the match.
	Handler Handler

	// Criteria are the extra predicates, nil for key-only routes.
	Criteria *Criteria

	// Seq is the registration sequence number. Entries registered earlier
	// have lower values; the dispatcher uses it to break score ties.
	Seq uint64
}
