// Package routekey parses route registration keys.
//
// A route key has one of two shapes:
//
//	"<pattern>"          matches any HTTP method
//	"<METHOD>@<pattern>" matches only the named method, compared as-is
//
// The pattern part is a path template understood by the matching package.
package routekey

import "strings"

// Key is a parsed route key: an optional method filter plus a path pattern.
type Key struct {
	// Method is the HTTP method filter. Only meaningful when HasMethod is true.
	Method string

	// HasMethod reports whether the key carried an explicit "METHOD@" prefix.
	// A key without one matches every method.
	HasMethod bool

	// Pattern is the path template to match against the request path.
	Pattern string
}

// Parse splits a raw route key into its method filter and pattern.
// Parsing never fails: malformed keys (empty pattern, empty method before
// the "@") produce a Key that simply matches no request.
func Parse(raw string) Key {
	if i := strings.Index(raw, "@"); i >= 0 {
		return Key{
			Method:    raw[:i],
			HasMethod: true,
			Pattern:   raw[i+1:],
		}
	}
	return Key{Pattern: raw}
}

// MatchesMethod reports whether the key's method filter accepts the given
// request method. The comparison is exact and case-sensitive.
func (k Key) MatchesMethod(method string) bool {
	if !k.HasMethod {
		return true
	}
	if k.Method == "" {
		// "@/path" declares a filter that can never be satisfied.
		return false
	}
	return k.Method == method
}
