package matching

import (
	"net/http"
	"net/url"
	"strings"
)

// MatchHeader checks whether a request header satisfies the expected value.
// Header names are case-insensitive per the HTTP spec. The expected value
// may contain "*" for prefix ("v*"), suffix ("*json"), or contains
// ("*token*") matching.
func MatchHeader(name, expected string, headers http.Header) bool {
	actual := headers.Get(name)
	if actual == "" {
		return false
	}

	if !strings.Contains(expected, "*") {
		return actual == expected
	}

	hasPrefix := strings.HasPrefix(expected, "*")
	hasSuffix := strings.HasSuffix(expected, "*")
	switch {
	case hasPrefix && hasSuffix:
		return strings.Contains(actual, strings.Trim(expected, "*"))
	case hasSuffix:
		return strings.HasPrefix(actual, strings.TrimSuffix(expected, "*"))
	case hasPrefix:
		return strings.HasSuffix(actual, strings.TrimPrefix(expected, "*"))
	}
	return false
}

// MatchQueryParam checks whether a query parameter equals the expected value.
func MatchQueryParam(name, expected string, params url.Values) bool {
	return params.Get(name) == expected
}

// MatchBodyContains checks whether the request body contains the given
// substring.
func MatchBodyContains(substr string, body []byte) bool {
	return strings.Contains(string(body), substr)
}
