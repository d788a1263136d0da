package matching

import (
	"strconv"
	"strings"
)

// MatchPath checks whether the request path satisfies a path template.
// Returns a score > 0 on a match, 0 otherwise.
//
// Template syntax:
//   - literal segments: "/api/users" matches only "/api/users"
//   - named parameters: "/users/:id" matches "/users/42"
//   - single-segment wildcard: "/api/*/items" matches "/api/v1/items"
//   - trailing wildcard: "/files/*" matches "/files" and "/files/a/b"
func MatchPath(pattern, path string) int {
	if pattern == "" {
		return 0
	}
	if pattern == path {
		return ScorePathExact
	}

	patParts := splitSegments(pattern)
	pathParts := splitSegments(path)

	// A trailing "*" swallows the remainder of the path.
	rest := len(patParts) > 0 && patParts[len(patParts)-1] == "*"

	n := len(patParts)
	if rest {
		n--
		if len(pathParts) < n {
			return 0
		}
	} else if len(pathParts) != len(patParts) {
		return 0
	}

	hasParam := false
	hasWildcard := rest
	for i := 0; i < n; i++ {
		switch p := patParts[i]; {
		case isParamSegment(p):
			hasParam = true
		case p == "*":
			hasWildcard = true
		case p != pathParts[i]:
			return 0
		}
	}

	switch {
	case hasWildcard:
		return ScorePathWildcard
	case hasParam:
		return ScorePathParams
	default:
		// All segments literal and equal; the raw strings differed only
		// in slash placement (e.g. a trailing slash).
		return ScorePathExact
	}
}

// PathParams extracts captured segments from a matched path template.
// Named parameters are keyed by name, wildcards by position ("0", "1", ...).
// A trailing wildcard captures the joined remainder of the path.
//
// Captures are recomputed on every call; results are never cached because
// they depend on the concrete request path.
func PathParams(pattern, path string) map[string]string {
	params := make(map[string]string)

	patParts := splitSegments(pattern)
	pathParts := splitSegments(path)

	wildcard := 0
	for i, p := range patParts {
		if i >= len(pathParts) {
			break
		}
		switch {
		case isParamSegment(p):
			params[p[1:]] = pathParts[i]
		case p == "*":
			if i == len(patParts)-1 {
				params[strconv.Itoa(wildcard)] = strings.Join(pathParts[i:], "/")
			} else {
				params[strconv.Itoa(wildcard)] = pathParts[i]
			}
			wildcard++
		}
	}

	return params
}

// isParamSegment reports whether a template segment is a ":name" parameter.
// A bare ":" is a literal, not a parameter.
func isParamSegment(s string) bool {
	return len(s) > 1 && s[0] == ':'
}

// splitSegments splits a path into its non-empty segments.
func splitSegments(s string) []string {
	trimmed := strings.Trim(s, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
