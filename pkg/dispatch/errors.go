package dispatch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNilResponse is the failure reported when a matched handler returns
// neither a response nor an error.
var ErrNilResponse = errors.New("handler returned neither a response nor an error")

// UnmatchedRouteError is returned when no registered route matches a
// dispatched request. It carries the request and the route keys that were
// searched, and is never converted into a response: the caller of fetch
// always sees it.
type UnmatchedRouteError struct {
	// Request is the request that matched nothing.
	Request *http.Request

	// Routes are the route keys registered at dispatch time, in
	// registration order.
	Routes []string
}

// Error formats a diagnostic of the form
// "GET /missing (3 routes have a handler)".
func (e *UnmatchedRouteError) Error() string {
	verb := "routes have"
	if len(e.Routes) == 1 {
		verb = "route has"
	}
	return fmt.Sprintf("%s %s (%d %s a handler)",
		e.Request.Method, e.Request.URL.Path, len(e.Routes), verb)
}
