// Package dispatch resolves a request against a route table snapshot and
// executes the winning handler.
//
// Dispatch is a pure function of (snapshot, request): it holds no state
// between calls, and concurrent mutation of the originating table cannot
// change the outcome of a dispatch already under way. Failure policy is
// fail-loud: an unmatched request and a failing handler both surface their
// error to the caller unchanged, never as a substitute response.
package dispatch

import (
	"bytes"
	"io"
	"net/http"

	"github.com/getmockd/fetchmock/pkg/route"
)

// Unmatched is invoked when no route matches. It receives the searched
// snapshot for diagnostics and is expected to fail; returning a response
// instead is allowed and short-circuits dispatch with that response.
type Unmatched func(r *http.Request, snapshot []route.Entry) (*http.Response, error)

// ErrorHook is invoked when the matched handler (or the Unmatched
// callback) fails. It decides what the fetch caller sees.
type ErrorHook func(r *http.Request, err error) (*http.Response, error)

// FailUnmatched is the default Unmatched policy: always fail with an
// UnmatchedRouteError. There is no pass-through to a real network.
func FailUnmatched(r *http.Request, snapshot []route.Entry) (*http.Response, error) {
	keys := make([]string, len(snapshot))
	for i, e := range snapshot {
		keys[i] = e.Key
	}
	return nil, &UnmatchedRouteError{Request: r, Routes: keys}
}

// PropagateError is the default ErrorHook: the original error reaches the
// fetch caller unchanged. Handler failures are test failures and the test
// wants to see the real cause, not a fabricated 500.
func PropagateError(r *http.Request, err error) (*http.Response, error) {
	return nil, err
}

// Outcome is the full result of one dispatch, including match details for
// observers such as call-history recording.
type Outcome struct {
	// Response is the final response, nil when Err is set.
	Response *http.Response

	// Err is the propagated failure, nil on success.
	Err error

	// Key is the matched route key, empty when nothing matched.
	Key string

	// Params are the captured path parameters of the matched route.
	Params route.Params

	// Score is the winning match score.
	Score int
}

// Dispatch resolves and executes a single request against a snapshot.
// Passing nil callbacks selects the default policies FailUnmatched and
// PropagateError.
func Dispatch(r *http.Request, snapshot []route.Entry, onUnmatched Unmatched, onError ErrorHook) (*http.Response, error) {
	o := Run(r, snapshot, onUnmatched, onError)
	return o.Response, o.Err
}

// Run is Dispatch returning the full Outcome.
func Run(r *http.Request, snapshot []route.Entry, onUnmatched Unmatched, onError ErrorHook) Outcome {
	if onUnmatched == nil {
		onUnmatched = FailUnmatched
	}
	if onError == nil {
		onError = PropagateError
	}

	// Read the body once for body criteria, then restore it so the
	// handler can read it again.
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	match := Select(snapshot, r, body)
	if match == nil {
		resp, err := onUnmatched(r, snapshot)
		if err != nil {
			resp, err = onError(r, err)
		}
		return Outcome{Response: resp, Err: err}
	}

	if r.Body != nil {
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	resp, err := match.Entry.Handler(r, match.Params)
	if err == nil && resp == nil {
		err = ErrNilResponse
	}
	if err != nil {
		resp, err = onError(r, err)
	}
	return Outcome{
		Response: resp,
		Err:      err,
		Key:      match.Entry.Key,
		Params:   match.Params,
		Score:    match.Score,
	}
}
