package dispatch

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/fetchmock/pkg/route"
)

func newTestRequest(t *testing.T, method, target string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, target, nil)
}

func stub(status int) route.Handler {
	return func(r *http.Request, params route.Params) (*http.Response, error) {
		return &http.Response{StatusCode: status, Body: http.NoBody}, nil
	}
}

func snapshotOf(t *testing.T, register func(*route.Table)) []route.Entry {
	t.Helper()
	tbl := route.NewTable()
	register(tbl)
	return tbl.Snapshot()
}

func TestDispatchMatchesMethodAndPath(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("GET@/users", stub(200))
		tbl.Put("POST@/users", stub(201))
	})

	resp, err := Dispatch(newTestRequest(t, "POST", "/users"), snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestDispatchBareKeyMatchesAnyMethod(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/users", stub(200))
	})

	for _, method := range []string{"GET", "POST", "DELETE", "PATCH"} {
		resp, err := Dispatch(newTestRequest(t, method, "/users"), snapshot, nil, nil)
		require.NoError(t, err, method)
		assert.Equal(t, 200, resp.StatusCode, method)
	}
}

func TestDispatchMethodQualifiedOutranksBare(t *testing.T) {
	// Registration order is deliberately bare-first: the method-qualified
	// key must still win on score, not on position.
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/users", stub(200))
		tbl.Put("GET@/users", stub(204))
	})

	resp, err := Dispatch(newTestRequest(t, "GET", "/users"), snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	// Other methods fall back to the bare key.
	resp, err = Dispatch(newTestRequest(t, "POST", "/users"), snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestDispatchExactOutranksParamOutranksWildcard(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/users/*", stub(210))
		tbl.Put("/users/:id", stub(211))
		tbl.Put("/users/42", stub(212))
	})

	resp, err := Dispatch(newTestRequest(t, "GET", "/users/42"), snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 212, resp.StatusCode)

	resp, err = Dispatch(newTestRequest(t, "GET", "/users/7"), snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 211, resp.StatusCode)

	resp, err = Dispatch(newTestRequest(t, "GET", "/users/7/posts"), snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 210, resp.StatusCode)
}

func TestDispatchEqualScoreFirstRegisteredWins(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/things/:id", stub(200))
		tbl.Put("/things/:name", stub(500))
	})

	// Both keys score identically for this request; the earlier
	// registration must win, on every call.
	for i := 0; i < 5; i++ {
		resp, err := Dispatch(newTestRequest(t, "GET", "/things/9"), snapshot, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
}

func TestDispatchQueryStringIgnoredForMatching(t *testing.T) {
	var seen []string
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/x", func(r *http.Request, params route.Params) (*http.Response, error) {
			// The handler still sees the full query.
			seen = append(seen, r.URL.RawQuery)
			return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
		})
	})

	for _, target := range []string{"/x?a=1", "/x?a=2", "/x"} {
		resp, err := Dispatch(newTestRequest(t, "GET", target), snapshot, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
	assert.Equal(t, []string{"a=1", "a=2", ""}, seen)
}

func TestDispatchParamsPassedToHandler(t *testing.T) {
	var got route.Params
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("DELETE@/lights/:id", func(r *http.Request, params route.Params) (*http.Response, error) {
			got = params
			return &http.Response{StatusCode: 204, Body: http.NoBody}, nil
		})
	})

	resp, err := Dispatch(newTestRequest(t, "DELETE", "/lights/2"), snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, route.Params{"id": "2"}, got)
}

func TestDispatchUnmatchedError(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("GET@/a", stub(200))
		tbl.Put("/b", stub(200))
	})

	resp, err := Dispatch(newTestRequest(t, "GET", "/missing"), snapshot, nil, nil)
	assert.Nil(t, resp)

	var unmatched *UnmatchedRouteError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, "GET /missing (2 routes have a handler)", err.Error())
	assert.Equal(t, []string{"GET@/a", "/b"}, unmatched.Routes)
	require.NotNil(t, unmatched.Request)
	assert.Equal(t, "/missing", unmatched.Request.URL.Path)
}

func TestDispatchUnmatchedErrorSingular(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/a", stub(200))
	})

	_, err := Dispatch(newTestRequest(t, "POST", "/nope"), snapshot, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "POST /nope (1 route has a handler)", err.Error())
}

func TestDispatchUnmatchedErrorEmptyTable(t *testing.T) {
	_, err := Dispatch(newTestRequest(t, "GET", "/x"), nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "GET /x (0 routes have a handler)", err.Error())
}

func TestDispatchMethodMismatchIsUnmatched(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("GET@/users", stub(200))
	})

	_, err := Dispatch(newTestRequest(t, "POST", "/users"), snapshot, nil, nil)
	var unmatched *UnmatchedRouteError
	require.ErrorAs(t, err, &unmatched)
}

func TestDispatchMalformedKeysNeverMatch(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("@/users", stub(200))
		tbl.Put("GET@", stub(200))
		tbl.Put("", stub(200))
	})

	_, err := Dispatch(newTestRequest(t, "GET", "/users"), snapshot, nil, nil)
	var unmatched *UnmatchedRouteError
	require.ErrorAs(t, err, &unmatched)
	assert.Len(t, unmatched.Routes, 3)
}

func TestDispatchHandlerErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("kaboom")
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/x", func(r *http.Request, params route.Params) (*http.Response, error) {
			return nil, boom
		})
	})

	resp, err := Dispatch(newTestRequest(t, "GET", "/x"), snapshot, nil, nil)
	assert.Nil(t, resp)
	assert.Same(t, boom, err)
}

func TestDispatchNilResponseIsHandlerFailure(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/x", func(r *http.Request, params route.Params) (*http.Response, error) {
			return nil, nil
		})
	})

	_, err := Dispatch(newTestRequest(t, "GET", "/x"), snapshot, nil, nil)
	assert.ErrorIs(t, err, ErrNilResponse)
}

func TestDispatchCustomUnmatchedCallback(t *testing.T) {
	called := false
	onUnmatched := func(r *http.Request, snapshot []route.Entry) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 418, Body: http.NoBody}, nil
	}

	resp, err := Dispatch(newTestRequest(t, "GET", "/x"), nil, onUnmatched, nil)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 418, resp.StatusCode)
}

func TestDispatchErrorHookSeesUnmatchedFailure(t *testing.T) {
	var hookErr error
	onError := func(r *http.Request, err error) (*http.Response, error) {
		hookErr = err
		return nil, err
	}

	_, err := Dispatch(newTestRequest(t, "GET", "/x"), nil, nil, onError)
	require.Error(t, err)
	assert.Same(t, hookErr, err)

	var unmatched *UnmatchedRouteError
	assert.ErrorAs(t, hookErr, &unmatched)
}

func TestDispatchErrorHookCanReplaceHandlerError(t *testing.T) {
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.Put("/x", func(r *http.Request, params route.Params) (*http.Response, error) {
			return nil, errors.New("original")
		})
	})
	onError := func(r *http.Request, err error) (*http.Response, error) {
		return &http.Response{StatusCode: 500, Body: http.NoBody}, nil
	}

	resp, err := Dispatch(newTestRequest(t, "GET", "/x"), snapshot, nil, onError)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestDispatchBodyCriteriaAndHandlerBothReadBody(t *testing.T) {
	var handlerBody string
	snapshot := snapshotOf(t, func(tbl *route.Table) {
		tbl.PutWith("POST@/orders", func(r *http.Request, params route.Params) (*http.Response, error) {
			b, _ := io.ReadAll(r.Body)
			handlerBody = string(b)
			return &http.Response{StatusCode: 201, Body: http.NoBody}, nil
		}, &route.Criteria{BodyContains: "widget"})
	})

	req := httptest.NewRequest("POST", "/orders", strings.NewReader(`{"item":"widget"}`))
	resp, err := Dispatch(req, snapshot, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, `{"item":"widget"}`, handlerBody)
}

func TestSelectCriteriaScoring(t *testing.T) {
	plain := stub(200)
	withHeader := stub(201)

	tbl := route.NewTable()
	tbl.Put("GET@/api", plain)
	tbl.PutWith("/api", withHeader, &route.Criteria{
		Headers: map[string]string{"X-Tenant": "acme"},
	})

	req := httptest.NewRequest("GET", "/api", nil)
	req.Header.Set("X-Tenant", "acme")

	// GET@/api: path 15 + method 10 = 25.
	// /api with header criteria: path 15 + header 10 = 25 -> tie, first wins.
	m := Select(tbl.Snapshot(), req, nil)
	require.NotNil(t, m)
	assert.Equal(t, "GET@/api", m.Entry.Key)

	// Without the header, only the method-qualified key matches.
	req2 := httptest.NewRequest("GET", "/api", nil)
	m2 := Select(tbl.Snapshot(), req2, nil)
	require.NotNil(t, m2)
	assert.Equal(t, "GET@/api", m2.Entry.Key)
}

func TestSelectReturnsNilOnNoMatch(t *testing.T) {
	assert.Nil(t, Select(nil, newTestRequest(t, "GET", "/x"), nil))
}

func TestSelectCriteriaRejectsOnFailedPredicate(t *testing.T) {
	tbl := route.NewTable()
	tbl.PutWith("POST@/api", stub(200), &route.Criteria{
		Query:        map[string]string{"v": "2"},
		BodyJSONPath: map[string]any{"$.kind": "order"},
	})

	req := httptest.NewRequest("POST", "/api?v=2", nil)
	assert.Nil(t, Select(tbl.Snapshot(), req, []byte(`{"kind":"refund"}`)))

	match := Select(tbl.Snapshot(), req, []byte(`{"kind":"order"}`))
	require.NotNil(t, match)
	assert.Equal(t, "POST@/api", match.Entry.Key)
}
