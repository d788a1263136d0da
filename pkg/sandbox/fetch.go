package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RequestOption adjusts the request built by Fetch before dispatch.
type RequestOption func(*http.Request) error

// WithMethod sets the request method.
func WithMethod(method string) RequestOption {
	return func(r *http.Request) error {
		r.Method = method
		return nil
	}
}

// WithHeader sets a request header.
func WithHeader(name, value string) RequestOption {
	return func(r *http.Request) error {
		r.Header.Set(name, value)
		return nil
	}
}

// WithBody sets the request body. contentType may be empty.
func WithBody(contentType string, body []byte) RequestOption {
	return func(r *http.Request) error {
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return nil
	}
}

// WithJSONBody marshals v as the request body and sets the JSON content
// type.
func WithJSONBody(v any) RequestOption {
	return func(r *http.Request) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		return WithBody("application/json", data)(r)
	}
}

// Fetch normalizes input into a request and dispatches it against the
// sandbox's routes. input may be a URL string, a *url.URL, or an
// already-built *http.Request (which is cloned, not mutated). Request
// construction failures propagate unchanged; the request defaults to GET
// unless the input request or a WithMethod option says otherwise.
func (s *Sandbox) Fetch(ctx context.Context, input any, opts ...RequestOption) (*http.Response, error) {
	req, err := buildRequest(ctx, input)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(req); err != nil {
			return nil, err
		}
	}
	return s.RoundTrip(req)
}

// buildRequest turns a heterogeneous fetch input into a single request.
func buildRequest(ctx context.Context, input any) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch v := input.(type) {
	case string:
		return http.NewRequestWithContext(ctx, http.MethodGet, v, nil)
	case *url.URL:
		if v == nil {
			return nil, fmt.Errorf("fetch input URL is nil")
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, v.String(), nil)
	case *http.Request:
		if v == nil {
			return nil, fmt.Errorf("fetch input request is nil")
		}
		return v.Clone(ctx), nil
	default:
		return nil, fmt.Errorf("unsupported fetch input type %T", input)
	}
}
