// Package stub loads static route stubs from YAML or JSON files and turns
// them into route handlers. Stub files cover the common case of fixed
// canned responses; anything dynamic belongs in a hand-written handler.
package stub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getmockd/fetchmock/pkg/response"
	"github.com/getmockd/fetchmock/pkg/route"
)

// Stub is one static route definition.
type Stub struct {
	// Route is the route key, e.g. "GET@/users/:id".
	Route string `json:"route" yaml:"route"`

	// Status is the response status code. Defaults to 200.
	Status int `json:"status,omitempty" yaml:"status,omitempty"`

	// Header holds response headers.
	Header map[string]string `json:"header,omitempty" yaml:"header,omitempty"`

	// Body is the literal response body. Takes precedence over BodyJSON.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// BodyJSON is a structured body marshaled to JSON.
	BodyJSON any `json:"bodyJson,omitempty" yaml:"bodyJson,omitempty"`
}

// Collection is the top-level stub file shape.
type Collection struct {
	// Version is the optional file format version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Stubs are the route definitions.
	Stubs []Stub `json:"stubs" yaml:"stubs"`
}

// Handler builds the static handler for a stub. The response body and
// headers are fixed at build time; each invocation returns a fresh
// response value.
func (s Stub) Handler() (route.Handler, error) {
	if s.Route == "" {
		return nil, errors.New("stub is missing a route key")
	}

	status := s.Status
	if status == 0 {
		status = http.StatusOK
	}

	body := []byte(s.Body)
	jsonBody := false
	if s.Body == "" && s.BodyJSON != nil {
		data, err := json.Marshal(s.BodyJSON)
		if err != nil {
			return nil, fmt.Errorf("stub %q: failed to marshal bodyJson: %w", s.Route, err)
		}
		body = data
		jsonBody = true
	}

	header := make(http.Header)
	for name, value := range s.Header {
		header.Set(name, value)
	}
	if jsonBody && header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}

	return func(r *http.Request, params route.Params) (*http.Response, error) {
		return response.New(status, body, header.Clone()), nil
	}, nil
}

// Registrar accepts route registrations. *route.Table satisfies it.
type Registrar interface {
	Put(key string, h route.Handler)
}

// Apply registers every stub in the collection. Registration stops at the
// first invalid stub.
func Apply(c *Collection, reg Registrar) error {
	if c == nil {
		return errors.New("collection cannot be nil")
	}
	for _, s := range c.Stubs {
		h, err := s.Handler()
		if err != nil {
			return err
		}
		reg.Put(s.Route, h)
	}
	return nil
}
