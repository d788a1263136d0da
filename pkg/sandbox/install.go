package sandbox

import (
	"context"
	"net/http"

	"github.com/getmockd/fetchmock/pkg/route"
)

// The process-wide installation surface. The original transport is
// captured exactly once, at package initialization; Install and Uninstall
// only ever swap that single slot. This is deliberately not a concurrency-
// safe register: tests mutate the global transport sequentially from
// setup/teardown code.
var (
	originalTransport = http.DefaultTransport

	defaultSandbox = New()
)

// Default returns the sandbox backing the package-level functions and the
// default Install target.
func Default() *Sandbox {
	return defaultSandbox
}

// Install replaces http.DefaultTransport. With no argument the default
// sandbox is installed; an explicit transport installs that instead.
func Install(transport ...http.RoundTripper) {
	rt := http.RoundTripper(defaultSandbox)
	if len(transport) > 0 && transport[0] != nil {
		rt = transport[0]
	}
	http.DefaultTransport = rt
}

// Uninstall restores the transport captured at package initialization and
// resets the default sandbox's routes.
func Uninstall() {
	http.DefaultTransport = originalTransport
	defaultSandbox.Reset()
}

// Mock registers a handler on the default sandbox.
func Mock(key string, h route.Handler, opts ...MatchOption) {
	defaultSandbox.Mock(key, h, opts...)
}

// Remove unregisters a route key from the default sandbox.
func Remove(key string) {
	defaultSandbox.Remove(key)
}

// Reset empties the default sandbox's routes and history.
func Reset() {
	defaultSandbox.Reset()
}

// Fetch dispatches a request against the default sandbox.
func Fetch(ctx context.Context, input any, opts ...RequestOption) (*http.Response, error) {
	return defaultSandbox.Fetch(ctx, input, opts...)
}
