// Package response provides helpers for fabricating *http.Response values
// inside handlers. Responses are built entirely in memory; no connection
// backs them.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// New builds a response with the given status, body, and headers. A nil
// header is allowed. When no Content-Type is set, one is inferred from the
// body content (JSON, XML, or plain text).
func New(status int, body []byte, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	if header.Get("Content-Type") == "" && len(body) > 0 {
		header.Set("Content-Type", detectContentType(string(body)))
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

// Status builds an empty response with the given status code.
func Status(status int) *http.Response {
	return New(status, nil, nil)
}

// Text builds a text/plain response.
func Text(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/plain; charset=utf-8")
	return New(status, []byte(body), header)
}

// JSON marshals v and builds an application/json response. The marshal
// error, if any, is returned so handlers can propagate it directly:
//
//	return response.JSON(200, user)
func JSON(status int, v any) (*http.Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response body: %w", err)
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return New(status, data, header), nil
}

// Error builds a JSON error envelope of the form
// {"error": code, "message": message}.
func Error(status int, code, message string) *http.Response {
	data, _ := json.Marshal(map[string]string{
		"error":   code,
		"message": message,
	})
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return New(status, data, header)
}

// detectContentType guesses a Content-Type from the body shape.
func detectContentType(body string) string {
	s := strings.TrimSpace(body)
	switch {
	case looksLikeJSON(s):
		return "application/json"
	case looksLikeXML(s):
		return "application/xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

func looksLikeJSON(s string) bool {
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

func looksLikeXML(s string) bool {
	return strings.HasPrefix(s, "<?xml") || strings.HasPrefix(s, "<")
}
