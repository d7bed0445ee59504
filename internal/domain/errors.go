package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a missing or malformed caller parameter.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrConfigurationMissing signals that a required credential is not configured.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrUpstreamHTTP signals a non-200 response from an upstream service.
	ErrUpstreamHTTP = errors.New("upstream http error")
	// ErrUpstreamMalformed signals an upstream body that could not be decoded.
	ErrUpstreamMalformed = errors.New("upstream malformed response")
	// ErrUpstreamUnavailable signals a network failure or an open circuit.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// maxSnippet caps the upstream body carried in error messages.
const maxSnippet = 300

// UpstreamError wraps ErrUpstreamHTTP with the upstream status and body snippet.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Service, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstreamHTTP }

// NewUpstreamError creates an upstream HTTP error, truncating the body.
func NewUpstreamError(service string, status int, body []byte) error {
	return &UpstreamError{Service: service, Status: status, Body: Snippet(body)}
}

// Snippet returns at most the first 300 bytes of body as a string.
func Snippet(body []byte) string {
	if len(body) > maxSnippet {
		body = body[:maxSnippet]
	}
	return string(body)
}
