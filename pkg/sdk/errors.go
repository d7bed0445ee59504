package arttinder

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/arttinder/internal/domain"
	chiTransport "github.com/kailas-cloud/arttinder/internal/transport/chi"
)

// Sentinel errors matched by *APIError. Use errors.Is() to check.
var (
	ErrInvalidRequest       = domain.ErrInvalidRequest
	ErrConfigurationMissing = domain.ErrConfigurationMissing
	ErrNotFound             = domain.ErrNotFound
	ErrUpstreamHTTP         = domain.ErrUpstreamHTTP
	ErrUpstreamMalformed    = domain.ErrUpstreamMalformed
	ErrUpstreamUnavailable  = domain.ErrUpstreamUnavailable
	ErrRateLimited          = errors.New("rate limited")
)

var codeSentinels = map[chiTransport.ErrorCode]error{
	chiTransport.CodeBadRequest:           ErrInvalidRequest,
	chiTransport.CodeValidationFailed:     ErrInvalidRequest,
	chiTransport.CodeConfigurationMissing: ErrConfigurationMissing,
	chiTransport.CodeNotFound:             ErrNotFound,
	chiTransport.CodeUpstreamError:        ErrUpstreamHTTP,
	chiTransport.CodeUpstreamMalformed:    ErrUpstreamMalformed,
	chiTransport.CodeUpstreamUnavailable:  ErrUpstreamUnavailable,
	chiTransport.CodeRateLimited:          ErrRateLimited,
}

// APIError is a non-2xx API response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("arttinder: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("arttinder: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap returns the sentinel for the response code, or nil for unknown codes.
func (e *APIError) Unwrap() error {
	return codeSentinels[chiTransport.ErrorCode(e.Code)]
}
