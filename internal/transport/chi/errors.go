package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/logger"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeConfigurationMissing ErrorCode = "configuration_missing"
	CodeUpstreamError        ErrorCode = "upstream_error"
	CodeUpstreamMalformed    ErrorCode = "upstream_malformed"
	CodeUpstreamUnavailable  ErrorCode = "upstream_unavailable"
	CodeNotFound             ErrorCode = "not_found"
	CodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(errBadParameter, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrConfigurationMissing, http.StatusInternalServerError, CodeConfigurationMissing),
		upstreamErrorHandler,
		sentinelHandler(domain.ErrUpstreamMalformed, http.StatusBadGateway, CodeUpstreamMalformed),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusBadGateway, CodeUpstreamUnavailable),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// clientMessage strips the trailing sentinel text from a wrapped error.
func clientMessage(err error, sentinel error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, clientMessage(err, sentinel))
		return true
	}
}

// upstreamErrorHandler forwards the upstream status of a non-200 provider response.
func upstreamErrorHandler(w http.ResponseWriter, err error) bool {
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	status := ue.Status
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	writeError(w, status, CodeUpstreamError, ue.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logger.FromContext(r.Context()).Warn("request failed", zap.Error(err))
			return
		}
	}
	logger.FromContext(r.Context()).Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
