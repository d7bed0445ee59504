package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/arttinder/internal/domain"
)

// parseAPIError maps client errors onto the domain taxonomy.
// HTTP failures keep the provider status; everything else is treated as unavailability.
func parseAPIError(service string, err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		body := reqErr.Body
		if detail := extractDetail(body); detail != "" {
			body = []byte(detail)
		}
		return domain.NewUpstreamError(service, reqErr.HTTPStatusCode, body)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return domain.NewUpstreamError(service, apiErr.HTTPStatusCode, []byte(apiErr.Message))
	}

	return fmt.Errorf("%s request failed: %v: %w", service, err, domain.ErrUpstreamUnavailable)
}

// extractDetail reads the "detail" field used by some OpenAI-compatible providers.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
