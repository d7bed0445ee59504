package openai

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Service labels used in upstream metrics and errors.
const (
	ServiceChat       = "openai_chat"
	ServiceEmbeddings = "openai_embeddings"
)

func newClient(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return openai.NewClientWithConfig(cfg)
}
