// Package datamuse is a client for the Datamuse word-association API.
package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/metrics"
)

// Service is the label used in upstream metrics and errors.
const Service = "datamuse"

const userAgent = "arttinder/1.0"

// Client queries /words for "means like" associations.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Datamuse client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type wordItem struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// RelatedWords returns up to limit words and phrases meaning like seed, in provider order.
func (c *Client) RelatedWords(ctx context.Context, seed string, limit int) ([]string, error) {
	start := time.Now()
	words, err := c.relatedWords(ctx, seed, limit)
	metrics.ObserveUpstream(Service, time.Since(start).Seconds(), err)
	return words, err
}

func (c *Client) relatedWords(ctx context.Context, seed string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("ml", seed)
	q.Set("max", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/words?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build datamuse request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datamuse request: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read datamuse body: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError(Service, resp.StatusCode, body)
	}

	var items []wordItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode datamuse body %q: %w", domain.Snippet(body), domain.ErrUpstreamMalformed)
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Word)
	}
	return out, nil
}
