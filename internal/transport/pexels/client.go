// Package pexels is a client for the Pexels photo search API.
package pexels

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
const Service = "pexels"

// The provider sits behind a bot filter that rejects requests without browser-like headers.
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/129.0.0.0 Safari/537.36"
	accept         = "application/json, text/plain, */*"
	acceptLanguage = "en-US,en;q=0.9"
)

// Client calls GET /search and normalizes the result.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Pexels client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type rawPhoto struct {
	ID              int64             `json:"id"`
	Alt             string            `json:"alt"`
	URL             string            `json:"url"`
	Photographer    string            `json:"photographer"`
	PhotographerURL string            `json:"photographer_url"`
	PhotographerID  int64             `json:"photographer_id"`
	AvgColor        string            `json:"avg_color"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	Src             map[string]string `json:"src"`
}

type rawPage struct {
	TotalResults int        `json:"total_results"`
	Page         *int       `json:"page"`
	PerPage      *int       `json:"per_page"`
	NextPage     *string    `json:"next_page"`
	Photos       []rawPhoto `json:"photos"`
}

// Search runs one provider search with q.APIKey.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) (domain.PhotoPage, error) {
	start := time.Now()
	page, err := c.search(ctx, q)
	metrics.ObserveUpstream(Service, time.Since(start).Seconds(), err)
	return page, err
}

func (c *Client) search(ctx context.Context, q domain.SearchQuery) (domain.PhotoPage, error) {
	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("per_page", strconv.Itoa(q.PerPage))
	params.Set("page", strconv.Itoa(q.Page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return domain.PhotoPage{}, fmt.Errorf("build pexels request: %w", err)
	}
	req.Header.Set("Authorization", q.APIKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PhotoPage{}, fmt.Errorf("pexels network error: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.PhotoPage{}, fmt.Errorf("read pexels body: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.PhotoPage{}, domain.NewUpstreamError(Service, resp.StatusCode, body)
	}

	var raw rawPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.PhotoPage{}, fmt.Errorf("invalid JSON from pexels (status 200), body starts: %s: %w",
			domain.Snippet(body), domain.ErrUpstreamMalformed)
	}
	return normalize(raw), nil
}

func normalize(raw rawPage) domain.PhotoPage {
	photos := make([]domain.Photo, 0, len(raw.Photos))
	for _, p := range raw.Photos {
		photos = append(photos, domain.Photo{
			ID:    p.ID,
			Title: p.Alt,
			Alt:   p.Alt,
			URL:   p.URL,
			Publisher: domain.Publisher{
				Name: p.Photographer,
				URL:  p.PhotographerURL,
				ID:   p.PhotographerID,
			},
			AvgColor:    p.AvgColor,
			Width:       p.Width,
			Height:      p.Height,
			Src:         p.Src,
			Attribution: "Photo by " + p.Photographer + " on Pexels",
		})
	}

	out := domain.PhotoPage{
		Source:       domain.PhotoSource,
		TotalResults: raw.TotalResults,
		Page:         1,
		PerPage:      len(photos),
		NextPage:     raw.NextPage,
		Photos:       photos,
	}
	if raw.Page != nil {
		out.Page = *raw.Page
	}
	if raw.PerPage != nil {
		out.PerPage = *raw.PerPage
	}
	return out
}
