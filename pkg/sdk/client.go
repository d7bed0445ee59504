package arttinder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	chiTransport "github.com/kailas-cloud/arttinder/internal/transport/chi"
)

// maxErrorBody caps the error body read from a failed response.
const maxErrorBody = 64 << 10

// Client is the arttinder API entry point. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userID    string
	pexelsKey string
	obs       *observer
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("arttinder: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("arttinder: base url must be absolute, e.g. http://127.0.0.1:8000")
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:   u,
		http:      hc,
		userID:    cfg.userID,
		pexelsKey: cfg.pexelsKey,
		obs:       obs,
	}, nil
}

// ForUser returns a copy of the client that sends userID as X-User-Id.
func (c *Client) ForUser(userID string) *Client {
	cp := *c
	cp.userID = userID
	return &cp
}

// UserID returns the id sent as X-User-Id, or "".
func (c *Client) UserID() string {
	return c.userID
}

// call is one API request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	out    any
	// okStatuses lists extra non-2xx statuses whose body decodes into out.
	okStatuses []int
}

// do sends the request, decodes a 2xx body into out and returns the response headers.
func (c *Client) do(ctx context.Context, cl call) (hdr http.Header, err error) {
	start := time.Now()
	status := 0
	defer func() { c.obs.observe(cl.op, start, status, err) }()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arttinder: %s: %w", cl.op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if !accepted(resp.StatusCode, cl.okStatuses) {
		return resp.Header, decodeAPIError(resp)
	}
	if cl.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
			return resp.Header, fmt.Errorf("arttinder: %s: decode response: %w", cl.op, err)
		}
	}
	return resp.Header, nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	u := c.baseURL.JoinPath(cl.path)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader = http.NoBody
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("arttinder: %s: encode body: %w", cl.op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("arttinder: %s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set(chiTransport.HeaderUserID, c.userID)
	}
	if c.pexelsKey != "" {
		req.Header.Set(chiTransport.HeaderPexelsKey, c.pexelsKey)
	}
	return req, nil
}

func accepted(status int, extra []int) bool {
	if status >= 200 && status < 300 {
		return true
	}
	for _, s := range extra {
		if s == status {
			return true
		}
	}
	return false
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body chiTransport.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	return &APIError{StatusCode: resp.StatusCode, Code: string(body.Code), Message: body.Message}
}

func setPage(q url.Values, perPage, page int) {
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
}

func tokensHeader(h http.Header) int {
	n, _ := strconv.Atoi(h.Get(chiTransport.HeaderTokens))
	return n
}
