package arttinder

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

var errNoUser = errors.New("arttinder: client has no user id, use ForUser or WithUserID")

// SearchImages runs a plain photo search.
func (c *Client) SearchImages(ctx context.Context, req SearchRequest) (*PhotoPage, error) {
	q := url.Values{"q": {req.Query}}
	setPage(q, req.PerPage, req.Page)

	var page PhotoPage
	if _, err := c.do(ctx, call{op: "search", method: http.MethodGet, path: "/images/search", query: q, out: &page}); err != nil {
		return nil, err
	}
	return &page, nil
}

// ValidateKey checks that the photo provider accepts the client's key, or the server key when none is set.
func (c *Client) ValidateKey(ctx context.Context) error {
	var res struct {
		Valid bool `json:"valid"`
	}
	_, err := c.do(ctx, call{op: "validate_key", method: http.MethodGet, path: "/images/validate-key", out: &res})
	return err
}

// Recommend returns a page of photos for the client's user. Requires a user id.
func (c *Client) Recommend(ctx context.Context, req PageRequest) (*PhotoPage, error) {
	if c.userID == "" {
		return nil, errNoUser
	}
	q := url.Values{}
	setPage(q, req.PerPage, req.Page)

	var page PhotoPage
	if _, err := c.do(ctx, call{op: "recommend", method: http.MethodGet, path: "/images/recommend", query: q, out: &page}); err != nil {
		return nil, err
	}
	return &page, nil
}

// Suggest returns up to limit search terms related to query. limit 0 uses the server default.
func (c *Client) Suggest(ctx context.Context, query string, limit int) (*Suggestions, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var res Suggestions
	hdr, err := c.do(ctx, call{op: "suggest", method: http.MethodGet, path: "/suggest", query: q, out: &res})
	if err != nil {
		return nil, err
	}
	res.UpstreamTokens = tokensHeader(hdr)
	return &res, nil
}

// ValidateHandle reports whether handle is taken and by whom.
func (c *Client) ValidateHandle(ctx context.Context, handle string) (*HandleLookup, error) {
	var res HandleLookup
	q := url.Values{"handle": {handle}}
	if _, err := c.do(ctx, call{op: "validate_handle", method: http.MethodGet, path: "/user/validate", query: q, out: &res}); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpsertUser records handle for the client's user. Requires a user id.
func (c *Client) UpsertUser(ctx context.Context, handle string) error {
	if c.userID == "" {
		return errNoUser
	}
	body := map[string]string{"userId": c.userID, "handle": handle}
	_, err := c.do(ctx, call{op: "upsert_user", method: http.MethodPost, path: "/user/upsert", body: body})
	return err
}

// Prefs returns the stored preferences of the client's user, empty when none. Requires a user id.
func (c *Client) Prefs(ctx context.Context) (Preferences, error) {
	if c.userID == "" {
		return nil, errNoUser
	}
	prefs := Preferences{}
	if _, err := c.do(ctx, call{op: "get_prefs", method: http.MethodGet, path: "/prefs", out: &prefs}); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SetPrefs replaces the stored preferences of the client's user. Requires a user id.
func (c *Client) SetPrefs(ctx context.Context, prefs Preferences) error {
	if c.userID == "" {
		return errNoUser
	}
	if prefs == nil {
		prefs = Preferences{}
	}
	_, err := c.do(ctx, call{op: "set_prefs", method: http.MethodPost, path: "/prefs", body: prefs})
	return err
}

// Health returns the server health. An unhealthy server still yields its report.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var hs HealthStatus
	_, err := c.do(ctx, call{
		op:         "health",
		method:     http.MethodGet,
		path:       "/health",
		out:        &hs,
		okStatuses: []int{http.StatusServiceUnavailable},
	})
	if err != nil {
		return nil, err
	}
	return &hs, nil
}
