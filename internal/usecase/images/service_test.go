package images

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/arttinder/internal/domain"
)

type fakeSearch struct {
	page    domain.PhotoPage
	err     error
	queries []domain.SearchQuery
}

func (f *fakeSearch) Search(_ context.Context, q domain.SearchQuery) (domain.PhotoPage, error) {
	f.queries = append(f.queries, q)
	return f.page, f.err
}

func TestResolveKey_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		defaultKey string
		src        KeySource
		want       string
	}{
		{"header wins", "env", KeySource{Header: " hdr ", Query: "qry"}, "hdr"},
		{"query next", "env", KeySource{Header: "  ", Query: "qry"}, "qry"},
		{"config last", " env ", KeySource{}, "env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(&fakeSearch{}, tt.defaultKey).ResolveKey(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveKey_Missing(t *testing.T) {
	_, err := New(&fakeSearch{}, "").ResolveKey(KeySource{})
	if !errors.Is(err, domain.ErrConfigurationMissing) {
		t.Errorf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestSearch_PassesQuery(t *testing.T) {
	f := &fakeSearch{page: domain.PhotoPage{Source: "pexels", TotalResults: 7}}
	svc := New(f, "env")

	page, err := svc.Search(context.Background(), "  cats ", 24, 2, KeySource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalResults != 7 {
		t.Errorf("unexpected page: %+v", page)
	}
	want := domain.SearchQuery{Query: "cats", PerPage: 24, Page: 2, APIKey: "env"}
	if f.queries[0] != want {
		t.Errorf("got %+v, want %+v", f.queries[0], want)
	}
}

func TestSearch_Validation(t *testing.T) {
	svc := New(&fakeSearch{}, "env")
	cases := []struct {
		q       string
		perPage int
		page    int
	}{
		{" ", 24, 1},
		{"x", 0, 1},
		{"x", 81, 1},
		{"x", 24, 0},
	}
	for _, c := range cases {
		if _, err := svc.Search(context.Background(), c.q, c.perPage, c.page, KeySource{}); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("%+v: expected ErrInvalidRequest, got %v", c, err)
		}
	}
}

func TestSearch_UpstreamErrorPropagates(t *testing.T) {
	f := &fakeSearch{err: domain.NewUpstreamError("pexels", 403, []byte("forbidden"))}
	_, err := New(f, "env").Search(context.Background(), "x", 1, 1, KeySource{})

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) || upErr.Status != 403 {
		t.Errorf("expected 403 upstream error, got %v", err)
	}
}

func TestSearch_MissingKeySkipsProvider(t *testing.T) {
	f := &fakeSearch{}
	_, err := New(f, "").Search(context.Background(), "x", 1, 1, KeySource{})
	if !errors.Is(err, domain.ErrConfigurationMissing) {
		t.Errorf("expected ErrConfigurationMissing, got %v", err)
	}
	if len(f.queries) != 0 {
		t.Error("expected no provider call")
	}
}

func TestValidateKey(t *testing.T) {
	f := &fakeSearch{}
	if err := New(f, "").ValidateKey(context.Background(), KeySource{Header: "k"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := f.queries[0]
	if q.PerPage != 1 || q.Page != 1 || q.APIKey != "k" || q.Query == "" {
		t.Errorf("unexpected probe: %+v", q)
	}

	f.err = domain.NewUpstreamError("pexels", 401, nil)
	if err := New(f, "").ValidateKey(context.Background(), KeySource{Header: "bad"}); !errors.Is(err, domain.ErrUpstreamHTTP) {
		t.Errorf("expected upstream error, got %v", err)
	}
}
