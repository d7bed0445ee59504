package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/usecase/candidate"
	"github.com/kailas-cloud/arttinder/internal/usecase/preference"
)

type mockPrefs struct {
	data map[string]domain.Preferences
	err  error
}

func (m *mockPrefs) Get(_ context.Context, userID string) (domain.Preferences, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[userID], nil
}

type stubExpander struct {
	terms  []string
	target int
}

func (e *stubExpander) Expand(_ context.Context, _ domain.Preferences, target int) []string {
	e.target = target
	return e.terms
}

// fakeSearch returns the photo ids listed for each term.
type fakeSearch struct {
	ids     map[string][]int64
	err     error
	queries []domain.SearchQuery
}

func (f *fakeSearch) Search(_ context.Context, q domain.SearchQuery) (domain.PhotoPage, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return domain.PhotoPage{}, f.err
	}
	var photos []domain.Photo
	for _, id := range f.ids[q.Query] {
		photos = append(photos, domain.Photo{ID: id, Alt: q.Query})
	}
	return domain.PhotoPage{Source: domain.PhotoSource, Photos: photos}, nil
}

func photoIDs(photos []domain.Photo) []int64 {
	out := make([]int64, len(photos))
	for i, p := range photos {
		out[i] = p.ID
	}
	return out
}

func TestRecommend_MissingUserID(t *testing.T) {
	search := &fakeSearch{}
	svc := New(&mockPrefs{}, &stubExpander{}, search)

	_, err := svc.Recommend(context.Background(), Request{PerPage: 10, Page: 1})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if len(search.queries) != 0 {
		t.Error("expected no searches")
	}
}

func TestRecommend_NoPrefsFallsBack(t *testing.T) {
	search := &fakeSearch{ids: map[string][]int64{
		"art": {1, 2}, "abstract": {2, 3}, "surreal": {4}, "nature": {5}, "portrait": {1, 6},
	}}
	svc := New(&mockPrefs{data: map[string]domain.Preferences{}}, &stubExpander{}, search)

	page, err := svc.Recommend(context.Background(), Request{UserID: "u1", PerPage: 10, Page: 1, APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var searched []string
	for _, q := range search.queries {
		searched = append(searched, q.Query)
		if q.PerPage != 5 || q.Page != 1 || q.APIKey != "k" {
			t.Errorf("unexpected query: %+v", q)
		}
	}
	if !reflect.DeepEqual(searched, FallbackTerms) {
		t.Errorf("expected fallback terms, got %v", searched)
	}
	if !reflect.DeepEqual(photoIDs(page.Photos), []int64{1, 2, 3, 4, 5, 6}) {
		t.Errorf("unexpected photos: %v", photoIDs(page.Photos))
	}
	if page.TotalResults != 6 || page.Page != 1 || page.PerPage != 10 || page.Source != "pexels" {
		t.Errorf("unexpected page header: %+v", page)
	}
}

func TestRecommend_PerTermLimitFollowsSmallPages(t *testing.T) {
	search := &fakeSearch{}
	svc := New(&mockPrefs{}, &stubExpander{terms: []string{"a"}}, search)

	_, _ = svc.Recommend(context.Background(), Request{UserID: "u", PerPage: 3, Page: 1})
	if search.queries[0].PerPage != 3 {
		t.Errorf("expected per-term limit 3, got %d", search.queries[0].PerPage)
	}
}

func TestRecommend_Paginates(t *testing.T) {
	search := &fakeSearch{ids: map[string][]int64{"a": {1, 2, 3, 4, 5}, "b": {3, 6, 7, 8, 9}}}
	exp := &stubExpander{terms: []string{"a", "b"}}
	svc := New(&mockPrefs{}, exp, search)
	ctx := context.Background()

	p1, _ := svc.Recommend(ctx, Request{UserID: "u", PerPage: 4, Page: 1})
	p2, _ := svc.Recommend(ctx, Request{UserID: "u", PerPage: 4, Page: 2})
	p3, err := svc.Recommend(ctx, Request{UserID: "u", PerPage: 4, Page: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(photoIDs(p1.Photos), []int64{1, 2, 3, 4}) {
		t.Errorf("page 1: %v", photoIDs(p1.Photos))
	}
	if !reflect.DeepEqual(photoIDs(p2.Photos), []int64{5, 6, 7, 8}) {
		t.Errorf("page 2: %v", photoIDs(p2.Photos))
	}
	if len(p3.Photos) != 1 || p3.Photos[0].ID != 9 {
		t.Errorf("page 3: %v", photoIDs(p3.Photos))
	}
	if p1.TotalResults != 9 || p3.TotalResults != 9 {
		t.Errorf("expected total 9, got %d/%d", p1.TotalResults, p3.TotalResults)
	}
	if exp.target != 20 {
		t.Errorf("expected expansion target 20, got %d", exp.target)
	}
}

func TestRecommend_PageBeyondEnd(t *testing.T) {
	search := &fakeSearch{ids: map[string][]int64{"a": {1}}}
	svc := New(&mockPrefs{}, &stubExpander{terms: []string{"a"}}, search)

	for _, page := range []int{2, 1 << 40} {
		p, err := svc.Recommend(context.Background(), Request{UserID: "u", PerPage: 30, Page: page})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Photos == nil || len(p.Photos) != 0 || p.TotalResults != 1 {
			t.Errorf("page %d: unexpected %+v", page, p)
		}
	}
}

func TestRecommend_FirstSeenWins(t *testing.T) {
	search := &fakeSearch{ids: map[string][]int64{"a": {7}, "b": {7}}}
	svc := New(&mockPrefs{}, &stubExpander{terms: []string{"a", "b"}}, search)

	p, _ := svc.Recommend(context.Background(), Request{UserID: "u", PerPage: 10, Page: 1})
	if len(p.Photos) != 1 || p.Photos[0].Alt != "a" {
		t.Errorf("expected photo from first term, got %+v", p.Photos)
	}
}

func TestRecommend_SearchErrorPropagates(t *testing.T) {
	upErr := domain.NewUpstreamError("pexels", 401, []byte("bad key"))
	svc := New(&mockPrefs{}, &stubExpander{terms: []string{"a"}}, &fakeSearch{err: upErr})

	_, err := svc.Recommend(context.Background(), Request{UserID: "u", PerPage: 10, Page: 1})
	if !errors.Is(err, domain.ErrUpstreamHTTP) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestRecommend_PrefsErrorPropagates(t *testing.T) {
	svc := New(&mockPrefs{err: errors.New("disk")}, &stubExpander{}, &fakeSearch{})
	if _, err := svc.Recommend(context.Background(), Request{UserID: "u", PerPage: 10, Page: 1}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecommend_InvalidPaging(t *testing.T) {
	svc := New(&mockPrefs{}, &stubExpander{}, &fakeSearch{})
	for _, req := range []Request{
		{UserID: "u", PerPage: 0, Page: 1},
		{UserID: "u", PerPage: 31, Page: 1},
		{UserID: "u", PerPage: 10, Page: 0},
	} {
		if _, err := svc.Recommend(context.Background(), req); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("%+v: expected ErrInvalidRequest, got %v", req, err)
		}
	}
}

type termGenerator struct{ terms []string }

func (g termGenerator) Generate(context.Context, string, int) candidate.Outcome {
	return candidate.Outcome{Terms: g.terms, Status: candidate.StatusProduced}
}

func TestRecommend_MoodyCityScenario(t *testing.T) {
	prefs := &mockPrefs{data: map[string]domain.Preferences{
		"u1": {"styles": "minimal, moody", "subjects": "city, night"},
	}}
	exp := preference.NewExpander(termGenerator{terms: []string{"neon lights"}}, termGenerator{})

	search := &fakeSearch{ids: map[string][]int64{
		"minimal": {1, 2, 3}, "moody": {3, 4, 5}, "city": {5, 6, 7}, "night": {7, 8, 9, 10, 11}, "neon lights": {12, 1},
	}}
	svc := New(prefs, exp, search)

	page, err := svc.Recommend(context.Background(), Request{UserID: "u1", PerPage: 10, Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var searched []string
	for _, q := range search.queries {
		searched = append(searched, q.Query)
	}
	for _, base := range []string{"minimal", "moody", "city", "night"} {
		found := false
		for _, s := range searched {
			if s == base {
				found = true
			}
		}
		if !found {
			t.Errorf("expected base term %q to be searched, searched %v", base, searched)
		}
	}
	if len(page.Photos) > 10 {
		t.Errorf("expected at most 10 photos, got %d", len(page.Photos))
	}
	if page.TotalResults != 12 {
		t.Errorf("expected total 12, got %d", page.TotalResults)
	}
	seen := map[int64]bool{}
	for _, p := range page.Photos {
		if seen[p.ID] {
			t.Errorf("duplicate photo %d", p.ID)
		}
		seen[p.ID] = true
	}
}
