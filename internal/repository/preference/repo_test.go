package preference

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/arttinder/internal/db/file"
	"github.com/kailas-cloud/arttinder/internal/domain"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	s, err := file.NewStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return New(s)
}

func TestGet_MissingIsEmpty(t *testing.T) {
	r := newTestRepo(t)
	p, err := r.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p == nil || len(p) != 0 {
		t.Errorf("expected empty record, got %v", p)
	}
}

func TestSet_ReplacesWholesale(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_ = r.Set(ctx, "u1", domain.Preferences{"styles": "minimal", "color": "blue"})
	if err := r.Set(ctx, "u1", domain.Preferences{"subjects": "city"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	p, _ := r.Get(ctx, "u1")
	if _, ok := p["styles"]; ok {
		t.Error("expected old fields to be gone")
	}
	if p.String("subjects") != "city" {
		t.Errorf("unexpected prefs: %v", p)
	}
}

func TestSet_IsolatesUsers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_ = r.Set(ctx, "u1", domain.Preferences{"styles": "a"})
	_ = r.Set(ctx, "u2", domain.Preferences{"styles": "b"})

	all, err := r.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if all["u1"].String("styles") != "a" || all["u2"].String("styles") != "b" {
		t.Errorf("unexpected prefs: %v", all)
	}
}

func TestSet_NilStoresEmpty(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	if err := r.Set(ctx, "u1", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	all, _ := r.All(ctx)
	if _, ok := all["u1"]; !ok {
		t.Error("expected u1 entry")
	}
}

func TestGet_DecodesNonStringFields(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	_ = r.Set(ctx, "u1", domain.Preferences{"styles": 42})

	p, err := r.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.String("styles") != "42" {
		t.Errorf("expected coerced 42, got %q", p.String("styles"))
	}
}

func TestGet_StoreError(t *testing.T) {
	r := New(failingStore{})
	if _, err := r.Get(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("down") }
