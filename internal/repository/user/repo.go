package user

import (
	"context"
	"time"

	"github.com/kailas-cloud/arttinder/internal/domain"
	"github.com/kailas-cloud/arttinder/internal/repository/jsonmap"
)

// Key is the store key of the users document.
const Key = "users"

// store is the consumer interface for users (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/user.Repository on a single JSON document keyed by user id.
type Repo struct {
	doc *jsonmap.Map[domain.User]
	now func() time.Time
}

// New creates a user repository.
func New(s store) *Repo {
	return &Repo{doc: jsonmap.New[domain.User](s, Key), now: time.Now}
}

// All returns every user keyed by id.
func (r *Repo) All(ctx context.Context) (map[string]domain.User, error) {
	return r.doc.Load(ctx)
}

// Upsert sets the handle and updatedAt of userID. createdAt is set once on first insert.
func (r *Repo) Upsert(ctx context.Context, userID, handle string) (domain.User, error) {
	var saved domain.User
	err := r.doc.Update(ctx, func(all map[string]domain.User) error {
		ts := r.now().Unix()
		u, ok := all[userID]
		if !ok {
			u.CreatedAt = ts
		}
		u.Handle = handle
		u.UpdatedAt = ts
		all[userID] = u
		saved = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return saved, nil
}
