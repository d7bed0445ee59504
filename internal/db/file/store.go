// Package file implements db.Store as one JSON file per key in a data directory.
// Writes go to a temporary file in the same directory which then replaces the target,
// so readers never observe a partially written value. Concurrent writers race with
// last-writer-wins semantics.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kailas-cloud/arttinder/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const fileExt = ".json"

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")

// Store keeps each key in <dir>/<key>.json.
type Store struct {
	dir string
}

// NewStore creates the data directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Ping checks that the data directory is still present.
func (s *Store) Ping(_ context.Context) error {
	fi, err := os.Stat(s.dir)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if !fi.IsDir() {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("%s is not a directory", s.dir)}
	}
	return nil
}

// WaitForReady returns immediately; the directory either exists or it does not.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close is a no-op.
func (s *Store) Close() {}

// Get reads the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpRead, Err: err}
	}
	return data, nil
}

// Set writes value to a temp file and renames it over the target.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	target := s.path(key)

	tmp, err := os.CreateTemp(s.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &db.Error{Op: db.OpWrite, Err: err}
	}

	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return &db.Error{Op: db.OpRename, Err: err}
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, keyReplacer.Replace(key)+fileExt)
}
