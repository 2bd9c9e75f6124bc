package pinned

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/spigell/career-auditor/internal/listing"
)

const lockRetry = 50 * time.Millisecond

// Store persists admin-pinned listings.
type Store interface {
	Load(ctx context.Context) ([]listing.Listing, error)
	Save(ctx context.Context, items []listing.Listing) error
}

// FileStore keeps pinned listings in a JSON file guarded by a sibling lock file.
type FileStore struct {
	path string
	lock *flock.Flock
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the data file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the pinned listings. A missing file is an empty list.
func (s *FileStore) Load(ctx context.Context) ([]listing.Listing, error) {
	locked, err := s.lock.TryRLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", s.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("locking %s: lock not acquired", s.path)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []listing.Listing{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading pinned listings: %w", err)
	}

	items := []listing.Listing{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding pinned listings %s: %w", s.path, err)
	}
	for i := range items {
		items[i].Pinned = true
	}
	return items, nil
}

// Save replaces the pinned listings. The file is written to a temporary sibling and renamed into place.
func (s *FileStore) Save(ctx context.Context, items []listing.Listing) error {
	if items == nil {
		items = []listing.Listing{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding pinned listings: %w", err)
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("locking %s: %w", s.path, err)
	}
	if !locked {
		return fmt.Errorf("locking %s: lock not acquired", s.path)
	}
	defer s.lock.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pinned-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing pinned listings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
