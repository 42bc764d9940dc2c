package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const blobDir = "blobs"

// FSStore persists each blob as a JSON file under basePath, written atomically (tmp + rename).
type FSStore struct {
	mu       sync.RWMutex
	basePath string
}

// NewFSStore creates basePath if needed and returns a store rooted there.
func NewFSStore(basePath string) (*FSStore, error) {
	if basePath == "" {
		return nil, errors.New("fs store: data dir required")
	}
	if err := os.MkdirAll(filepath.Join(basePath, blobDir), 0o755); err != nil {
		return nil, fmt.Errorf("fs store: %w", err)
	}
	return &FSStore{basePath: basePath}, nil
}

// BlobPath is the file holding key. Keys are path-escaped so ids cannot leave the data dir.
func (s *FSStore) BlobPath(key string) string {
	return filepath.Join(s.basePath, blobDir, url.PathEscape(key)+".json")
}

// Get reads the blob for key.
func (s *FSStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.BlobPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes the blob for key and records it in the manifest. Identical content is not rewritten.
func (s *FSStore) Put(ctx context.Context, key string, value []byte) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.BlobPath(key)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, value) {
		return nil
	}
	if err := writeAtomic(target, value); err != nil {
		return err
	}
	return s.updateManifest(func(m *Manifest) {
		m.Keys[key] = time.Now().UTC()
	})
}

// Delete removes the blob for key.
func (s *FSStore) Delete(ctx context.Context, key string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.BlobPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return s.updateManifest(func(m *Manifest) {
		delete(m.Keys, key)
	})
}

// Manifest returns the current manifest.
func (s *FSStore) Manifest() (Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, err := readManifest(s.basePath)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	return m, err
}

// Ping verifies the data dir is still present.
func (s *FSStore) Ping(ctx context.Context) error {
	_ = ctx
	info, err := os.Stat(filepath.Join(s.basePath, blobDir))
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("fs store: %s is not a directory", s.basePath)
	}
	return nil
}

// Close is a no-op.
func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) updateManifest(apply func(*Manifest)) error {
	m, _ := readManifest(s.basePath)
	apply(&m)
	return writeManifest(s.basePath, m)
}
