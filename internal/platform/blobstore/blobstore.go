// Package blobstore stores uploaded document content for the clinic. It
// defines the Store interface, a filesystem implementation backing the
// uploads directory, and an in-memory implementation for tests. Attachment
// metadata lives in the database; a Store only holds bytes under a key.
package blobstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrNotFound     = errors.New("blob not found")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	ErrInvalidKey   = errors.New("invalid blob key")
)

// SaveResult describes a stored blob.
type SaveResult struct {
	Size int64
	Hash string // hex SHA-256 of the content
}

// Store is the contract for blob storage backends. Keys are opaque
// identifiers chosen by the caller; a key maps to exactly one blob.
type Store interface {
	Save(ctx context.Context, key string, content io.Reader) (*SaveResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// validKey rejects keys that could escape the storage root or collide with
// path separators. Callers generate keys from UUIDs plus a file extension,
// so anything else is a programming error or an attack.
func validKey(key string) bool {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return false
	}
	return true
}

// ---------------------------------------------------------------------------
// Filesystem implementation
// ---------------------------------------------------------------------------

// FSStore stores blobs as files under a root directory.
type FSStore struct {
	root    string
	maxSize int64
}

// NewFSStore creates the root directory if needed and returns a store over
// it. maxSize caps individual blob sizes; zero means no cap.
func NewFSStore(root string, maxSize int64) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", root, err)
	}
	return &FSStore{root: root, maxSize: maxSize}, nil
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.root, key)
}

// Save writes the content to a file named by key, hashing as it copies.
// A partial file left by a failed or oversized write is removed.
func (s *FSStore) Save(_ context.Context, key string, content io.Reader) (*SaveResult, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}

	f, err := os.OpenFile(s.path(key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("create blob file: %w", err)
	}

	h := sha256.New()
	r := io.Reader(content)
	if s.maxSize > 0 {
		r = io.LimitReader(content, s.maxSize+1)
	}

	n, err := io.Copy(io.MultiWriter(f, h), r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(s.path(key))
		return nil, fmt.Errorf("write blob: %w", err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		os.Remove(s.path(key))
		return nil, ErrFileTooLarge
	}

	return &SaveResult{Size: n, Hash: fmt.Sprintf("%x", h.Sum(nil))}, nil
}

func (s *FSStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

func (s *FSStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

// MemStore is a thread-safe, in-memory Store for tests and development.
type MemStore struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	maxSize int64
}

// NewMemStore returns a ready-to-use MemStore. maxSize caps individual blob
// sizes; zero means no cap.
func NewMemStore(maxSize int64) *MemStore {
	return &MemStore{blobs: make(map[string][]byte), maxSize: maxSize}
}

func (s *MemStore) Save(_ context.Context, key string, content io.Reader) (*SaveResult, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}

	r := io.Reader(content)
	if s.maxSize > 0 {
		r = io.LimitReader(content, s.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read blob content: %w", err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	h := sha256.Sum256(data)

	s.mu.Lock()
	s.blobs[key] = data
	s.mu.Unlock()

	return &SaveResult{Size: int64(len(data)), Hash: fmt.Sprintf("%x", h)}, nil
}

func (s *MemStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	s.mu.RLock()
	data, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, key)
	return nil
}
