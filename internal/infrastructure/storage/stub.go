package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StubObjectStorage is an in-memory ObjectStorage for tests and deployments
// with object storage disabled. URLs it produces are not fetchable.
type StubObjectStorage struct {
	mu      sync.Mutex
	deleted []string
}

var _ ObjectStorage = (*StubObjectStorage)(nil)

// NewStubObjectStorage creates a new stub storage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{}
}

// GenerateUploadURL returns a fake upload URL for the key
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return fmt.Sprintf("https://storage.invalid/upload/%s", storageKey), time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL returns a fake download URL for the key
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return fmt.Sprintf("https://storage.invalid/download/%s", storageKey), time.Now().Add(expiresIn), nil
}

// DeleteObject records the deletion
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, storageKey)
	return nil
}

// Deleted returns the keys deleted so far
func (s *StubObjectStorage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.deleted))
	copy(out, s.deleted)
	return out
}
