package blob

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory blob store for local development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte // bucket/path -> data

	// UploadErr, when set, is returned by every Upload call
	UploadErr error
	// UploadCalls counts Upload invocations
	UploadCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Upload stores the bytes under bucket/path
func (s *MemoryStore) Upload(_ context.Context, bucket, path string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UploadCalls++
	if s.UploadErr != nil {
		return s.UploadErr
	}
	s.objects[bucket+"/"+path] = data
	return nil
}

// PublicURL returns a stable fake URL for an object
func (s *MemoryStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("memory://%s/%s", bucket, path)
}

// Object returns an uploaded object's bytes
func (s *MemoryStore) Object(bucket, path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[bucket+"/"+path]
	return data, ok
}

// Len returns the number of stored objects
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
