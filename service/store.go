package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/light-87/Lead-V/model"
)

const memoryScheme = "memory://"

type memoryDoc struct {
	data       []byte
	uploadedAt time.Time
}

// MemoryStore is an in-memory BlobStore, used when no bucket is configured.
// Documents do not survive a restart.
type MemoryStore struct {
	docs          map[string]*memoryDoc
	mu            sync.RWMutex
	maxDocuments  int // Maximum evictable documents to keep, 0 = unlimited
	evictPrefixes []string
	now           func() time.Time
}

// NewMemoryStore caps the documents under evictPrefixes at maxDocuments.
// Documents outside those prefixes are never evicted. With no prefixes every
// document counts toward the cap.
func NewMemoryStore(maxDocuments int, evictPrefixes ...string) *MemoryStore {
	if maxDocuments < 0 {
		maxDocuments = 0
	}
	slog.Info("memory store initialized", "max_documents", maxDocuments, "evict_prefixes", evictPrefixes)
	return &MemoryStore{
		docs:          make(map[string]*memoryDoc),
		maxDocuments:  maxDocuments,
		evictPrefixes: evictPrefixes,
		now:           time.Now,
	}
}

func (s *MemoryStore) evictable(key string) bool {
	if len(s.evictPrefixes) == 0 {
		return true
	}
	for _, prefix := range s.evictPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) PutJSON(_ context.Context, key string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = &memoryDoc{data: data, uploadedAt: s.now()}
	s.cleanupIfNeeded()

	return memoryScheme + key, nil
}

// List returns the documents under prefix, newest first.
func (s *MemoryStore) List(_ context.Context, prefix string) ([]model.BlobInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.docs))
	for key := range s.docs {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := s.docs[keys[i]], s.docs[keys[j]]
		if a.uploadedAt.Equal(b.uploadedAt) {
			return keys[i] > keys[j]
		}
		return a.uploadedAt.After(b.uploadedAt)
	})

	blobs := make([]model.BlobInfo, 0, len(keys))
	for _, key := range keys {
		doc := s.docs[key]
		blobs = append(blobs, model.BlobInfo{
			URL:        memoryScheme + key,
			Pathname:   key,
			Size:       int64(len(doc.data)),
			UploadedAt: doc.uploadedAt.UTC().Format(time.RFC3339),
		})
	}
	return blobs, nil
}

func (s *MemoryStore) GetJSON(_ context.Context, keyOrURL string, v any) error {
	key := strings.TrimPrefix(keyOrURL, memoryScheme)

	s.mu.RLock()
	doc, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if err := json.Unmarshal(doc.data, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keyOrURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, strings.TrimPrefix(keyOrURL, memoryScheme))
	return nil
}

// Count returns the number of documents in the store
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// cleanupIfNeeded removes the oldest evictable documents beyond
// maxDocuments.
// Must be called with lock held
func (s *MemoryStore) cleanupIfNeeded() {
	if s.maxDocuments <= 0 {
		return
	}

	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		if s.evictable(k) {
			keys = append(keys, k)
		}
	}
	if len(keys) <= s.maxDocuments {
		return
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.docs[keys[i]].uploadedAt.Before(s.docs[keys[j]].uploadedAt)
	})

	removeCount := len(keys) - s.maxDocuments
	for _, k := range keys[:removeCount] {
		slog.Info("auto-cleaning old document",
			"key", k,
			"uploaded_at", s.docs[k].uploadedAt,
		)
		delete(s.docs, k)
	}
}
