// Package memory provides in-memory implementations of the metadata
// stores, used in tests and as a fallback when no data directory is
// available.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// DocumentStore is an in-memory driven.DocumentStore.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

var _ driven.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]domain.Document)}
}

func (s *DocumentStore) Save(_ context.Context, doc domain.Document) error {
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

func (s *DocumentStore) Get(_ context.Context, tenantID, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok || doc.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *DocumentStore) List(_ context.Context, tenantID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0)
	for _, doc := range s.docs {
		if doc.TenantID == tenantID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

func (s *DocumentStore) Delete(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[id]; ok && doc.TenantID == tenantID {
		delete(s.docs, id)
	}
	return nil
}

// LLMConfigStore is an in-memory driven.LLMConfigStore.
type LLMConfigStore struct {
	mu      sync.RWMutex
	configs map[string]domain.TenantLLMConfig
}

var _ driven.LLMConfigStore = (*LLMConfigStore)(nil)

// NewLLMConfigStore creates an empty in-memory config store.
func NewLLMConfigStore() *LLMConfigStore {
	return &LLMConfigStore{configs: make(map[string]domain.TenantLLMConfig)}
}

func (s *LLMConfigStore) Get(_ context.Context, tenantID string) (*domain.TenantLLMConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cfg, nil
}

func (s *LLMConfigStore) Save(_ context.Context, cfg domain.TenantLLMConfig) error {
	cfg.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.TenantID] = cfg
	return nil
}

// analysisKey is the cache key: one entry per (document, kind, tenant).
type analysisKey struct {
	documentID string
	kind       domain.AnalysisKind
	tenantID   string
}

// AnalysisStore is an in-memory driven.AnalysisStore.
type AnalysisStore struct {
	mu      sync.RWMutex
	records map[analysisKey]domain.AnalysisRecord
}

var _ driven.AnalysisStore = (*AnalysisStore)(nil)

// NewAnalysisStore creates an empty in-memory analysis cache.
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{records: make(map[analysisKey]domain.AnalysisRecord)}
}

func (s *AnalysisStore) Get(_ context.Context, tenantID, documentID string, kind domain.AnalysisKind) (*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[analysisKey{documentID, kind, tenantID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (s *AnalysisStore) Save(_ context.Context, rec domain.AnalysisRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[analysisKey{rec.DocumentID, rec.Kind, rec.TenantID}] = rec
	return nil
}

func (s *AnalysisStore) DeleteByDocument(_ context.Context, tenantID, documentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key := range s.records {
		if key.tenantID == tenantID && key.documentID == documentID {
			delete(s.records, key)
			deleted++
		}
	}
	return deleted, nil
}
