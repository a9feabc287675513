// Package memory provides an in-memory vector index using brute-force
// cosine distance. Used in tests and for small zero-configuration setups.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a mutex-guarded in-memory vector index.
type Index struct {
	mu      sync.RWMutex
	records map[string]driven.VectorRecord
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{
		records: make(map[string]driven.VectorRecord),
	}
}

// Upsert stores records, overwriting any existing record with the same ID.
func (x *Index) Upsert(_ context.Context, records []driven.VectorRecord) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, rec := range records {
		x.records[rec.ID] = rec
	}
	return len(records), nil
}

// Query returns the tenant's topK nearest records by cosine distance.
func (x *Index) Query(_ context.Context, tenantID string, embedding []float32, topK int) ([]driven.VectorHit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var hits []driven.VectorHit
	for _, rec := range x.records {
		if rec.TenantID != tenantID {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ID:       rec.ID,
			Text:     rec.Text,
			Metadata: rec.Metadata,
			Distance: CosineDistance(embedding, rec.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if topK < 0 {
		topK = 0
	}
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

// DeleteByDocument removes all of the document's records for the tenant.
func (x *Index) DeleteByDocument(_ context.Context, tenantID, documentID string) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	deleted := 0
	for id, rec := range x.records {
		if rec.TenantID == tenantID && rec.Metadata.DocumentID == documentID {
			delete(x.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Count returns the tenant's record count.
func (x *Index) Count(_ context.Context, tenantID string) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	count := 0
	for _, rec := range x.records {
		if rec.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// CosineDistance returns 1 - cos(a, b), a distance in [0, 2] where 0 is
// identical and 2 is opposite. Mismatched or zero-magnitude vectors get
// the neutral distance 1.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp against float drift before converting to a distance.
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return 1 - cos
}
