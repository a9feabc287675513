package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

func record(id, tenantID, docID string, embedding []float32) driven.VectorRecord {
	return driven.VectorRecord{
		ID:        id,
		TenantID:  tenantID,
		Text:      "text for " + id,
		Embedding: embedding,
		Metadata:  driven.ChunkMetadata{DocumentID: docID},
	}
}

func TestUpsertOverwritesSameID(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []driven.VectorRecord{record("d1_chunk_0", "t1", "d1", []float32{1, 0})})
	require.NoError(t, err)
	_, err = idx.Upsert(ctx, []driven.VectorRecord{record("d1_chunk_0", "t1", "d1", []float32{0, 1})})
	require.NoError(t, err)

	count, err := idx.Count(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQueryOrdersByDistance(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []driven.VectorRecord{
		record("d1_chunk_0", "t1", "d1", []float32{1, 0}),
		record("d1_chunk_1", "t1", "d1", []float32{0, 1}),
		record("d1_chunk_2", "t1", "d1", []float32{-1, 0}),
	})
	require.NoError(t, err)

	hits, err := idx.Query(ctx, "t1", []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "d1_chunk_0", hits[0].ID)
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-9)
	assert.Equal(t, "d1_chunk_1", hits[1].ID)
	assert.InDelta(t, 1.0, hits[1].Distance, 1e-9)
	assert.Equal(t, "d1_chunk_2", hits[2].ID)
	assert.InDelta(t, 2.0, hits[2].Distance, 1e-9)
}

func TestQueryClampsTopK(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []driven.VectorRecord{
		record("d1_chunk_0", "t1", "d1", []float32{1, 0}),
	})
	require.NoError(t, err)

	hits, err := idx.Query(ctx, "t1", []float32{1, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestQueryEmptyIndex(t *testing.T) {
	idx := NewIndex()

	hits, err := idx.Query(context.Background(), "t1", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTenantIsolation(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []driven.VectorRecord{
		record("d1_chunk_0", "tenant-a", "d1", []float32{1, 0}),
		record("d2_chunk_0", "tenant-b", "d2", []float32{1, 0}),
	})
	require.NoError(t, err)

	hits, err := idx.Query(ctx, "tenant-a", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "d1_chunk_0", hits[0].ID)

	// Deleting through the wrong tenant removes nothing.
	deleted, err := idx.DeleteByDocument(ctx, "tenant-a", "d2")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	count, err := idx.Count(ctx, "tenant-b")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteByDocumentRemovesOnlyMatching(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []driven.VectorRecord{
		record("d1_chunk_0", "t1", "d1", []float32{1, 0}),
		record("d1_chunk_1", "t1", "d1", []float32{0, 1}),
		record("d2_chunk_0", "t1", "d2", []float32{1, 1}),
	})
	require.NoError(t, err)

	deleted, err := idx.DeleteByDocument(ctx, "t1", "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	count, err := idx.Count(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCosineDistanceEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 2},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 1},
		{"length mismatch", []float32{1}, []float32{1, 0}, 1},
		{"both empty", nil, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineDistance(tt.a, tt.b), 1e-9)
		})
	}
}
