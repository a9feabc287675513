package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vecmem "github.com/lexvault-labs/lexvault/internal/adapters/driven/vector/memory"
	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

func seedIndex(t *testing.T, index driven.VectorIndex, tenantID string) {
	t.Helper()
	records := []driven.VectorRecord{
		{
			ID:        "doc-1_chunk_0",
			TenantID:  tenantID,
			Text:      "The tenant shall pay rent monthly.",
			Embedding: []float32{1, 0, 0},
			Metadata: driven.ChunkMetadata{
				DocumentID: "doc-1", DocumentName: "lease.txt", Page: 2, Paragraph: 1, ChunkIndex: 0,
			},
		},
		{
			ID:        "doc-1_chunk_1",
			TenantID:  tenantID,
			Text:      "Either party may terminate with notice.",
			Embedding: []float32{0, 1, 0},
			Metadata: driven.ChunkMetadata{
				DocumentID: "doc-1", DocumentName: "lease.txt", Page: 3, Paragraph: 2, ChunkIndex: 1,
			},
		},
		{
			ID:        "doc-2_chunk_0",
			TenantID:  tenantID,
			Text:      "Confidential information must be protected.",
			Embedding: []float32{-1, 0, 0},
			Metadata: driven.ChunkMetadata{
				DocumentID: "doc-2", DocumentName: "nda.txt", Page: 1, Paragraph: 1, ChunkIndex: 0,
			},
		},
	}
	_, err := index.Upsert(context.Background(), records)
	require.NoError(t, err)
}

func TestSearchOrdersByScore(t *testing.T) {
	index := vecmem.NewIndex()
	seedIndex(t, index, "acme")

	embedder := &fakeEmbedder{
		vectors:  map[string][]float32{"rent": {1, 0, 0}},
		fallback: []float32{0, 0, 1},
	}
	svc := NewSearchService(embedder, index)

	citations, err := svc.Search(context.Background(), "acme", "rent", 3)
	require.NoError(t, err)
	require.Len(t, citations, 3)

	// Identical vector: distance 0, score 1. Orthogonal: distance 1,
	// score 0.5. Opposite: distance 2, score 0.
	assert.Equal(t, "doc-1", citations[0].DocumentID)
	assert.Equal(t, 1.0, citations[0].Score)
	assert.Equal(t, 0.5, citations[1].Score)
	assert.Equal(t, 0.0, citations[2].Score)

	assert.Equal(t, "lease.txt", citations[0].DocumentName)
	assert.Equal(t, 2, citations[0].Page)
	assert.Equal(t, 1, citations[0].Paragraph)
	assert.Equal(t, "The tenant shall pay rent monthly.", citations[0].Text)
}

func TestSearchEmptyIndexReturnsEmptySlice(t *testing.T) {
	index := vecmem.NewIndex()
	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	svc := NewSearchService(embedder, index)

	citations, err := svc.Search(context.Background(), "acme", "anything", 5)
	require.NoError(t, err)
	assert.NotNil(t, citations)
	assert.Empty(t, citations)
}

func TestSearchBlankQuerySkipsEmbedding(t *testing.T) {
	index := vecmem.NewIndex()
	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	svc := NewSearchService(embedder, index)

	citations, err := svc.Search(context.Background(), "acme", "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, citations)
	assert.Equal(t, 0, embedder.callCount())
}

func TestSearchTenantIsolation(t *testing.T) {
	index := vecmem.NewIndex()
	seedIndex(t, index, "acme")

	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	svc := NewSearchService(embedder, index)

	citations, err := svc.Search(context.Background(), "globex", "rent", 5)
	require.NoError(t, err)
	assert.Empty(t, citations)
}

func TestSearchDefaultTopK(t *testing.T) {
	index := vecmem.NewIndex()
	seedIndex(t, index, "acme")

	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	svc := NewSearchService(embedder, index)

	citations, err := svc.Search(context.Background(), "acme", "rent", 0)
	require.NoError(t, err)
	assert.Len(t, citations, 3, "topK <= 0 falls back to the default")
}

func TestSearchEmbeddingErrorPropagates(t *testing.T) {
	index := vecmem.NewIndex()
	embedder := &fakeEmbedder{err: assert.AnError, fallback: []float32{1}}
	svc := NewSearchService(embedder, index)

	_, err := svc.Search(context.Background(), "acme", "query", 5)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSearchClauseUnknownID(t *testing.T) {
	svc := NewSearchService(&fakeEmbedder{fallback: []float32{1}}, vecmem.NewIndex())

	_, _, err := svc.SearchClause(context.Background(), "acme", "boilerplate", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchClauseMergesAndDeduplicates(t *testing.T) {
	index := vecmem.NewIndex()
	seedIndex(t, index, "acme")

	// Every clause query embeds to the same vector, so each one
	// retrieves the same chunks. The merge keeps each chunk once.
	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	svc := NewSearchService(embedder, index)

	clause, citations, err := svc.SearchClause(context.Background(), "acme", "indemnification", 3)
	require.NoError(t, err)
	require.NotNil(t, clause)
	assert.Equal(t, "Indemnification", clause.Name)

	require.Len(t, citations, 3)
	texts := make(map[string]bool)
	for _, c := range citations {
		assert.False(t, texts[c.Text], "chunk %q appears twice", c.Text)
		texts[c.Text] = true
	}
	// Best first across all merged queries.
	for i := 1; i < len(citations); i++ {
		assert.GreaterOrEqual(t, citations[i-1].Score, citations[i].Score)
	}
}

func TestSearchClauseCapsResults(t *testing.T) {
	index := vecmem.NewIndex()
	seedIndex(t, index, "acme")

	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	svc := NewSearchService(embedder, index)

	_, citations, err := svc.SearchClause(context.Background(), "acme", "termination", 2)
	require.NoError(t, err)
	assert.Len(t, citations, 2)
}

func TestSearchClauseEmbeddingErrorPropagates(t *testing.T) {
	embedder := &fakeEmbedder{err: assert.AnError, fallback: []float32{1}}
	svc := NewSearchService(embedder, vecmem.NewIndex())

	_, _, err := svc.SearchClause(context.Background(), "acme", "notices", 5)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDistanceToScore(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"identical", 0, 1},
		{"orthogonal", 1, 0.5},
		{"opposite", 2, 0},
		{"rounds to four decimals", 0.33333, 0.8333},
		{"clamped below zero", 2.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DistanceToScore(tt.distance))
		})
	}
}
