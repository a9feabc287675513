package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driving"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultTopK is the result count used when the caller passes none.
const DefaultTopK = 5

// SearchService retrieves the chunks most similar to a query within a
// tenant's index.
type SearchService struct {
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
}

// NewSearchService creates a new retrieval service.
func NewSearchService(embeddingService driven.EmbeddingService, vectorIndex driven.VectorIndex) *SearchService {
	return &SearchService{
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
	}
}

// Search embeds the query, queries the tenant's index and converts hits
// to citations ordered best first. An empty index or a blank query
// yields an empty slice, never an error.
func (s *SearchService) Search(ctx context.Context, tenantID, query string, topK int) ([]domain.Citation, error) {
	logger.Section("Semantic Search")
	logger.Debug("Tenant: %s, query: %q", tenantID, query)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Citation{}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	hits, err := s.vectorIndex.Query(ctx, tenantID, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	logger.Debug("Index returned %d hits", len(hits))

	citations := make([]domain.Citation, len(hits))
	for i, hit := range hits {
		citations[i] = domain.Citation{
			DocumentID:   hit.Metadata.DocumentID,
			DocumentName: hit.Metadata.DocumentName,
			Page:         hit.Metadata.Page,
			Paragraph:    hit.Metadata.Paragraph,
			Text:         hit.Text,
			Score:        DistanceToScore(hit.Distance),
		}
	}

	// The index orders by raw distance; re-rank by the public score so
	// rounding ties break deterministically for callers.
	sort.SliceStable(citations, func(i, j int) bool {
		return citations[i].Score > citations[j].Score
	})

	return citations, nil
}

// SearchClause runs every pre-built query of a clause category and
// merges the hits, deduplicated and best first. Multiple queries often
// land on the same chunk; the first occurrence wins.
func (s *SearchService) SearchClause(ctx context.Context, tenantID, clauseID string, topK int) (*domain.ClauseCategory, []domain.Citation, error) {
	clause := domain.ClauseByID(clauseID)
	if clause == nil {
		return nil, nil, fmt.Errorf("unknown clause type %q: %w", clauseID, domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Section("Clause Search")
	logger.Debug("Tenant: %s, clause: %s (%d queries)", tenantID, clause.ID, len(clause.Queries))

	seen := make(map[string]bool)
	var merged []domain.Citation
	for _, query := range clause.Queries {
		citations, err := s.Search(ctx, tenantID, query, topK)
		if err != nil {
			return nil, nil, fmt.Errorf("searching clause query %q: %w", query, err)
		}
		for _, c := range citations {
			key := cutAtRune(c.Text, 100)
			if !seen[key] {
				seen[key] = true
				merged = append(merged, c)
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > topK {
		merged = merged[:topK]
	}
	return clause, merged, nil
}

// DistanceToScore converts a cosine distance in [0, 2] to the public
// relevance score: 1 identical, 0 opposite, rounded to 4 decimals.
func DistanceToScore(distance float64) float64 {
	score := 1 - distance/2
	if score < 0 {
		score = 0
	}
	return math.Round(score*10000) / 10000
}
