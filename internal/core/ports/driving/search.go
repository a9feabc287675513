package driving

import (
	"context"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// SearchService provides tenant-scoped semantic retrieval.
type SearchService interface {
	// Search embeds the query and returns the topK nearest chunks as
	// citations, best first. An empty index yields an empty slice.
	Search(ctx context.Context, tenantID, query string, topK int) ([]domain.Citation, error)

	// SearchClause runs the pre-built queries of a clause category and
	// returns the category with the merged, deduplicated hits.
	SearchClause(ctx context.Context, tenantID, clauseID string, topK int) (*domain.ClauseCategory, []domain.Citation, error)
}
