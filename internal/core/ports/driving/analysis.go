package driving

import (
	"context"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// AnalysisService provides structured document analyses backed by the
// per-tenant analysis cache.
type AnalysisService interface {
	// Analyze returns the structured analysis of the given kind,
	// serving from cache unless forceRefresh is set.
	Analyze(ctx context.Context, tenantID, documentID string, kind domain.AnalysisKind, forceRefresh bool) (*domain.AnalysisRecord, error)

	// Clear drops every cached analysis for the document and returns
	// how many were removed.
	Clear(ctx context.Context, tenantID, documentID string) (int, error)

	// Compare contrasts the provisions of two documents. Results are
	// not cached.
	Compare(ctx context.Context, tenantID, documentIDA, documentIDB string) (map[string]any, error)

	// ExpandQuery suggests alternative search queries and related
	// legal terms.
	ExpandQuery(ctx context.Context, tenantID, query string) (map[string]any, error)

	// FollowUps suggests up to three follow-up questions for a Q&A
	// exchange.
	FollowUps(ctx context.Context, tenantID, question, answer string) ([]string, error)

	// KeyTerms extracts the key terms of a ready document and
	// classifies it, by pattern matching alone.
	KeyTerms(ctx context.Context, tenantID, documentID string) (*domain.KeyTermsReport, error)
}
