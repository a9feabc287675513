package driven

import (
	"context"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// DocumentStore persists document records. Reads and deletes are
// tenant-scoped: a document belonging to another tenant behaves as absent.
type DocumentStore interface {
	// Save creates or replaces a document record.
	Save(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by ID within the tenant scope.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, tenantID, id string) (*domain.Document, error)

	// List returns all of the tenant's documents, newest upload first.
	List(ctx context.Context, tenantID string) ([]domain.Document, error)

	// Delete removes a document record within the tenant scope.
	Delete(ctx context.Context, tenantID, id string) error
}

// LLMConfigStore persists per-tenant provider configuration.
type LLMConfigStore interface {
	// Get retrieves a tenant's configuration.
	// Returns domain.ErrNotFound when the tenant has none stored.
	Get(ctx context.Context, tenantID string) (*domain.TenantLLMConfig, error)

	// Save creates or replaces a tenant's configuration.
	Save(ctx context.Context, cfg domain.TenantLLMConfig) error
}

// AnalysisStore is the keyed cache of structured analysis results.
type AnalysisStore interface {
	// Get retrieves the cached record for (documentID, kind, tenantID).
	// Returns domain.ErrNotFound on a cache miss.
	Get(ctx context.Context, tenantID, documentID string, kind domain.AnalysisKind) (*domain.AnalysisRecord, error)

	// Save upserts a record, replacing any prior result for the same key.
	Save(ctx context.Context, rec domain.AnalysisRecord) error

	// DeleteByDocument removes every cached analysis for the document and
	// returns how many were removed.
	DeleteByDocument(ctx context.Context, tenantID, documentID string) (int, error)
}
