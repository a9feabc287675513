package driving

import (
	"context"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// DocumentService manages the document lifecycle: upload, background
// processing, inspection and deletion.
type DocumentService interface {
	// Upload registers the file and starts background processing. The
	// returned document is in StatusPending.
	Upload(ctx context.Context, tenantID, path string) (*domain.Document, error)

	// Get returns a document record within the tenant scope.
	Get(ctx context.Context, tenantID, id string) (*domain.Document, error)

	// List returns the tenant's documents, newest upload first.
	List(ctx context.Context, tenantID string) ([]domain.Document, error)

	// Delete removes the document, its vector records, its cached
	// analyses and the stored file.
	Delete(ctx context.Context, tenantID, id string) error

	// Content re-extracts and returns the document's pages.
	Content(ctx context.Context, tenantID, id string) ([]domain.Page, error)

	// Text re-extracts the document and joins its pages into one string.
	Text(ctx context.Context, tenantID, id string) (string, error)
}
