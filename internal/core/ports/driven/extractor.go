package driven

import (
	"context"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// TextExtractor turns a stored source file into ordered pages of text.
// Called once per document during processing; analyses that need full text
// re-run extraction on read.
type TextExtractor interface {
	// Extract returns the file's pages in document order. Unknown file
	// types fail with domain.ErrUnsupportedType; an empty file yields an
	// empty slice, not an error.
	Extract(ctx context.Context, path string) ([]domain.Page, error)

	// Supports reports whether the file's type can be extracted, so
	// uploads can be rejected before any work is done.
	Supports(path string) bool
}
