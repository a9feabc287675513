// Package extract dispatches text extraction to per-format extractors
// by file extension.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractor = (*Registry)(nil)

// PageExtractor extracts ordered pages from one file format.
type PageExtractor interface {
	// Extract returns the file's pages in document order.
	Extract(ctx context.Context, path string) ([]domain.Page, error)

	// Extensions lists the lowercase extensions handled, dot included.
	Extensions() []string
}

// Registry routes extraction by file extension.
type Registry struct {
	byExt map[string]PageExtractor
}

// NewRegistry creates a registry over the given extractors. Later
// extractors win extension conflicts.
func NewRegistry(extractors ...PageExtractor) *Registry {
	r := &Registry{byExt: make(map[string]PageExtractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[ext] = e
		}
	}
	return r
}

// Supports reports whether the file's extension has an extractor.
func (r *Registry) Supports(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extract routes to the extension's extractor. Unknown extensions fail
// with domain.ErrUnsupportedType.
func (r *Registry) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ext, domain.ErrUnsupportedType)
	}
	return extractor.Extract(ctx, path)
}
