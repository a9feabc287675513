// Package plaintext extracts text from plain-text files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// Extractor reads the whole file as a single page.
type Extractor struct{}

// NewExtractor creates a plain-text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md"}
}

// Extract returns the file content as one unnumbered page. An empty or
// whitespace-only file yields no pages.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return []domain.Page{}, nil
	}

	return []domain.Page{{Text: text}}, nil
}
