// Package pdf extracts text from PDF documents using the pdftotext
// tool from poppler-utils.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor converts PDFs to text pages via pdftotext.
type Extractor struct {
	runner CommandRunner
}

// NewExtractor creates a PDF extractor using the real pdftotext binary.
func NewExtractor() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extensions returns the extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract runs pdftotext and splits its output on form feeds, one per
// page. Pages keep their 1-based position even when earlier pages are
// blank.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	if err := CheckAvailable(); err != nil {
		return nil, err
	}

	output, err := e.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	return splitPages(output), nil
}

// splitPages splits pdftotext output on form feeds. pdftotext
// terminates every page with a form feed, so the final chunk is empty.
func splitPages(output []byte) []domain.Page {
	chunks := strings.Split(string(output), "\f")
	pages := make([]domain.Page, 0, len(chunks))
	for i, chunk := range chunks {
		text := strings.TrimSpace(chunk)
		if text == "" {
			continue
		}
		pages = append(pages, domain.Page{Text: text, Number: i + 1})
	}
	return pages
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific install guidance for
// the pdftotext dependency.
func InstallInstructions() string {
	return `pdftotext is required for PDF extraction. Install poppler:

  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}
