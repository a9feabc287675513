package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestExtensions(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, []string{".pdf"}, e.Extensions())
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []domain.Page
	}{
		{
			name:     "two pages",
			output:   "First page text.\f Second page text.\n\f",
			expected: []domain.Page{{Text: "First page text.", Number: 1}, {Text: "Second page text.", Number: 2}},
		},
		{
			name:     "blank page keeps numbering",
			output:   "Cover\f\fBody text\f",
			expected: []domain.Page{{Text: "Cover", Number: 1}, {Text: "Body text", Number: 3}},
		},
		{
			name:     "empty output",
			output:   "",
			expected: []domain.Page{},
		},
		{
			name:     "no form feed",
			output:   "Single page without trailing feed",
			expected: []domain.Page{{Text: "Single page without trailing feed", Number: 1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, splitPages([]byte(tc.output)))
		})
	}
}

func TestExtractWithMockRunner(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not in PATH, skipping mock runner test")
	}

	e := NewWithRunner(&mockRunner{output: []byte("Lease Agreement\n\nTerm: 12 months.\f")})

	pages, err := e.Extract(context.Background(), "/tmp/lease.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	assert.Contains(t, pages[0].Text, "Term: 12 months.")
}

func TestExtractRunnerError(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not in PATH, skipping runner error test")
	}

	e := NewWithRunner(&mockRunner{err: errors.New("pdftotext crashed")})

	pages, err := e.Extract(context.Background(), "/tmp/lease.pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed")
	assert.Nil(t, pages)
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}
