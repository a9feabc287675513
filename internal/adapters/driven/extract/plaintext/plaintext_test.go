package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtensions(t *testing.T) {
	e := NewExtractor()
	assert.ElementsMatch(t, []string{".txt", ".md"}, e.Extensions())
}

func TestExtract(t *testing.T) {
	e := NewExtractor()
	path := writeFile(t, "notes.txt", "This agreement is binding.\n\nSigned by both parties.\n")

	pages, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "This agreement is binding.\n\nSigned by both parties.", pages[0].Text)
	assert.Equal(t, 0, pages[0].Number)
}

func TestExtractEmptyFile(t *testing.T) {
	e := NewExtractor()
	path := writeFile(t, "empty.txt", "")

	pages, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, pages)
	assert.Empty(t, pages)
}

func TestExtractWhitespaceOnly(t *testing.T) {
	e := NewExtractor()
	path := writeFile(t, "blank.md", "  \n\t\n")

	pages, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestExtractMissingFile(t *testing.T) {
	e := NewExtractor()

	pages, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Nil(t, pages)
}
