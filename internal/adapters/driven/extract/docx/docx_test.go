package docx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDocx builds a minimal DOCX archive with the given document.xml body.
func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "contract.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return path
}

func TestExtensions(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, []string{".docx"}, e.Extensions())
}

func TestExtract(t *testing.T) {
	xml := `<?xml version="1.0"?>
<document xmlns="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>Section 1. </t></r><r><t>Definitions.</t></r></p>
    <p><r><t>The Tenant shall pay rent monthly.</t></r></p>
  </body>
</document>`

	e := NewExtractor()
	pages, err := e.Extract(context.Background(), writeDocx(t, xml))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Section 1. Definitions.\nThe Tenant shall pay rent monthly.", pages[0].Text)
	assert.Equal(t, 0, pages[0].Number)
}

func TestExtractEmptyBody(t *testing.T) {
	xml := `<?xml version="1.0"?><document><body></body></document>`

	e := NewExtractor()
	pages, err := e.Extract(context.Background(), writeDocx(t, xml))
	require.NoError(t, err)
	assert.NotNil(t, pages)
	assert.Empty(t, pages)
}

func TestExtractNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o600))

	e := NewExtractor()
	pages, err := e.Extract(context.Background(), path)
	assert.Error(t, err)
	assert.Nil(t, pages)
}

func TestParseDocumentXMLMalformed(t *testing.T) {
	assert.Equal(t, "", parseDocumentXML([]byte("<document><body>")))
}
