package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexvault-labs/lexvault/internal/chunker"
)

func TestNewStoreDefaults(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, filepath.Join(dir, "data"), settings.DataDir)
	assert.Equal(t, DefaultTenant, settings.Tenant)
	assert.Equal(t, chunker.DefaultChunkSize, settings.Chunker.Size)
	assert.Equal(t, chunker.DefaultOverlap, settings.Chunker.Overlap)
	assert.Equal(t, DefaultEmbeddingProvider, settings.Embedding.Provider)
	assert.Equal(t, DefaultEmbeddingBaseURL, settings.Embedding.BaseURL)
	assert.Equal(t, DefaultEmbeddingModel, settings.Embedding.Model)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestUpdatePersists(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	err = store.Update(func(s *Settings) {
		s.Tenant = "acme-legal"
		s.Chunker.Size = 300
		s.Embedding.Provider = "openai"
		s.Embedding.Model = "text-embedding-3-small"
	})
	require.NoError(t, err)

	reopened, err := NewStore(dir)
	require.NoError(t, err)

	settings := reopened.Settings()
	assert.Equal(t, "acme-legal", settings.Tenant)
	assert.Equal(t, 300, settings.Chunker.Size)
	assert.Equal(t, "openai", settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	// Untouched fields keep their defaults.
	assert.Equal(t, chunker.DefaultOverlap, settings.Chunker.Overlap)
}

func TestLoadExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := `data_dir = "/srv/lexvault"
tenant = "firm-a"

[chunker]
size = 150
overlap = 30

[embedding]
provider = "openai"
base_url = "https://api.openai.com"
model = "text-embedding-3-large"
dimensions = 1024
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, "/srv/lexvault", settings.DataDir)
	assert.Equal(t, "firm-a", settings.Tenant)
	assert.Equal(t, 150, settings.Chunker.Size)
	assert.Equal(t, 30, settings.Chunker.Overlap)
	assert.Equal(t, 1024, settings.Embedding.Dimensions)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0o600))

	_, err := NewStore(dir)
	assert.Error(t, err)
}
