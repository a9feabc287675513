// Package file persists CLI settings as a TOML file in the lexvault
// config directory. Settings cover wiring only; per-tenant provider
// chains live in the LLM config store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/lexvault-labs/lexvault/internal/chunker"
)

// Defaults applied to fields missing from the settings file.
const (
	DefaultTenant            = "default"
	DefaultEmbeddingProvider = "ollama"
	DefaultEmbeddingBaseURL  = "http://localhost:11434"
	DefaultEmbeddingModel    = "nomic-embed-text"
)

// Settings is the on-disk configuration.
type Settings struct {
	// DataDir holds the metadata database, the vector index, and
	// uploaded files.
	DataDir string `toml:"data_dir"`

	// Tenant is the tenant used when --tenant is not given.
	Tenant string `toml:"tenant"`

	Chunker   ChunkerSettings   `toml:"chunker"`
	Embedding EmbeddingSettings `toml:"embedding"`
}

// ChunkerSettings controls the sliding word window.
type ChunkerSettings struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// EmbeddingSettings selects and configures the embedding backend.
type EmbeddingSettings struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
	// APIKey is read from the environment when empty.
	APIKey     string `toml:"api_key"`
	Dimensions int    `toml:"dimensions"`
}

// Store loads and saves Settings from config.toml.
type Store struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewStore creates a settings store rooted at configDir. An empty
// configDir defaults to ~/.lexvault. Missing files are not an error;
// defaults apply.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configDir = filepath.Join(home, ".lexvault")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns a copy of the current settings with defaults applied.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to the settings and persists the result.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.settings)
	applyDefaults(&s.settings, filepath.Dir(s.filePath))
	return s.save()
}

// Load reads config.toml. A missing file yields pure defaults.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var loaded Settings
	data, err := os.ReadFile(s.filePath)
	switch {
	case os.IsNotExist(err):
		// First run, start from defaults.
	case err != nil:
		return fmt.Errorf("reading %s: %w", s.filePath, err)
	default:
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing %s: %w", s.filePath, err)
		}
	}

	applyDefaults(&loaded, filepath.Dir(s.filePath))
	s.settings = loaded
	return nil
}

// Save persists the current settings to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the TOML file (caller must hold the lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.filePath
}

func applyDefaults(settings *Settings, configDir string) {
	if settings.DataDir == "" {
		settings.DataDir = filepath.Join(configDir, "data")
	}
	if settings.Tenant == "" {
		settings.Tenant = DefaultTenant
	}
	if settings.Chunker.Size == 0 {
		settings.Chunker.Size = chunker.DefaultChunkSize
	}
	if settings.Chunker.Overlap == 0 {
		settings.Chunker.Overlap = chunker.DefaultOverlap
	}
	if settings.Embedding.Provider == "" {
		settings.Embedding.Provider = DefaultEmbeddingProvider
	}
	if settings.Embedding.BaseURL == "" {
		settings.Embedding.BaseURL = DefaultEmbeddingBaseURL
	}
	if settings.Embedding.Model == "" {
		settings.Embedding.Model = DefaultEmbeddingModel
	}
}
