package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/adapters/driven/config/file"
	"github.com/lexvault-labs/lexvault/internal/adapters/driven/crypto/aesgcm"
	ollamaembed "github.com/lexvault-labs/lexvault/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/lexvault-labs/lexvault/internal/adapters/driven/embedding/openai"
	"github.com/lexvault-labs/lexvault/internal/adapters/driven/extract"
	"github.com/lexvault-labs/lexvault/internal/adapters/driven/extract/docx"
	"github.com/lexvault-labs/lexvault/internal/adapters/driven/extract/pdf"
	"github.com/lexvault-labs/lexvault/internal/adapters/driven/extract/plaintext"
	storesqlite "github.com/lexvault-labs/lexvault/internal/adapters/driven/storage/sqlite"
	vecsqlite "github.com/lexvault-labs/lexvault/internal/adapters/driven/vector/sqlite"
	"github.com/lexvault-labs/lexvault/internal/chunker"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
	"github.com/lexvault-labs/lexvault/internal/core/services"
)

// wireServices builds the production dependency graph from the config
// file and the environment.
func wireServices() error {
	settingsStore, err := file.NewStore(flagConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	settings := settingsStore.Settings()

	if flagTenant == "" {
		flagTenant = settings.Tenant
	}

	store, err := storesqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}

	index, err := vecsqlite.NewIndex(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening vector index: %w", err)
	}

	embedder, err := buildEmbedder(settings.Embedding)
	if err != nil {
		return err
	}

	secret, err := encryptionSecret(filepath.Dir(settingsStore.Path()))
	if err != nil {
		return fmt.Errorf("resolving encryption key: %w", err)
	}
	cipher, err := aesgcm.New(secret)
	if err != nil {
		return err
	}

	chnk, err := chunker.New(
		chunker.WithChunkSize(settings.Chunker.Size),
		chunker.WithOverlap(settings.Chunker.Overlap),
	)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	registry := extract.NewRegistry(
		plaintext.NewExtractor(),
		docx.NewExtractor(),
		pdf.NewExtractor(),
	)

	manager := services.NewLLMManager(store.LLMConfigStore(), cipher, providerDefaultsFromEnv())

	docs := services.NewDocumentService(
		store.DocumentStore(),
		store.AnalysisStore(),
		index,
		embedder,
		registry,
		chnk,
		settings.DataDir,
	)
	analysis := services.NewAnalysisService(store.DocumentStore(), store.AnalysisStore(), docs, manager)
	docs.SetSummarizer(analysis)

	search := services.NewSearchService(embedder, index)
	answer := services.NewAnswerService(search, manager, analysis)

	SetServices(&Services{
		Documents: docs,
		Search:    search,
		Answer:    answer,
		Analysis:  analysis,
		Providers: manager,
		Extractor: registry,
		Waiter:    docs,
	})
	return nil
}

// buildEmbedder selects the embedding backend from settings.
func buildEmbedder(cfg file.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil

	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// providerDefaultsFromEnv reads process-level provider settings. Tenant
// configuration stored through `providers set` overrides these.
func providerDefaultsFromEnv() services.ProviderDefaults {
	return services.ProviderDefaults{
		OllamaBaseURL:   os.Getenv("OLLAMA_BASE_URL"),
		OllamaModel:     os.Getenv("OLLAMA_MODEL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		AzureAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT"),
	}
}

// encryptionSecret resolves the credential-encryption secret: the
// LEXVAULT_ENCRYPTION_KEY environment variable when set, otherwise a
// per-installation key file generated on first use.
func encryptionSecret(configDir string) (string, error) {
	if secret := os.Getenv("LEXVAULT_ENCRYPTION_KEY"); secret != "" {
		return secret, nil
	}

	keyPath := filepath.Join(configDir, "secret.key")
	data, err := os.ReadFile(keyPath)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)
	if err := os.WriteFile(keyPath, []byte(secret), 0600); err != nil {
		return "", err
	}
	return secret, nil
}
