package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexvault-labs/lexvault/internal/adapters/driven/llm/anthropic"
	"github.com/lexvault-labs/lexvault/internal/adapters/driven/llm/ollama"
	"github.com/lexvault-labs/lexvault/internal/adapters/driven/llm/openai"
	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// Attempt records one provider try during chain iteration.
type Attempt struct {
	// Provider is the kind that was tried.
	Provider domain.ProviderKind

	// Model is the model the provider was configured with.
	Model string

	// Err is nil on the succeeding attempt.
	Err error
}

// GenerateResult is a completion plus the audit trail of how the chain
// produced it.
type GenerateResult struct {
	// Text is the completion from the succeeding provider.
	Text string

	// Provider is the kind that produced the text.
	Provider domain.ProviderKind

	// Model is the model that produced the text.
	Model string

	// Attempts lists every provider tried, in chain order.
	Attempts []Attempt
}

// ProviderDefaults holds process-level provider settings. Tenant
// configuration overrides these per field; API keys act as fallbacks
// when a tenant has no usable stored credential.
type ProviderDefaults struct {
	OllamaBaseURL   string
	OllamaModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	AzureAPIKey     string
	AzureEndpoint   string
	AzureDeployment string
}

// ProviderFactory builds a concrete provider for a resolved
// configuration. apiKey is already decrypted. A nil return means the
// provider cannot be constructed and the chain moves on.
type ProviderFactory func(kind domain.ProviderKind, cfg domain.ProviderConfig, apiKey string, defaults ProviderDefaults) driven.LLMProvider

// LLMManager resolves a tenant's provider chain and walks it until one
// provider produces a completion. It holds no mutable state beyond the
// injected dependencies and is safe for concurrent use.
type LLMManager struct {
	configStore driven.LLMConfigStore
	cipher      driven.CredentialCipher
	defaults    ProviderDefaults
	factory     ProviderFactory
}

// NewLLMManager creates a fallback manager over the tenant config store.
func NewLLMManager(configStore driven.LLMConfigStore, cipher driven.CredentialCipher, defaults ProviderDefaults) *LLMManager {
	return &LLMManager{
		configStore: configStore,
		cipher:      cipher,
		defaults:    defaults,
		factory:     buildProvider,
	}
}

// SetProviderFactory overrides provider construction. Used by tests.
func (m *LLMManager) SetProviderFactory(f ProviderFactory) {
	m.factory = f
}

// tenantConfig loads the tenant's stored configuration. Absent or
// unreadable configuration resolves to nil, which selects the default
// chain.
func (m *LLMManager) tenantConfig(ctx context.Context, tenantID string) *domain.TenantLLMConfig {
	if tenantID == "" {
		return nil
	}
	cfg, err := m.configStore.Get(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Loading LLM config for tenant %s failed: %v", tenantID, err)
		}
		return nil
	}
	return cfg
}

// resolveKey produces the usable API key for a provider: the decrypted
// stored credential first, then the process-level default. A stored
// credential that cannot be decrypted counts as absent.
func (m *LLMManager) resolveKey(cfg domain.ProviderConfig, processKey string) string {
	if cfg.APIKey != "" {
		if key, ok := m.cipher.Decrypt(cfg.APIKey); ok && key != "" {
			return key
		}
		logger.Debug("Stored credential is not decryptable, falling back to process key")
	}
	return processKey
}

// processKey returns the process-level fallback key for a kind.
func (m *LLMManager) processKey(kind domain.ProviderKind) string {
	switch kind {
	case domain.ProviderAnthropic:
		return m.defaults.AnthropicAPIKey
	case domain.ProviderOpenAI:
		return m.defaults.OpenAIAPIKey
	case domain.ProviderAzureOpenAI:
		return m.defaults.AzureAPIKey
	default:
		return ""
	}
}

// buildProvider is the default ProviderFactory.
func buildProvider(kind domain.ProviderKind, cfg domain.ProviderConfig, apiKey string, defaults ProviderDefaults) driven.LLMProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch kind {
	case domain.ProviderOllama:
		baseURL := cfg.Endpoint
		if baseURL == "" {
			baseURL = defaults.OllamaBaseURL
		}
		model := cfg.Model
		if model == "" {
			model = defaults.OllamaModel
		}
		return ollama.NewProvider(ollama.Config{
			BaseURL: baseURL,
			Model:   model,
			Timeout: timeout,
		})

	case domain.ProviderAnthropic:
		if apiKey == "" {
			return nil
		}
		model := cfg.Model
		if model == "" {
			model = defaults.AnthropicModel
		}
		provider, err := anthropic.NewProvider(anthropic.Config{
			APIKey:  apiKey,
			Model:   model,
			Timeout: timeout,
		})
		if err != nil {
			return nil
		}
		return provider

	case domain.ProviderOpenAI:
		if apiKey == "" {
			return nil
		}
		model := cfg.Model
		if model == "" {
			model = defaults.OpenAIModel
		}
		provider, err := openai.NewProvider(openai.Config{
			APIKey:  apiKey,
			BaseURL: cfg.Endpoint,
			Model:   model,
			Timeout: timeout,
		})
		if err != nil {
			return nil
		}
		return provider

	case domain.ProviderAzureOpenAI:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = defaults.AzureEndpoint
		}
		deployment := cfg.Deployment
		if deployment == "" {
			deployment = defaults.AzureDeployment
		}
		if apiKey == "" || endpoint == "" || deployment == "" {
			return nil
		}
		provider, err := openai.NewProvider(openai.Config{
			APIKey:          apiKey,
			BaseURL:         endpoint,
			Timeout:         timeout,
			AzureDeployment: deployment,
		})
		if err != nil {
			return nil
		}
		return provider

	default:
		return nil
	}
}

// Generate walks the tenant's fallback chain sequentially until one
// provider succeeds. Disabled entries are skipped, unconstructible
// providers are skipped, failing providers are recorded and the chain
// continues. When the caller's context is done the walk stops
// immediately. An exhausted chain fails with
// domain.ErrNoProviderAvailable wrapping the last provider error.
func (m *LLMManager) Generate(ctx context.Context, tenantID, prompt, system string) (*GenerateResult, error) {
	config := m.tenantConfig(ctx, tenantID)

	chain := []domain.ProviderKind{domain.ProviderOllama}
	if config != nil && len(config.Chain) > 0 {
		chain = config.Chain
	}

	result := &GenerateResult{}
	var lastErr error

	for _, kind := range chain {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("chain iteration stopped: %w", err)
		}

		var providerCfg domain.ProviderConfig
		if config != nil {
			providerCfg = config.Provider(kind)
		}
		if !providerCfg.IsEnabled() {
			logger.Debug("Provider %s disabled for tenant %s, skipping", kind, tenantID)
			continue
		}

		provider := m.factory(kind, providerCfg, m.resolveKey(providerCfg, m.processKey(kind)), m.defaults)
		if provider == nil {
			logger.Debug("Provider %s not configured, skipping", kind)
			continue
		}

		attemptCtx := ctx
		var cancel context.CancelFunc
		if providerCfg.TimeoutSeconds > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, time.Duration(providerCfg.TimeoutSeconds)*time.Second)
		}

		text, err := provider.Generate(attemptCtx, prompt, system)
		if cancel != nil {
			cancel()
		}

		if err != nil {
			logger.Warn("Provider %s failed: %v", kind, err)
			result.Attempts = append(result.Attempts, Attempt{Provider: kind, Model: provider.ModelName(), Err: err})
			lastErr = err
			continue
		}

		logger.Info("LLM response from %s (%s)", kind, provider.ModelName())
		result.Attempts = append(result.Attempts, Attempt{Provider: kind, Model: provider.ModelName()})
		result.Text = text
		result.Provider = kind
		result.Model = provider.ModelName()
		return result, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoProviderAvailable, lastErr)
	}
	return nil, fmt.Errorf("%w: configure a provider or start Ollama", domain.ErrNoProviderAvailable)
}

// CheckStatus probes every known provider kind with the tenant's
// configuration applied and reports health per kind.
func (m *LLMManager) CheckStatus(ctx context.Context, tenantID string) []domain.ProviderStatus {
	config := m.tenantConfig(ctx, tenantID)

	statuses := make([]domain.ProviderStatus, 0, len(domain.ProviderKinds()))
	for _, kind := range domain.ProviderKinds() {
		var providerCfg domain.ProviderConfig
		if config != nil {
			providerCfg = config.Provider(kind)
		}

		provider := m.factory(kind, providerCfg, m.resolveKey(providerCfg, m.processKey(kind)), m.defaults)
		if provider == nil {
			statuses = append(statuses, domain.ProviderStatus{
				Provider: kind,
				Error:    "Not configured",
			})
			continue
		}

		if provider.Health(ctx) {
			statuses = append(statuses, domain.ProviderStatus{
				Provider:  kind,
				Available: true,
				Model:     provider.ModelName(),
			})
		} else {
			statuses = append(statuses, domain.ProviderStatus{
				Provider: kind,
				Model:    provider.ModelName(),
				Error:    "Health check failed",
			})
		}
	}

	return statuses
}
