package domain

import "time"

const unknownDescription = "Unknown"

// ProviderKind identifies a language-model backend. The set is closed:
// provider construction dispatches by exhaustive switch, never by
// dynamically-loaded name.
type ProviderKind string

// Supported backends.
const (
	// ProviderOllama is a local Ollama instance.
	ProviderOllama ProviderKind = "ollama"

	// ProviderOpenAI is the OpenAI cloud API or a compatible endpoint.
	ProviderOpenAI ProviderKind = "openai"

	// ProviderAnthropic is the Anthropic cloud API.
	ProviderAnthropic ProviderKind = "anthropic"

	// ProviderAzureOpenAI is an Azure-hosted OpenAI deployment.
	ProviderAzureOpenAI ProviderKind = "azure_openai"
)

// ProviderKinds returns all known backends in the fixed order used for
// status probes.
func ProviderKinds() []ProviderKind {
	return []ProviderKind{
		ProviderOllama,
		ProviderAnthropic,
		ProviderOpenAI,
		ProviderAzureOpenAI,
	}
}

// IsValid returns true if the kind is recognised.
func (p ProviderKind) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI, ProviderAnthropic, ProviderAzureOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if the backend needs an API key.
func (p ProviderKind) RequiresAPIKey() bool {
	return p != ProviderOllama
}

// IsLocal returns true if the backend runs on the local machine.
func (p ProviderKind) IsLocal() bool {
	return p == ProviderOllama
}

// String returns the string representation.
func (p ProviderKind) String() string {
	return string(p)
}

// Description returns a human-readable description of the backend.
func (p ProviderKind) Description() string {
	switch p {
	case ProviderOllama:
		return "Ollama (local models)"
	case ProviderOpenAI:
		return "OpenAI (cloud API)"
	case ProviderAnthropic:
		return "Anthropic Claude (cloud API)"
	case ProviderAzureOpenAI:
		return "Azure OpenAI (cloud deployment)"
	default:
		return unknownDescription
	}
}

// ProviderConfig is one tenant's configuration for a single backend.
type ProviderConfig struct {
	// Enabled toggles the backend within the fallback chain.
	// nil means enabled; only an explicit false disables it.
	Enabled *bool

	// APIKey is the backend credential, encrypted at rest.
	APIKey string

	// Model overrides the backend's default model when set.
	Model string

	// Endpoint overrides the backend's base URL (Azure and
	// OpenAI-compatible endpoints).
	Endpoint string

	// Deployment is the Azure OpenAI deployment name.
	Deployment string

	// TimeoutSeconds bounds a single generation call. Zero uses the
	// backend default. The timeout is per attempt: one backend timing
	// out never extends the deadline of later chain entries.
	TimeoutSeconds int
}

// IsEnabled returns false only when the config explicitly disables the
// backend.
func (c ProviderConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TenantLLMConfig is a tenant's provider configuration: an ordered
// fallback chain plus per-backend settings.
type TenantLLMConfig struct {
	// TenantID scopes the configuration.
	TenantID string

	// Chain is the ordered list of backends tried until one succeeds.
	Chain []ProviderKind

	// Providers holds per-backend configuration, keyed by kind.
	Providers map[ProviderKind]ProviderConfig

	// UpdatedAt is when the configuration last changed.
	UpdatedAt time.Time
}

// Provider returns the configuration for a backend, or the zero value
// when none is stored.
func (c *TenantLLMConfig) Provider(kind ProviderKind) ProviderConfig {
	if c == nil || c.Providers == nil {
		return ProviderConfig{}
	}
	return c.Providers[kind]
}

// ProviderStatus is the result of a liveness probe against one backend,
// used for operator and tenant diagnostics.
type ProviderStatus struct {
	// Provider is the probed backend.
	Provider ProviderKind

	// Available is the probe outcome.
	Available bool

	// Model is the resolved model name when the backend is constructible.
	Model string

	// Error describes why the backend is unavailable, empty otherwise.
	Error string
}
