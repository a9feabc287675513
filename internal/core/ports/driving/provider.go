package driving

import (
	"context"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// ProviderAdmin exposes provider configuration and health to external
// actors.
type ProviderAdmin interface {
	// CheckStatus probes every known provider kind and reports health.
	CheckStatus(ctx context.Context, tenantID string) []domain.ProviderStatus

	// Configure stores a provider's settings for the tenant, encrypting
	// the credential at rest.
	Configure(ctx context.Context, tenantID string, kind domain.ProviderKind, cfg domain.ProviderConfig) error

	// SetChain replaces the tenant's fallback chain.
	SetChain(ctx context.Context, tenantID string, chain []domain.ProviderKind) error

	// Config returns the tenant's stored configuration, or the default
	// when none is stored.
	Config(ctx context.Context, tenantID string) (*domain.TenantLLMConfig, error)
}
