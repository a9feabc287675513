package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driving"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// Ensure LLMManager implements the interface.
var _ driving.ProviderAdmin = (*LLMManager)(nil)

// Configure stores a provider's settings for the tenant. The credential
// is encrypted before it reaches the store.
func (m *LLMManager) Configure(ctx context.Context, tenantID string, kind domain.ProviderKind, cfg domain.ProviderConfig) error {
	if !kind.IsValid() {
		return fmt.Errorf("unknown provider %q: %w", kind, domain.ErrInvalidInput)
	}

	if cfg.APIKey != "" {
		encrypted, err := m.cipher.Encrypt(cfg.APIKey)
		if err != nil {
			return fmt.Errorf("encrypting credential: %w", err)
		}
		cfg.APIKey = encrypted
	}

	stored, err := m.Config(ctx, tenantID)
	if err != nil {
		return err
	}

	if stored.Providers == nil {
		stored.Providers = make(map[domain.ProviderKind]domain.ProviderConfig)
	}
	stored.Providers[kind] = cfg
	stored.UpdatedAt = time.Now().UTC()

	if err := m.configStore.Save(ctx, *stored); err != nil {
		return fmt.Errorf("saving LLM config: %w", err)
	}

	logger.Info("Provider %s configured for tenant %s", kind, tenantID)
	return nil
}

// SetChain replaces the tenant's fallback chain.
func (m *LLMManager) SetChain(ctx context.Context, tenantID string, chain []domain.ProviderKind) error {
	if len(chain) == 0 {
		return fmt.Errorf("empty chain: %w", domain.ErrInvalidInput)
	}
	for _, kind := range chain {
		if !kind.IsValid() {
			return fmt.Errorf("unknown provider %q: %w", kind, domain.ErrInvalidInput)
		}
	}

	stored, err := m.Config(ctx, tenantID)
	if err != nil {
		return err
	}

	stored.Chain = chain
	stored.UpdatedAt = time.Now().UTC()

	if err := m.configStore.Save(ctx, *stored); err != nil {
		return fmt.Errorf("saving LLM config: %w", err)
	}

	logger.Info("Fallback chain for tenant %s set to %v", tenantID, chain)
	return nil
}

// Config returns the tenant's stored configuration, or the default
// single-entry Ollama chain when none is stored.
func (m *LLMManager) Config(ctx context.Context, tenantID string) (*domain.TenantLLMConfig, error) {
	cfg, err := m.configStore.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.TenantLLMConfig{
				TenantID: tenantID,
				Chain:    []domain.ProviderKind{domain.ProviderOllama},
			}, nil
		}
		return nil, fmt.Errorf("loading LLM config: %w", err)
	}
	return cfg, nil
}
