package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexvault-labs/lexvault/internal/adapters/driven/storage/memory"
	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// recordingFactory scripts provider construction per kind and records
// what the manager asked for.
type recordingFactory struct {
	providers map[domain.ProviderKind]*fakeProvider
	built     []domain.ProviderKind
	keys      map[domain.ProviderKind]string
}

func newRecordingFactory() *recordingFactory {
	return &recordingFactory{
		providers: make(map[domain.ProviderKind]*fakeProvider),
		keys:      make(map[domain.ProviderKind]string),
	}
}

func (f *recordingFactory) factory(kind domain.ProviderKind, _ domain.ProviderConfig, apiKey string, _ ProviderDefaults) driven.LLMProvider {
	f.built = append(f.built, kind)
	f.keys[kind] = apiKey
	p, ok := f.providers[kind]
	if !ok {
		return nil
	}
	return p
}

func newTestManager(t *testing.T, factory *recordingFactory) (*LLMManager, *memory.LLMConfigStore) {
	t.Helper()
	store := memory.NewLLMConfigStore()
	manager := NewLLMManager(store, prefixCipher{}, ProviderDefaults{})
	manager.SetProviderFactory(factory.factory)
	return manager, store
}

func TestGenerateDefaultChainWithoutConfig(t *testing.T) {
	factory := newRecordingFactory()
	factory.providers[domain.ProviderOllama] = &fakeProvider{text: "local answer", model: "llama3.2", healthy: true}
	manager, _ := newTestManager(t, factory)

	result, err := manager.Generate(context.Background(), "acme", "prompt", "system")
	require.NoError(t, err)
	assert.Equal(t, "local answer", result.Text)
	assert.Equal(t, domain.ProviderOllama, result.Provider)
	assert.Equal(t, []domain.ProviderKind{domain.ProviderOllama}, factory.built)
}

func TestGenerateFallsThroughChain(t *testing.T) {
	factory := newRecordingFactory()
	failing := &fakeProvider{err: domain.ErrProviderUnavailable, model: "llama3.2"}
	succeeding := &fakeProvider{text: "claude answer", model: "claude"}
	never := &fakeProvider{text: "unused", model: "gpt"}
	factory.providers[domain.ProviderOllama] = failing
	factory.providers[domain.ProviderAnthropic] = succeeding
	factory.providers[domain.ProviderOpenAI] = never

	manager, store := newTestManager(t, factory)
	require.NoError(t, store.Save(context.Background(), domain.TenantLLMConfig{
		TenantID: "acme",
		Chain:    []domain.ProviderKind{domain.ProviderOllama, domain.ProviderAnthropic, domain.ProviderOpenAI},
	}))

	result, err := manager.Generate(context.Background(), "acme", "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "claude answer", result.Text)
	assert.Equal(t, domain.ProviderAnthropic, result.Provider)

	assert.Equal(t, 1, failing.callCount())
	assert.Equal(t, 1, succeeding.callCount())
	assert.Equal(t, 0, never.callCount(), "later providers must not run after a success")

	require.Len(t, result.Attempts, 2)
	assert.Equal(t, domain.ProviderOllama, result.Attempts[0].Provider)
	assert.ErrorIs(t, result.Attempts[0].Err, domain.ErrProviderUnavailable)
	assert.Equal(t, domain.ProviderAnthropic, result.Attempts[1].Provider)
	assert.NoError(t, result.Attempts[1].Err)
}

func TestGenerateSkipsDisabledProviders(t *testing.T) {
	factory := newRecordingFactory()
	disabled := &fakeProvider{text: "never", model: "claude"}
	enabled := &fakeProvider{text: "answer", model: "llama3.2"}
	factory.providers[domain.ProviderAnthropic] = disabled
	factory.providers[domain.ProviderOllama] = enabled

	off := false
	manager, store := newTestManager(t, factory)
	require.NoError(t, store.Save(context.Background(), domain.TenantLLMConfig{
		TenantID: "acme",
		Chain:    []domain.ProviderKind{domain.ProviderAnthropic, domain.ProviderOllama},
		Providers: map[domain.ProviderKind]domain.ProviderConfig{
			domain.ProviderAnthropic: {Enabled: &off, APIKey: "enc:key"},
		},
	}))

	result, err := manager.Generate(context.Background(), "acme", "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "answer", result.Text)
	assert.Equal(t, 0, disabled.callCount())
	assert.NotContains(t, factory.built, domain.ProviderAnthropic, "disabled providers are never constructed")
}

func TestGenerateSkipsUnconstructibleProviders(t *testing.T) {
	factory := newRecordingFactory()
	// anthropic has no scripted provider, the factory returns nil.
	factory.providers[domain.ProviderOllama] = &fakeProvider{text: "answer", model: "llama3.2"}

	manager, store := newTestManager(t, factory)
	require.NoError(t, store.Save(context.Background(), domain.TenantLLMConfig{
		TenantID: "acme",
		Chain:    []domain.ProviderKind{domain.ProviderAnthropic, domain.ProviderOllama},
	}))

	result, err := manager.Generate(context.Background(), "acme", "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "answer", result.Text)
}

func TestGenerateExhaustedChain(t *testing.T) {
	factory := newRecordingFactory()
	factory.providers[domain.ProviderOllama] = &fakeProvider{err: domain.ErrProviderTimeout, model: "llama3.2"}

	manager, _ := newTestManager(t, factory)

	_, err := manager.Generate(context.Background(), "acme", "prompt", "")
	assert.ErrorIs(t, err, domain.ErrNoProviderAvailable)
	assert.ErrorIs(t, err, domain.ErrProviderTimeout, "last provider error is preserved")
}

func TestGenerateAllProvidersSkipped(t *testing.T) {
	factory := newRecordingFactory()
	off := false

	manager, store := newTestManager(t, factory)
	require.NoError(t, store.Save(context.Background(), domain.TenantLLMConfig{
		TenantID: "acme",
		Chain:    []domain.ProviderKind{domain.ProviderAnthropic},
		Providers: map[domain.ProviderKind]domain.ProviderConfig{
			domain.ProviderAnthropic: {Enabled: &off},
		},
	}))

	_, err := manager.Generate(context.Background(), "acme", "prompt", "")
	assert.ErrorIs(t, err, domain.ErrNoProviderAvailable)
	assert.Empty(t, factory.built)
}

func TestGenerateStopsOnCanceledContext(t *testing.T) {
	factory := newRecordingFactory()
	provider := &fakeProvider{text: "answer", model: "llama3.2"}
	factory.providers[domain.ProviderOllama] = provider

	manager, _ := newTestManager(t, factory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := manager.Generate(ctx, "acme", "prompt", "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.callCount())
}

func TestGenerateDecryptsStoredCredential(t *testing.T) {
	factory := newRecordingFactory()
	factory.providers[domain.ProviderAnthropic] = &fakeProvider{text: "answer", model: "claude"}

	manager, store := newTestManager(t, factory)
	require.NoError(t, store.Save(context.Background(), domain.TenantLLMConfig{
		TenantID: "acme",
		Chain:    []domain.ProviderKind{domain.ProviderAnthropic},
		Providers: map[domain.ProviderKind]domain.ProviderConfig{
			domain.ProviderAnthropic: {APIKey: "enc:sk-ant-secret"},
		},
	}))

	_, err := manager.Generate(context.Background(), "acme", "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-secret", factory.keys[domain.ProviderAnthropic])
}

func TestGenerateFallsBackToProcessKey(t *testing.T) {
	factory := newRecordingFactory()
	factory.providers[domain.ProviderOpenAI] = &fakeProvider{text: "answer", model: "gpt"}

	store := memory.NewLLMConfigStore()
	manager := NewLLMManager(store, prefixCipher{}, ProviderDefaults{OpenAIAPIKey: "sk-process"})
	manager.SetProviderFactory(factory.factory)

	require.NoError(t, store.Save(context.Background(), domain.TenantLLMConfig{
		TenantID: "acme",
		Chain:    []domain.ProviderKind{domain.ProviderOpenAI},
	}))

	_, err := manager.Generate(context.Background(), "acme", "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "sk-process", factory.keys[domain.ProviderOpenAI])
}

func TestGenerateUndecryptableCredentialUsesProcessKey(t *testing.T) {
	factory := newRecordingFactory()
	factory.providers[domain.ProviderAnthropic] = &fakeProvider{text: "answer", model: "claude"}

	store := memory.NewLLMConfigStore()
	manager := NewLLMManager(store, prefixCipher{}, ProviderDefaults{AnthropicAPIKey: "sk-process"})
	manager.SetProviderFactory(factory.factory)

	// A stored credential sealed under a different encryption secret
	// cannot be decrypted. It must count as absent: the factory gets
	// the process-level key, never the stored ciphertext.
	require.NoError(t, store.Save(context.Background(), domain.TenantLLMConfig{
		TenantID: "acme",
		Chain:    []domain.ProviderKind{domain.ProviderAnthropic},
		Providers: map[domain.ProviderKind]domain.ProviderConfig{
			domain.ProviderAnthropic: {APIKey: "s6n1ST9EaFqWFcTmiDuY0dDUN3u3iQcs9kiQ1x2dD0DTwqgqp1aXFF8="},
		},
	}))

	_, err := manager.Generate(context.Background(), "acme", "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "sk-process", factory.keys[domain.ProviderAnthropic])
}

func TestCheckStatusProbesAllKinds(t *testing.T) {
	factory := newRecordingFactory()
	factory.providers[domain.ProviderOllama] = &fakeProvider{healthy: true, model: "llama3.2"}
	factory.providers[domain.ProviderAnthropic] = &fakeProvider{healthy: false, model: "claude"}

	manager, _ := newTestManager(t, factory)

	statuses := manager.CheckStatus(context.Background(), "acme")
	require.Len(t, statuses, len(domain.ProviderKinds()))

	byKind := make(map[domain.ProviderKind]domain.ProviderStatus)
	for _, s := range statuses {
		byKind[s.Provider] = s
	}

	assert.True(t, byKind[domain.ProviderOllama].Available)
	assert.Equal(t, "llama3.2", byKind[domain.ProviderOllama].Model)

	assert.False(t, byKind[domain.ProviderAnthropic].Available)
	assert.Equal(t, "Health check failed", byKind[domain.ProviderAnthropic].Error)

	assert.False(t, byKind[domain.ProviderOpenAI].Available)
	assert.Equal(t, "Not configured", byKind[domain.ProviderOpenAI].Error)
	assert.Equal(t, "Not configured", byKind[domain.ProviderAzureOpenAI].Error)
}

func TestConfigureEncryptsCredential(t *testing.T) {
	manager, store := newTestManager(t, newRecordingFactory())

	err := manager.Configure(context.Background(), "acme", domain.ProviderAnthropic, domain.ProviderConfig{
		APIKey: "sk-ant-secret",
		Model:  "claude-3-5-sonnet-latest",
	})
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "enc:sk-ant-secret", stored.Providers[domain.ProviderAnthropic].APIKey)
}

func TestConfigureRejectsUnknownKind(t *testing.T) {
	manager, _ := newTestManager(t, newRecordingFactory())
	err := manager.Configure(context.Background(), "acme", domain.ProviderKind("bard"), domain.ProviderConfig{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetChainValidation(t *testing.T) {
	manager, store := newTestManager(t, newRecordingFactory())

	assert.ErrorIs(t, manager.SetChain(context.Background(), "acme", nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, manager.SetChain(context.Background(), "acme",
		[]domain.ProviderKind{domain.ProviderKind("bard")}), domain.ErrInvalidInput)

	chain := []domain.ProviderKind{domain.ProviderAnthropic, domain.ProviderOllama}
	require.NoError(t, manager.SetChain(context.Background(), "acme", chain))

	stored, err := store.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, chain, stored.Chain)
}

func TestConfigDefaultsToOllamaChain(t *testing.T) {
	manager, _ := newTestManager(t, newRecordingFactory())

	cfg, err := manager.Config(context.Background(), "fresh-tenant")
	require.NoError(t, err)
	assert.Equal(t, []domain.ProviderKind{domain.ProviderOllama}, cfg.Chain)
}
