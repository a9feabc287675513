package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderKindIsValid(t *testing.T) {
	for _, kind := range ProviderKinds() {
		assert.True(t, kind.IsValid(), "kind %s should be valid", kind)
	}

	assert.False(t, ProviderKind("").IsValid())
	assert.False(t, ProviderKind("bedrock").IsValid())
}

func TestProviderKindRequiresAPIKey(t *testing.T) {
	assert.False(t, ProviderOllama.RequiresAPIKey())
	assert.True(t, ProviderOpenAI.RequiresAPIKey())
	assert.True(t, ProviderAnthropic.RequiresAPIKey())
	assert.True(t, ProviderAzureOpenAI.RequiresAPIKey())
}

func TestProviderConfigIsEnabled(t *testing.T) {
	enabled := true
	disabled := false

	tests := []struct {
		name string
		cfg  ProviderConfig
		want bool
	}{
		{"unset means enabled", ProviderConfig{}, true},
		{"explicitly enabled", ProviderConfig{Enabled: &enabled}, true},
		{"explicitly disabled", ProviderConfig{Enabled: &disabled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.IsEnabled())
		})
	}
}

func TestTenantLLMConfigProvider(t *testing.T) {
	var nilCfg *TenantLLMConfig
	assert.Equal(t, ProviderConfig{}, nilCfg.Provider(ProviderOllama))

	cfg := &TenantLLMConfig{
		TenantID: "t1",
		Providers: map[ProviderKind]ProviderConfig{
			ProviderAnthropic: {Model: "claude-sonnet-4-5"},
		},
	}
	assert.Equal(t, "claude-sonnet-4-5", cfg.Provider(ProviderAnthropic).Model)
	assert.Equal(t, ProviderConfig{}, cfg.Provider(ProviderOpenAI))
}

func TestAnalysisKindIsValid(t *testing.T) {
	for _, kind := range AnalysisKinds() {
		assert.True(t, kind.IsValid(), "kind %s should be valid", kind)
	}

	assert.False(t, AnalysisKind("sentiment").IsValid())
	assert.False(t, AnalysisKind("").IsValid())
}
