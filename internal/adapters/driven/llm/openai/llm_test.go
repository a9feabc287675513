package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

func TestGenerateOpenAIMode(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	provider, err := NewProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	})
	require.NoError(t, err)

	result, err := provider.Generate(context.Background(), "What is a lien?", "You are a legal assistant.")
	require.NoError(t, err)
	assert.Equal(t, "hello", result)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
}

func TestGenerateAzureMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/legal-gpt4/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "azure-key", r.Header.Get("api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Empty(t, req.Model, "azure requests route by deployment")

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"azure reply"},"finish_reason":"stop"}]}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	provider, err := NewProvider(Config{
		APIKey:          "azure-key",
		BaseURL:         server.URL,
		AzureDeployment: "legal-gpt4",
	})
	require.NoError(t, err)

	result, err := provider.Generate(context.Background(), "question", "")
	require.NoError(t, err)
	assert.Equal(t, "azure reply", result)
	assert.Equal(t, "legal-gpt4", provider.ModelName())
}

func TestGenerateServerErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	provider, err := NewProvider(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "q", "")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestGenerateConnectionRefused(t *testing.T) {
	provider, err := NewProvider(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "q", "")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestNewProviderRequiresAPIKey(t *testing.T) {
	_, err := NewProvider(Config{})
	assert.Error(t, err)
}

func TestHealthReportsFalseWhenUnreachable(t *testing.T) {
	provider, err := NewProvider(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	assert.False(t, provider.Health(context.Background()))
}

func TestHealthAzureModelsPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/models", r.URL.Path)
		assert.Equal(t, "azure-key", r.Header.Get("api-key"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider, err := NewProvider(Config{
		APIKey:          "azure-key",
		BaseURL:         server.URL,
		AzureDeployment: "legal-gpt4",
	})
	require.NoError(t, err)
	assert.True(t, provider.Health(context.Background()))
}
