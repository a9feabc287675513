// Package openai provides an LLM provider adapter for the OpenAI chat
// completions API. The same adapter serves Azure OpenAI deployments
// and OpenAI-compatible endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lexvault-labs/lexvault/internal/adapters/driven/llm"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.LLMProvider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultModel           = "gpt-4o-mini"
	DefaultTimeout         = 120 * time.Second
	DefaultAzureAPIVersion = "2024-06-01"
)

// Config holds configuration for the OpenAI provider.
type Config struct {
	// APIKey is the OpenAI or Azure OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// For Azure this is the resource endpoint, e.g.
	// https://myresource.openai.azure.com.
	BaseURL string

	// Model is the LLM model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// AzureDeployment switches the adapter into Azure mode: requests go
	// to the deployment path and authenticate with the api-key header.
	AzureDeployment string

	// AzureAPIVersion is the Azure api-version query parameter
	// (default: 2024-06-01). Ignored outside Azure mode.
	AzureAPIVersion string
}

// Provider generates completions using a chat-completions endpoint.
type Provider struct {
	client          *http.Client
	baseURL         string
	apiKey          string
	model           string
	azureDeployment string
	azureAPIVersion string
}

// chatRequest is the chat completions request format.
type chatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []chatMessage `json:"messages"`
}

// chatMessage is the chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the chat completions response format.
type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewProvider creates a new OpenAI provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.AzureDeployment != "" && cfg.AzureAPIVersion == "" {
		cfg.AzureAPIVersion = DefaultAzureAPIVersion
	}

	return &Provider{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		azureDeployment: cfg.AzureDeployment,
		azureAPIVersion: cfg.AzureAPIVersion,
	}, nil
}

// azure reports whether the adapter targets an Azure deployment.
func (p *Provider) azure() bool {
	return p.azureDeployment != ""
}

// completionsURL builds the chat completions endpoint URL.
func (p *Provider) completionsURL() string {
	if p.azure() {
		return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			p.baseURL, p.azureDeployment, p.azureAPIVersion)
	}
	return p.baseURL + "/chat/completions"
}

// authorize sets the authentication header for the target API.
func (p *Provider) authorize(req *http.Request) {
	if p.azure() {
		req.Header.Set("api-key", p.apiKey)
		return
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
}

// providerName labels errors so chain logs name the failing backend.
func (p *Provider) providerName() string {
	if p.azure() {
		return "azure_openai"
	}
	return "openai"
}

// Generate produces a completion for the prompt.
func (p *Provider) Generate(ctx context.Context, prompt, system string) (string, error) {
	var messages []chatMessage
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	reqBody := chatRequest{Messages: messages}
	if !p.azure() {
		// Azure routes by deployment, the model field is redundant there.
		reqBody.Model = p.model
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.completionsURL(),
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", llm.WrapRequestError(p.providerName(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", llm.WrapStatusError(p.providerName(), resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("%s error: %s", p.providerName(), chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%s: no response choices returned", p.providerName())
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Health checks the models endpoint without running inference.
func (p *Provider) Health(ctx context.Context) bool {
	url := p.baseURL + "/models"
	if p.azure() {
		url = fmt.Sprintf("%s/openai/models?api-version=%s", p.baseURL, p.azureAPIVersion)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return false
	}
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// ModelName returns the name of the LLM model being used.
func (p *Provider) ModelName() string {
	if p.azure() {
		return p.azureDeployment
	}
	return p.model
}
