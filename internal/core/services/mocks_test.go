package services

import (
	"context"
	"strings"
	"sync"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// fakeProvider is a scripted driven.LLMProvider.
type fakeProvider struct {
	text    string
	err     error
	healthy bool
	model   string

	mu    sync.Mutex
	calls int
}

func (p *fakeProvider) Generate(_ context.Context, _, _ string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func (p *fakeProvider) Health(context.Context) bool { return p.healthy }
func (p *fakeProvider) ModelName() string           { return p.model }

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// fakeGenerator is a scripted Generator that records prompts.
type fakeGenerator struct {
	text string
	err  error

	mu      sync.Mutex
	calls   int
	prompts []string
	systems []string
}

func (g *fakeGenerator) Generate(_ context.Context, _, prompt, system string) (*GenerateResult, error) {
	g.mu.Lock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	g.systems = append(g.systems, system)
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return &GenerateResult{Text: g.text, Provider: domain.ProviderOllama, Model: "test-model"}, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *fakeGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

// fakeEmbedder maps texts to fixed vectors. Unknown texts embed to the
// fallback vector.
type fakeEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error

	mu    sync.Mutex
	calls int
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return e.fallback, nil
}

func (e *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *fakeEmbedder) Dimensions() int           { return len(e.fallback) }
func (e *fakeEmbedder) ModelName() string         { return "fake-embed" }
func (e *fakeEmbedder) Ping(context.Context) error { return nil }
func (e *fakeEmbedder) Close() error               { return nil }

func (e *fakeEmbedder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// prefixCipher is a reversible stand-in for the AES cipher.
type prefixCipher struct{}

func (prefixCipher) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (prefixCipher) Decrypt(ciphertext string) (string, bool) {
	if rest, ok := strings.CutPrefix(ciphertext, "enc:"); ok {
		return rest, true
	}
	return "", false
}

// fakeTextSource serves canned document text.
type fakeTextSource struct {
	texts map[string]string
	err   error
}

func (s *fakeTextSource) Text(_ context.Context, _, id string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.texts[id], nil
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)
var _ driven.LLMProvider = (*fakeProvider)(nil)
var _ driven.CredentialCipher = prefixCipher{}
