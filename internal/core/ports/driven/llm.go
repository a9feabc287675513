package driven

import "context"

// LLMProvider is a single language-model backend. Implementations exist
// once per backend kind (Ollama, OpenAI, Anthropic, Azure OpenAI); the
// fallback manager constructs them per call from tenant configuration.
type LLMProvider interface {
	// Generate produces a completion for the prompt. system may be empty.
	// Unreachable backends fail with domain.ErrProviderUnavailable and
	// expired deadlines with domain.ErrProviderTimeout so the fallback
	// manager can continue down the chain.
	Generate(ctx context.Context, prompt, system string) (string, error)

	// Health is a cheap, non-mutating liveness probe. It never fails:
	// any internal error reports false.
	Health(ctx context.Context) bool

	// ModelName returns the model identifier being used.
	ModelName() string
}
