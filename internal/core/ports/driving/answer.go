package driving

import (
	"context"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// AnswerService provides grounded question answering over a tenant's
// uploaded documents.
type AnswerService interface {
	// Answer retrieves context for the query and generates a cited
	// answer. With no retrieved context it returns a fixed sentinel
	// answer without calling any provider.
	Answer(ctx context.Context, tenantID, query string, topK int) (domain.Answer, error)

	// Memorandum drafts a structured legal memorandum on the topic,
	// grounded in retrieved excerpts. The citations are the excerpts
	// the memo was grounded on, numbered as its [n] references.
	Memorandum(ctx context.Context, tenantID, topic string, topK int) (map[string]any, []domain.Citation, error)
}
