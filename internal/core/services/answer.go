package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driving"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// NoDocumentsAnswer is returned verbatim when retrieval finds nothing.
// No provider is called in that case.
const NoDocumentsAnswer = "No relevant documents found. Please upload documents first."

// answerSystem grounds the model in the retrieved excerpts.
const answerSystem = `You are a legal document assistant. Answer questions based ONLY on the provided document excerpts.
If the documents don't contain enough information to answer, say so clearly.
Always reference which document and page your information comes from using [1], [2] notation matching the source numbers provided.`

const answerPrompt = `Based on the following document excerpts, answer the question.

DOCUMENT EXCERPTS:
%s

QUESTION: %s

Provide a clear, detailed answer citing sources using [1], [2] notation. If the documents don't fully answer the question, state what information is available and what is missing.`

// followUpSource narrows AnalysisService to what answering needs.
type followUpSource interface {
	FollowUps(ctx context.Context, tenantID, question, answer string) ([]string, error)
}

// retriever narrows SearchService to what answering needs.
type retriever interface {
	Search(ctx context.Context, tenantID, query string, topK int) ([]domain.Citation, error)
}

// AnswerService generates grounded, cited answers over a tenant's
// documents.
type AnswerService struct {
	search    retriever
	generator Generator
	followUps followUpSource
}

// NewAnswerService creates a new answer service. followUps may be nil,
// in which case no suggestions are generated.
func NewAnswerService(search retriever, generator Generator, followUps followUpSource) *AnswerService {
	return &AnswerService{
		search:    search,
		generator: generator,
		followUps: followUps,
	}
}

// buildContext numbers the citations into the excerpt block the prompt
// embeds. Numbering matches the [n] references the model is told to use.
func buildContext(citations []domain.Citation) string {
	var b strings.Builder
	for i, c := range citations {
		fmt.Fprintf(&b, "[%d] %s", i+1, c.DocumentName)
		if c.Page > 0 {
			fmt.Fprintf(&b, ", Page %d", c.Page)
		}
		fmt.Fprintf(&b, ":\n%s\n\n", c.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Answer retrieves context for the query and generates a cited answer.
// Follow-up generation is best-effort: failures are logged and the
// answer is returned without suggestions.
func (s *AnswerService) Answer(ctx context.Context, tenantID, query string, topK int) (domain.Answer, error) {
	citations, err := s.search.Search(ctx, tenantID, query, topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieving context: %w", err)
	}

	if len(citations) == 0 {
		logger.Debug("No citations for query, returning sentinel answer")
		return domain.Answer{
			Text:      NoDocumentsAnswer,
			Citations: []domain.Citation{},
		}, nil
	}

	prompt := fmt.Sprintf(answerPrompt, buildContext(citations), query)

	logger.Section("Grounded Answer")
	logger.Debug("Answering with %d citations", len(citations))

	generated, err := s.generator.Generate(ctx, tenantID, prompt, answerSystem)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generating answer: %w", err)
	}

	answer := domain.Answer{
		Text:      generated.Text,
		Citations: citations,
	}

	if s.followUps != nil {
		suggestions, err := s.followUps.FollowUps(ctx, tenantID, query, generated.Text)
		if err != nil {
			logger.Warn("Follow-up generation failed (non-blocking): %v", err)
		} else {
			answer.FollowUps = suggestions
		}
	}

	return answer, nil
}

// Memorandum drafts a structured legal memorandum on the topic,
// grounded in the topK excerpts retrieved for it. The citations report
// which excerpts were fed to the model; their numbering matches the
// [n] references the memo discussion uses.
func (s *AnswerService) Memorandum(ctx context.Context, tenantID, topic string, topK int) (map[string]any, []domain.Citation, error) {
	citations, err := s.search.Search(ctx, tenantID, topic, topK)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieving excerpts: %w", err)
	}
	if len(citations) == 0 {
		return nil, nil, fmt.Errorf("no relevant excerpts for %q: %w", topic, domain.ErrNotFound)
	}

	prompt := fmt.Sprintf(memoPrompt, topic, truncate(buildContext(citations), maxMemoChars))

	logger.Section("Memorandum")
	logger.Debug("Drafting memo on %q from %d excerpts", topic, len(citations))

	generated, err := s.generator.Generate(ctx, tenantID, prompt, memoSystem)
	if err != nil {
		return nil, nil, fmt.Errorf("generating memorandum: %w", err)
	}

	memo, err := extractJSONObject(generated.Text)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding memorandum: %w", err)
	}
	return memo, citations, nil
}
