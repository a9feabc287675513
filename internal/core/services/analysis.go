package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driving"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Generator produces completions through the provider chain. Satisfied
// by LLMManager; narrowed here so tests can substitute a stub.
type Generator interface {
	Generate(ctx context.Context, tenantID, prompt, system string) (*GenerateResult, error)
}

// TextSource yields the full extracted text of a stored document.
// Satisfied by DocumentService.
type TextSource interface {
	Text(ctx context.Context, tenantID, id string) (string, error)
}

// AnalysisService runs structured analyses over documents and caches
// the results per (document, kind, tenant).
type AnalysisService struct {
	docStore      driven.DocumentStore
	analysisStore driven.AnalysisStore
	texts         TextSource
	generator     Generator
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	docStore driven.DocumentStore,
	analysisStore driven.AnalysisStore,
	texts TextSource,
	generator Generator,
) *AnalysisService {
	return &AnalysisService{
		docStore:      docStore,
		analysisStore: analysisStore,
		texts:         texts,
		generator:     generator,
	}
}

// kindPrompt returns the prompt template and system prompt for a kind.
func kindPrompt(kind domain.AnalysisKind) (prompt, system string) {
	switch kind {
	case domain.AnalysisSummary:
		return summaryPrompt, summarySystem
	case domain.AnalysisRisks:
		return risksPrompt, risksSystem
	case domain.AnalysisChecklist:
		return checklistPrompt, checklistSystem
	case domain.AnalysisObligations:
		return obligationsPrompt, obligationsSystem
	case domain.AnalysisTimeline:
		return timelinePrompt, timelineSystem
	default:
		return "", ""
	}
}

// Analyze returns the structured analysis of the given kind. Cached
// results are served unless forceRefresh is set; fresh results are
// saved only after a successful generation and decode, so a failed run
// never evicts a prior good result.
func (s *AnalysisService) Analyze(
	ctx context.Context, tenantID, documentID string, kind domain.AnalysisKind, forceRefresh bool,
) (*domain.AnalysisRecord, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown analysis kind %q: %w", kind, domain.ErrInvalidInput)
	}

	if !forceRefresh {
		cached, err := s.analysisStore.Get(ctx, tenantID, documentID, kind)
		if err == nil {
			logger.Debug("Analysis cache hit: doc=%s kind=%s", documentID, kind)
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("reading analysis cache: %w", err)
		}
	}

	doc, err := s.docStore.Get(ctx, tenantID, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	if doc.Status != domain.StatusReady {
		return nil, fmt.Errorf("document %s is %s: %w", documentID, doc.Status, domain.ErrNotReady)
	}

	text, err := s.texts.Text(ctx, tenantID, documentID)
	if err != nil {
		return nil, fmt.Errorf("extracting document text: %w", err)
	}

	promptTemplate, system := kindPrompt(kind)
	prompt := fmt.Sprintf(promptTemplate, truncate(text, maxAnalysisChars))

	logger.Section("Document Analysis")
	logger.Info("Running %s analysis for document %s", kind, documentID)

	generated, err := s.generator.Generate(ctx, tenantID, prompt, system)
	if err != nil {
		return nil, fmt.Errorf("generating %s analysis: %w", kind, err)
	}

	result, err := extractJSONObject(generated.Text)
	if err != nil {
		return nil, fmt.Errorf("decoding %s analysis: %w", kind, err)
	}

	rec := domain.AnalysisRecord{
		DocumentID: documentID,
		Kind:       kind,
		TenantID:   tenantID,
		Result:     result,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.analysisStore.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}

	return &rec, nil
}

// Clear drops every cached analysis for the document.
func (s *AnalysisService) Clear(ctx context.Context, tenantID, documentID string) (int, error) {
	deleted, err := s.analysisStore.DeleteByDocument(ctx, tenantID, documentID)
	if err != nil {
		return 0, fmt.Errorf("clearing analyses: %w", err)
	}
	logger.Debug("Cleared %d cached analyses for document %s", deleted, documentID)
	return deleted, nil
}

// Compare contrasts the provisions of two documents. Results are not
// cached: comparisons are pairwise and rarely repeated.
func (s *AnalysisService) Compare(ctx context.Context, tenantID, documentIDA, documentIDB string) (map[string]any, error) {
	docA, err := s.docStore.Get(ctx, tenantID, documentIDA)
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", documentIDA, err)
	}
	docB, err := s.docStore.Get(ctx, tenantID, documentIDB)
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", documentIDB, err)
	}

	textA, err := s.texts.Text(ctx, tenantID, documentIDA)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", documentIDA, err)
	}
	textB, err := s.texts.Text(ctx, tenantID, documentIDB)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", documentIDB, err)
	}

	prompt := fmt.Sprintf(comparePrompt,
		docA.Filename, truncate(textA, maxCompareChars),
		docB.Filename, truncate(textB, maxCompareChars))

	generated, err := s.generator.Generate(ctx, tenantID, prompt, compareSystem)
	if err != nil {
		return nil, fmt.Errorf("generating comparison: %w", err)
	}

	result, err := extractJSONObject(generated.Text)
	if err != nil {
		return nil, fmt.Errorf("decoding comparison: %w", err)
	}
	return result, nil
}

// ExpandQuery suggests alternative search queries and related legal
// terms for the given query.
func (s *AnalysisService) ExpandQuery(ctx context.Context, tenantID, query string) (map[string]any, error) {
	generated, err := s.generator.Generate(ctx, tenantID, fmt.Sprintf(expandQueryPrompt, query), expandSystem)
	if err != nil {
		return nil, fmt.Errorf("generating query suggestions: %w", err)
	}

	result, err := extractJSONObject(generated.Text)
	if err != nil {
		return nil, fmt.Errorf("decoding query suggestions: %w", err)
	}
	return result, nil
}

// maxFollowUpAnswerChars bounds how much of the answer feeds the
// follow-up prompt.
const maxFollowUpAnswerChars = 2000

// FollowUps suggests up to three follow-up questions for a Q&A
// exchange. The model may reply with a bare array or a
// {"questions": [...]} object; both are accepted.
func (s *AnalysisService) FollowUps(ctx context.Context, tenantID, question, answer string) ([]string, error) {
	answer = cutAtRune(answer, maxFollowUpAnswerChars)

	generated, err := s.generator.Generate(ctx, tenantID, fmt.Sprintf(followUpsPrompt, question, answer), followUpsSystem)
	if err != nil {
		return nil, fmt.Errorf("generating follow-ups: %w", err)
	}

	value, err := extractJSON(generated.Text)
	if err != nil {
		return nil, fmt.Errorf("decoding follow-ups: %w", err)
	}

	var raw []any
	switch v := value.(type) {
	case []any:
		raw = v
	case map[string]any:
		if questions, ok := v["questions"].([]any); ok {
			raw = questions
		}
	}

	followUps := make([]string, 0, 3)
	for _, item := range raw {
		if len(followUps) == 3 {
			break
		}
		followUps = append(followUps, fmt.Sprint(item))
	}
	return followUps, nil
}
