package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// Test doubles for the driving ports, with scripted data.

type fakeDocuments struct {
	docs      map[string]*domain.Document
	pages     []domain.Page
	uploadErr error
	deleted   []string
}

func newFakeDocuments() *fakeDocuments {
	processed := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	return &fakeDocuments{
		docs: map[string]*domain.Document{
			"doc-1": {
				ID:          "doc-1",
				TenantID:    "default",
				Filename:    "lease.pdf",
				FileType:    ".pdf",
				FileSize:    2048,
				Status:      domain.StatusReady,
				PageCount:   4,
				ChunkCount:  12,
				UploadedAt:  processed.Add(-time.Hour),
				ProcessedAt: &processed,
			},
		},
		pages: []domain.Page{{Text: "Term: 12 months.", Number: 1}},
	}
}

func (f *fakeDocuments) Upload(_ context.Context, tenantID, path string) (*domain.Document, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	doc := &domain.Document{
		ID:         "doc-new",
		TenantID:   tenantID,
		Filename:   filepath.Base(path),
		Status:     domain.StatusReady,
		PageCount:  2,
		ChunkCount: 6,
	}
	f.docs[doc.ID] = doc
	return &domain.Document{ID: doc.ID, TenantID: tenantID, Filename: doc.Filename, Status: domain.StatusPending}, nil
}

func (f *fakeDocuments) Get(_ context.Context, _, id string) (*domain.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDocuments) List(_ context.Context, _ string) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func (f *fakeDocuments) Delete(_ context.Context, _, id string) error {
	if _, ok := f.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDocuments) Content(_ context.Context, _, id string) ([]domain.Page, error) {
	if _, ok := f.docs[id]; !ok {
		return nil, domain.ErrNotFound
	}
	return f.pages, nil
}

func (f *fakeDocuments) Text(_ context.Context, _, id string) (string, error) {
	pages, err := f.Content(context.Background(), "", id)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(pages))
	for i := range pages {
		parts[i] = pages[i].Text
	}
	return strings.Join(parts, "\n\n"), nil
}

type fakeSearchService struct {
	citations []domain.Citation
	err       error
	queries   []string
	clauseIDs []string
}

func (f *fakeSearchService) Search(_ context.Context, _, query string, _ int) ([]domain.Citation, error) {
	f.queries = append(f.queries, query)
	return f.citations, f.err
}

func (f *fakeSearchService) SearchClause(_ context.Context, _, clauseID string, _ int) (*domain.ClauseCategory, []domain.Citation, error) {
	f.clauseIDs = append(f.clauseIDs, clauseID)
	clause := domain.ClauseByID(clauseID)
	if clause == nil {
		return nil, nil, domain.ErrInvalidInput
	}
	return clause, f.citations, f.err
}

type fakeAnswerService struct {
	answer domain.Answer
	memo   map[string]any
	err    error
	topics []string
}

func (f *fakeAnswerService) Answer(_ context.Context, _, _ string, _ int) (domain.Answer, error) {
	return f.answer, f.err
}

func (f *fakeAnswerService) Memorandum(_ context.Context, _, topic string, _ int) (map[string]any, []domain.Citation, error) {
	f.topics = append(f.topics, topic)
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.memo, f.answer.Citations, nil
}

type fakeAnalysisService struct {
	record   *domain.AnalysisRecord
	report   *domain.KeyTermsReport
	err      error
	cleared  int
	compared map[string]any
	expanded map[string]any
}

func (f *fakeAnalysisService) Analyze(_ context.Context, _, _ string, _ domain.AnalysisKind, _ bool) (*domain.AnalysisRecord, error) {
	return f.record, f.err
}

func (f *fakeAnalysisService) Clear(_ context.Context, _, _ string) (int, error) {
	return f.cleared, f.err
}

func (f *fakeAnalysisService) Compare(_ context.Context, _, _, _ string) (map[string]any, error) {
	return f.compared, f.err
}

func (f *fakeAnalysisService) ExpandQuery(_ context.Context, _, _ string) (map[string]any, error) {
	return f.expanded, f.err
}

func (f *fakeAnalysisService) FollowUps(_ context.Context, _, _, _ string) ([]string, error) {
	return nil, f.err
}

func (f *fakeAnalysisService) KeyTerms(_ context.Context, _, _ string) (*domain.KeyTermsReport, error) {
	return f.report, f.err
}

type fakeProviderAdmin struct {
	statuses   []domain.ProviderStatus
	configured []domain.ProviderKind
	chain      []domain.ProviderKind
	config     *domain.TenantLLMConfig
	err        error
}

func (f *fakeProviderAdmin) CheckStatus(_ context.Context, _ string) []domain.ProviderStatus {
	return f.statuses
}

func (f *fakeProviderAdmin) Configure(_ context.Context, _ string, kind domain.ProviderKind, _ domain.ProviderConfig) error {
	f.configured = append(f.configured, kind)
	return f.err
}

func (f *fakeProviderAdmin) SetChain(_ context.Context, _ string, chain []domain.ProviderKind) error {
	f.chain = chain
	return f.err
}

func (f *fakeProviderAdmin) Config(_ context.Context, _ string) (*domain.TenantLLMConfig, error) {
	return f.config, f.err
}

type fakeCLIExtractor struct{}

func (fakeCLIExtractor) Extract(_ context.Context, _ string) ([]domain.Page, error) {
	return nil, nil
}

func (fakeCLIExtractor) Supports(path string) bool {
	return strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".pdf")
}

type fakeWaiter struct{ waits int }

func (f *fakeWaiter) Wait() { f.waits++ }

// testServices holds the doubles installed by setupTestServices.
type testServices struct {
	docs      *fakeDocuments
	search    *fakeSearchService
	answer    *fakeAnswerService
	analysis  *fakeAnalysisService
	providers *fakeProviderAdmin
	waiter    *fakeWaiter
}

// setupTestServices installs fresh doubles and returns them with a
// cleanup that resets all package state touched by command runs.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		docs:      newFakeDocuments(),
		search:    &fakeSearchService{},
		answer:    &fakeAnswerService{},
		analysis:  &fakeAnalysisService{},
		providers: &fakeProviderAdmin{},
		waiter:    &fakeWaiter{},
	}
	SetServices(&Services{
		Documents: ts.docs,
		Search:    ts.search,
		Answer:    ts.answer,
		Analysis:  ts.analysis,
		Providers: ts.providers,
		Extractor: fakeCLIExtractor{},
		Waiter:    ts.waiter,
	})

	cleanup := func() {
		documentService = nil
		searchService = nil
		answerService = nil
		analysisService = nil
		providerAdmin = nil
		textExtractor = nil
		processingWaiter = nil

		flagVerbose = false
		flagTenant = ""
		flagConfig = ""
		uploadWait = true
		documentsJSON = false
		termsJSON = false
		clausesLimit = 10
		clausesJSON = false
		memoLimit = 8
		searchLimit = 5
		searchJSON = false
		searchSuggest = false
		askTopK = 5
		askJSON = false
		askTUI = false
		analyzeKind = "summary"
		analyzeRefresh = false
		providerModel = ""
		providerEndpoint = ""
		providerDeployment = ""
		providerTimeout = 0
		providerDisable = false
		providerEnable = false
		providerNoKey = false

		rootCmd.SetArgs(nil)
	}
	return ts, cleanup
}
