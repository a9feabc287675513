package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexvault-labs/lexvault/internal/chunker"
	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driving"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// Ensure DocumentService implements the interfaces.
var (
	_ driving.DocumentService = (*DocumentService)(nil)
	_ TextSource              = (*DocumentService)(nil)
)

// Summarizer triggers the opportunistic auto-summary after processing.
// Satisfied by AnalysisService.
type Summarizer interface {
	Analyze(ctx context.Context, tenantID, documentID string, kind domain.AnalysisKind, forceRefresh bool) (*domain.AnalysisRecord, error)
}

// DocumentService owns the document lifecycle: upload, background
// processing into the vector index, inspection and deletion.
type DocumentService struct {
	docStore         driven.DocumentStore
	analysisStore    driven.AnalysisStore
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	extractor        driven.TextExtractor
	chunker          *chunker.Chunker
	dataDir          string

	summarizer Summarizer

	wg sync.WaitGroup
}

// NewDocumentService creates a new document service. Uploaded files are
// copied under dataDir.
func NewDocumentService(
	docStore driven.DocumentStore,
	analysisStore driven.AnalysisStore,
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
	extractor driven.TextExtractor,
	chnk *chunker.Chunker,
	dataDir string,
) *DocumentService {
	return &DocumentService{
		docStore:         docStore,
		analysisStore:    analysisStore,
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
		extractor:        extractor,
		chunker:          chnk,
		dataDir:          dataDir,
	}
}

// SetSummarizer enables the opportunistic auto-summary after
// processing. Optional; set after construction because the analysis
// service reads document text back through this service.
func (s *DocumentService) SetSummarizer(summarizer Summarizer) {
	s.summarizer = summarizer
}

// Wait blocks until all in-flight background processing finishes. The
// CLI calls this before exiting so uploads are not cut short.
func (s *DocumentService) Wait() {
	s.wg.Wait()
}

// storedPath is the canonical location of a document's file copy.
func (s *DocumentService) storedPath(doc *domain.Document) string {
	return filepath.Join(s.dataDir, "files", doc.TenantID, doc.ID+doc.FileType)
}

// Upload registers the file, copies it into the data directory and
// starts background processing. The returned document is StatusPending;
// processing happens on a detached context so the caller's cancellation
// never aborts it.
func (s *DocumentService) Upload(ctx context.Context, tenantID, path string) (*domain.Document, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant required: %w", domain.ErrInvalidInput)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, domain.ErrInvalidInput)
	}
	if !s.extractor.Supports(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Ext(path), domain.ErrUnsupportedType)
	}

	doc := &domain.Document{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Filename:   filepath.Base(path),
		FileType:   strings.ToLower(filepath.Ext(path)),
		FileSize:   info.Size(),
		Status:     domain.StatusPending,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.copyFile(path, s.storedPath(doc)); err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	if err := s.docStore.Save(ctx, *doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	logger.Info("Document %s uploaded (%s, %d bytes)", doc.ID, doc.Filename, doc.FileSize)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// Detached from the caller's context: an upload that returned
		// must finish processing even if the request context ends.
		s.process(context.Background(), *doc)
	}()

	return doc, nil
}

// copyFile copies src to dst, creating parent directories.
func (s *DocumentService) copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// process runs the extract-chunk-embed-index pipeline and lands the
// document in StatusReady or StatusError.
func (s *DocumentService) process(ctx context.Context, doc domain.Document) {
	doc.Status = domain.StatusProcessing
	if err := s.docStore.Save(ctx, doc); err != nil {
		logger.Error("Marking document %s processing failed: %v", doc.ID, err)
		return
	}

	if err := s.index(ctx, &doc); err != nil {
		logger.Warn("Processing document %s failed: %v", doc.ID, err)
		doc.Status = domain.StatusError
		doc.ErrorMessage = err.Error()
		if saveErr := s.docStore.Save(ctx, doc); saveErr != nil {
			logger.Error("Marking document %s errored failed: %v", doc.ID, saveErr)
		}
		return
	}

	now := time.Now().UTC()
	doc.Status = domain.StatusReady
	doc.ErrorMessage = ""
	doc.ProcessedAt = &now
	if err := s.docStore.Save(ctx, doc); err != nil {
		logger.Error("Marking document %s ready failed: %v", doc.ID, err)
		return
	}

	logger.Info("Document %s processed: %d pages, %d chunks", doc.ID, doc.PageCount, doc.ChunkCount)

	// Auto-summary warms the cache. Failures never flip status.
	if s.summarizer != nil {
		if _, err := s.summarizer.Analyze(ctx, doc.TenantID, doc.ID, domain.AnalysisSummary, false); err != nil {
			logger.Debug("Auto-summary for %s skipped: %v", doc.ID, err)
		}
	}
}

// index extracts, chunks, embeds and upserts the document, filling in
// the page and chunk counts.
func (s *DocumentService) index(ctx context.Context, doc *domain.Document) error {
	pages, err := s.extractor.Extract(ctx, s.storedPath(doc))
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	doc.PageCount = len(pages)

	chunks := s.chunker.Chunk(pages, doc.ID, doc.Filename)
	doc.ChunkCount = len(chunks)
	if len(chunks) == 0 {
		logger.Debug("Document %s produced no chunks", doc.ID)
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := s.embeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count %d does not match chunk count %d", len(embeddings), len(chunks))
	}

	records := make([]driven.VectorRecord, len(chunks))
	for i, c := range chunks {
		records[i] = driven.VectorRecord{
			ID:        c.VectorID(),
			TenantID:  doc.TenantID,
			Text:      c.Text,
			Embedding: embeddings[i],
			Metadata: driven.ChunkMetadata{
				DocumentID:   c.DocumentID,
				DocumentName: c.DocumentName,
				Page:         c.Page,
				Paragraph:    c.Paragraph,
				ChunkIndex:   c.Index,
			},
		}
	}

	if _, err := s.vectorIndex.Upsert(ctx, records); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

// Get returns a document record within the tenant scope.
func (s *DocumentService) Get(ctx context.Context, tenantID, id string) (*domain.Document, error) {
	return s.docStore.Get(ctx, tenantID, id)
}

// List returns the tenant's documents, newest upload first.
func (s *DocumentService) List(ctx context.Context, tenantID string) ([]domain.Document, error) {
	return s.docStore.List(ctx, tenantID)
}

// Delete removes the document's vector records, cached analyses,
// stored file and record. Another tenant's document behaves as absent.
func (s *DocumentService) Delete(ctx context.Context, tenantID, id string) error {
	doc, err := s.docStore.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if _, err := s.vectorIndex.DeleteByDocument(ctx, tenantID, id); err != nil {
		return fmt.Errorf("deleting vectors: %w", err)
	}
	if _, err := s.analysisStore.DeleteByDocument(ctx, tenantID, id); err != nil {
		return fmt.Errorf("deleting analyses: %w", err)
	}
	if err := os.Remove(s.storedPath(doc)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}
	if err := s.docStore.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	logger.Info("Document %s deleted", id)
	return nil
}

// Content re-extracts and returns the document's pages. Extraction
// always re-runs rather than caching extracted text; documents are
// small enough that re-reading beats a second storage surface.
func (s *DocumentService) Content(ctx context.Context, tenantID, id string) ([]domain.Page, error) {
	doc, err := s.docStore.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	pages, err := s.extractor.Extract(ctx, s.storedPath(doc))
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return pages, nil
}

// Text re-extracts the document and joins its pages into one string.
func (s *DocumentService) Text(ctx context.Context, tenantID, id string) (string, error) {
	pages, err := s.Content(ctx, tenantID, id)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n\n"), nil
}
