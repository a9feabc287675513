// Package sqlite provides SQLite-backed metadata storage: document
// records, per-tenant LLM configuration and the analysis cache.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lexvault-labs/lexvault/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store inside dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL mode for concurrent readers during background processing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// LLMConfigStore returns an LLMConfigStore interface backed by this store.
func (s *Store) LLMConfigStore() driven.LLMConfigStore {
	return &llmConfigStore{store: s}
}

// AnalysisStore returns an AnalysisStore interface backed by this store.
func (s *Store) AnalysisStore() driven.AnalysisStore {
	return &analysisStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save stores or replaces a document record.
func (s *documentStore) Save(ctx context.Context, doc domain.Document) error {
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	var processedAt any
	if doc.ProcessedAt != nil {
		processedAt = doc.ProcessedAt.UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, tenant_id, filename, file_type, file_size, status,
			page_count, chunk_count, error_message, uploaded_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			filename = excluded.filename,
			file_type = excluded.file_type,
			file_size = excluded.file_size,
			status = excluded.status,
			page_count = excluded.page_count,
			chunk_count = excluded.chunk_count,
			error_message = excluded.error_message,
			uploaded_at = excluded.uploaded_at,
			processed_at = excluded.processed_at
	`, doc.ID, doc.TenantID, doc.Filename, doc.FileType, doc.FileSize, doc.Status.String(),
		doc.PageCount, doc.ChunkCount, doc.ErrorMessage, doc.UploadedAt.UTC(), processedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID within the tenant scope.
func (s *documentStore) Get(ctx context.Context, tenantID, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, filename, file_type, file_size, status,
			page_count, chunk_count, error_message, uploaded_at, processed_at
		FROM documents WHERE tenant_id = ? AND id = ?
	`, tenantID, id)

	return scanDocument(row.Scan)
}

// List returns the tenant's documents, newest upload first.
func (s *documentStore) List(ctx context.Context, tenantID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, tenant_id, filename, file_type, file_size, status,
			page_count, chunk_count, error_message, uploaded_at, processed_at
		FROM documents WHERE tenant_id = ?
		ORDER BY uploaded_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Delete removes a document record within the tenant scope.
func (s *documentStore) Delete(ctx context.Context, tenantID, id string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM documents WHERE tenant_id = ? AND id = ?", tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// scanDocument scans one document row.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var status string
	var processedAt sql.NullTime

	if err := scan(&doc.ID, &doc.TenantID, &doc.Filename, &doc.FileType, &doc.FileSize,
		&status, &doc.PageCount, &doc.ChunkCount, &doc.ErrorMessage,
		&doc.UploadedAt, &processedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.ProcessingStatus(status)
	if processedAt.Valid {
		t := processedAt.Time
		doc.ProcessedAt = &t
	}
	return &doc, nil
}

// ==================== LLM Config Store ====================

// llmConfigStore implements driven.LLMConfigStore.
type llmConfigStore struct {
	store *Store
}

var _ driven.LLMConfigStore = (*llmConfigStore)(nil)

// Get retrieves a tenant's provider configuration.
func (s *llmConfigStore) Get(ctx context.Context, tenantID string) (*domain.TenantLLMConfig, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT tenant_id, chain, providers, updated_at
		FROM llm_configs WHERE tenant_id = ?
	`, tenantID)

	var cfg domain.TenantLLMConfig
	var chainJSON, providersJSON string

	if err := row.Scan(&cfg.TenantID, &chainJSON, &providersJSON, &cfg.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning llm config: %w", err)
	}

	if err := json.Unmarshal([]byte(chainJSON), &cfg.Chain); err != nil {
		return nil, fmt.Errorf("unmarshalling chain: %w", err)
	}
	if err := json.Unmarshal([]byte(providersJSON), &cfg.Providers); err != nil {
		return nil, fmt.Errorf("unmarshalling providers: %w", err)
	}

	return &cfg, nil
}

// Save stores or replaces a tenant's provider configuration.
func (s *llmConfigStore) Save(ctx context.Context, cfg domain.TenantLLMConfig) error {
	chainJSON, err := json.Marshal(cfg.Chain)
	if err != nil {
		return fmt.Errorf("marshalling chain: %w", err)
	}
	providersJSON, err := json.Marshal(cfg.Providers)
	if err != nil {
		return fmt.Errorf("marshalling providers: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO llm_configs (tenant_id, chain, providers, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tenant_id) DO UPDATE SET
			chain = excluded.chain,
			providers = excluded.providers,
			updated_at = excluded.updated_at
	`, cfg.TenantID, string(chainJSON), string(providersJSON), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving llm config: %w", err)
	}
	return nil
}

// ==================== Analysis Store ====================

// analysisStore implements driven.AnalysisStore.
type analysisStore struct {
	store *Store
}

var _ driven.AnalysisStore = (*analysisStore)(nil)

// Get retrieves the cached analysis for (documentID, kind, tenantID).
func (s *analysisStore) Get(ctx context.Context, tenantID, documentID string, kind domain.AnalysisKind) (*domain.AnalysisRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document_id, kind, tenant_id, result, created_at
		FROM analyses WHERE tenant_id = ? AND document_id = ? AND kind = ?
	`, tenantID, documentID, kind.String())

	var rec domain.AnalysisRecord
	var kindStr, resultJSON string

	if err := row.Scan(&rec.DocumentID, &kindStr, &rec.TenantID, &resultJSON, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}

	rec.Kind = domain.AnalysisKind(kindStr)
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, fmt.Errorf("unmarshalling analysis result: %w", err)
	}

	return &rec, nil
}

// Save upserts an analysis record, replacing the whole prior result.
func (s *analysisStore) Save(ctx context.Context, rec domain.AnalysisRecord) error {
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshalling analysis result: %w", err)
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO analyses (document_id, kind, tenant_id, result, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(document_id, kind, tenant_id) DO UPDATE SET
			result = excluded.result,
			created_at = excluded.created_at
	`, rec.DocumentID, rec.Kind.String(), rec.TenantID, string(resultJSON), rec.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// DeleteByDocument removes all cached analyses for the document.
func (s *analysisStore) DeleteByDocument(ctx context.Context, tenantID, documentID string) (int, error) {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM analyses WHERE tenant_id = ? AND document_id = ?", tenantID, documentID)
	if err != nil {
		return 0, fmt.Errorf("deleting analyses: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted analyses: %w", err)
	}
	return int(deleted), nil
}
