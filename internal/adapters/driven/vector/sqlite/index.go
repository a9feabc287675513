// Package sqlite provides a vector index backed by an embedded SQLite
// database. Embeddings are stored as little-endian float32 blobs and
// queried by brute-force cosine distance, which is adequate for the
// per-tenant corpus sizes this system targets.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// maxBatchSize bounds a single upsert transaction. Larger inputs are
// split internally; callers never need to know the limit.
const maxBatchSize = 500

// Index is a SQLite-backed vector index.
type Index struct {
	db *sql.DB
}

// NewIndex opens (or creates) the vector database inside dataDir.
func NewIndex(dataDir string) (*Index, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening vector database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS vectors (
			id            TEXT PRIMARY KEY,
			tenant_id     TEXT NOT NULL,
			document_id   TEXT NOT NULL,
			document_name TEXT NOT NULL,
			page          INTEGER NOT NULL,
			paragraph     INTEGER NOT NULL,
			chunk_index   INTEGER NOT NULL,
			content       TEXT NOT NULL,
			embedding     BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_vectors_tenant ON vectors(tenant_id);
		CREATE INDEX IF NOT EXISTS idx_vectors_document ON vectors(tenant_id, document_id);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vectors table: %w", err)
	}

	return &Index{db: db}, nil
}

// Upsert writes records in batches of at most maxBatchSize, each in its
// own transaction. Re-adding an existing ID overwrites the record.
func (x *Index) Upsert(ctx context.Context, records []driven.VectorRecord) (int, error) {
	written := 0
	for start := 0; start < len(records); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := x.upsertBatch(ctx, records[start:end]); err != nil {
			return written, err
		}
		written += end - start
	}
	return written, nil
}

func (x *Index) upsertBatch(ctx context.Context, records []driven.VectorRecord) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrIndexUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (id, tenant_id, document_id, document_name, page, paragraph, chunk_index, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			document_id = excluded.document_id,
			document_name = excluded.document_name,
			page = excluded.page,
			paragraph = excluded.paragraph,
			chunk_index = excluded.chunk_index,
			content = excluded.content,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		m := rec.Metadata
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.TenantID, m.DocumentID,
			m.DocumentName, m.Page, m.Paragraph, m.ChunkIndex, rec.Text,
			float32SliceToBytes(rec.Embedding)); err != nil {
			return fmt.Errorf("saving vector record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Query scans the tenant's records and returns the topK nearest by cosine
// distance, nearest first.
func (x *Index) Query(ctx context.Context, tenantID string, embedding []float32, topK int) ([]driven.VectorHit, error) {
	rows, err := x.db.QueryContext(ctx, `
		SELECT id, document_id, document_name, page, paragraph, chunk_index, content, embedding
		FROM vectors WHERE tenant_id = ?
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying vectors: %w", domain.ErrIndexUnavailable, err)
	}
	defer rows.Close()

	var hits []driven.VectorHit
	for rows.Next() {
		var hit driven.VectorHit
		var blob []byte
		if err := rows.Scan(&hit.ID, &hit.Metadata.DocumentID, &hit.Metadata.DocumentName,
			&hit.Metadata.Page, &hit.Metadata.Paragraph, &hit.Metadata.ChunkIndex,
			&hit.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning vector record: %w", err)
		}
		hit.Distance = cosineDistance(embedding, bytesToFloat32Slice(blob))
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vector records: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if topK < 0 {
		topK = 0
	}
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

// DeleteByDocument removes all of the document's records for the tenant.
func (x *Index) DeleteByDocument(ctx context.Context, tenantID, documentID string) (int, error) {
	res, err := x.db.ExecContext(ctx,
		"DELETE FROM vectors WHERE tenant_id = ? AND document_id = ?",
		tenantID, documentID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting vectors: %w", domain.ErrIndexUnavailable, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted vectors: %w", err)
	}
	return int(deleted), nil
}

// Count returns the tenant's record count.
func (x *Index) Count(ctx context.Context, tenantID string) (int, error) {
	var count int
	row := x.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vectors WHERE tenant_id = ?", tenantID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting vectors: %w", domain.ErrIndexUnavailable, err)
	}
	return count, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// cosineDistance returns 1 - cos(a, b) in [0, 2]. Mismatched or
// zero-magnitude vectors get the neutral distance 1.
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return 1 - cos
}

// float32SliceToBytes converts a float32 slice to a little-endian blob.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a blob back to a float32 slice.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
