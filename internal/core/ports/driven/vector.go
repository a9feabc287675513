package driven

import "context"

// ChunkMetadata is the citation-bearing metadata stored alongside each
// vector record.
type ChunkMetadata struct {
	// DocumentID identifies the owning document.
	DocumentID string

	// DocumentName is the owning document's filename.
	DocumentName string

	// Page is the 1-based source page, or 0 when unknown.
	Page int

	// Paragraph is the coarse position within the page.
	Paragraph int

	// ChunkIndex is the chunk's ordinal within the document.
	ChunkIndex int
}

// VectorRecord is one embedded chunk as stored in the index. Records are
// owned exclusively by the index adapter; the chunker and retriever never
// touch raw vectors directly.
type VectorRecord struct {
	// ID is the record identity, documentID_chunk_N. Upserting the same
	// ID overwrites rather than duplicates.
	ID string

	// TenantID tags the record with its isolation scope.
	TenantID string

	// Text is the chunk text.
	Text string

	// Embedding is the chunk's vector representation.
	Embedding []float32

	// Metadata carries the citation fields.
	Metadata ChunkMetadata
}

// VectorHit is one similarity search result.
type VectorHit struct {
	// ID is the matched record's identity.
	ID string

	// Text is the matched chunk text.
	Text string

	// Metadata carries the citation fields.
	Metadata ChunkMetadata

	// Distance is the raw cosine distance in [0, 2]: 0 identical,
	// 2 opposite. Score normalisation happens in the retrieval service.
	Distance float64
}

// VectorIndex owns the contract for the per-tenant vector store. All
// operations are tenant-scoped and safe for concurrent use.
type VectorIndex interface {
	// Upsert writes records, splitting oversized inputs into batches
	// internally. Callers never need to know the batch limit. Returns the
	// number of records written.
	Upsert(ctx context.Context, records []VectorRecord) (int, error)

	// Query returns the topK nearest records for the tenant, nearest
	// first by raw distance. topK larger than the record count is clamped,
	// never an error.
	Query(ctx context.Context, tenantID string, embedding []float32, topK int) ([]VectorHit, error)

	// DeleteByDocument removes every record belonging to the document and
	// returns how many were removed.
	DeleteByDocument(ctx context.Context, tenantID, documentID string) (int, error)

	// Count returns the tenant's total record count.
	Count(ctx context.Context, tenantID string) (int, error)

	// Close releases resources.
	Close() error
}
