package domain

import (
	"strconv"
	"time"
)

// ProcessingStatus tracks a document through its ingestion lifecycle.
// Transitions are pending -> processing -> ready|error. The status field is
// the only cross-request signal callers poll for completion.
type ProcessingStatus string

// Document lifecycle states.
const (
	// StatusPending means the upload has been accepted but not yet picked up.
	StatusPending ProcessingStatus = "pending"

	// StatusProcessing means extraction, chunking and indexing are underway.
	StatusProcessing ProcessingStatus = "processing"

	// StatusReady means the document is fully indexed and searchable.
	StatusReady ProcessingStatus = "ready"

	// StatusError means processing failed; ErrorMessage holds the cause.
	StatusError ProcessingStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s ProcessingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReady, StatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ProcessingStatus) String() string {
	return string(s)
}

// Document represents an uploaded file owned by a tenant.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// TenantID scopes the document to its owning tenant.
	TenantID string

	// Filename is the original upload filename.
	Filename string

	// FileType is the lowercase file extension, including the dot.
	FileType string

	// FileSize is the stored file size in bytes.
	FileSize int64

	// Status is the current processing state.
	Status ProcessingStatus

	// PageCount is the number of extracted pages, set once processed.
	PageCount int

	// ChunkCount is the number of indexed chunks, set once processed.
	ChunkCount int

	// ErrorMessage holds the processing failure cause when Status is error.
	ErrorMessage string

	// UploadedAt is when the upload was accepted.
	UploadedAt time.Time

	// ProcessedAt is when processing completed, nil until then.
	ProcessedAt *time.Time
}

// Page is one unit of extracted document text, in document order.
type Page struct {
	// Text is the extracted page text.
	Text string

	// Number is the 1-based page number, or 0 when the source format has
	// no page notion (plain text, DOCX).
	Number int
}

// Chunk is a bounded, overlapping window of a document's words. It is the
// unit of embedding and retrieval. Chunks are immutable once created:
// identity is DocumentID plus Index, created in bulk during processing and
// deleted in bulk with the owning document.
type Chunk struct {
	// Text is the chunk's word window joined with single spaces.
	Text string

	// DocumentID identifies the owning document.
	DocumentID string

	// DocumentName is the owning document's filename, carried for citations.
	DocumentName string

	// Page is the 1-based source page, or 0 when unknown.
	Page int

	// Paragraph is a coarse position marker within the page.
	Paragraph int

	// Index is the chunk's ordinal across the whole document, starting at 0.
	Index int
}

// VectorID returns the chunk's identity in the vector index. Re-indexing
// the same document overwrites records under the same IDs rather than
// duplicating them.
func (c Chunk) VectorID() string {
	return c.DocumentID + "_chunk_" + strconv.Itoa(c.Index)
}

// Citation is a scored, source-attributed chunk returned as a retrieval
// result. Citations are derived per query, never persisted.
type Citation struct {
	// DocumentID identifies the source document.
	DocumentID string

	// DocumentName is the source document's filename.
	DocumentName string

	// Page is the 1-based source page, or 0 when unknown.
	Page int

	// Paragraph is the coarse position within the page, or 0 when unknown.
	Paragraph int

	// Text is the matched chunk text.
	Text string

	// Score is the normalised similarity in [0, 1], 1 being the best match.
	Score float64
}

// Answer is the result of a grounded question-answering turn.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Citations are the retrieval results the answer was grounded on,
	// best first. Their numbering matches the [n] references in Text.
	Citations []Citation

	// FollowUps are suggested follow-up questions. Generation is
	// best-effort; the slice is empty when suggestion generation failed.
	FollowUps []string
}
