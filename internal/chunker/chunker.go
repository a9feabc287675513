// Package chunker splits extracted page text into overlapping,
// sentence-respecting word windows suitable for embedding and retrieval.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// Default window parameters, in words.
const (
	DefaultChunkSize = 200
	DefaultOverlap   = 50
)

// sentenceSplitter breaks text at sentence-ending punctuation followed by
// whitespace. Sentence boundaries are not chunk boundaries; the split only
// avoids mid-sentence artifacts before the text is flattened back to words.
var sentenceSplitter = regexp.MustCompile(`([.!?])\s+`)

// Chunker produces chunks from extracted pages using a sliding word window.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in words.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive windows in words.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker with the given options. It fails with
// domain.ErrInvalidInput when the window cannot advance: a non-positive
// chunk size, a negative overlap, or overlap >= chunk size.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d",
			domain.ErrInvalidInput, c.chunkSize)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d",
			domain.ErrInvalidInput, c.overlap)
	}
	if c.overlap >= c.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, c.overlap, c.chunkSize)
	}

	return c, nil
}

// Chunk slides a window of chunkSize words with step chunkSize-overlap
// across each page's word sequence and emits one chunk per window
// position. Chunk indices are contiguous across all pages, starting at 0.
// The trailing partial window is emitted once; empty pages yield no chunks.
func (c *Chunker) Chunk(pages []domain.Page, documentID, documentName string) []domain.Chunk {
	var chunks []domain.Chunk
	chunkIndex := 0

	for _, page := range pages {
		words := pageWords(page.Text)
		if len(words) == 0 {
			continue
		}

		start := 0
		for start < len(words) {
			end := start + c.chunkSize
			if end > len(words) {
				end = len(words)
			}

			text := strings.Join(words[start:end], " ")
			if strings.TrimSpace(text) != "" {
				chunks = append(chunks, domain.Chunk{
					Text:         text,
					DocumentID:   documentID,
					DocumentName: documentName,
					Page:         page.Number,
					Paragraph:    start/c.chunkSize + 1,
					Index:        chunkIndex,
				})
				chunkIndex++
			}

			if end >= len(words) {
				break
			}
			start += c.chunkSize - c.overlap
		}
	}

	return chunks
}

// pageWords splits page text into sentences, then flattens the sentences
// into a single word sequence.
func pageWords(text string) []string {
	normalised := sentenceSplitter.ReplaceAllString(text, "$1\n")

	var words []string
	for _, sentence := range strings.Split(normalised, "\n") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		words = append(words, strings.Fields(sentence)...)
	}
	return words
}
