// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): language-model backends, the embedding
// gateway, the vector index, persistent stores, text extraction and
// credential encryption.
package driven
