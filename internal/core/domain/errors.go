package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist within the
	// caller's tenant scope.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, rejected
	// before any I/O.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates an operation on a document that has not
	// finished processing. Client-correctable: retry once ready.
	ErrNotReady = errors.New("document not ready")

	// ErrUnsupportedType indicates an unknown file type for extraction.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrProviderUnavailable indicates a language-model backend could not
	// be reached. Retried across the fallback chain.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderTimeout indicates a backend did not respond within its
	// configured deadline. Retried across the fallback chain.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrNoProviderAvailable indicates the whole fallback chain was
	// skipped or exhausted. Terminal: a service-unavailable condition,
	// not a client error.
	ErrNoProviderAvailable = errors.New("no LLM provider available")

	// ErrIndexUnavailable indicates the vector index is unreachable.
	// Fatal for the current request; never retried inline.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrMalformedModelOutput indicates model output that could not be
	// decoded into the expected structure even after best-effort repair.
	ErrMalformedModelOutput = errors.New("malformed model output")
)
