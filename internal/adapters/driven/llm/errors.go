// Package llm holds shared helpers for the LLM provider adapters in
// its subpackages.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

// WrapRequestError classifies a transport-level failure so the fallback
// manager can decide whether to continue down the provider chain.
// Timeouts map to domain.ErrProviderTimeout, everything else that kept
// the request from completing maps to domain.ErrProviderUnavailable.
func WrapRequestError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: request timed out: %w", provider, domain.ErrProviderTimeout)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: request timed out: %w", provider, domain.ErrProviderTimeout)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: request canceled: %w", provider, err)
	}

	return fmt.Errorf("%s: backend unreachable: %v: %w", provider, err, domain.ErrProviderUnavailable)
}

// WrapStatusError classifies a non-OK HTTP response. Server-side and
// throttling statuses are retryable down the chain, client errors
// (bad key, bad model) are not.
func WrapStatusError(provider string, statusCode int, body string) error {
	switch {
	case statusCode == http.StatusRequestTimeout:
		return fmt.Errorf("%s: status %d: %s: %w", provider, statusCode, body, domain.ErrProviderTimeout)
	case statusCode == http.StatusTooManyRequests || statusCode >= 500:
		return fmt.Errorf("%s: status %d: %s: %w", provider, statusCode, body, domain.ErrProviderUnavailable)
	default:
		return fmt.Errorf("%s error (status %d): %s", provider, statusCode, body)
	}
}
