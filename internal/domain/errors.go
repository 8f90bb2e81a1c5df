package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrAPIKeyMissing indicates no provider API key is configured
	ErrAPIKeyMissing = errors.New("API key is not configured")

	// ErrQuotaExceeded indicates the provider rejected the request because the daily quota is used up
	ErrQuotaExceeded = errors.New("API quota exceeded")

	// ErrProviderOffline indicates the metadata provider is unreachable
	ErrProviderOffline = errors.New("video provider is unreachable")

	// ErrSuggestionFormat indicates the suggestion endpoint returned an unexpected body
	ErrSuggestionFormat = errors.New("unexpected suggestion response")
)
