package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidProfile is returned when a pet profile is missing required fields
	ErrInvalidProfile = errors.New("invalid pet profile")

	// ErrProductNotFound is returned when a compareId is not in the current catalog snapshot
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrProfileNotFound is returned when a stored pet profile does not exist
	ErrProfileNotFound = errors.New("pet profile not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in a cache or key-value store
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when no catalog snapshot has been loaded yet
	ErrCatalogUnavailable = errors.New("catalog not loaded")

	// ErrSourceFailure is returned when a product data source cannot be read
	ErrSourceFailure = errors.New("product source failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ConfigurationError reports a profile that cannot be matched against.
// It unwraps to ErrInvalidProfile.
type ConfigurationError struct {
	Fields []string
	Reason string
}

func (e *ConfigurationError) Error() string {
	msg := ErrInvalidProfile.Error()
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Fields, ", "))
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidProfile
}
