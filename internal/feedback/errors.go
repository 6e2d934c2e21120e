// Package feedback implements difficulty feedback providers.
package feedback

import "errors"

var (
	// ErrMalformed is returned when a provider reply is not a usable verdict.
	ErrMalformed = errors.New("malformed verdict")
	// ErrRateLimited is returned when a call exceeds the provider budget.
	ErrRateLimited = errors.New("feedback rate limited")
	// ErrNoCredential is returned when a remote provider has no API key.
	ErrNoCredential = errors.New("no API key configured")
)
