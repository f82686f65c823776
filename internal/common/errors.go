// Package common defines shared sentinel errors and small helpers used
// across the vault core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorAlreadyExists    = errors.New("already exists")
	ErrorStoreUnavailable = errors.New("store unavailable")

	// Session-level errors.
	ErrorAuthenticationFailed = errors.New("authentication failed")
	ErrorAccessDenied         = errors.New("access denied")
	ErrorNotAuthenticated     = errors.New("not authenticated")

	// Crypto errors (wrong key, truncated or tampered token).
	ErrorCryptoFailure = errors.New("invalid ciphertext or key")

	// Validation errors (empty username, password or label).
	ErrorInvalidInput = errors.New("invalid input")
)
