// Package common defines shared sentinel errors used across NoteKeeper
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential taxonomy. Login failures collapse into ErrInvalidCredentials
	// and every refresh failure into ErrInvalidRefreshToken, so a caller
	// cannot tell which check rejected the request.
	ErrDuplicateCredential = errors.New("duplicate credential")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// Auth errors (invalid, expired, or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
