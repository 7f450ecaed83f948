package domain

import "errors"

// Validation and conflict errors.
var (
	ErrValidation    = errors.New("invalid payload")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	// ErrUserExists is returned by the store when a unique index rejects an insert.
	ErrUserExists = errors.New("user already exists")
)

// Authentication errors. Every token verification failure collapses into
// ErrTokenInvalid so callers cannot tell which check failed.
var (
	ErrTokenMissing       = errors.New("token is missing")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Authorization errors.
var (
	ErrForbidden   = errors.New("unauthorized")
	ErrNotApproved = errors.New("account is not approved yet")
)

// Lifecycle errors. Approval reports a missing provider and an
// already approved one with the same error.
var (
	ErrNotFoundOrApproved = errors.New("provider not found or already approved")
	ErrProviderNotFound   = errors.New("provider not found")
)
