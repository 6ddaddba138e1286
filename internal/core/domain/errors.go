package domain

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps them
// onto response statuses.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTitleRequired      = errors.New("title is required")

	ErrInvalidCode     = errors.New("invalid code format")
	ErrCodeNotFound    = errors.New("code not found")
	ErrSelfContact     = errors.New("cannot add yourself")
	ErrContactExists   = errors.New("contact already added")
	ErrContactNotFound = errors.New("contact not found")
	ErrAlertNotFound   = errors.New("alert not found")
	ErrCodeGeneration  = errors.New("failed to generate unique code")

	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyQuery      = errors.New("query is required")
	ErrEmptyPrompt     = errors.New("prompt is required")
	ErrUpstream        = errors.New("upstream service error")

	ErrNotFound = errors.New("not found")
)
