package services

import "errors"

// Sentinel errors for the service layer; handlers map them to HTTP status
// codes. ErrNotFound covers both absent records and records owned by a
// different user, so responses never disclose existence.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate")
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
