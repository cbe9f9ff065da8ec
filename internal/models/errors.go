package models

import "errors"

// Error kinds produced by the service layer. Handlers map these to HTTP
// status codes with errors.Is; everything else is treated as internal.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)
