package models

import "errors"

// Error kinds surfaced by model functions. Handlers map these onto HTTP
// statuses; everything else is treated as an internal failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)
