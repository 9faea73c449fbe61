package service

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary. Anything
// else surfaces as an opaque internal failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
)
