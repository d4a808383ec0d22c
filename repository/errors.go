package repository

import "errors"

// Sentinel errors shared by all stores. Services and controllers match on
// these with errors.Is and map them to HTTP status codes at the boundary.
var (
	ErrNotFound       = errors.New("not found")
	ErrOutOfStock     = errors.New("insufficient stock")
	ErrDuplicateEmail = errors.New("email already registered")
)
