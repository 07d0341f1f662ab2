package repository

import "errors"

// Sentinel errors shared by every repository implementation.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
