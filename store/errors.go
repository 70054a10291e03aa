package store

import "errors"

var (
	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate")
	// ErrInsufficientStock means a conditional stock decrement did not match.
	ErrInsufficientStock = errors.New("insufficient stock")
)
