package repository

import "errors"

var (
	// ErrNotReady indicates the backing database connection could not be established.
	ErrNotReady = errors.New("store is not ready")
	// ErrConflict indicates a category name is already taken.
	ErrConflict = errors.New("category name already exists")
)
