package repository

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrMissingColumn         = errors.New("dataset header missing required column")
	ErrInvalidYear           = errors.New("dataset year is not an integer")
	ErrInvalidSource         = errors.New("invalid dataset source")
	ErrObjectStoreConfig     = errors.New("object store not configured")
	ErrObjectStoreNotReached = errors.New("object store unreachable")
)
