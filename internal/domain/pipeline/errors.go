package pipeline

import "errors"

// Sentinel kinds for view lookups.
var (
	ErrUnknownView = errors.New("unknown view")
)
