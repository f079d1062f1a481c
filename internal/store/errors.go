package store

import "errors"

// ErrNotFound is returned by Get when no document exists at the key.
var ErrNotFound = errors.New("document not found")
