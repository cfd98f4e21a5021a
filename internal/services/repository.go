// Package services provides repository interfaces and their SQLite and
// in-memory implementations for the saved combination and search history
// collections.
package services

import "errors"

// Sentinel errors returned by repositories.
var (
	ErrNotFound = errors.New("not found")
)
