package core

import "errors"

// Common errors.
var (
	// ErrNoRecord is returned by Storage.Get when no record exists for a key.
	ErrNoRecord = errors.New("no record")

	// ErrEmptyDraft rejects a save with neither title nor content.
	ErrEmptyDraft = errors.New("note has no title or content")
)
