package domain

import (
	"context"
	"errors"
)

// ErrFileNotFound is returned by a ContentProvider when the requested
// path does not exist on the requested side.
var ErrFileNotFound = errors.New("file not found")

// Differ is the pluggable line-diff collaborator. Implementations may
// shell out to an external tool or diff in-process; the engine only
// relies on the returned hunk shape. Line numbers in the returned hunks
// are 1-indexed positions within the given texts.
type Differ interface {
	// Rediff computes a line-level diff between two texts.
	Rediff(ctx context.Context, oldText, newText string) ([]Hunk, error)
}

// ContentProvider supplies full file contents for both revisions of the
// diff. Missing files are reported with ErrFileNotFound.
type ContentProvider interface {
	// OldContent returns the full content of path in the old revision.
	OldContent(ctx context.Context, path string) (string, error)

	// NewContent returns the full content of path in the new revision.
	NewContent(ctx context.Context, path string) (string, error)
}
