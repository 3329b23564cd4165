//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/effdiff/domain"
)

// FileDiffBuilder helps create test file diffs with a fluent interface.
type FileDiffBuilder struct {
	*testkit.BaseBuilder
	oldPath string
	newPath string
	hunks   []domain.Hunk
}

// NewFileDiffBuilder creates a new file diff builder with sensible defaults.
func NewFileDiffBuilder() *FileDiffBuilder {
	return &FileDiffBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		oldPath:     "pkg/service.go",
		newPath:     "pkg/service.go",
	}
}

// WithOldPath sets the old-side path.
func (b *FileDiffBuilder) WithOldPath(path string) *FileDiffBuilder {
	b.oldPath = path
	return b
}

// WithNewPath sets the new-side path.
func (b *FileDiffBuilder) WithNewPath(path string) *FileDiffBuilder {
	b.newPath = path
	return b
}

// WithHunk appends a hunk.
func (b *FileDiffBuilder) WithHunk(hunk domain.Hunk) *FileDiffBuilder {
	b.hunks = append(b.hunks, hunk)
	return b
}

// Build creates the file diff (satisfies testkit.Builder interface).
func (b *FileDiffBuilder) Build() interface{} {
	return b.BuildFileDiff()
}

// BuildFileDiff creates the file diff with a concrete return type.
func (b *FileDiffBuilder) BuildFileDiff() domain.FileDiff {
	return domain.FileDiff{
		OldPath: b.oldPath,
		NewPath: b.newPath,
		Hunks:   b.hunks,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *FileDiffBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.oldPath = "pkg/service.go"
	b.newPath = "pkg/service.go"
	b.hunks = nil
	return b
}

// Clone creates a deep copy of the FileDiffBuilder.
func (b *FileDiffBuilder) Clone() testkit.Builder {
	hunks := make([]domain.Hunk, len(b.hunks))
	copy(hunks, b.hunks)
	return &FileDiffBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		oldPath:     b.oldPath,
		newPath:     b.newPath,
		hunks:       hunks,
	}
}
