//go:build unit

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/effdiff/domain"
	"github.com/rios0rios0/effdiff/test/domain/entitybuilders"
)

func TestFileDiffBuilder(t *testing.T) {
	t.Parallel()

	t.Run("should build a file diff with the configured fields", func(t *testing.T) {
		t.Parallel()

		// given
		hunk := domain.Hunk{OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 1}

		// when
		file := entitybuilders.NewFileDiffBuilder().
			WithOldPath("old/a.go").
			WithNewPath("new/a.go").
			WithHunk(hunk).
			BuildFileDiff()

		// then
		assert.Equal(t, "old/a.go", file.OldPath)
		assert.Equal(t, "new/a.go", file.NewPath)
		assert.Equal(t, []domain.Hunk{hunk}, file.Hunks)
	})

	t.Run("should restore defaults on reset", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewFileDiffBuilder().WithOldPath("custom.go")

		// when
		builder.Reset()
		file := builder.BuildFileDiff()

		// then
		assert.Equal(t, "pkg/service.go", file.OldPath)
		assert.Empty(t, file.Hunks)
	})

	t.Run("should clone independently of the original", func(t *testing.T) {
		t.Parallel()

		// given
		original := entitybuilders.NewFileDiffBuilder().WithOldPath("one.go")

		// when
		clone, ok := original.Clone().(*entitybuilders.FileDiffBuilder)
		assert.True(t, ok)
		clone.WithOldPath("two.go")

		// then
		assert.Equal(t, "one.go", original.BuildFileDiff().OldPath)
		assert.Equal(t, "two.go", clone.BuildFileDiff().OldPath)
	})
}
