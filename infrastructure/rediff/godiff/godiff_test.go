package godiff_test

import (
	"context"
	"testing"

	"github.com/rios0rios0/effdiff/domain"
	"github.com/rios0rios0/effdiff/infrastructure/rediff/godiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRediff(t *testing.T) {
	t.Parallel()

	t.Run("should return no hunks for identical texts", func(t *testing.T) {
		t.Parallel()

		// when
		hunks, err := godiff.New().Rediff(context.Background(), "a\nb\n", "a\nb\n")

		// then
		require.NoError(t, err)
		assert.Empty(t, hunks)
	})

	t.Run("should report a single-line edit with surrounding context", func(t *testing.T) {
		t.Parallel()

		// given
		oldText := "one\ntwo\nthree\nfour\nfive\nsix\nseven\n"
		newText := "one\ntwo\nthree\nFOUR\nfive\nsix\nseven\n"

		// when
		hunks, err := godiff.New().Rediff(context.Background(), oldText, newText)

		// then
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		hunk := hunks[0]
		assert.Equal(t, 1, hunk.OldStart)
		assert.Equal(t, 7, hunk.OldCount)
		assert.Equal(t, 7, hunk.NewCount)

		var removed, added []domain.DiffLine
		for _, line := range hunk.Lines {
			switch line.Kind {
			case domain.LineRemoved:
				removed = append(removed, line)
			case domain.LineAdded:
				added = append(added, line)
			case domain.LineContext:
			}
		}
		require.Len(t, removed, 1)
		assert.Equal(t, "four", removed[0].Content)
		assert.Equal(t, 4, removed[0].OldNumber)
		require.Len(t, added, 1)
		assert.Equal(t, "FOUR", added[0].Content)
		assert.Equal(t, 4, added[0].NewNumber)
	})

	t.Run("should split far-apart edits into separate hunks", func(t *testing.T) {
		t.Parallel()

		// given: edits at lines 1 and 20 of a twenty-line text
		oldLines := make([]string, 20)
		newLines := make([]string, 20)
		for i := range oldLines {
			oldLines[i] = "line"
			newLines[i] = "line"
		}
		oldLines[0] = "first old"
		newLines[0] = "first new"
		oldLines[19] = "last old"
		newLines[19] = "last new"
		oldText := ""
		newText := ""
		for i := range oldLines {
			oldText += oldLines[i] + "\n"
			newText += newLines[i] + "\n"
		}

		// when
		hunks, err := godiff.New().Rediff(context.Background(), oldText, newText)

		// then
		require.NoError(t, err)
		require.Len(t, hunks, 2)
		assert.Equal(t, 1, hunks[0].OldStart)
		assert.Equal(t, 17, hunks[1].OldStart)
	})

	t.Run("should anchor a pure insertion's old side before the insert point", func(t *testing.T) {
		t.Parallel()

		// given: text appended at the end, far from any other change
		oldText := "a\nb\n"
		newText := "a\nb\nc\nd\ne\nf\n"

		// when
		hunks, err := godiff.New().Rediff(context.Background(), oldText, newText)

		// then
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		hunk := hunks[0]
		assert.Equal(t, 1, hunk.OldStart)
		assert.Equal(t, 2, hunk.OldCount)
		assert.Equal(t, 6, hunk.NewCount)

		added := 0
		for _, line := range hunk.Lines {
			if line.Kind == domain.LineAdded {
				added++
			}
		}
		assert.Equal(t, 4, added)
	})

	t.Run("should handle creation from empty text", func(t *testing.T) {
		t.Parallel()

		// when
		hunks, err := godiff.New().Rediff(context.Background(), "", "only\nnew\n")

		// then
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		assert.Equal(t, 0, hunks[0].OldCount)
		assert.Equal(t, 0, hunks[0].OldStart)
		assert.Equal(t, 2, hunks[0].NewCount)
		assert.Equal(t, 1, hunks[0].NewStart)
	})
}
