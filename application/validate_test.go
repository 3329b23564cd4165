package application

import (
	"testing"

	"github.com/rios0rios0/effdiff/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDiff(t *testing.T) {
	t.Parallel()

	t.Run("should accept a well-formed diff", func(t *testing.T) {
		t.Parallel()

		// given
		diff := domain.GitDiff{Files: []domain.FileDiff{{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []domain.Hunk{
				{
					OldStart: 3, OldCount: 3, NewStart: 3, NewCount: 3,
					Lines: []domain.DiffLine{
						ctxLine(3, 3, "ctx"),
						remLine(4, "old"),
						addLine(4, "new"),
						ctxLine(5, 5, "ctx"),
					},
				},
				{
					OldStart: 20, OldCount: 1, NewStart: 20, NewCount: 2,
					Lines: []domain.DiffLine{
						ctxLine(20, 20, "ctx"),
						addLine(21, "appended"),
					},
				},
			},
		}}}

		// when / then
		assert.NoError(t, validateDiff(diff))
	})

	t.Run("should reject a header that disagrees with its lines", func(t *testing.T) {
		t.Parallel()

		// given
		diff := domain.GitDiff{Files: []domain.FileDiff{{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []domain.Hunk{{
				OldStart: 1, OldCount: 5, NewStart: 1, NewCount: 1,
				Lines: []domain.DiffLine{ctxLine(1, 1, "ctx")},
			}},
		}}}

		// when
		err := validateDiff(diff)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header claims")
	})

	t.Run("should reject non-increasing line numbers", func(t *testing.T) {
		t.Parallel()

		// given
		diff := domain.GitDiff{Files: []domain.FileDiff{{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []domain.Hunk{{
				OldStart: 5, OldCount: 2, NewStart: 5, NewCount: 2,
				Lines: []domain.DiffLine{
					ctxLine(6, 6, "ctx"),
					ctxLine(5, 5, "ctx"),
				},
			}},
		}}}

		// when / then
		assert.ErrorContains(t, validateDiff(diff), "strictly increasing")
	})

	t.Run("should reject a removed line carrying a new number", func(t *testing.T) {
		t.Parallel()

		// given
		diff := domain.GitDiff{Files: []domain.FileDiff{{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []domain.Hunk{{
				OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 1,
				Lines: []domain.DiffLine{
					{Kind: domain.LineRemoved, Content: "x", OldNumber: 1, NewNumber: 1},
				},
			}},
		}}}

		// when / then
		assert.ErrorContains(t, validateDiff(diff), "only an old number")
	})

	t.Run("should reject overlapping hunks within a file", func(t *testing.T) {
		t.Parallel()

		// given
		diff := domain.GitDiff{Files: []domain.FileDiff{{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []domain.Hunk{
				{
					OldStart: 5, OldCount: 3, NewStart: 5, NewCount: 3,
					Lines: []domain.DiffLine{
						ctxLine(5, 5, "a"), ctxLine(6, 6, "b"), ctxLine(7, 7, "c"),
					},
				},
				{
					OldStart: 7, OldCount: 1, NewStart: 10, NewCount: 1,
					Lines: []domain.DiffLine{ctxLine(7, 10, "d")},
				},
			},
		}}}

		// when / then
		assert.ErrorContains(t, validateDiff(diff), "overlaps the previous hunk")
	})
}
