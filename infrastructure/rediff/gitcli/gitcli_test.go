package gitcli_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/rios0rios0/effdiff/domain"
	"github.com/rios0rios0/effdiff/infrastructure/rediff/gitcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestRediff(t *testing.T) {
	t.Parallel()

	t.Run("should return no hunks for identical texts without invoking git", func(t *testing.T) {
		t.Parallel()

		// when
		hunks, err := gitcli.New().Rediff(context.Background(), "same\n", "same\n")

		// then
		require.NoError(t, err)
		assert.Empty(t, hunks)
	})

	t.Run("should parse git's hunks for a single edit", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		oldText := "one\ntwo\nthree\nfour\nfive\n"
		newText := "one\ntwo\nTHREE\nfour\nfive\n"

		// when
		hunks, err := gitcli.New().Rediff(context.Background(), oldText, newText)

		// then
		require.NoError(t, err)
		require.Len(t, hunks, 1)

		var removed, added []domain.DiffLine
		for _, line := range hunks[0].Lines {
			switch line.Kind {
			case domain.LineRemoved:
				removed = append(removed, line)
			case domain.LineAdded:
				added = append(added, line)
			case domain.LineContext:
			}
		}
		require.Len(t, removed, 1)
		assert.Equal(t, "three", removed[0].Content)
		assert.Equal(t, 3, removed[0].OldNumber)
		require.Len(t, added, 1)
		assert.Equal(t, "THREE", added[0].Content)
		assert.Equal(t, 3, added[0].NewNumber)
	})

	t.Run("should respect context cancellation", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		_, err := gitcli.New().Rediff(ctx, "a\n", "b\n")

		// then
		assert.Error(t, err)
	})
}
