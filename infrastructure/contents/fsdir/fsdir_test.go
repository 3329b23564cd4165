package fsdir_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rios0rios0/effdiff/domain"
	"github.com/rios0rios0/effdiff/infrastructure/contents/fsdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	t.Parallel()

	t.Run("should read each side from its own directory", func(t *testing.T) {
		t.Parallel()

		// given
		oldDir := t.TempDir()
		newDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(oldDir, "pkg"), 0o750))
		require.NoError(t, os.MkdirAll(filepath.Join(newDir, "pkg"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(oldDir, "pkg", "a.go"), []byte("old\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(newDir, "pkg", "a.go"), []byte("new\n"), 0o600))
		provider := fsdir.New(oldDir, newDir)

		// when
		oldContent, oldErr := provider.OldContent(context.Background(), "pkg/a.go")
		newContent, newErr := provider.NewContent(context.Background(), "pkg/a.go")

		// then
		require.NoError(t, oldErr)
		require.NoError(t, newErr)
		assert.Equal(t, "old\n", oldContent)
		assert.Equal(t, "new\n", newContent)
	})

	t.Run("should report a missing file as ErrFileNotFound", func(t *testing.T) {
		t.Parallel()

		// given
		provider := fsdir.New(t.TempDir(), t.TempDir())

		// when
		_, err := provider.OldContent(context.Background(), "absent.go")

		// then
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}
