// Package fsdir provides file contents for both sides of a diff from
// two directory trees on disk (old and new checkouts).
package fsdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/effdiff/domain"
)

// Provider implements domain.ContentProvider over two directories.
type Provider struct {
	oldDir string
	newDir string
}

var _ domain.ContentProvider = (*Provider)(nil)

// New creates a provider reading old-side files under oldDir and
// new-side files under newDir.
func New(oldDir, newDir string) *Provider {
	return &Provider{oldDir: oldDir, newDir: newDir}
}

// OldContent returns the content of path under the old directory.
func (p *Provider) OldContent(_ context.Context, path string) (string, error) {
	return readFile(p.oldDir, path)
}

// NewContent returns the content of path under the new directory.
func (p *Provider) NewContent(_ context.Context, path string) (string, error) {
	return readFile(p.newDir, path)
}

func readFile(dir, path string) (string, error) {
	full := filepath.Join(dir, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%q under %q: %w", path, dir, domain.ErrFileNotFound)
		}
		return "", fmt.Errorf("failed to read %q: %w", full, err)
	}
	return string(data), nil
}
