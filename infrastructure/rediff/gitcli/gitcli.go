// Package gitcli is the re-diff collaborator that shells out to
// `git diff --no-index`, useful when the host has git installed and the
// in-process differ's output is not wanted.
package gitcli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rios0rios0/effdiff/domain"
	"github.com/rios0rios0/effdiff/infrastructure/diffparse"
)

const (
	differName   = "gitcli"
	tempFileMode = 0o600
)

// Differ invokes the git binary on two temp files and parses its output.
type Differ struct{}

// New creates the git CLI differ.
func New() domain.Differ {
	return &Differ{}
}

// Name returns the differ identifier used in configuration.
func (d *Differ) Name() string { return differName }

// Rediff writes both texts to a temp directory, runs
// `git diff --no-index` on them, and parses the hunks back out.
func (d *Differ) Rediff(ctx context.Context, oldText, newText string) ([]domain.Hunk, error) {
	if oldText == newText {
		return []domain.Hunk{}, nil
	}

	dir, err := os.MkdirTemp("", "effdiff-rediff-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	if err = os.WriteFile(oldPath, []byte(oldText), tempFileMode); err != nil {
		return nil, fmt.Errorf("failed to write old side: %w", err)
	}
	if err = os.WriteFile(newPath, []byte(newText), tempFileMode); err != nil {
		return nil, fmt.Errorf("failed to write new side: %w", err)
	}

	cmd := exec.CommandContext(
		ctx,
		"git", "diff", "--no-index", "--no-color", "--unified=3",
		oldPath, newPath,
	)
	out, err := cmd.Output()
	if err != nil {
		// Exit code 1 just means "files differ".
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
			return nil, fmt.Errorf("git diff failed: %w", err)
		}
	}

	parsed, err := diffparse.Parse(string(out))
	if err != nil {
		return nil, fmt.Errorf("failed to parse git diff output: %w", err)
	}

	var hunks []domain.Hunk
	for _, file := range parsed.Files {
		hunks = append(hunks, file.Hunks...)
	}
	if hunks == nil {
		hunks = []domain.Hunk{}
	}
	return hunks, nil
}
