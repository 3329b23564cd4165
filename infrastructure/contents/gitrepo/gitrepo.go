// Package gitrepo provides file contents for both sides of a diff from
// a local git repository at two resolved revisions.
package gitrepo

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rios0rios0/effdiff/domain"
)

// Provider implements domain.ContentProvider over a repository opened
// once; both revisions are resolved at construction time.
type Provider struct {
	oldCommit *object.Commit
	newCommit *object.Commit
}

var _ domain.ContentProvider = (*Provider)(nil)

// New opens the repository at repoPath and resolves both revisions
// (hashes, branches, tags, or anything rev-parse accepts).
func New(repoPath, oldRev, newRev string) (*Provider, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", repoPath, err)
	}

	oldCommit, err := resolveCommit(repo, oldRev)
	if err != nil {
		return nil, err
	}
	newCommit, err := resolveCommit(repo, newRev)
	if err != nil {
		return nil, err
	}

	return &Provider{oldCommit: oldCommit, newCommit: newCommit}, nil
}

func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	return commit, nil
}

// OldContent returns the full content of path at the old revision.
func (p *Provider) OldContent(_ context.Context, path string) (string, error) {
	return contentAt(p.oldCommit, path)
}

// NewContent returns the full content of path at the new revision.
func (p *Provider) NewContent(_ context.Context, path string) (string, error) {
	return contentAt(p.newCommit, path)
}

func contentAt(commit *object.Commit, path string) (string, error) {
	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("%q at %s: %w", path, commit.Hash, domain.ErrFileNotFound)
		}
		return "", fmt.Errorf("failed to read %q at %s: %w", path, commit.Hash, err)
	}
	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %q at %s: %w", path, commit.Hash, err)
	}
	return content, nil
}
