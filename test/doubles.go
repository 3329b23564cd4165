// Package testdoubles provides test doubles (spies, stubs, dummies) for
// domain interfaces. These are hand-crafted implementations, no mock
// frameworks.
package testdoubles

import (
	"context"
	"fmt"

	"github.com/rios0rios0/effdiff/domain"
)

// ---------------------------------------------------------------------------
// ScriptedDiffer
// ---------------------------------------------------------------------------

// ScriptedDiffer implements domain.Differ through a caller-supplied
// function, recording every invocation for inspection.
type ScriptedDiffer struct {
	Fn func(ctx context.Context, oldText, newText string) ([]domain.Hunk, error)

	// spy: text pairs received, in call order
	Calls [][2]string
}

var _ domain.Differ = (*ScriptedDiffer)(nil)

func (d *ScriptedDiffer) Rediff(ctx context.Context, oldText, newText string) ([]domain.Hunk, error) {
	d.Calls = append(d.Calls, [2]string{oldText, newText})
	if d.Fn == nil {
		return []domain.Hunk{}, nil
	}
	return d.Fn(ctx, oldText, newText)
}

// ---------------------------------------------------------------------------
// FailingDiffer
// ---------------------------------------------------------------------------

// FailingDiffer implements domain.Differ by always returning Err.
type FailingDiffer struct {
	Err error
}

var _ domain.Differ = (*FailingDiffer)(nil)

func (d *FailingDiffer) Rediff(_ context.Context, _, _ string) ([]domain.Hunk, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return nil, fmt.Errorf("differ configured to fail")
}

// ---------------------------------------------------------------------------
// MapContentProvider
// ---------------------------------------------------------------------------

// MapContentProvider implements domain.ContentProvider over two maps of
// path -> full content. Missing paths surface domain.ErrFileNotFound.
type MapContentProvider struct {
	Old map[string]string
	New map[string]string
}

var _ domain.ContentProvider = (*MapContentProvider)(nil)

func (p *MapContentProvider) OldContent(_ context.Context, path string) (string, error) {
	return lookup(p.Old, path)
}

func (p *MapContentProvider) NewContent(_ context.Context, path string) (string, error) {
	return lookup(p.New, path)
}

func lookup(m map[string]string, path string) (string, error) {
	if m != nil {
		if content, ok := m[path]; ok {
			return content, nil
		}
	}
	return "", fmt.Errorf("%q: %w", path, domain.ErrFileNotFound)
}
