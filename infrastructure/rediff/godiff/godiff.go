// Package godiff is the in-process re-diff collaborator, built on the
// go-diff diff-match-patch line mode.
package godiff

import (
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/rios0rios0/effdiff/domain"
)

const (
	differName    = "godiff"
	contextMargin = 3
)

// Differ diffs two texts line by line and shapes the result as hunks.
type Differ struct{}

// New creates the in-process differ.
func New() domain.Differ {
	return &Differ{}
}

// Name returns the differ identifier used in configuration.
func (d *Differ) Name() string { return differName }

// Rediff computes a line-level diff between the two texts. Returned
// hunks carry 1-indexed line numbers into the given texts and up to
// three lines of surrounding context.
func (d *Differ) Rediff(_ context.Context, oldText, newText string) ([]domain.Hunk, error) {
	if oldText == newText {
		return []domain.Hunk{}, nil
	}

	dmp := diffmatchpatch.New()
	oldChars, newChars, lineIndex := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(oldChars, newChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineIndex)

	return buildHunks(flatten(diffs), contextMargin), nil
}

// flatten converts the diff-match-patch chunk sequence into a flat list
// of numbered diff lines.
func flatten(diffs []diffmatchpatch.Diff) []domain.DiffLine {
	var lines []domain.DiffLine
	oldNum := 1
	newNum := 1

	for _, chunk := range diffs {
		for _, content := range chunkLines(chunk.Text) {
			switch chunk.Type {
			case diffmatchpatch.DiffEqual:
				lines = append(lines, domain.DiffLine{
					Kind:      domain.LineContext,
					Content:   content,
					OldNumber: oldNum,
					NewNumber: newNum,
				})
				oldNum++
				newNum++
			case diffmatchpatch.DiffDelete:
				lines = append(lines, domain.DiffLine{
					Kind:      domain.LineRemoved,
					Content:   content,
					OldNumber: oldNum,
				})
				oldNum++
			case diffmatchpatch.DiffInsert:
				lines = append(lines, domain.DiffLine{
					Kind:      domain.LineAdded,
					Content:   content,
					NewNumber: newNum,
				})
				newNum++
			}
		}
	}
	return lines
}

// chunkLines splits a diff chunk into its lines. Chunks normally end
// with a newline; a final unterminated line still counts as a line.
func chunkLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// buildHunks groups changed lines into hunks with up to margin context
// lines on each flank; change runs separated by more than twice the
// margin become separate hunks.
func buildHunks(lines []domain.DiffLine, margin int) []domain.Hunk {
	var changed []int
	for i, line := range lines {
		if line.Kind != domain.LineContext {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return []domain.Hunk{}
	}

	var groups [][2]int
	start := changed[0]
	prev := changed[0]
	for _, idx := range changed[1:] {
		if idx-prev-1 > 2*margin {
			groups = append(groups, [2]int{start, prev})
			start = idx
		}
		prev = idx
	}
	groups = append(groups, [2]int{start, prev})

	hunks := make([]domain.Hunk, 0, len(groups))
	for _, g := range groups {
		lo := g[0] - margin
		if lo < 0 {
			lo = 0
		}
		hi := g[1] + margin
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}
		hunks = append(hunks, makeHunk(lines[lo:hi+1]))
	}
	return hunks
}

// makeHunk derives the header fields from the hunk's lines. A side with
// no lines anchors to the line before the hunk, matching the unified
// diff convention for zero-count sides.
func makeHunk(lines []domain.DiffLine) domain.Hunk {
	hunk := domain.Hunk{Lines: lines}

	for _, line := range lines {
		if line.OldNumber > 0 {
			if hunk.OldStart == 0 {
				hunk.OldStart = line.OldNumber
			}
			hunk.OldCount++
		}
		if line.NewNumber > 0 {
			if hunk.NewStart == 0 {
				hunk.NewStart = line.NewNumber
			}
			hunk.NewCount++
		}
	}

	if hunk.OldCount == 0 {
		hunk.OldStart = anchorFromOther(lines, true)
	}
	if hunk.NewCount == 0 {
		hunk.NewStart = anchorFromOther(lines, false)
	}
	return hunk
}

// anchorFromOther estimates the zero-count side's anchor from the first
// numbered line of the other side: inserts at position p sit after old
// line p-1, and symmetrically for pure deletions.
func anchorFromOther(lines []domain.DiffLine, oldSide bool) int {
	for _, line := range lines {
		if oldSide && line.NewNumber > 0 {
			return line.NewNumber - 1
		}
		if !oldSide && line.OldNumber > 0 {
			return line.OldNumber - 1
		}
	}
	return 0
}
