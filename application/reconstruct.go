package application

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/effdiff/domain"
)

// pairOutcome is the result of the re-diff stage for one file pair.
type pairOutcome struct {
	// attempted is false when the pair was untouched by any move and
	// the re-diff was skipped; its original hunks stand as-is.
	attempted bool
	// failed marks a per-file re-diff failure; the pair degrades to
	// its original hunks unmodified.
	failed bool
	hunks  []domain.Hunk
}

// reconstructFilePair produces the effective hunks for one file pair.
// The re-diffed hunks are used when they account for exactly the
// original changed lines minus the consumed ones; otherwise the original
// hunks are filtered at line granularity. Filtering never drops a whole
// hunk because part of it overlaps a move — boundaries are re-expressed
// around the surviving lines, so an unrelated edit inside a moved hunk
// survives at its correct line number.
func reconstructFilePair(
	file domain.FileDiff,
	outcome pairOutcome,
	consumed *consumedSet,
	opts Options,
) []domain.Hunk {
	if !outcome.attempted || outcome.failed {
		return file.Hunks
	}

	if rediffAccountsForSurvivors(file, outcome.hunks, consumed) {
		return outcome.hunks
	}

	logger.Debugf(
		"re-diff of %q -> %q disagrees with the surviving line set, rebuilding from original hunks",
		file.OldPath, file.NewPath,
	)
	return filterFileHunks(file, consumed, opts.ContextLines)
}

// rediffAccountsForSurvivors checks the partition contract for one file
// pair: the re-diffed hunks must remove exactly the original removed
// lines not consumed by a move, and add exactly the original added lines
// not consumed by a move, with identical content at identical numbers.
func rediffAccountsForSurvivors(
	file domain.FileDiff,
	rediffed []domain.Hunk,
	consumed *consumedSet,
) bool {
	wantRemoved := make(map[int]string)
	wantAdded := make(map[int]string)
	for _, hunk := range file.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case domain.LineRemoved:
				if !consumed.removed[lineKey{file: file.OldPath, number: line.OldNumber}] {
					wantRemoved[line.OldNumber] = line.Content
				}
			case domain.LineAdded:
				if !consumed.added[lineKey{file: file.NewPath, number: line.NewNumber}] {
					wantAdded[line.NewNumber] = line.Content
				}
			case domain.LineContext:
			}
		}
	}

	gotRemoved := make(map[int]string)
	gotAdded := make(map[int]string)
	for _, hunk := range rediffed {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case domain.LineRemoved:
				gotRemoved[line.OldNumber] = line.Content
			case domain.LineAdded:
				gotAdded[line.NewNumber] = line.Content
			case domain.LineContext:
			}
		}
	}

	return mapsEqual(wantRemoved, gotRemoved) && mapsEqual(wantAdded, gotAdded)
}

func mapsEqual(a, b map[int]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if other, ok := b[k]; !ok || other != v {
			return false
		}
	}
	return true
}

// filterFileHunks drops exactly the consumed lines from the original
// hunks and re-chunks what survives. Original line numbers are retained;
// hunks whose changed lines were all consumed disappear, hunks with a
// mix are split around the surviving changes.
func filterFileHunks(file domain.FileDiff, consumed *consumedSet, contextLines int) []domain.Hunk {
	var result []domain.Hunk
	for _, hunk := range file.Hunks {
		surviving := make([]domain.DiffLine, 0, len(hunk.Lines))
		for _, line := range hunk.Lines {
			switch line.Kind {
			case domain.LineRemoved:
				if consumed.removed[lineKey{file: file.OldPath, number: line.OldNumber}] {
					continue
				}
			case domain.LineAdded:
				if consumed.added[lineKey{file: file.NewPath, number: line.NewNumber}] {
					continue
				}
			case domain.LineContext:
			}
			surviving = append(surviving, line)
		}
		result = append(result, rechunk(hunk, surviving, contextLines)...)
	}
	return result
}

// rechunk groups the surviving lines of one original hunk into new hunks
// around the remaining changed lines, keeping up to contextLines of
// context on each flank. Runs of changes separated by more than twice
// the context window become separate hunks.
func rechunk(original domain.Hunk, surviving []domain.DiffLine, contextLines int) []domain.Hunk {
	var changed []int
	for i, line := range surviving {
		if line.Kind != domain.LineContext {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var groups [][2]int
	start := changed[0]
	prev := changed[0]
	for _, idx := range changed[1:] {
		if idx-prev-1 > 2*contextLines {
			groups = append(groups, [2]int{start, prev})
			start = idx
		}
		prev = idx
	}
	groups = append(groups, [2]int{start, prev})

	hunks := make([]domain.Hunk, 0, len(groups))
	for _, g := range groups {
		lo := g[0] - contextLines
		if lo < 0 {
			lo = 0
		}
		hi := g[1] + contextLines
		if hi > len(surviving)-1 {
			hi = len(surviving) - 1
		}
		hunks = append(hunks, buildHunk(original, surviving[lo:hi+1]))
	}
	return hunks
}

// buildHunk recomputes a hunk header from its lines. A side with no
// surviving lines anchors to the line before the original hunk, which is
// how unified diffs express zero-count sides.
func buildHunk(original domain.Hunk, lines []domain.DiffLine) domain.Hunk {
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
		hunk.OldStart = anchorBefore(original.OldStart, original.OldCount)
	}
	if hunk.NewCount == 0 {
		hunk.NewStart = anchorBefore(original.NewStart, original.NewCount)
	}
	return hunk
}

func anchorBefore(start, count int) int {
	if count == 0 {
		return start
	}
	if start > 0 {
		return start - 1
	}
	return 0
}
