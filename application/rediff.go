package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/effdiff/domain"
)

// residual is the padded, move-excluded slice of a file pair's content
// that gets re-diffed. Lines consumed by an accepted move are left out
// entirely, so the differ can never report them; the maps record, for
// each residual line (0-indexed), its absolute 1-indexed line number in
// the full file, which is how the differ's output gets re-anchored.
type residual struct {
	oldLines []string
	newLines []string
	oldMap   []int
	newMap   []int
}

func (r *residual) oldText() string { return joinLines(r.oldLines) }
func (r *residual) newText() string { return joinLines(r.newLines) }

// identical reports whether both sides carry the same content, in which
// case the re-diff is a guaranteed no-op and can be skipped.
func (r *residual) identical() bool {
	if len(r.oldLines) != len(r.newLines) {
		return false
	}
	for i := range r.oldLines {
		if r.oldLines[i] != r.newLines[i] {
			return false
		}
	}
	return true
}

// span is a pair of padded old/new intervals covering one or more
// original hunks.
type span struct {
	old domain.LineRange
	new domain.LineRange
}

// rediffFilePair re-diffs the residual regions of one file pair and
// returns clean hunks re-mapped to absolute line numbers. Any failure
// (missing content, differ error, unmappable output) is returned to the
// caller, which degrades that file pair to its original hunks.
func (s *Service) rediffFilePair(
	ctx context.Context,
	file domain.FileDiff,
	contents domain.ContentProvider,
	consumed *consumedSet,
	opts Options,
) ([]domain.Hunk, error) {
	oldContent, err := sideContent(ctx, contents.OldContent, file.OldPath)
	if err != nil {
		return nil, fmt.Errorf("old content of %q: %w", file.OldPath, err)
	}
	newContent, err := sideContent(ctx, contents.NewContent, file.NewPath)
	if err != nil {
		return nil, fmt.Errorf("new content of %q: %w", file.NewPath, err)
	}

	res := buildResidual(file, oldContent, newContent, consumed, opts.ContextLines)
	if res.identical() {
		return []domain.Hunk{}, nil
	}

	hunks, err := s.differ.Rediff(ctx, res.oldText(), res.newText())
	if err != nil {
		return nil, fmt.Errorf("rediff of %q -> %q: %w", file.OldPath, file.NewPath, err)
	}

	remapped := make([]domain.Hunk, 0, len(hunks))
	for _, hunk := range hunks {
		abs, remapErr := remapHunk(hunk, res)
		if remapErr != nil {
			return nil, fmt.Errorf("rediff of %q -> %q: %w", file.OldPath, file.NewPath, remapErr)
		}
		remapped = append(remapped, abs)
	}
	return remapped, nil
}

// sideContent fetches one side's full content; the /dev/null side of a
// created or deleted file has no content by definition.
func sideContent(
	ctx context.Context,
	fetch func(context.Context, string) (string, error),
	path string,
) (string, error) {
	if path == domain.DevNull || path == "" {
		return "", nil
	}
	return fetch(ctx, path)
}

// buildResidual extracts the union of the file's hunk regions, padded by
// contextLines on each side, skipping every line consumed by a move.
func buildResidual(
	file domain.FileDiff,
	oldContent, newContent string,
	consumed *consumedSet,
	contextLines int,
) *residual {
	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	res := &residual{}
	for _, sp := range hunkSpans(file.Hunks, contextLines, len(oldLines), len(newLines)) {
		for n := sp.old.Start; n <= sp.old.End; n++ {
			if consumed.removed[lineKey{file: file.OldPath, number: n}] {
				continue
			}
			res.oldLines = append(res.oldLines, oldLines[n-1])
			res.oldMap = append(res.oldMap, n)
		}
		for n := sp.new.Start; n <= sp.new.End; n++ {
			if consumed.added[lineKey{file: file.NewPath, number: n}] {
				continue
			}
			res.newLines = append(res.newLines, newLines[n-1])
			res.newMap = append(res.newMap, n)
		}
	}
	return res
}

// hunkSpans computes padded old/new intervals per hunk, merged whenever
// neighbours touch after padding. Hunks pair the same surrounding
// context on both sides, so merging on either side keeps the pairs
// consistent.
func hunkSpans(hunks []domain.Hunk, pad, oldLen, newLen int) []span {
	spans := make([]span, 0, len(hunks))
	for _, hunk := range hunks {
		sp := span{
			old: paddedRange(hunk.OldStart, hunk.OldCount, pad, oldLen),
			new: paddedRange(hunk.NewStart, hunk.NewCount, pad, newLen),
		}
		if n := len(spans); n > 0 {
			last := &spans[n-1]
			if sp.old.Start <= last.old.End+1 || sp.new.Start <= last.new.End+1 {
				if sp.old.End > last.old.End {
					last.old.End = sp.old.End
				}
				if sp.new.End > last.new.End {
					last.new.End = sp.new.End
				}
				continue
			}
		}
		spans = append(spans, sp)
	}
	return spans
}

// paddedRange widens a hunk side by pad lines, clamped to the file. A
// zero-count side anchors to the line *after* start, per unified diff
// conventions.
func paddedRange(start, count, pad, fileLen int) domain.LineRange {
	from := start
	to := start + count - 1
	if count == 0 {
		from = start + 1
		to = start
	}

	from -= pad
	to += pad
	if from < 1 {
		from = 1
	}
	if to > fileLen {
		to = fileLen
	}
	return domain.LineRange{Start: from, End: to}
}

// remapHunk translates a hunk expressed in residual-local coordinates to
// absolute file line numbers using the residual's extraction maps.
func remapHunk(hunk domain.Hunk, res *residual) (domain.Hunk, error) {
	abs := domain.Hunk{Lines: make([]domain.DiffLine, 0, len(hunk.Lines))}

	for _, line := range hunk.Lines {
		mapped := line
		if line.OldNumber > 0 {
			n, err := mapNumber(res.oldMap, line.OldNumber)
			if err != nil {
				return domain.Hunk{}, err
			}
			mapped.OldNumber = n
		}
		if line.NewNumber > 0 {
			n, err := mapNumber(res.newMap, line.NewNumber)
			if err != nil {
				return domain.Hunk{}, err
			}
			mapped.NewNumber = n
		}
		abs.Lines = append(abs.Lines, mapped)
	}

	for _, line := range abs.Lines {
		if line.OldNumber > 0 {
			if abs.OldStart == 0 {
				abs.OldStart = line.OldNumber
			}
			abs.OldCount++
		}
		if line.NewNumber > 0 {
			if abs.NewStart == 0 {
				abs.NewStart = line.NewNumber
			}
			abs.NewCount++
		}
	}
	return abs, nil
}

func mapNumber(m []int, local int) (int, error) {
	if local < 1 || local > len(m) {
		return 0, fmt.Errorf("differ returned line %d outside the residual (size %d)", local, len(m))
	}
	return m[local-1], nil
}

// splitLines breaks content into lines without a trailing phantom line
// for the final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
