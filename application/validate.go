package application

import (
	"fmt"

	"github.com/rios0rios0/effdiff/domain"
)

// validateDiff rejects structurally inconsistent input before the engine
// relies on its line numbering: per-side numbers must be strictly
// increasing within a hunk, every line kind must carry the numbers its
// side implies, hunk headers must agree with their line counts, and
// hunks within a file must not overlap.
func validateDiff(diff domain.GitDiff) error {
	for _, file := range diff.Files {
		prevOldEnd := 0
		prevNewEnd := 0

		for hi, hunk := range file.Hunks {
			if err := validateHunk(hunk); err != nil {
				return fmt.Errorf("file %q -> %q, hunk %d: %w", file.OldPath, file.NewPath, hi, err)
			}

			if hunk.OldCount > 0 {
				if hunk.OldStart <= prevOldEnd {
					return fmt.Errorf(
						"file %q -> %q, hunk %d: old range overlaps the previous hunk",
						file.OldPath, file.NewPath, hi,
					)
				}
				prevOldEnd = hunk.OldStart + hunk.OldCount - 1
			}
			if hunk.NewCount > 0 {
				if hunk.NewStart <= prevNewEnd {
					return fmt.Errorf(
						"file %q -> %q, hunk %d: new range overlaps the previous hunk",
						file.OldPath, file.NewPath, hi,
					)
				}
				prevNewEnd = hunk.NewStart + hunk.NewCount - 1
			}
		}
	}
	return nil
}

func validateHunk(hunk domain.Hunk) error {
	oldCount := 0
	newCount := 0
	lastOld := 0
	lastNew := 0

	for li, line := range hunk.Lines {
		switch line.Kind {
		case domain.LineContext:
			if line.OldNumber <= 0 || line.NewNumber <= 0 {
				return fmt.Errorf("line %d: context line without both numbers", li)
			}
		case domain.LineRemoved:
			if line.OldNumber <= 0 || line.NewNumber != 0 {
				return fmt.Errorf("line %d: removed line must carry only an old number", li)
			}
		case domain.LineAdded:
			if line.NewNumber <= 0 || line.OldNumber != 0 {
				return fmt.Errorf("line %d: added line must carry only a new number", li)
			}
		default:
			return fmt.Errorf("line %d: unknown kind %q", li, line.Kind)
		}

		if line.OldNumber > 0 {
			if line.OldNumber <= lastOld {
				return fmt.Errorf("line %d: old numbers are not strictly increasing", li)
			}
			lastOld = line.OldNumber
			oldCount++
		}
		if line.NewNumber > 0 {
			if line.NewNumber <= lastNew {
				return fmt.Errorf("line %d: new numbers are not strictly increasing", li)
			}
			lastNew = line.NewNumber
			newCount++
		}
	}

	if oldCount != hunk.OldCount {
		return fmt.Errorf("header claims %d old lines, found %d", hunk.OldCount, oldCount)
	}
	if newCount != hunk.NewCount {
		return fmt.Errorf("header claims %d new lines, found %d", hunk.NewCount, newCount)
	}
	return nil
}
