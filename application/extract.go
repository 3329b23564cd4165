// Package application implements the effective diff engine: it detects
// blocks of code that were relocated rather than changed and produces a
// reduced diff plus a structured move report.
package application

import "github.com/rios0rios0/effdiff/domain"

// taggedLine is a removed or added diff line together with the file it
// originates from and its 1-indexed line number on that side.
type taggedLine struct {
	file    string
	number  int
	content string
}

// lineKey identifies one side's line across the whole diff.
type lineKey struct {
	file   string
	number int
}

func (l taggedLine) key() lineKey {
	return lineKey{file: l.file, number: l.number}
}

// extractLines pulls every removed line (keyed by old path and old line
// number) and every added line (keyed by new path and new line number)
// out of the diff, across all files.
func extractLines(diff domain.GitDiff) (removed, added []taggedLine) {
	for _, file := range diff.Files {
		for _, hunk := range file.Hunks {
			for _, line := range hunk.Lines {
				switch line.Kind {
				case domain.LineRemoved:
					removed = append(removed, taggedLine{
						file:    file.OldPath,
						number:  line.OldNumber,
						content: line.Content,
					})
				case domain.LineAdded:
					added = append(added, taggedLine{
						file:    file.NewPath,
						number:  line.NewNumber,
						content: line.Content,
					})
				case domain.LineContext:
					// not part of the change surface
				}
			}
		}
	}
	return removed, added
}
