// Package diffparse converts raw unified diff text to and from the
// domain diff model.
package diffparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rios0rios0/effdiff/domain"
)

var (
	diffHeaderRe = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
	renameFromRe = regexp.MustCompile(`^rename from (.+)$`)
	renameToRe   = regexp.MustCompile(`^rename to (.+)$`)
	binaryRe     = regexp.MustCompile(`^Binary files .+ differ$`)
)

// Parse parses unified diff text into a GitDiff. Binary file entries are
// skipped; rename metadata only adjusts the recorded paths (rename
// detection itself happens upstream).
func Parse(input string) (domain.GitDiff, error) {
	result := domain.GitDiff{}
	if input == "" {
		return result, nil
	}

	lines := strings.Split(input, "\n")
	i := 0

	for i < len(lines) {
		m := diffHeaderRe.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}

		file := domain.FileDiff{
			OldPath: m[1],
			NewPath: m[2],
		}
		i++

		binary := false

		// Extended header lines until ---/+++, a hunk, or the next file.
		for i < len(lines) {
			line := lines[i]

			if strings.HasPrefix(line, "diff --git ") || strings.HasPrefix(line, "@@ ") {
				break
			}

			if rm := renameFromRe.FindStringSubmatch(line); rm != nil {
				file.OldPath = rm[1]
				i++
				continue
			}
			if rm := renameToRe.FindStringSubmatch(line); rm != nil {
				file.NewPath = rm[1]
				i++
				continue
			}
			if binaryRe.MatchString(line) {
				binary = true
				i++
				break
			}

			if strings.HasPrefix(line, "--- ") {
				file.OldPath = parsePathLine(line[4:])
				i++
				if i < len(lines) && strings.HasPrefix(lines[i], "+++ ") {
					file.NewPath = parsePathLine(lines[i][4:])
					i++
				}
				break
			}

			i++
		}

		// Hunks.
		for i < len(lines) {
			if strings.HasPrefix(lines[i], "diff --git ") {
				break
			}

			hm := hunkHeaderRe.FindStringSubmatch(lines[i])
			if hm == nil {
				i++
				continue
			}

			hunk, err := parseHunk(hm, lines, &i)
			if err != nil {
				return domain.GitDiff{}, err
			}
			file.Hunks = append(file.Hunks, hunk)
		}

		if binary {
			continue
		}
		result.Files = append(result.Files, file)
	}

	return result, nil
}

// parsePathLine extracts the path from the value of a --- or +++ line,
// stripping the a/ or b/ prefix git adds.
func parsePathLine(s string) string {
	s = strings.TrimSpace(s)
	if s == domain.DevNull {
		return domain.DevNull
	}
	if strings.HasPrefix(s, "a/") || strings.HasPrefix(s, "b/") {
		return s[2:]
	}
	return s
}

// parseHunk parses one hunk starting at the @@ header line, advancing i
// past every line belonging to it.
func parseHunk(hm []string, lines []string, i *int) (domain.Hunk, error) {
	oldStart, err := strconv.Atoi(hm[1])
	if err != nil {
		return domain.Hunk{}, fmt.Errorf("invalid old start: %w", err)
	}
	oldCount := 1
	if hm[2] != "" {
		if oldCount, err = strconv.Atoi(hm[2]); err != nil {
			return domain.Hunk{}, fmt.Errorf("invalid old count: %w", err)
		}
	}
	newStart, err := strconv.Atoi(hm[3])
	if err != nil {
		return domain.Hunk{}, fmt.Errorf("invalid new start: %w", err)
	}
	newCount := 1
	if hm[4] != "" {
		if newCount, err = strconv.Atoi(hm[4]); err != nil {
			return domain.Hunk{}, fmt.Errorf("invalid new count: %w", err)
		}
	}

	hunk := domain.Hunk{
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
	}

	oldNum := oldStart
	newNum := newStart
	*i++ // past the @@ line

loop:
	for *i < len(lines) {
		line := lines[*i]

		if strings.HasPrefix(line, "@@ ") || strings.HasPrefix(line, "diff --git ") {
			break
		}
		if strings.HasPrefix(line, `\ No newline at end of file`) {
			*i++
			continue
		}
		if len(line) == 0 {
			// Trailing empty element from the final newline, or a
			// context line with empty content mid-stream. Treat as
			// end of hunk; git always prefixes real lines.
			*i++
			break
		}

		switch line[0] {
		case ' ':
			hunk.Lines = append(hunk.Lines, domain.DiffLine{
				Kind:      domain.LineContext,
				Content:   line[1:],
				OldNumber: oldNum,
				NewNumber: newNum,
			})
			oldNum++
			newNum++
		case '+':
			hunk.Lines = append(hunk.Lines, domain.DiffLine{
				Kind:      domain.LineAdded,
				Content:   line[1:],
				NewNumber: newNum,
			})
			newNum++
		case '-':
			hunk.Lines = append(hunk.Lines, domain.DiffLine{
				Kind:      domain.LineRemoved,
				Content:   line[1:],
				OldNumber: oldNum,
			})
			oldNum++
		default:
			break loop
		}

		*i++
	}

	return hunk, nil
}
