package diffparse

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/effdiff/domain"
)

// Render serializes a GitDiff back to unified diff text. The output is a
// plain unified diff: per-file ---/+++ headers followed by hunks with
// prefixed lines. Files without hunks are omitted.
func Render(diff domain.GitDiff) string {
	var b strings.Builder

	for _, file := range diff.Files {
		if len(file.Hunks) == 0 {
			continue
		}

		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", headerPath(file.OldPath, file.NewPath), headerPath(file.NewPath, file.OldPath))
		fmt.Fprintf(&b, "--- %s\n", sidePath("a", file.OldPath))
		fmt.Fprintf(&b, "+++ %s\n", sidePath("b", file.NewPath))

		for _, hunk := range file.Hunks {
			fmt.Fprintf(&b, "@@ -%s +%s @@\n",
				headerRange(hunk.OldStart, hunk.OldCount),
				headerRange(hunk.NewStart, hunk.NewCount),
			)
			for _, line := range hunk.Lines {
				switch line.Kind {
				case domain.LineAdded:
					b.WriteByte('+')
				case domain.LineRemoved:
					b.WriteByte('-')
				case domain.LineContext:
					b.WriteByte(' ')
				}
				b.WriteString(line.Content)
				b.WriteByte('\n')
			}
		}
	}

	return b.String()
}

// headerPath picks a real path for the "diff --git" header, which git
// never renders as /dev/null.
func headerPath(path, other string) string {
	if path == domain.DevNull {
		return other
	}
	return path
}

// sidePath renders a ---/+++ value: prefixed path or bare /dev/null.
func sidePath(prefix, path string) string {
	if path == domain.DevNull {
		return domain.DevNull
	}
	return prefix + "/" + path
}

func headerRange(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}
