package domain

// LineKind classifies a single line within a hunk.
type LineKind string

const (
	// LineContext is a line present on both sides of the diff.
	LineContext LineKind = "context"
	// LineAdded is a line present only in the new file.
	LineAdded LineKind = "added"
	// LineRemoved is a line present only in the old file.
	LineRemoved LineKind = "removed"
)

// DevNull is the path git uses for the missing side of a created or
// deleted file.
const DevNull = "/dev/null"

// DiffLine is a single line from a diff. Context lines carry both line
// numbers, removed lines only OldNumber, added lines only NewNumber.
// A zero number means "no line on that side".
type DiffLine struct {
	Kind      LineKind `json:"kind"`
	Content   string   `json:"content"`
	OldNumber int      `json:"oldNumber,omitempty"`
	NewNumber int      `json:"newNumber,omitempty"`
}

// Hunk is a contiguous region of changes within a file diff. Line numbers
// are strictly increasing per side across Lines.
type Hunk struct {
	OldStart int        `json:"oldStart"`
	OldCount int        `json:"oldCount"`
	NewStart int        `json:"newStart"`
	NewCount int        `json:"newCount"`
	Lines    []DiffLine `json:"lines"`
}

// FileDiff is the diff for a single file pair. OldPath or NewPath is
// DevNull for created/deleted files.
type FileDiff struct {
	OldPath string `json:"oldPath"`
	NewPath string `json:"newPath"`
	Hunks   []Hunk `json:"hunks"`
}

// GitDiff is a parsed unified diff: one FileDiff per changed file pair.
type GitDiff struct {
	CommitHash string     `json:"commitHash,omitempty"`
	Files      []FileDiff `json:"files"`
}

// LineRange is an inclusive 1-indexed range of line numbers.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of lines in the range, 0 when it is empty.
func (r LineRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether the given line number falls inside the range.
func (r LineRange) Contains(n int) bool {
	return n >= r.Start && n <= r.End
}
