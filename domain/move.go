package domain

// MoveCandidate is a maximal contiguous block of lines removed from one
// location and added, with identical content, at another. MatchedLines
// always equals SourceRange.Len() and TargetRange.Len(), and the content
// of source line i equals the content of target line i.
type MoveCandidate struct {
	SourceFile  string
	SourceRange LineRange
	TargetFile  string
	TargetRange LineRange

	MatchedLines int
	Score        float64
}

// Move is a single entry of the persisted move report.
type Move struct {
	SourceFile   string    `json:"sourceFile"`
	SourceLines  LineRange `json:"sourceLines"`
	TargetFile   string    `json:"targetFile"`
	TargetLines  LineRange `json:"targetLines"`
	MatchedLines int       `json:"matchedLines"`
	Score        float64   `json:"score"`
}

// MoveReport summarizes every accepted move candidate, sorted by
// (SourceFile, SourceLines.Start) for deterministic output.
type MoveReport struct {
	MovesDetected   int    `json:"movesDetected"`
	TotalLinesMoved int    `json:"totalLinesMoved"`
	Moves           []Move `json:"moves"`
}

// PipelineResult is what the engine hands back to its caller: the reduced
// diff plus the report describing every elided move.
type PipelineResult struct {
	EffectiveDiff GitDiff    `json:"effectiveDiff"`
	Report        MoveReport `json:"moveReport"`
}
