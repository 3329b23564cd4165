package application

import "github.com/rios0rios0/effdiff/domain"

// scoreBlock computes the move confidence score: matched line count
// weighted by the mean uniqueness of the block's content in the added
// pool. Lines that occur many times across the diff ("return nil",
// blank-ish lines) contribute little; unique lines contribute fully.
// For a fixed content mix the score is strictly increasing in the
// matched line count — the only contract callers may rely on; the
// uniqueness weighting is a tunable heuristic.
func (ix *matchIndex) scoreBlock(b block) float64 {
	sum := 0.0
	counted := 0
	for k := 0; k < b.length; k++ {
		idx, ok := ix.removedAt[lineKey{file: b.srcFile, number: b.srcStart + k}]
		if !ok {
			continue
		}
		freq := ix.addedFreq[ix.removed[idx].content]
		if freq < 1 {
			freq = 1
		}
		sum += 1.0 / float64(freq)
		counted++
	}

	uniqueness := 1.0
	if counted > 0 {
		uniqueness = sum / float64(counted)
	}
	return float64(b.length) * uniqueness
}

// toCandidates converts accepted blocks into MoveCandidate values.
func (ix *matchIndex) toCandidates(blocks []block) []domain.MoveCandidate {
	candidates := make([]domain.MoveCandidate, 0, len(blocks))
	for _, b := range blocks {
		candidates = append(candidates, domain.MoveCandidate{
			SourceFile: b.srcFile,
			SourceRange: domain.LineRange{
				Start: b.srcStart,
				End:   b.srcStart + b.length - 1,
			},
			TargetFile: b.tgtFile,
			TargetRange: domain.LineRange{
				Start: b.tgtStart,
				End:   b.tgtStart + b.length - 1,
			},
			MatchedLines: b.length,
			Score:        ix.scoreBlock(b),
		})
	}
	return candidates
}
