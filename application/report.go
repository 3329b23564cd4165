package application

import (
	"sort"

	"github.com/rios0rios0/effdiff/domain"
)

// buildMoveReport maps accepted candidates 1:1 into the persisted report
// shape, sorted by (source file, source start line) so that repeated
// runs on identical input serialize byte-for-byte identically.
func buildMoveReport(candidates []domain.MoveCandidate) domain.MoveReport {
	moves := make([]domain.Move, 0, len(candidates))
	total := 0
	for _, c := range candidates {
		moves = append(moves, domain.Move{
			SourceFile:   c.SourceFile,
			SourceLines:  c.SourceRange,
			TargetFile:   c.TargetFile,
			TargetLines:  c.TargetRange,
			MatchedLines: c.MatchedLines,
			Score:        c.Score,
		})
		total += c.MatchedLines
	}

	sort.Slice(moves, func(i, j int) bool {
		if moves[i].SourceFile != moves[j].SourceFile {
			return moves[i].SourceFile < moves[j].SourceFile
		}
		if moves[i].SourceLines.Start != moves[j].SourceLines.Start {
			return moves[i].SourceLines.Start < moves[j].SourceLines.Start
		}
		if moves[i].TargetFile != moves[j].TargetFile {
			return moves[i].TargetFile < moves[j].TargetFile
		}
		return moves[i].TargetLines.Start < moves[j].TargetLines.Start
	})

	return domain.MoveReport{
		MovesDetected:   len(moves),
		TotalLinesMoved: total,
		Moves:           moves,
	}
}
