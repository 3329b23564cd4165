package application

import (
	"context"
	"sort"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/effdiff/domain"
)

// Engine defaults. The context window sits at 3 lines — wider windows
// pull unrelated code into the residual regions.
const (
	DefaultMinBlockSize         = 3
	DefaultContextLines         = 3
	DefaultMinSignificantLength = 2
	DefaultParallelism          = 4
)

// Options are the engine's tunables. Zero values take the defaults.
type Options struct {
	// MinBlockSize is the smallest matched line count a block needs
	// to be reported as a move.
	MinBlockSize int
	// ContextLines pads the residual regions handed to the differ.
	ContextLines int
	// MinSignificantLength is the smallest trimmed line length that
	// counts as signal when filtering coincidental blocks.
	MinSignificantLength int
	// Parallelism bounds concurrent per-file-pair re-diff work.
	Parallelism int
}

func (o Options) withDefaults() Options {
	if o.MinBlockSize <= 0 {
		o.MinBlockSize = DefaultMinBlockSize
	}
	if o.ContextLines <= 0 {
		o.ContextLines = DefaultContextLines
	}
	if o.MinSignificantLength <= 0 {
		o.MinSignificantLength = DefaultMinSignificantLength
	}
	if o.Parallelism <= 0 {
		o.Parallelism = DefaultParallelism
	}
	return o
}

// Service runs the effective diff pipeline. It holds no state beyond
// its collaborators; every Run is independent and safe to execute
// concurrently with other runs.
type Service struct {
	differ domain.Differ
}

// NewService creates the engine around the given re-diff collaborator.
func NewService(differ domain.Differ) *Service {
	return &Service{differ: differ}
}

// Run executes the full pipeline: extract, match, aggregate, re-diff,
// reconstruct, report. No failure escapes: a malformed input diff or an
// internal panic degrades to the unchanged input with an empty report,
// and a single file pair's re-diff failure degrades only that pair. The
// returned error is non-nil solely when ctx is cancelled, in which case
// partial work is discarded and the fallback result accompanies it.
func (s *Service) Run(
	ctx context.Context,
	diff domain.GitDiff,
	contents domain.ContentProvider,
	opts Options,
) (result domain.PipelineResult, err error) {
	opts = opts.withDefaults()
	fallback := domain.PipelineResult{EffectiveDiff: diff, Report: emptyReport()}

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("effective diff pipeline panicked: %v; returning the input diff unreduced", r)
			result = fallback
			err = nil
		}
	}()

	if vErr := validateDiff(diff); vErr != nil {
		logger.Warnf("input diff is malformed, returning it unreduced: %v", vErr)
		return fallback, nil
	}

	removed, added := extractLines(diff)
	ix := buildMatchIndex(removed, added)
	consumed := newConsumedSet()
	blocks := aggregateBlocks(ix, opts, consumed)
	if len(blocks) == 0 {
		// Nothing relocated: the effective diff is the input diff,
		// byte for byte.
		return domain.PipelineResult{EffectiveDiff: diff, Report: emptyReport()}, nil
	}
	candidates := ix.toCandidates(blocks)

	logger.Debugf("detected %d move candidate(s) across %d file pair(s)", len(candidates), len(diff.Files))

	outcomes := make([]pairOutcome, len(diff.Files))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Parallelism)

	for i := range diff.Files {
		if !pairAffected(diff.Files[i], consumed) {
			continue
		}
		outcomes[i].attempted = true

		idx := i // capture for closure
		file := diff.Files[i]
		group.Go(func() error {
			hunks, rErr := s.rediffFilePair(gctx, file, contents, consumed, opts)
			if rErr != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warnf(
					"file pair %q -> %q degrades to its original hunks: %v",
					file.OldPath, file.NewPath, rErr,
				)
				outcomes[idx].failed = true
				return nil
			}
			outcomes[idx].hunks = hunks
			return nil
		})
	}

	if wErr := group.Wait(); wErr != nil {
		// Cancelled mid-flight: partial results are discarded.
		return fallback, wErr
	}

	// Deterministic merge regardless of completion order: file pairs
	// ordered by path, hunks in original order within each pair.
	order := make([]int, len(diff.Files))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		fa, fb := diff.Files[order[a]], diff.Files[order[b]]
		if fa.OldPath != fb.OldPath {
			return fa.OldPath < fb.OldPath
		}
		return fa.NewPath < fb.NewPath
	})

	effective := domain.GitDiff{CommitHash: diff.CommitHash}
	for _, i := range order {
		file := diff.Files[i]
		hunks := reconstructFilePair(file, outcomes[i], consumed, opts)
		if len(hunks) == 0 {
			continue
		}
		effective.Files = append(effective.Files, domain.FileDiff{
			OldPath: file.OldPath,
			NewPath: file.NewPath,
			Hunks:   hunks,
		})
	}

	return domain.PipelineResult{
		EffectiveDiff: effective,
		Report:        buildMoveReport(candidates),
	}, nil
}

// pairAffected reports whether any line of the file pair was consumed by
// a move, on either side. Unaffected pairs skip the re-diff entirely and
// keep their original hunks, so a move-free file is passed through
// untouched.
func pairAffected(file domain.FileDiff, consumed *consumedSet) bool {
	for _, hunk := range file.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case domain.LineRemoved:
				if consumed.removed[lineKey{file: file.OldPath, number: line.OldNumber}] {
					return true
				}
			case domain.LineAdded:
				if consumed.added[lineKey{file: file.NewPath, number: line.NewNumber}] {
					return true
				}
			case domain.LineContext:
			}
		}
	}
	return false
}

func emptyReport() domain.MoveReport {
	return domain.MoveReport{Moves: []domain.Move{}}
}
