package application

import (
	"strings"
)

// consumedSet tracks which removed/added lines have been claimed by an
// accepted move. Each pipeline run owns exactly one instance; there is
// no ambient state.
type consumedSet struct {
	removed map[lineKey]bool
	added   map[lineKey]bool
}

func newConsumedSet() *consumedSet {
	return &consumedSet{
		removed: make(map[lineKey]bool),
		added:   make(map[lineKey]bool),
	}
}

// block is a maximal contiguous run of matched line pairs between one
// source file (old side) and one target file (new side).
type block struct {
	srcFile  string
	tgtFile  string
	srcStart int
	tgtStart int
	length   int
}

// better orders blocks for greedy selection: longest first, ties broken
// by source file path, then lowest source start line, then target file
// and start for full determinism.
func (b block) better(other block) bool {
	if b.length != other.length {
		return b.length > other.length
	}
	if b.srcFile != other.srcFile {
		return b.srcFile < other.srcFile
	}
	if b.srcStart != other.srcStart {
		return b.srcStart < other.srcStart
	}
	if b.tgtFile != other.tgtFile {
		return b.tgtFile < other.tgtFile
	}
	return b.tgtStart < other.tgtStart
}

// grow extends the seed pair (removed ri, added ai) forward and backward
// into its maximal block: both sides must stay contiguous in their own
// file's numbering, stay within the same file-to-file pairing, keep
// byte-identical content, and must not touch already-consumed lines.
func (ix *matchIndex) grow(ri, ai int, consumed *consumedSet) block {
	src := ix.removed[ri]
	tgt := ix.added[ai]

	extent := func(dir int) int {
		steps := 0
		for {
			next := steps + 1
			rIdx, rOk := ix.removedAt[lineKey{file: src.file, number: src.number + dir*next}]
			aIdx, aOk := ix.addedAt[lineKey{file: tgt.file, number: tgt.number + dir*next}]
			if !rOk || !aOk {
				break
			}
			if ix.removed[rIdx].content != ix.added[aIdx].content {
				break
			}
			if consumed.removed[ix.removed[rIdx].key()] || consumed.added[ix.added[aIdx].key()] {
				break
			}
			steps = next
		}
		return steps
	}

	back := extent(-1)
	fwd := extent(+1)

	return block{
		srcFile:  src.file,
		tgtFile:  tgt.file,
		srcStart: src.number - back,
		tgtStart: tgt.number - back,
		length:   back + fwd + 1,
	}
}

// consume marks every source and target line of the block as claimed.
func (ix *matchIndex) consume(b block, consumed *consumedSet) {
	for k := 0; k < b.length; k++ {
		consumed.removed[lineKey{file: b.srcFile, number: b.srcStart + k}] = true
		consumed.added[lineKey{file: b.tgtFile, number: b.tgtStart + k}] = true
	}
}

// hasSignificantLine reports whether at least one line of the block
// carries real signal: trimmed content at least minLen long. Blocks made
// purely of blanks and closing braces are coincidence, not moves.
func (ix *matchIndex) hasSignificantLine(b block, minLen int) bool {
	for k := 0; k < b.length; k++ {
		idx, ok := ix.removedAt[lineKey{file: b.srcFile, number: b.srcStart + k}]
		if !ok {
			continue
		}
		if len(strings.TrimSpace(ix.removed[idx].content)) >= minLen {
			return true
		}
	}
	return false
}

// aggregateBlocks partitions matched line pairs into maximal,
// non-overlapping move blocks. Selection is greedy longest-first: of all
// maximal blocks growable from unconsumed seeds, the best one is
// accepted and its lines consumed, then the search repeats. When a
// removed line has duplicate-content matches in several places, this
// ordering implicitly prefers the interpretation explaining the most
// lines as one move. Selection stops once the best remaining block is
// below minBlockSize.
func aggregateBlocks(ix *matchIndex, opts Options, consumed *consumedSet) []block {
	var accepted []block
	rejected := make(map[block]bool)

	for {
		var best block
		found := false

		for ri := range ix.removed {
			if consumed.removed[ix.removed[ri].key()] {
				continue
			}
			for _, ai := range ix.matches(ri) {
				if consumed.added[ix.added[ai].key()] {
					continue
				}
				b := ix.grow(ri, ai, consumed)
				if rejected[b] {
					continue
				}
				if !found || b.better(best) {
					best = b
					found = true
				}
			}
		}

		if !found || best.length < opts.MinBlockSize {
			break
		}
		if !ix.hasSignificantLine(best, opts.MinSignificantLength) {
			// Leave its lines unconsumed so they stay in the
			// effective diff, but never look at this block again.
			rejected[best] = true
			continue
		}

		ix.consume(best, consumed)
		accepted = append(accepted, best)
	}

	return accepted
}
