package application

// matchIndex answers "which added lines have the same content as this
// removed line" in O(1) average, plus positional lookups used when
// growing blocks. Matching is byte-identical content equality: the
// matcher never normalizes and never drops low-signal lines — trivial
// matches are weeded out later at the block level.
type matchIndex struct {
	removed []taggedLine
	added   []taggedLine

	// content -> indices into added, in input order
	byContent map[string][]int

	// positional lookups, index into the respective slice
	removedAt map[lineKey]int
	addedAt   map[lineKey]int

	// content -> occurrence count in the added pool, for scoring
	addedFreq map[string]int
}

// buildMatchIndex indexes the added pool by content and both pools by
// position.
func buildMatchIndex(removed, added []taggedLine) *matchIndex {
	ix := &matchIndex{
		removed:   removed,
		added:     added,
		byContent: make(map[string][]int, len(added)),
		removedAt: make(map[lineKey]int, len(removed)),
		addedAt:   make(map[lineKey]int, len(added)),
		addedFreq: make(map[string]int, len(added)),
	}

	for i, line := range added {
		ix.byContent[line.content] = append(ix.byContent[line.content], i)
		ix.addedAt[line.key()] = i
		ix.addedFreq[line.content]++
	}
	for i, line := range removed {
		ix.removedAt[line.key()] = i
	}

	return ix
}

// matches returns the indices of every added line whose content is
// byte-identical to the removed line at index ri.
func (ix *matchIndex) matches(ri int) []int {
	return ix.byContent[ix.removed[ri].content]
}

// hasAnyMatch reports whether at least one removed line has a
// content-identical added counterpart anywhere in the diff.
func (ix *matchIndex) hasAnyMatch() bool {
	for _, line := range ix.removed {
		if len(ix.byContent[line.content]) > 0 {
			return true
		}
	}
	return false
}
