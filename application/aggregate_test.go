package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(file string, number int, content string) taggedLine {
	return taggedLine{file: file, number: number, content: content}
}

// run lines removed from file at startOld and added to target at startNew.
func movedLines(file string, startOld int, target string, startNew int, contents ...string) (removed, added []taggedLine) {
	for i, c := range contents {
		removed = append(removed, tagged(file, startOld+i, c))
		added = append(added, tagged(target, startNew+i, c))
	}
	return removed, added
}

func TestAggregateBlocks(t *testing.T) {
	t.Parallel()

	opts := Options{MinBlockSize: 3, MinSignificantLength: 2}

	t.Run("should grow one maximal block from contiguous matches", func(t *testing.T) {
		t.Parallel()

		// given
		removed, added := movedLines("utils.go", 5, "helpers.go", 1,
			"func total(items []Item) int {",
			"\tsum := 0",
			"\tfor _, it := range items {",
			"\t\tsum += it.Price",
			"\t}",
		)
		ix := buildMatchIndex(removed, added)
		consumed := newConsumedSet()

		// when
		blocks := aggregateBlocks(ix, opts, consumed)

		// then
		require.Len(t, blocks, 1)
		assert.Equal(t, block{
			srcFile:  "utils.go",
			tgtFile:  "helpers.go",
			srcStart: 5,
			tgtStart: 1,
			length:   5,
		}, blocks[0])
	})

	t.Run("should consume every line of an accepted block", func(t *testing.T) {
		t.Parallel()

		// given
		removed, added := movedLines("a.go", 10, "b.go", 20,
			"first := one()", "second := two()", "third := three()",
		)
		ix := buildMatchIndex(removed, added)
		consumed := newConsumedSet()

		// when
		blocks := aggregateBlocks(ix, opts, consumed)

		// then
		require.Len(t, blocks, 1)
		for i := 0; i < 3; i++ {
			assert.True(t, consumed.removed[lineKey{file: "a.go", number: 10 + i}])
			assert.True(t, consumed.added[lineKey{file: "b.go", number: 20 + i}])
		}
	})

	t.Run("should prefer the longest block under duplicate content", func(t *testing.T) {
		t.Parallel()

		// given: the removed block appears fully in b.go and its first
		// line also appears alone in c.go
		removed, added := movedLines("a.go", 10, "b.go", 1,
			"result := compute()", "result.Validate()", "store(result)",
		)
		added = append(added, tagged("c.go", 7, "result := compute()"))
		ix := buildMatchIndex(removed, added)
		consumed := newConsumedSet()

		// when
		blocks := aggregateBlocks(ix, opts, consumed)

		// then
		require.Len(t, blocks, 1)
		assert.Equal(t, "b.go", blocks[0].tgtFile)
		assert.Equal(t, 3, blocks[0].length)
		assert.False(t, consumed.added[lineKey{file: "c.go", number: 7}])
	})

	t.Run("should stop once the best remaining block is below the minimum size", func(t *testing.T) {
		t.Parallel()

		// given
		removed := []taggedLine{tagged("a.go", 1, "short := match()")}
		added := []taggedLine{tagged("b.go", 9, "short := match()")}
		ix := buildMatchIndex(removed, added)
		consumed := newConsumedSet()

		// when
		blocks := aggregateBlocks(ix, opts, consumed)

		// then
		assert.Empty(t, blocks)
		assert.Empty(t, consumed.removed)
		assert.Empty(t, consumed.added)
	})

	t.Run("should skip blocks without a significant line and leave them unconsumed", func(t *testing.T) {
		t.Parallel()

		// given: blanks and lone braces only
		removed, added := movedLines("a.go", 1, "b.go", 1, "", "}", "")
		ix := buildMatchIndex(removed, added)
		consumed := newConsumedSet()

		// when
		blocks := aggregateBlocks(ix, opts, consumed)

		// then
		assert.Empty(t, blocks)
		assert.Empty(t, consumed.removed)
	})

	t.Run("should split blocks when the target switches files", func(t *testing.T) {
		t.Parallel()

		// given: four contiguous removed lines whose matches live in
		// two different target files
		removed := []taggedLine{
			tagged("a.go", 1, "p := parse(input)"),
			tagged("a.go", 2, "q := normalize(p)"),
			tagged("a.go", 3, "r := validate(q)"),
			tagged("a.go", 4, "s := persist(r)"),
		}
		added := []taggedLine{
			tagged("b.go", 1, "p := parse(input)"),
			tagged("b.go", 2, "q := normalize(p)"),
			tagged("c.go", 5, "r := validate(q)"),
			tagged("c.go", 6, "s := persist(r)"),
		}
		ix := buildMatchIndex(removed, added)
		consumed := newConsumedSet()

		// when
		blocks := aggregateBlocks(ix, Options{MinBlockSize: 2, MinSignificantLength: 2}, consumed)

		// then
		require.Len(t, blocks, 2)
		for _, b := range blocks {
			assert.Equal(t, 2, b.length)
		}
	})

	t.Run("should break length ties deterministically by lowest target start", func(t *testing.T) {
		t.Parallel()

		// given: identical block content present twice in the target
		removed, added := movedLines("a.go", 1, "b.go", 1,
			"x := load()", "y := apply(x)", "z := save(y)",
		)
		_, dup := movedLines("a.go", 1, "b.go", 40,
			"x := load()", "y := apply(x)", "z := save(y)",
		)
		added = append(added, dup...)
		ix := buildMatchIndex(removed, added)
		consumed := newConsumedSet()

		// when
		blocks := aggregateBlocks(ix, opts, consumed)

		// then: one block only, anchored at the lower target start
		require.Len(t, blocks, 1)
		assert.Equal(t, 1, blocks[0].tgtStart)
	})
}
