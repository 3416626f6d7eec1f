package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountLibertiesLoneStone(t *testing.T) {
	b := NewBoard()
	b.set(PositionOf(0, 0), Black)
	b.set(PositionOf(0, 5), Black)
	b.set(PositionOf(9, 9), Black)

	assert.Equal(t, 2, b.CountLiberties(PositionOf(0, 0)), "corner stone")
	assert.Equal(t, 3, b.CountLiberties(PositionOf(0, 5)), "edge stone")
	assert.Equal(t, 4, b.CountLiberties(PositionOf(9, 9)), "interior stone")
}

func TestFindGroupPlusShape(t *testing.T) {
	b := NewBoard()
	stones := [][2]int{{16, 17}, {16, 16}, {16, 15}, {17, 15}, {15, 15}}
	want := make([]int, 0, len(stones))
	for _, s := range stones {
		pos := PositionOf(s[0], s[1])
		b.set(pos, Black)
		want = append(want, pos)
	}

	// Every stone of the plus yields the same component, order aside.
	for _, start := range want {
		group := b.FindGroup(start)
		assert.ElementsMatch(t, want, group)
	}
}

func TestFindGroupEmptyStart(t *testing.T) {
	b := NewBoard()
	assert.Empty(t, b.FindGroup(PositionOf(3, 3)))
}

func TestFindGroupIgnoresOtherColor(t *testing.T) {
	b := NewBoard()
	b.set(PositionOf(4, 4), Black)
	b.set(PositionOf(5, 4), White)
	b.set(PositionOf(4, 5), Black)

	group := b.FindGroup(PositionOf(4, 4))
	assert.ElementsMatch(t, []int{PositionOf(4, 4), PositionOf(4, 5)}, group)
}

// A connected wall can legitimately exceed the historical MaxGroupSize cap;
// traversal must never truncate it.
func TestFindGroupBeyondHistoricalCap(t *testing.T) {
	b := NewBoard()
	count := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < BoardSide; x++ {
			b.set(PositionOf(x, y), White)
			count++
		}
	}
	require.Greater(t, count, MaxGroupSize)

	group := b.FindGroup(PositionOf(0, 0))
	assert.Len(t, group, count)
}

func TestGroupLibertiesDeduplicated(t *testing.T) {
	b := NewBoard()
	b.set(PositionOf(1, 1), Black)
	b.set(PositionOf(2, 1), Black)

	// Two interior stones in a row share no liberty point twice: 6 total.
	assert.Equal(t, 6, b.CountGroupLiberties(PositionOf(1, 1)))
	assert.Equal(t, 6, b.CountGroupLiberties(PositionOf(2, 1)))
}

func TestGroupLibertiesSurrounded(t *testing.T) {
	b := NewBoard()
	b.set(PositionOf(0, 0), White)
	b.set(PositionOf(1, 0), Black)
	b.set(PositionOf(0, 1), Black)

	assert.Equal(t, 0, b.CountGroupLiberties(PositionOf(0, 0)))
}
