package game

// deadOpposingGroups collects the opposing groups adjacent to pos that have
// no liberties left. Each group appears once even when it touches the move
// on several sides. The board is not mutated.
func (g *Game) deadOpposingGroups(pos int, opposing Color) [][]int {
	seen := make(map[int]bool, 4)
	var dead [][]int

	for _, nb := range NeighborsOf(pos).list() {
		if nb == NoNeighbor || seen[nb] || g.board.Get(nb) != opposing {
			continue
		}
		group := g.board.FindGroup(nb)
		for _, s := range group {
			seen[s] = true
		}
		if g.board.groupLiberties(group) == 0 {
			dead = append(dead, group)
		}
	}

	return dead
}

// applyCaptures removes the given dead groups, bumps the captured counter
// for the opposing color and emits a single capture event with the total.
// Returns the number of stones removed.
func (g *Game) applyCaptures(dead [][]int, opposing Color) int {
	total := 0
	for _, group := range dead {
		for _, s := range group {
			g.board.set(s, Empty)
		}
		total += len(group)
	}

	if total == 0 {
		return 0
	}

	switch opposing {
	case White:
		g.capturedWhite += total
	case Black:
		g.capturedBlack += total
	}
	g.emit(Event{Type: EventCapture, Color: opposing.String(), Count: total})

	return total
}
