package game

// CountLiberties counts the empty orthogonal neighbors of the single stone
// at pos. This is a local count, not the group-wide one.
func (b *Board) CountLiberties(pos int) int {
	count := 0
	for _, nb := range NeighborsOf(pos).list() {
		if nb != NoNeighbor && b.Get(nb) == Empty {
			count++
		}
	}
	return count
}

// FindGroup returns every stone of the maximal connected same-color
// component containing pos. Returns nil if pos is empty. The result order
// depends on traversal and carries no meaning.
func (b *Board) FindGroup(pos int) []int {
	color := b.Get(pos)
	if color == Empty {
		return nil
	}

	visited := make(map[int]bool, MaxGroupSize)
	stack := make([]int, 0, MaxGroupSize)
	group := make([]int, 0, MaxGroupSize)

	stack = append(stack, pos)
	visited[pos] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, cur)

		for _, nb := range NeighborsOf(cur).list() {
			if nb == NoNeighbor || visited[nb] || b.Get(nb) != color {
				continue
			}
			visited[nb] = true
			stack = append(stack, nb)
		}
	}

	return group
}

// groupLiberties counts the distinct empty intersections adjacent to any
// stone of the group. A liberty shared by two stones counts once.
func (b *Board) groupLiberties(group []int) int {
	seen := make(map[int]bool, len(group))
	for _, pos := range group {
		for _, nb := range NeighborsOf(pos).list() {
			if nb != NoNeighbor && !seen[nb] && b.Get(nb) == Empty {
				seen[nb] = true
			}
		}
	}
	return len(seen)
}

// CountGroupLiberties is the group-wide liberty count for the group
// containing pos. This is the value that decides group survival.
func (b *Board) CountGroupLiberties(pos int) int {
	return b.groupLiberties(b.FindGroup(pos))
}
