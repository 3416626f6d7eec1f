package game

const (
	// BoardSide is the number of intersections per side.
	BoardSide = 19
	// BoardCells is the total number of intersections on the board.
	BoardCells = BoardSide * BoardSide

	// MaxGroupSize is the group-size cap the original contract enforced.
	// Kept for API compatibility; traversal itself is sized for the full
	// board, since a connected wall of stones can legitimately exceed 100.
	MaxGroupSize = 100

	// NoNeighbor marks a neighbor slot that would cross a board edge.
	NoNeighbor = -1
)

// Color is the state of a single intersection.
type Color int

const (
	Empty Color = iota
	Black
	White
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Intersection is one point of the grid. X and Y are redundant with the
// linear index and kept for convenience.
type Intersection struct {
	X     int   `json:"x" bson:"x"`
	Y     int   `json:"y" bson:"y"`
	State Color `json:"state" bson:"state"`
}

// Board is a fixed 19x19 grid addressed by linear index y*19+x.
type Board struct {
	cells [BoardCells]Intersection
}

func NewBoard() *Board {
	b := &Board{}
	for pos := range b.cells {
		x, y := CoordsOf(pos)
		b.cells[pos] = Intersection{X: x, Y: y, State: Empty}
	}
	return b
}

func (b *Board) Get(pos int) Color {
	return b.cells[pos].State
}

func (b *Board) Intersection(pos int) Intersection {
	return b.cells[pos]
}

// set is the only mutation point. Legality is the state machine's job.
func (b *Board) set(pos int, c Color) {
	b.cells[pos].State = c
}

// Intersections returns a copy of the full grid.
func (b *Board) Intersections() []Intersection {
	out := make([]Intersection, BoardCells)
	copy(out, b.cells[:])
	return out
}

// PositionOf maps coordinates to a linear index. The caller must reject
// off-board coordinates first.
func PositionOf(x, y int) int {
	return y*BoardSide + x
}

func CoordsOf(pos int) (x, y int) {
	return pos % BoardSide, pos / BoardSide
}

func IsOffBoard(x, y int) bool {
	return x < 0 || y < 0 || x >= BoardSide || y >= BoardSide
}

// Neighbors holds the four orthogonal neighbors of an intersection.
// Slots that would cross a board edge hold NoNeighbor. East/west vary x,
// north/south vary y; the compass labels are an internal convention.
type Neighbors struct {
	East  int `json:"east"`
	West  int `json:"west"`
	North int `json:"north"`
	South int `json:"south"`
}

func NeighborsOf(pos int) Neighbors {
	x, y := CoordsOf(pos)
	n := Neighbors{East: NoNeighbor, West: NoNeighbor, North: NoNeighbor, South: NoNeighbor}
	if x+1 < BoardSide {
		n.East = PositionOf(x+1, y)
	}
	if x-1 >= 0 {
		n.West = PositionOf(x-1, y)
	}
	if y-1 >= 0 {
		n.North = PositionOf(x, y-1)
	}
	if y+1 < BoardSide {
		n.South = PositionOf(x, y+1)
	}
	return n
}

func (n Neighbors) list() [4]int {
	return [4]int{n.East, n.West, n.North, n.South}
}
