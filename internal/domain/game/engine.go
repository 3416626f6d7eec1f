package game

import (
	"sync"

	errs "github.com/julienbrg/game-of-go/internal/errors"
)

// Phase is the lifecycle state of a game.
type Phase int

const (
	InProgress Phase = iota
	Ended
)

func (p Phase) String() string {
	if p == Ended {
		return "ended"
	}
	return "in_progress"
}

// Game is the rules engine for one game between two identified players.
// All state belongs to the instance; independent games never share
// anything. Every Play/Pass is atomic under the mutex and either fully
// commits or leaves the board untouched.
type Game struct {
	mu sync.Mutex

	board *Board
	black string
	white string

	turn          Color
	phase         Phase
	capturedWhite int
	capturedBlack int
	blackPassed   bool
	whitePassed   bool
	blackScore    int
	whiteScore    int

	// Simple-ko bookkeeping: position vacated by the last single-stone
	// capture and the move number it happened on.
	moveCount        int
	lastCapturedPos  int
	lastCapturedMove int

	observers []Observer
}

// NewGame creates a game between the two identities. Black moves first.
// Observers passed here receive the start notification as well.
func NewGame(black, white string, observers ...Observer) *Game {
	g := &Game{
		board:            NewBoard(),
		black:            black,
		white:            white,
		turn:             Black,
		phase:            InProgress,
		lastCapturedPos:  NoNeighbor,
		lastCapturedMove: -1,
		observers:        observers,
	}
	g.emit(Event{Type: EventStart, Message: "game started"})
	return g
}

func (g *Game) colorOf(caller string) (Color, error) {
	switch caller {
	case g.white:
		return White, nil
	case g.black:
		return Black, nil
	default:
		return Empty, errs.ErrCallerNotAllowed
	}
}

// Play places a stone for caller at (x, y). The checks run in a fixed
// order: caller, off-board, turn, occupancy, then tentative placement
// followed by capture resolution, the suicide rule and the ko rule. A
// rejected move leaves no trace on the board.
func (g *Game) Play(caller string, x, y int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.colorOf(caller)
	if err != nil {
		return err
	}
	if IsOffBoard(x, y) {
		return errs.ErrOffBoard
	}
	if g.phase == Ended {
		return errs.ErrGameEnded
	}
	if g.turn != color {
		return errs.ErrNotYourTurn
	}

	pos := PositionOf(x, y)
	if g.board.Get(pos) != Empty {
		return errs.ErrCannotPlayHere
	}

	// Place tentatively; the stone may merge with a friendly group.
	g.board.set(pos, color)

	opposing := color.Opponent()
	dead := g.deadOpposingGroups(pos, opposing)
	wouldCapture := 0
	for _, group := range dead {
		wouldCapture += len(group)
	}

	// Capturing resolves before the suicide judgement: a move with zero
	// own liberties is legal when it kills an adjacent enemy group.
	if wouldCapture == 0 && g.board.CountGroupLiberties(pos) == 0 {
		g.board.set(pos, Empty)
		return errs.ErrNoLiberties
	}

	// Simple ko: the opponent captured exactly one stone here last move,
	// and this move would capture exactly one stone back.
	if wouldCapture == 1 && pos == g.lastCapturedPos && g.moveCount == g.lastCapturedMove+1 {
		g.board.set(pos, Empty)
		return errs.ErrViolatesKoRule
	}

	captured := g.applyCaptures(dead, opposing)
	if captured == 1 {
		g.lastCapturedPos = dead[0][0]
		g.lastCapturedMove = g.moveCount
	}

	g.moveCount++
	switch color {
	case Black:
		g.blackPassed = false
	case White:
		g.whitePassed = false
	}
	g.turn = opposing
	g.emit(Event{Type: EventMove, Color: color.String(), X: x, Y: y})

	return nil
}

// Pass gives up caller's turn. Two consecutive passes end the game.
func (g *Game) Pass(caller string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.colorOf(caller)
	if err != nil {
		return err
	}
	if g.phase == Ended {
		return errs.ErrGameEnded
	}
	if g.turn != color {
		return errs.ErrNotYourTurn
	}

	switch color {
	case Black:
		g.blackPassed = true
	case White:
		g.whitePassed = true
	}

	g.moveCount++
	g.turn = color.Opponent()
	g.emit(Event{Type: EventPass, Color: color.String()})

	if g.blackPassed && g.whitePassed {
		return g.end()
	}

	return nil
}

// end closes the game after a double pass. Scoring is the placeholder the
// original contract shipped: black 1, white 0. No territory counting.
func (g *Game) end() error {
	if !g.blackPassed || !g.whitePassed {
		return errs.ErrMissingTwoConsecutivePass
	}

	g.blackScore = 1
	g.whiteScore = 0
	g.phase = Ended
	g.emit(Event{
		Type:       EventEnd,
		Message:    "game ended after two consecutive passes",
		BlackScore: g.blackScore,
		WhiteScore: g.whiteScore,
	})

	return nil
}

func (g *Game) Turn() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) CapturedWhite() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.capturedWhite
}

func (g *Game) CapturedBlack() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.capturedBlack
}

func (g *Game) BlackPassedOnce() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.blackPassed
}

func (g *Game) WhitePassedOnce() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.whitePassed
}

// Scores returns the final scores. Both are zero until the game ends.
func (g *Game) Scores() (blackScore, whiteScore int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.blackScore, g.whiteScore
}

func (g *Game) GetIntersection(pos int) Intersection {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Intersection(pos)
}

// GetGroup returns the connected same-color group containing pos, or nil
// when pos is empty.
func (g *Game) GetGroup(pos int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.FindGroup(pos)
}

// CountLiberties is the local empty-neighbor count of the stone at pos.
func (g *Game) CountLiberties(pos int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.CountLiberties(pos)
}

// CountGroupLiberties is the deduplicated liberty count of the whole group
// containing pos.
func (g *Game) CountGroupLiberties(pos int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.CountGroupLiberties(pos)
}

func (g *Game) GetNeighbors(pos int) Neighbors {
	g.mu.Lock()
	defer g.mu.Unlock()
	return NeighborsOf(pos)
}

// Snapshot returns the aggregate state in one consistent read.
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GameState{
		Board:           g.board.Intersections(),
		Turn:            g.turn.String(),
		Phase:           g.phase.String(),
		CapturedWhite:   g.capturedWhite,
		CapturedBlack:   g.capturedBlack,
		BlackPassedOnce: g.blackPassed,
		WhitePassedOnce: g.whitePassed,
		BlackScore:      g.blackScore,
		WhiteScore:      g.whiteScore,
	}
}
