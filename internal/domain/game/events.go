package game

type EventType string

const (
	EventStart   EventType = "start"
	EventMove    EventType = "move"
	EventCapture EventType = "capture"
	EventPass    EventType = "pass"
	EventEnd     EventType = "end"
)

// Event is a notification of something that happened inside a game.
// Fields beyond Type are filled depending on the event kind.
type Event struct {
	Type       EventType `json:"type"`
	Message    string    `json:"message,omitempty"`
	Color      string    `json:"color,omitempty"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Count      int       `json:"count,omitempty"`
	BlackScore int       `json:"black_score"`
	WhiteScore int       `json:"white_score"`
}

// Observer receives every event of the game it is subscribed to. Observers
// are called synchronously from inside Play/Pass and must not call back
// into the game.
type Observer func(Event)

// Subscribe registers an observer for all subsequent events.
func (g *Game) Subscribe(fn Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, fn)
}

func (g *Game) emit(ev Event) {
	for _, fn := range g.observers {
		fn(ev)
	}
}
