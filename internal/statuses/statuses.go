package statuses

const (
	StatusWaitOpponent = "wait_opponent"
	StatusInProgress   = "in_progress"
	StatusEnded        = "ended"
)
