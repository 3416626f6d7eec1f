package game

import "time"

// GameState is the aggregate snapshot exposed to clients: the full board
// plus every counter and flag in one consistent read.
type GameState struct {
	Board           []Intersection `json:"board"`
	Turn            string         `json:"turn"`
	Phase           string         `json:"phase"`
	CapturedWhite   int            `json:"captured_white"`
	CapturedBlack   int            `json:"captured_black"`
	BlackPassedOnce bool           `json:"black_passed_once"`
	WhitePassedOnce bool           `json:"white_passed_once"`
	BlackScore      int            `json:"black_score"`
	WhiteScore      int            `json:"white_score"`
}

// Record is the persisted registry entry of a game. The live board lives
// in the engine; the record carries identities, keys and the outcome.
type Record struct {
	GameID        int64      `json:"game_id" bson:"game_id"`
	GameKeySecret string     `json:"-" bson:"game_key_secret"`
	GameKeyPublic string     `json:"game_key_public" bson:"game_key_public"`
	PlayerBlack   string     `json:"player_black" bson:"player_black"`
	PlayerWhite   string     `json:"player_white" bson:"player_white"`
	Status        string     `json:"status" bson:"status"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	EndedAt       *time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
	Komi          float64    `json:"komi" bson:"komi"`
	CapturedWhite int        `json:"captured_white" bson:"captured_white"`
	CapturedBlack int        `json:"captured_black" bson:"captured_black"`
	BlackScore    int        `json:"black_score" bson:"black_score"`
	WhiteScore    int        `json:"white_score" bson:"white_score"`
}

type CreateGameRequest struct {
	IsCreatorBlack bool    `json:"is_creator_black"`
	Komi           float64 `json:"komi"`
}

type CreateGameResponse struct {
	GameKeyPublic string `json:"game_key_public"`
	GameKeySecret string `json:"game_key_secret"`
}

type JoinGameRequest struct {
	GameKeyPublic string `json:"game_key_public"`
}

type PlayRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StateResponse is the payload pushed over the websocket and returned by
// the state endpoint: the snapshot plus the SGF record so far.
type StateResponse struct {
	State GameState `json:"state"`
	SGF   string    `json:"sgf"`
}
