package errors

import "errors"

var (
	ErrUserNotFound    = errors.New("user with provided username was not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrSessionNotFound = errors.New("session was not found")
	ErrUserExists      = errors.New("user already exists")
	ErrInternal        = errors.New("internal error")

	ErrCreateGameFailed = errors.New("create game failed")
	ErrJoinGameFailed   = errors.New("join game failed")
	ErrGameNotFound     = errors.New("game not found")
)

// Rules violations reported by the engine. All of them are caller errors,
// never system failures: the move is rolled back and the error returned
// verbatim.
var (
	ErrCallerNotAllowed          = errors.New("caller is not allowed to play")
	ErrNotYourTurn               = errors.New("not your turn")
	ErrCannotPlayHere            = errors.New("cannot play here")
	ErrOffBoard                  = errors.New("position is off board")
	ErrNoLiberties               = errors.New("no liberties: suicide is not allowed")
	ErrViolatesKoRule            = errors.New("move violates the ko rule")
	ErrMissingTwoConsecutivePass = errors.New("ending the game requires two consecutive passes")
	ErrGameEnded                 = errors.New("game has already ended")
)
