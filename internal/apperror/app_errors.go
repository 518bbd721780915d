package apperror

import "errors"

// Everything here is a caller-input error: detected before any state is
// touched, returned as a typed result, never fatal to the process.
var (
	ErrParseParams      = errors.New("could not parse parameters")
	ErrInvalidGameID    = errors.New("game does not exist")
	ErrInvalidJoin      = errors.New("game cannot be joined")
	ErrNotMyTurn        = errors.New("it's not your turn")
	ErrInvalidMove      = errors.New("invalid move")
	ErrNotAHuman        = errors.New("caller is not an account")
	ErrInvalidGameState = errors.New("game is not in progress")
)
