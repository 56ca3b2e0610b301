package match

import "errors"

var (
	ErrInvalidScore    = errors.New("invalid set score")
	ErrMissingPlayer   = errors.New("missing player name")
	ErrDuplicatePlayer = errors.New("player appears more than once in match")
	ErrInvalidDate     = errors.New("invalid match date")
	ErrInvalidWinner   = errors.New("invalid winner team")
)
