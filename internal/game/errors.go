package game

import "errors"

// Every boundary operation returns one of these sentinels on rejection; the
// transport layer maps them onto status codes. Deck exhaustion, a stalled
// automated sequence and the zero-players failsafe are events, not errors,
// because the operation itself still completes.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotYourTurn      = errors.New("it's not your turn or game not started")
	ErrInvalidCardIndex = errors.New("invalid card index")
	ErrIllegalCard      = errors.New("card cannot be played directly")
	ErrNoPendingAction  = errors.New("no pending action to resolve")
	ErrInvalidTarget    = errors.New("no valid target for favor")
	ErrPendingAction    = errors.New("a pending action must be resolved first")
)
