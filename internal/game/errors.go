package game

import (
	"errors"
	"fmt"
)

// Protocol misuse: the engine was driven into an invalid state. These are
// programming errors, never the result of a misbehaving strategy (the
// decision gate screens those out before they reach the resolver).
var (
	ErrTooFewPlayers = errors.New("game needs at least two players")
	ErrNoCurrentBid  = errors.New("challenge resolved without a current bid")
	ErrExactDisabled = errors.New("exact call resolved while exact calls are disabled")
)

// RunawayRoundError aborts a game whose round exceeded the turn-count safety
// ceiling, which only happens when the turn state machine stops making
// progress.
type RunawayRoundError struct {
	Round int
	Turns int
}

func (e *RunawayRoundError) Error() string {
	return fmt.Sprintf("round %d exceeded %d turns without resolving", e.Round, e.Turns)
}
