package game

// Agent is a decision strategy controlling one seat. Agents receive an
// immutable public view and return an action; they never mutate game state.
//
// Decide may return an error (or panic, or overrun the engine's time limit):
// all three are recovered identically by the decision gate, which substitutes
// a deterministic fallback. GameFinished is best-effort; failures and
// overruns are discarded.
type Agent interface {
	// Name identifies the agent; unique within one game.
	Name() string

	// Decide returns the action to take given the public view.
	Decide(view PublicState) (Action, error)

	// GameFinished is called once after the game ends with the winner and the
	// full round-by-round resolution log.
	GameFinished(winner string, resolutions []RoundResolution)
}
