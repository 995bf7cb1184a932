package game

// PlayerState holds one player's mutable state for the life of a game.
// Dice always has length DiceRemaining outside a roll in progress. The
// controlling strategy is not stored here; the engine pairs each seat's
// PlayerState with its Agent by seat index.
type PlayerState struct {
	Name          string
	DiceRemaining int
	Dice          []int
}

// PlayerPublic is the projection of a player that other seats may see: name
// and dice count, never the hidden roll.
type PlayerPublic struct {
	Name          string
	DiceRemaining int
	Mine          bool
}
