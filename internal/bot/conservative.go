package bot

import (
	"github.com/etchenko/perudo/internal/game"
)

// ConservativeBot challenges aggressively unless the current bid is plausible
// given its own dice, and otherwise makes the minimal legal bid on a face it
// actually holds.
type ConservativeBot struct {
	name string
}

// NewConservativeBot creates a new ConservativeBot instance
func NewConservativeBot(name string) *ConservativeBot {
	return &ConservativeBot{name: name}
}

func (c *ConservativeBot) Name() string { return c.name }

func (c *ConservativeBot) Decide(view game.PublicState) (game.Action, error) {
	if cur := view.CurrentBid; cur != nil {
		mine := countWithWilds(view.MyDice, cur.Face, view.WildOnes)
		// My contribution is far below the claimed quantity: call the bluff.
		if mine <= max(0, cur.Quantity-2) {
			return game.ChallengeAction(), nil
		}
	}

	faceCounts := make(map[int]int, view.Faces)
	for f := 1; f <= view.Faces; f++ {
		faceCounts[f] = countWithWilds(view.MyDice, f, view.WildOnes)
	}

	if view.CurrentBid == nil {
		best := 1
		for f := 2; f <= view.Faces; f++ {
			if faceCounts[f] > faceCounts[best] {
				best = f
			}
		}
		return game.BidAction(game.Bid{Quantity: 1, Face: best}), nil
	}

	candidates := legalBids(view)
	if len(candidates) == 0 {
		return game.ChallengeAction(), nil
	}
	// legalBids is ascending in (quantity, face); among equally small raises
	// prefer a face we actually hold.
	best := candidates[0]
	for _, b := range candidates[1:] {
		if b.Quantity != best.Quantity {
			break
		}
		if faceCounts[b.Face] > faceCounts[best.Face] {
			best = b
		}
	}
	return game.BidAction(best), nil
}

func (c *ConservativeBot) GameFinished(winner string, resolutions []game.RoundResolution) {}
