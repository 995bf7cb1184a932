package bot

import (
	rand "math/rand/v2"

	"github.com/etchenko/perudo/internal/game"
)

// RandomBot bids most of the time, picking uniformly among legal raises, and
// otherwise challenges; in wild-ones games it occasionally tries an exact
// call.
type RandomBot struct {
	name string
	rng  *rand.Rand
}

// NewRandomBot creates a new RandomBot instance
func NewRandomBot(name string, rng *rand.Rand) *RandomBot {
	return &RandomBot{name: name, rng: rng}
}

func (r *RandomBot) Name() string { return r.name }

func (r *RandomBot) Decide(view game.PublicState) (game.Action, error) {
	bids := legalBids(view)

	if len(bids) > 0 && r.rng.Float64() < 0.7 {
		return game.BidAction(bids[r.rng.IntN(len(bids))]), nil
	}
	if view.CurrentBid != nil {
		if view.WildOnes && view.RoundNumber%2 == 0 && r.rng.Float64() < 0.5 {
			return game.ExactAction(), nil
		}
		return game.ChallengeAction(), nil
	}
	// No current bid: must open.
	if len(bids) > 0 {
		return game.BidAction(bids[0]), nil
	}
	return game.BidAction(game.Bid{Quantity: 1, Face: 1}), nil
}

func (r *RandomBot) GameFinished(winner string, resolutions []game.RoundResolution) {}

// legalBids enumerates every legal bid in ascending (quantity, face) order.
func legalBids(view game.PublicState) []game.Bid {
	total := view.TotalDice()
	var out []game.Bid
	for q := 1; q <= total; q++ {
		for f := 1; f <= view.Faces; f++ {
			b := game.Bid{Quantity: q, Face: f}
			if game.BidLegal(b, view.CurrentBid, total, view.Faces, view.WildOnes) {
				out = append(out, b)
			}
		}
	}
	return out
}
