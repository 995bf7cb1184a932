package game

// ActionKind discriminates the three moves a strategy can make on its turn.
type ActionKind int

const (
	ActionBid ActionKind = iota
	ActionChallenge
	ActionExact
)

// Action is a strategy's move: a bid, a challenge of the current bid, or an
// exact call on it. Bid is meaningful only when Kind is ActionBid.
type Action struct {
	Kind ActionKind
	Bid  Bid
}

func (a Action) String() string {
	switch a.Kind {
	case ActionBid:
		return "bid " + a.Bid.String()
	case ActionChallenge:
		return "challenge"
	case ActionExact:
		return "exact"
	default:
		return "unknown"
	}
}

// BidAction wraps a bid as an action.
func BidAction(b Bid) Action {
	return Action{Kind: ActionBid, Bid: b}
}

// ChallengeAction challenges the current bid.
func ChallengeAction() Action {
	return Action{Kind: ActionChallenge}
}

// ExactAction calls the current bid exactly right.
func ExactAction() Action {
	return Action{Kind: ActionExact}
}
