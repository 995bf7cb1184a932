package game

// ResolutionKind tells how a round ended.
type ResolutionKind string

const (
	ResolvedChallenge ResolutionKind = "challenge"
	ResolvedExact     ResolutionKind = "exact"
)

// RoundBid records one bid made during a round.
type RoundBid struct {
	PlayerIdx   int
	PlayerName  string
	Bid         Bid
	RoundNumber int
}

// RoundBidPublic is the strategy-visible form of a RoundBid.
type RoundBidPublic struct {
	PlayerName  string
	Quantity    int
	Face        int
	RoundNumber int
}

// RoundResolution is the immutable record of one concluded round: every bid
// made, the final bid, who resolved it and how, who won and lost, the actual
// count of the contested face, and every player's dice at resolution time.
type RoundResolution struct {
	RoundNumber  int
	Bids         []RoundBid
	FinalBid     Bid
	Kind         ResolutionKind
	ResolverName string
	WinnerName   string
	LoserName    string
	ActualCount  int
	RevealedDice map[string][]int
}

// RoundResult is the resolver's return value, consumed by the turn controller
// for post-resolution cleanup.
type RoundResult struct {
	WinnerIdx      int
	LoserIdx       int
	RevealedCounts map[int]int
	ResolvedOn     ResolutionKind
	Bid            Bid
}

// PublicState is the restricted view handed to the active player's strategy.
// Opponents' hidden dice never appear here; resolutions are included only for
// rounds that have already concluded.
type PublicState struct {
	Players     []PlayerPublic
	CurrentBid  *Bid
	RoundNumber int
	Faces       int
	WildOnes    bool
	MyDice      []int
	RoundBids   []RoundBidPublic
	Resolutions []RoundResolution
}

// TotalDice sums the remaining dice of all players in the view.
func (ps PublicState) TotalDice() int {
	total := 0
	for _, p := range ps.Players {
		total += p.DiceRemaining
	}
	return total
}

// GameState is the single live state of one in-progress game. Players holds
// only alive players in seating order; elimination shifts later seat indices
// down by one. Mutated in place by the engine, discarded at game end.
type GameState struct {
	Players          []*PlayerState
	CurrentPlayerIdx int
	CurrentBid       *Bid
	RoundNumber      int
	Faces            int
	WildOnes         bool
	RoundBids        []RoundBid
	Resolutions      []RoundResolution
}

// TotalDiceInPlay returns the number of dice still held across all players.
func (gs *GameState) TotalDiceInPlay() int {
	total := 0
	for _, p := range gs.Players {
		total += p.DiceRemaining
	}
	return total
}

// CountFace counts dice showing face across all players. In wild-ones games
// dice showing 1 also count toward every other face; a count of face 1 never
// double-counts.
func (gs *GameState) CountFace(face int) int {
	count := 0
	for _, p := range gs.Players {
		for _, d := range p.Dice {
			if d == face {
				count++
			} else if gs.WildOnes && face != 1 && d == 1 {
				count++
			}
		}
	}
	return count
}

// revealedCounts builds a face→count histogram of all dice currently showing,
// without wild expansion. Used in round results.
func (gs *GameState) revealedCounts() map[int]int {
	counts := make(map[int]int, gs.Faces)
	for f := 1; f <= gs.Faces; f++ {
		counts[f] = 0
	}
	for _, p := range gs.Players {
		for _, d := range p.Dice {
			counts[d]++
		}
	}
	return counts
}

// revealedDice snapshots every player's current roll by name.
func (gs *GameState) revealedDice() map[string][]int {
	out := make(map[string][]int, len(gs.Players))
	for _, p := range gs.Players {
		dice := make([]int, len(p.Dice))
		copy(dice, p.Dice)
		out[p.Name] = dice
	}
	return out
}

// ViewFor builds the PublicState for the player at seat idx.
func (gs *GameState) ViewFor(idx int) PublicState {
	players := make([]PlayerPublic, len(gs.Players))
	for i, p := range gs.Players {
		players[i] = PlayerPublic{Name: p.Name, DiceRemaining: p.DiceRemaining, Mine: i == idx}
	}
	bids := make([]RoundBidPublic, len(gs.RoundBids))
	for i, rb := range gs.RoundBids {
		bids[i] = RoundBidPublic{
			PlayerName:  rb.PlayerName,
			Quantity:    rb.Bid.Quantity,
			Face:        rb.Bid.Face,
			RoundNumber: rb.RoundNumber,
		}
	}
	myDice := make([]int, len(gs.Players[idx].Dice))
	copy(myDice, gs.Players[idx].Dice)

	var cur *Bid
	if gs.CurrentBid != nil {
		b := *gs.CurrentBid
		cur = &b
	}
	resolutions := make([]RoundResolution, len(gs.Resolutions))
	copy(resolutions, gs.Resolutions)

	return PublicState{
		Players:     players,
		CurrentBid:  cur,
		RoundNumber: gs.RoundNumber,
		Faces:       gs.Faces,
		WildOnes:    gs.WildOnes,
		MyDice:      myDice,
		RoundBids:   bids,
		Resolutions: resolutions,
	}
}
