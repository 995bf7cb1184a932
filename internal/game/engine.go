package game

import (
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/etchenko/perudo/internal/randutil"
)

// Config holds the knobs for one engine. Zero values fall back to the
// defaults applied by New.
type Config struct {
	Faces         int           // die faces, default 6
	StartingDice  int           // dice per player at game start, default 6
	WildOnes      bool          // ones count toward every other face
	ExactCalls    bool          // allow exact calls
	TimeLimit     time.Duration // per-decision budget, default 1s
	MaxRoundTurns int           // runaway-round ceiling, default 200
	Seed          int64         // rng seed, 0 for time-based
	Rand          *rand.Rand    // overrides Seed when set
	Clock         quartz.Clock  // deadline clock, real by default
	Logger        *log.Logger   // play-by-play at Info, nil for silent
}

// Engine runs one liar's dice game at a time: it owns the round lifecycle,
// turn rotation, elimination, and resolution of challenges and exact calls.
// One engine is single-threaded; run one engine per goroutine for parallel
// games.
type Engine struct {
	cfg      Config
	rng      *rand.Rand
	logger   *log.Logger
	eventBus *SimpleEventBus
	gate     *decisionGate

	// seats: state.Players and agents stay index-parallel for the life of a
	// game, so a strategy is always looked up by seat, never by a pointer
	// stored inside player state.
	roster []Agent
	agents []Agent
	state  *GameState
}

// New creates an engine with defaults applied for any unset Config field.
func New(cfg Config) *Engine {
	if cfg.Faces == 0 {
		cfg.Faces = 6
	}
	if cfg.StartingDice == 0 {
		cfg.StartingDice = 6
	}
	if cfg.TimeLimit == 0 {
		cfg.TimeLimit = time.Second
	}
	if cfg.MaxRoundTurns == 0 {
		cfg.MaxRoundTurns = 200
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = randutil.New(seed)
	}

	return &Engine{
		cfg:      cfg,
		rng:      rng,
		logger:   cfg.Logger,
		eventBus: NewEventBus(),
		gate: &decisionGate{
			clock:     cfg.Clock,
			timeLimit: cfg.TimeLimit,
			logger:    cfg.Logger,
		},
	}
}

// AddPlayers registers the strategies that will hold seats, in seating order.
func (e *Engine) AddPlayers(agents ...Agent) {
	e.roster = append(e.roster, agents...)
}

// RegisterListener subscribes a listener to all game events.
func (e *Engine) RegisterListener(listener Listener) {
	e.eventBus.Subscribe(listener)
}

// State exposes the live game state, mainly for tests and diagnostics.
func (e *Engine) State() *GameState {
	return e.state
}

// IsActionLegal reports whether action is legal in the current state.
func (e *Engine) IsActionLegal(action Action) bool {
	cur := e.state.CurrentBid
	switch action.Kind {
	case ActionBid:
		return BidLegal(action.Bid, cur, e.state.TotalDiceInPlay(), e.cfg.Faces, e.cfg.WildOnes)
	case ActionChallenge:
		return cur != nil
	case ActionExact:
		return e.cfg.ExactCalls && cur != nil
	default:
		return false
	}
}

// startNewGame builds fresh per-seat state from the roster.
func (e *Engine) startNewGame() {
	players := make([]*PlayerState, len(e.roster))
	agents := make([]Agent, len(e.roster))
	for i, a := range e.roster {
		players[i] = &PlayerState{Name: a.Name(), DiceRemaining: e.cfg.StartingDice}
		agents[i] = a
	}
	e.agents = agents
	e.state = &GameState{
		Players:  players,
		Faces:    e.cfg.Faces,
		WildOnes: e.cfg.WildOnes,
	}
}

// beginRound advances the round counter, clears the bid log, and re-rolls
// every alive player's dice.
func (e *Engine) beginRound() {
	e.state.RoundNumber++
	e.state.CurrentBid = nil
	e.state.RoundBids = nil

	perPlayer := make([]PlayerDiceCount, len(e.state.Players))
	for i, p := range e.state.Players {
		p.Dice = randutil.RollDice(e.rng, p.DiceRemaining, e.cfg.Faces)
		perPlayer[i] = PlayerDiceCount{Name: p.Name, DiceRemaining: p.DiceRemaining}
	}

	e.logger.Info("Round start", "round", e.state.RoundNumber, "diceInPlay", e.state.TotalDiceInPlay())
	e.eventBus.Publish(NewRoundStartEvent(e.state.RoundNumber, e.state.TotalDiceInPlay(), perPlayer))
}

func (e *Engine) nextPlayerIdx(idx int) int {
	return (idx + 1) % len(e.state.Players)
}

func (e *Engine) prevPlayerIdx(idx int) int {
	n := len(e.state.Players)
	return (idx - 1 + n) % n
}

// recordBid sets the current bid, appends it to the round log, and advances
// the turn to the next seat.
func (e *Engine) recordBid(idx int, bid Bid) {
	b := bid
	e.state.CurrentBid = &b
	e.state.RoundBids = append(e.state.RoundBids, RoundBid{
		PlayerIdx:   idx,
		PlayerName:  e.state.Players[idx].Name,
		Bid:         bid,
		RoundNumber: e.state.RoundNumber,
	})
	e.logger.Info("Bid", "player", e.state.Players[idx].Name, "bid", bid.String())
	e.eventBus.Publish(NewBidEvent(e.state.Players[idx].Name, bid))
	e.state.CurrentPlayerIdx = e.nextPlayerIdx(idx)
}

// recordResolution snapshots dice and appends the round's resolution record.
// Must run before any dice-count adjustment.
func (e *Engine) recordResolution(kind ResolutionKind, resolverIdx, winnerIdx, loserIdx, actual int, bid Bid) {
	bids := make([]RoundBid, len(e.state.RoundBids))
	copy(bids, e.state.RoundBids)
	e.state.Resolutions = append(e.state.Resolutions, RoundResolution{
		RoundNumber:  e.state.RoundNumber,
		Bids:         bids,
		FinalBid:     bid,
		Kind:         kind,
		ResolverName: e.state.Players[resolverIdx].Name,
		WinnerName:   e.state.Players[winnerIdx].Name,
		LoserName:    e.state.Players[loserIdx].Name,
		ActualCount:  actual,
		RevealedDice: e.state.revealedDice(),
	})
}

// resolveChallenge resolves a challenge by the player at challengerIdx
// against the current bid. The bidder wins when at least the bid quantity is
// showing; the loser forfeits one die.
func (e *Engine) resolveChallenge(challengerIdx int) (RoundResult, error) {
	if e.state.CurrentBid == nil {
		return RoundResult{}, ErrNoCurrentBid
	}
	bid := *e.state.CurrentBid
	actual := e.state.CountFace(bid.Face)
	bidderIdx := e.prevPlayerIdx(challengerIdx)

	winner, loser := bidderIdx, challengerIdx
	if actual < bid.Quantity {
		winner, loser = challengerIdx, bidderIdx
	}

	e.recordResolution(ResolvedChallenge, challengerIdx, winner, loser, actual, bid)
	e.state.Players[loser].DiceRemaining = max(0, e.state.Players[loser].DiceRemaining-1)

	return RoundResult{
		WinnerIdx:      winner,
		LoserIdx:       loser,
		RevealedCounts: e.state.revealedCounts(),
		ResolvedOn:     ResolvedChallenge,
		Bid:            bid,
	}, nil
}

// resolveExact resolves an exact call by the player at idx. A correct call
// earns the caller a die, capped at the starting count, and costs the
// previous bidder one; an incorrect call costs the caller one with no gain
// for the bidder.
func (e *Engine) resolveExact(idx int) (RoundResult, error) {
	if !e.cfg.ExactCalls {
		return RoundResult{}, ErrExactDisabled
	}
	if e.state.CurrentBid == nil {
		return RoundResult{}, ErrNoCurrentBid
	}
	bid := *e.state.CurrentBid
	actual := e.state.CountFace(bid.Face)
	bidderIdx := e.prevPlayerIdx(idx)

	var winner, loser int
	if actual == bid.Quantity {
		winner, loser = idx, bidderIdx
	} else {
		winner, loser = bidderIdx, idx
	}

	e.recordResolution(ResolvedExact, idx, winner, loser, actual, bid)
	if actual == bid.Quantity {
		e.state.Players[winner].DiceRemaining = min(e.state.Players[winner].DiceRemaining+1, e.cfg.StartingDice)
	}
	e.state.Players[loser].DiceRemaining = max(0, e.state.Players[loser].DiceRemaining-1)

	return RoundResult{
		WinnerIdx:      winner,
		LoserIdx:       loser,
		RevealedCounts: e.state.revealedCounts(),
		ResolvedOn:     ResolvedExact,
		Bid:            bid,
	}, nil
}

// postResolutionCleanup removes eliminated players and hands the next turn to
// the loser's seat. Seat indices are dense over alive players, so when the
// loser was just removed their index can be past the end and is clamped to
// the last seat.
func (e *Engine) postResolutionCleanup(result RoundResult) {
	loser := e.state.Players[result.LoserIdx]
	eliminated := loser.DiceRemaining == 0
	if eliminated {
		e.logger.Info("Player eliminated", "player", loser.Name)
		e.eventBus.Publish(NewPlayerEliminatedEvent(loser.Name))
	}

	players := e.state.Players[:0:0]
	agents := e.agents[:0:0]
	for i, p := range e.state.Players {
		if p.DiceRemaining > 0 {
			players = append(players, p)
			agents = append(agents, e.agents[i])
		}
	}
	e.state.Players = players
	e.agents = agents

	if eliminated {
		e.state.CurrentPlayerIdx = min(result.LoserIdx, len(e.state.Players)-1)
	} else {
		e.state.CurrentPlayerIdx = result.LoserIdx
	}
}

// logResolution narrates a round's outcome.
func (e *Engine) logResolution(result RoundResult, actual int) {
	e.logger.Info("Round resolved",
		"kind", string(result.ResolvedOn),
		"bid", result.Bid.String(),
		"actual", actual,
		"winner", e.state.Players[result.WinnerIdx].Name,
		"loser", e.state.Players[result.LoserIdx].Name)
	for _, p := range e.state.Players {
		e.logger.Debug("Revealed dice", "player", p.Name, "dice", p.Dice)
	}
}

// PlayGame runs a complete game until one player remains and returns the
// winner's name. Normal play never errors; only engine-invariant violations
// (protocol misuse, a runaway round) do.
func (e *Engine) PlayGame() (string, error) {
	if len(e.roster) < 2 {
		return "", ErrTooFewPlayers
	}
	e.startNewGame()

	for len(e.state.Players) > 1 {
		e.beginRound()

		turns := 0
		for {
			turns++
			if turns > e.cfg.MaxRoundTurns {
				return "", &RunawayRoundError{Round: e.state.RoundNumber, Turns: e.cfg.MaxRoundTurns}
			}

			idx := e.state.CurrentPlayerIdx
			action := e.gate.request(e, idx)

			switch action.Kind {
			case ActionBid:
				e.recordBid(idx, action.Bid)
				continue
			case ActionChallenge:
				e.logger.Info("Challenge", "player", e.state.Players[idx].Name)
				result, err := e.resolveChallenge(idx)
				if err != nil {
					return "", err
				}
				actual := e.state.CountFace(result.Bid.Face)
				e.logResolution(result, actual)
				e.eventBus.Publish(NewResolutionEvent(ResolvedChallenge,
					e.state.Players[result.WinnerIdx].Name, e.state.Players[result.LoserIdx].Name,
					result.Bid, actual))
				e.postResolutionCleanup(result)
			case ActionExact:
				e.logger.Info("Exact call", "player", e.state.Players[idx].Name)
				result, err := e.resolveExact(idx)
				if err != nil {
					return "", err
				}
				actual := e.state.CountFace(result.Bid.Face)
				e.logResolution(result, actual)
				e.eventBus.Publish(NewResolutionEvent(ResolvedExact,
					e.state.Players[result.WinnerIdx].Name, e.state.Players[result.LoserIdx].Name,
					result.Bid, actual))
				e.postResolutionCleanup(result)
			}
			break
		}
	}

	winner := e.state.Players[0].Name
	e.logger.Info("Game over", "winner", winner, "rounds", e.state.RoundNumber)
	e.eventBus.Publish(NewGameEndEvent(winner, e.state.RoundNumber))

	resolutions := make([]RoundResolution, len(e.state.Resolutions))
	copy(resolutions, e.state.Resolutions)
	e.gate.notifyFinished(e.roster, winner, resolutions)

	return winner, nil
}

// fallbackAction is the decision gate's substitute for a late, failed, or
// illegal strategy response: challenge when a bid exists, otherwise the
// minimal legal bid.
func (e *Engine) fallbackAction() Action {
	if e.state.CurrentBid != nil {
		return ChallengeAction()
	}
	if b, ok := MinimalLegalBid(nil, e.state.TotalDiceInPlay(), e.cfg.Faces, e.cfg.WildOnes); ok {
		return BidAction(b)
	}
	// Unreachable while any dice are in play.
	return ChallengeAction()
}
