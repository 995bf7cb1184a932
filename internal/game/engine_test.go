package game

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// policyAgent decides via a function and records its game-finished callback.
type policyAgent struct {
	name   string
	policy func(view PublicState) (Action, error)

	mu          sync.Mutex
	winner      string
	resolutions []RoundResolution
	finished    int
}

func (p *policyAgent) Name() string { return p.name }

func (p *policyAgent) Decide(view PublicState) (Action, error) {
	return p.policy(view)
}

func (p *policyAgent) GameFinished(winner string, resolutions []RoundResolution) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.winner = winner
	p.resolutions = resolutions
	p.finished++
}

// bidThenChallenge opens every round with 1x2 and challenges anything else.
func bidThenChallenge(name string) *policyAgent {
	return &policyAgent{name: name, policy: func(view PublicState) (Action, error) {
		if view.CurrentBid == nil {
			return BidAction(Bid{Quantity: 1, Face: 2}), nil
		}
		return ChallengeAction(), nil
	}}
}

// blockedAgent never answers; every decision must fall back.
type blockedAgent struct {
	name string
}

func (b *blockedAgent) Name() string { return b.name }

func (b *blockedAgent) Decide(view PublicState) (Action, error) {
	select {}
}

func (b *blockedAgent) GameFinished(winner string, resolutions []RoundResolution) {}

func silentLogger() *log.Logger {
	return log.New(io.Discard)
}

// newStagedEngine builds an engine with a started game whose dice are set
// explicitly, bypassing the roll.
func newStagedEngine(t *testing.T, cfg Config, dice ...[]int) *Engine {
	t.Helper()
	cfg.Logger = silentLogger()
	e := New(cfg)
	names := []string{"A", "B", "C", "D"}
	for i := range dice {
		e.AddPlayers(bidThenChallenge(names[i]))
	}
	e.startNewGame()
	e.state.RoundNumber = 1
	for i, d := range dice {
		e.state.Players[i].Dice = d
		e.state.Players[i].DiceRemaining = len(d)
	}
	return e
}

func TestResolveChallenge_BidderWins(t *testing.T) {
	// Scenario: A bids 1x2 against [2,3,4]/[1,6,6]; one 2 is showing, so the
	// bid holds and the challenger loses a die.
	e := newStagedEngine(t, Config{StartingDice: 3}, []int{2, 3, 4}, []int{1, 6, 6})

	e.recordBid(0, Bid{Quantity: 1, Face: 2})
	result, err := e.resolveChallenge(1)
	require.NoError(t, err)

	assert.Equal(t, 0, result.WinnerIdx)
	assert.Equal(t, 1, result.LoserIdx)
	assert.Equal(t, ResolvedChallenge, result.ResolvedOn)
	assert.Equal(t, 3, e.state.Players[0].DiceRemaining)
	assert.Equal(t, 2, e.state.Players[1].DiceRemaining)

	require.Len(t, e.state.Resolutions, 1)
	res := e.state.Resolutions[0]
	assert.Equal(t, 1, res.RoundNumber)
	assert.Equal(t, Bid{Quantity: 1, Face: 2}, res.FinalBid)
	assert.Equal(t, "B", res.ResolverName)
	assert.Equal(t, "A", res.WinnerName)
	assert.Equal(t, "B", res.LoserName)
	assert.Equal(t, 1, res.ActualCount)
	// Dice snapshot predates the die loss.
	assert.Equal(t, []int{1, 6, 6}, res.RevealedDice["B"])
	require.Len(t, res.Bids, 1)

	e.postResolutionCleanup(result)
	assert.Equal(t, 1, e.state.CurrentPlayerIdx, "loser opens the next round")
	assert.Len(t, e.state.Players, 2)
}

func TestResolveChallenge_ChallengerWins(t *testing.T) {
	e := newStagedEngine(t, Config{StartingDice: 3}, []int{2, 3, 4}, []int{1, 6, 6})

	e.recordBid(0, Bid{Quantity: 3, Face: 5})
	result, err := e.resolveChallenge(1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.WinnerIdx)
	assert.Equal(t, 0, result.LoserIdx)
	assert.Equal(t, 2, e.state.Players[0].DiceRemaining)
	assert.Equal(t, 3, e.state.Players[1].DiceRemaining)
}

func TestResolveChallenge_NoBidIsProtocolMisuse(t *testing.T) {
	e := newStagedEngine(t, Config{StartingDice: 3}, []int{2, 3, 4}, []int{1, 6, 6})

	_, err := e.resolveChallenge(1)
	assert.ErrorIs(t, err, ErrNoCurrentBid)
}

func TestResolveExact_CorrectCallGainsDie(t *testing.T) {
	// Exactly two 2s are showing; the caller is below the cap and gains one.
	e := newStagedEngine(t, Config{StartingDice: 3, ExactCalls: true},
		[]int{2, 5, 6}, []int{2, 3})

	e.recordBid(0, Bid{Quantity: 2, Face: 2})
	result, err := e.resolveExact(1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.WinnerIdx)
	assert.Equal(t, 0, result.LoserIdx)
	assert.Equal(t, ResolvedExact, result.ResolvedOn)
	assert.Equal(t, 3, e.state.Players[1].DiceRemaining, "caller gains a die")
	assert.Equal(t, 2, e.state.Players[0].DiceRemaining, "bidder loses a die")
}

func TestResolveExact_GainIsCappedAtStartingDice(t *testing.T) {
	e := newStagedEngine(t, Config{StartingDice: 3, ExactCalls: true},
		[]int{2, 5, 6}, []int{2, 3, 4})

	e.recordBid(0, Bid{Quantity: 2, Face: 2})
	result, err := e.resolveExact(1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.WinnerIdx)
	assert.Equal(t, 3, e.state.Players[1].DiceRemaining, "already at the cap")
	assert.Equal(t, 2, e.state.Players[0].DiceRemaining)
}

func TestResolveExact_IncorrectCallCostsCaller(t *testing.T) {
	e := newStagedEngine(t, Config{StartingDice: 3, ExactCalls: true},
		[]int{2, 5, 6}, []int{2, 3, 4})

	e.recordBid(0, Bid{Quantity: 3, Face: 2})
	result, err := e.resolveExact(1)
	require.NoError(t, err)

	assert.Equal(t, 0, result.WinnerIdx)
	assert.Equal(t, 1, result.LoserIdx)
	assert.Equal(t, 3, e.state.Players[0].DiceRemaining, "bidder wins without gaining")
	assert.Equal(t, 2, e.state.Players[1].DiceRemaining)
}

func TestResolveExact_DisabledIsProtocolMisuse(t *testing.T) {
	e := newStagedEngine(t, Config{StartingDice: 3}, []int{2, 5, 6}, []int{2, 3, 4})

	e.recordBid(0, Bid{Quantity: 2, Face: 2})
	_, err := e.resolveExact(1)
	assert.ErrorIs(t, err, ErrExactDisabled)
}

func TestPostResolutionCleanup_EliminationRebasing(t *testing.T) {
	// Last-seat loser drops to zero dice: their seat index is past the end
	// of the shrunken alive list and must clamp to the new last seat.
	e := newStagedEngine(t, Config{StartingDice: 3},
		[]int{2, 3, 4}, []int{5, 5, 5}, []int{6})

	e.recordBid(1, Bid{Quantity: 3, Face: 5})
	result, err := e.resolveChallenge(2)
	require.NoError(t, err)
	require.Equal(t, 2, result.LoserIdx)

	e.postResolutionCleanup(result)
	require.Len(t, e.state.Players, 2)
	assert.Equal(t, 1, e.state.CurrentPlayerIdx)
	assert.Less(t, e.state.CurrentPlayerIdx, len(e.state.Players))
}

func TestPostResolutionCleanup_FirstSeatElimination(t *testing.T) {
	// First-seat loser eliminated: later seats shift down by one and the
	// next turn goes to the seat that slid into the loser's index.
	e := newStagedEngine(t, Config{StartingDice: 3},
		[]int{6}, []int{5, 5, 5}, []int{2, 3, 4})

	e.recordBid(2, Bid{Quantity: 3, Face: 5})
	result, err := e.resolveChallenge(0)
	require.NoError(t, err)
	require.Equal(t, 0, result.LoserIdx)

	e.postResolutionCleanup(result)
	require.Len(t, e.state.Players, 2)
	assert.Equal(t, 0, e.state.CurrentPlayerIdx)
	assert.Equal(t, "B", e.state.Players[0].Name)
}

func TestPlayGame_TooFewPlayers(t *testing.T) {
	e := New(Config{Logger: silentLogger()})
	e.AddPlayers(bidThenChallenge("solo"))

	_, err := e.PlayGame()
	assert.ErrorIs(t, err, ErrTooFewPlayers)
}

func TestPlayGame_RunsToSingleSurvivor(t *testing.T) {
	alice := bidThenChallenge("alice")
	bob := bidThenChallenge("bob")

	e := New(Config{StartingDice: 2, Seed: 42, Logger: silentLogger()})
	e.AddPlayers(alice, bob)

	winner, err := e.PlayGame()
	require.NoError(t, err)
	assert.Contains(t, []string{"alice", "bob"}, winner)
	require.Len(t, e.state.Players, 1)
	assert.Equal(t, winner, e.state.Players[0].Name)

	// Both strategies hear about the finished game, with the full log.
	for _, agent := range []*policyAgent{alice, bob} {
		agent.mu.Lock()
		assert.Equal(t, 1, agent.finished)
		assert.Equal(t, winner, agent.winner)
		assert.NotEmpty(t, agent.resolutions)
		agent.mu.Unlock()
	}
}

func TestPlayGame_DeterministicForSeed(t *testing.T) {
	run := func() (string, int) {
		e := New(Config{StartingDice: 3, Seed: 7, Logger: silentLogger()})
		e.AddPlayers(bidThenChallenge("alice"), bidThenChallenge("bob"))
		winner, err := e.PlayGame()
		require.NoError(t, err)
		return winner, e.state.RoundNumber
	}

	w1, r1 := run()
	w2, r2 := run()
	assert.Equal(t, w1, w2)
	assert.Equal(t, r1, r2)
}

func TestPlayGame_TimedOutStrategiesStillFinish(t *testing.T) {
	// Strategies that never answer: the whole game is driven by the
	// fallback policy and must still terminate with a winner.
	e := New(Config{
		StartingDice: 1,
		Seed:         11,
		TimeLimit:    10 * time.Millisecond,
		Logger:       silentLogger(),
	})
	e.AddPlayers(&blockedAgent{name: "hung-1"}, &blockedAgent{name: "hung-2"})

	var timeouts int
	e.RegisterListener(func(event Event) {
		if event.EventType() == EventTypeDecisionTimeout {
			timeouts++
		}
	})

	winner, err := e.PlayGame()
	require.NoError(t, err)
	assert.Contains(t, []string{"hung-1", "hung-2"}, winner)
	assert.Greater(t, timeouts, 0)
}

func TestPlayGame_RunawayRoundAborts(t *testing.T) {
	// Always-bidding strategies exceed a tiny turn ceiling.
	alwaysBid := func(name string) *policyAgent {
		return &policyAgent{name: name, policy: func(view PublicState) (Action, error) {
			b, ok := MinimalLegalBid(view.CurrentBid, view.TotalDice(), view.Faces, view.WildOnes)
			if !ok {
				return ChallengeAction(), nil
			}
			return BidAction(b), nil
		}}
	}

	e := New(Config{StartingDice: 3, Seed: 3, MaxRoundTurns: 3, Logger: silentLogger()})
	e.AddPlayers(alwaysBid("a"), alwaysBid("b"))

	_, err := e.PlayGame()
	var runaway *RunawayRoundError
	require.ErrorAs(t, err, &runaway)
	assert.Equal(t, 1, runaway.Round)
	assert.Equal(t, 3, runaway.Turns)
}

func TestPlayGame_EmitsLifecycleEvents(t *testing.T) {
	e := New(Config{StartingDice: 1, Seed: 5, Logger: silentLogger()})
	e.AddPlayers(bidThenChallenge("alice"), bidThenChallenge("bob"))

	var types []EventType
	e.RegisterListener(func(event Event) {
		types = append(types, event.EventType())
	})

	_, err := e.PlayGame()
	require.NoError(t, err)

	require.NotEmpty(t, types)
	assert.Equal(t, EventTypeRoundStart, types[0])
	assert.Equal(t, EventTypeGameEnd, types[len(types)-1])
	assert.Contains(t, types, EventTypeBid)
	assert.Contains(t, types, EventTypeChallengeResolved)
	assert.Contains(t, types, EventTypePlayerEliminated)
}
