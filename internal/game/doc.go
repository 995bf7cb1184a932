// Package game implements the core liar's dice (perudo) engine.
//
// The main type is Engine, which runs a single game: it rolls hidden dice
// per round, rotates turns, validates bids, resolves challenges and exact
// calls, and eliminates players until one remains.
//
// # Basic Usage
//
// Create and run a game:
//
//	e := game.New(game.Config{WildOnes: true, Seed: 42})
//	e.AddPlayers(alice, bob)
//	winner, err := e.PlayGame()
//
// Strategies implement the Agent interface and see only a PublicState view:
// opponents' dice counts but never their hidden rolls. Each decision runs
// under a wall-clock deadline; late, failed, or illegal responses are
// replaced with a deterministic fallback so a game always terminates.
//
// # Deterministic Testing
//
// Pass a fixed Seed (or a *rand.Rand via Config.Rand) for reproducible dice,
// and a quartz mock clock via Config.Clock to drive decision deadlines.
// Each engine owns an independent random source, so games parallelize by
// running one engine per goroutine.
//
// # Architecture
//
// Engine delegates to specialized components:
//   - BidLegal/MinimalLegalBid: the bid total order, including wild-ones
//     transition thresholds
//   - GameState.CountFace: dice counting with wild-ones expansion
//   - decisionGate: deadline-bounded strategy calls with safe fallbacks
//   - SimpleEventBus: best-effort delivery of round/bid/resolution events,
//     each listener inside its own error boundary
package game
