// Package simulator runs repeated liar's dice games across randomized table
// compositions and aggregates win counts per strategy instance.
package simulator

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/etchenko/perudo/internal/bot"
	"github.com/etchenko/perudo/internal/game"
	"github.com/etchenko/perudo/internal/randutil"
)

// Simulator drives many independent games. Each game owns a fresh engine,
// fresh strategy instances, and a derived random source, so tables run in
// parallel without shared mutable state.
type Simulator struct {
	cfg    *Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(cfg *Config, logger *log.Logger) *Simulator {
	cfg.applyDefaults()
	return &Simulator{cfg: cfg, logger: logger}
}

// TableResult holds one table's seating and win counts
type TableResult struct {
	Seats []string
	Wins  map[string]int
}

// Results aggregates win counts across all tables
type Results struct {
	Games    int
	Wins     map[string]int
	Tables   []TableResult
	Duration time.Duration
}

// Run executes the configured simulation and returns aggregated results.
func (s *Simulator) Run() (*Results, error) {
	sim := s.cfg.Simulation
	start := time.Now()

	// Table compositions are drawn up front from a dedicated source so they
	// do not depend on scheduling order.
	compRng := randutil.New(sim.Seed)
	tables := make([][]BotSpec, sim.Tables)
	for i := range tables {
		tables[i] = sampleTable(compRng, s.cfg.Bots, sim.PlayersPerTable)
	}

	results := &Results{
		Wins:   make(map[string]int, len(s.cfg.Bots)),
		Tables: make([]TableResult, sim.Tables),
	}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(sim.Parallelism)
	for ti := range tables {
		g.Go(func() error {
			seats := tables[ti]
			local := make(map[string]int, len(seats))
			for rep := 0; rep < sim.Replications; rep++ {
				winner, err := s.playGame(seats, int64(ti*sim.Replications+rep))
				if err != nil {
					return fmt.Errorf("table %d replication %d: %w", ti, rep, err)
				}
				local[winner]++
			}

			names := make([]string, len(seats))
			for i, spec := range seats {
				names[i] = spec.Name
			}
			mu.Lock()
			results.Tables[ti] = TableResult{Seats: names, Wins: local}
			for name, wins := range local {
				results.Wins[name] += wins
			}
			results.Games += sim.Replications
			mu.Unlock()

			s.logger.Info("Table complete", "table", ti, "replications", sim.Replications)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results.Duration = time.Since(start)
	return results, nil
}

// playGame runs one game with fresh strategy instances and a derived seed.
func (s *Simulator) playGame(seats []BotSpec, gameIdx int64) (string, error) {
	sim := s.cfg.Simulation
	gameRng := randutil.Derive(sim.Seed, gameIdx+1)

	engine := game.New(game.Config{
		Faces:        s.cfg.Game.Faces,
		StartingDice: s.cfg.Game.StartingDice,
		WildOnes:     *s.cfg.Game.WildOnes,
		ExactCalls:   *s.cfg.Game.ExactCalls,
		TimeLimit:    time.Duration(s.cfg.Game.TimeLimitMs) * time.Millisecond,
		Rand:         gameRng,
		Logger:       log.New(io.Discard),
	})

	for i, spec := range seats {
		// Each agent gets its own source: a decide call abandoned at the
		// deadline may still be running while the engine rolls dice.
		agentRng := randutil.Derive(sim.Seed, (gameIdx+1)*1000+int64(i))
		agent, err := bot.New(spec.Strategy, spec.Name, agentRng, s.logger)
		if err != nil {
			return "", err
		}
		engine.AddPlayers(agent)
	}

	return engine.PlayGame()
}

// sampleTable draws a table of k distinct bots from the roster and shuffles
// their seating order.
func sampleTable(rng *rand.Rand, roster []BotSpec, k int) []BotSpec {
	perm := rng.Perm(len(roster))
	table := make([]BotSpec, k)
	for i := 0; i < k; i++ {
		table[i] = roster[perm[i]]
	}
	return table
}
