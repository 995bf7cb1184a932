package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/etchenko/perudo/internal/bot"
	"github.com/etchenko/perudo/internal/game"
	"github.com/etchenko/perudo/internal/randutil"
	"github.com/etchenko/perudo/internal/simulator"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Debug    bool             `help:"Enable debug logging"`
	Play     PlayCmd          `cmd:"" help:"Play a single narrated game"`
	Simulate SimulateCmd      `cmd:"" help:"Run repeated games and report standings"`
}

// PlayCmd runs one game with play-by-play output
type PlayCmd struct {
	Strategies   []string      `default:"random,conservative" help:"Strategies to seat, comma separated"`
	StartingDice int           `default:"5" help:"Dice per player at game start"`
	WildOnes     bool          `default:"true" negatable:"" help:"Ones count toward every other face"`
	ExactCalls   bool          `default:"true" negatable:"" help:"Allow exact calls"`
	TimeLimit    time.Duration `default:"1s" help:"Per-decision time budget"`
	Seed         int64         `default:"0" help:"RNG seed (0 for random)"`
}

func (c *PlayCmd) Run(logger *log.Logger) error {
	engine := game.New(game.Config{
		StartingDice: c.StartingDice,
		WildOnes:     c.WildOnes,
		ExactCalls:   c.ExactCalls,
		TimeLimit:    c.TimeLimit,
		Seed:         c.Seed,
		Logger:       logger,
	})

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	for i, strategy := range c.Strategies {
		name := fmt.Sprintf("%s-%d", strategy, i+1)
		agent, err := bot.New(strategy, name, randutil.Derive(seed, int64(i)), logger)
		if err != nil {
			return fmt.Errorf("known strategies are %v: %w", bot.Strategies(), err)
		}
		engine.AddPlayers(agent)
	}

	winner, err := engine.PlayGame()
	if err != nil {
		return err
	}
	fmt.Printf("Winner: %s\n", winner)
	return nil
}

// SimulateCmd runs the repeated-trial harness
type SimulateCmd struct {
	Config       string `default:"perudo.hcl" help:"HCL simulation config file"`
	Tables       int    `default:"0" help:"Override number of tables"`
	Replications int    `default:"0" help:"Override replications per table"`
	Parallelism  int    `default:"0" help:"Override concurrent tables"`
	Seed         int64  `default:"0" help:"Override base RNG seed"`
}

func (c *SimulateCmd) Run(logger *log.Logger) error {
	cfg, err := simulator.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Tables > 0 {
		cfg.Simulation.Tables = c.Tables
	}
	if c.Replications > 0 {
		cfg.Simulation.Replications = c.Replications
	}
	if c.Parallelism > 0 {
		cfg.Simulation.Parallelism = c.Parallelism
	}
	if c.Seed != 0 {
		cfg.Simulation.Seed = c.Seed
	}

	sim := simulator.New(cfg, logger)
	results, err := sim.Run()
	if err != nil {
		return err
	}
	simulator.PrintStandings(os.Stdout, results)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("perudo"),
		kong.Description("Liar's dice engine and strategy simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	level := log.InfoLevel
	if cli.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
