package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents a complete simulation configuration
type Config struct {
	Game       *GameSettings       `hcl:"game,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Bots       []BotSpec           `hcl:"bot,block"`
}

// GameSettings contains the per-game rule configuration
type GameSettings struct {
	Faces        int   `hcl:"faces,optional"`
	StartingDice int   `hcl:"starting_dice,optional"`
	WildOnes     *bool `hcl:"wild_ones,optional"`
	ExactCalls   *bool `hcl:"exact_calls,optional"`
	TimeLimitMs  int   `hcl:"time_limit_ms,optional"`
}

// SimulationSettings controls how many games run and how
type SimulationSettings struct {
	Tables          int   `hcl:"tables,optional"`
	PlayersPerTable int   `hcl:"players_per_table,optional"`
	Replications    int   `hcl:"replications,optional"`
	Parallelism     int   `hcl:"parallelism,optional"`
	Seed            int64 `hcl:"seed,optional"`
}

// BotSpec names one strategy instance eligible for seating
type BotSpec struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
}

// DefaultConfig returns the default simulation configuration
func DefaultConfig() *Config {
	wild := true
	exact := true
	return &Config{
		Game: &GameSettings{
			Faces:        6,
			StartingDice: 5,
			WildOnes:     &wild,
			ExactCalls:   &exact,
			TimeLimitMs:  1000,
		},
		Simulation: &SimulationSettings{
			Tables:          10,
			PlayersPerTable: 6,
			Replications:    100,
			Parallelism:     4,
			Seed:            1,
		},
		Bots: []BotSpec{
			{Name: "random-1", Strategy: "random"},
			{Name: "random-2", Strategy: "random"},
			{Name: "random-3", Strategy: "random"},
			{Name: "conservative-1", Strategy: "conservative"},
			{Name: "conservative-2", Strategy: "conservative"},
			{Name: "conservative-3", Strategy: "conservative"},
		},
	}
}

// LoadConfig loads a simulation configuration from an HCL file, falling back
// to defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.Faces == 0 {
		c.Game.Faces = defaults.Game.Faces
	}
	if c.Game.StartingDice == 0 {
		c.Game.StartingDice = defaults.Game.StartingDice
	}
	if c.Game.WildOnes == nil {
		c.Game.WildOnes = defaults.Game.WildOnes
	}
	if c.Game.ExactCalls == nil {
		c.Game.ExactCalls = defaults.Game.ExactCalls
	}
	if c.Game.TimeLimitMs == 0 {
		c.Game.TimeLimitMs = defaults.Game.TimeLimitMs
	}
	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.Tables == 0 {
		c.Simulation.Tables = defaults.Simulation.Tables
	}
	if c.Simulation.PlayersPerTable == 0 {
		c.Simulation.PlayersPerTable = defaults.Simulation.PlayersPerTable
	}
	if c.Simulation.Replications == 0 {
		c.Simulation.Replications = defaults.Simulation.Replications
	}
	if c.Simulation.Parallelism == 0 {
		c.Simulation.Parallelism = defaults.Simulation.Parallelism
	}
	if c.Simulation.Seed == 0 {
		c.Simulation.Seed = defaults.Simulation.Seed
	}
	if len(c.Bots) == 0 {
		c.Bots = defaults.Bots
	}
	// Tables seat a subset of the roster; a small roster shrinks the table.
	if c.Simulation.PlayersPerTable > len(c.Bots) {
		c.Simulation.PlayersPerTable = len(c.Bots)
	}
}

func (c *Config) validate() error {
	if c.Simulation.PlayersPerTable < 2 {
		return fmt.Errorf("players_per_table must be at least 2, got %d", c.Simulation.PlayersPerTable)
	}
	seen := make(map[string]struct{}, len(c.Bots))
	for _, b := range c.Bots {
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("duplicate bot name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
	}
	return nil
}
