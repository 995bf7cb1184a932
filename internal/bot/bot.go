// Package bot provides the built-in decision strategies and the registry the
// harness uses to instantiate them by identifier.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/etchenko/perudo/internal/game"
)

// Factory builds a fresh strategy instance. Instances are stateful across one
// game and must not be shared between concurrently running games.
type Factory func(name string, rng *rand.Rand, logger *log.Logger) game.Agent

// registry maps strategy identifiers to factories. Populated here at process
// start rather than discovered by reflection.
var registry = map[string]Factory{
	"random": func(name string, rng *rand.Rand, logger *log.Logger) game.Agent {
		return NewRandomBot(name, rng)
	},
	"conservative": func(name string, rng *rand.Rand, logger *log.Logger) game.Agent {
		return NewConservativeBot(name)
	},
}

// New instantiates the strategy registered under id.
func New(id, name string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	factory, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", id)
	}
	return factory(name, rng, logger), nil
}

// Strategies lists the registered strategy identifiers in sorted order.
func Strategies() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// countWithWilds counts dice showing face, treating ones as wild for
// non-one faces when wildOnes is set.
func countWithWilds(dice []int, face int, wildOnes bool) int {
	count := 0
	for _, d := range dice {
		if d == face || (wildOnes && face != 1 && d == 1) {
			count++
		}
	}
	return count
}
