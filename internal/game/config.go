package game

import (
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/deck"
)

// Config collects the game rules for one session. The HCL config layer
// decodes onto this; tests construct it directly.
type Config struct {
	// Opponents are the automated seats added after the human, in order
	Opponents []string
	// DealSize is the number of random non-Kitten cards dealt on top of the
	// guaranteed Defuse
	DealSize int
	// SeeFutureCards is how many top cards See the Future reveals
	SeeFutureCards int
	// StallMultiplier bounds the automated-turn loop at
	// StallMultiplier × roster size iterations
	StallMultiplier int

	Catalog deck.CatalogConfig
	Policy  PolicyConfig
}

// DefaultConfig returns the standard single-opponent rules
func DefaultConfig() Config {
	return Config{
		Opponents:       []string{"AI"},
		DealSize:        4,
		SeeFutureCards:  3,
		StallMultiplier: 20,
		Catalog:         deck.DefaultCatalogConfig(),
		Policy:          DefaultPolicyConfig(),
	}
}
