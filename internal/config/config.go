// Package config loads the server and rules configuration from HCL.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/deck"
	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
)

// Config represents the complete configuration file
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Rules  *RulesSettings  `hcl:"rules,block"`
}

// ServerSettings contains transport-level configuration
type ServerSettings struct {
	Addr     string `hcl:"addr,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RulesSettings tunes the game rules and the automated opponent. Zero values
// fall back to the defaults after decoding.
type RulesSettings struct {
	Opponents         []string `hcl:"opponents,optional"`
	DealSize          int      `hcl:"deal_size,optional"`
	SeeFutureCards    int      `hcl:"see_future_cards,optional"`
	StallMultiplier   int      `hcl:"stall_multiplier,optional"`
	AttackCards       int      `hcl:"attack_cards,optional"`
	SkipCards         int      `hcl:"skip_cards,optional"`
	FavorCards        int      `hcl:"favor_cards,optional"`
	ShuffleCards      int      `hcl:"shuffle_cards,optional"`
	SeeTheFutureCards int      `hcl:"see_the_future_cards,optional"`
	DefuseSurplus     int      `hcl:"defuse_surplus,optional"`

	LowDeckThreshold    int     `hcl:"low_deck_threshold,optional"`
	AttackHandThreshold int     `hcl:"attack_hand_threshold,optional"`
	FavorHandThreshold  int     `hcl:"favor_hand_threshold,optional"`
	ShuffleChance       float64 `hcl:"shuffle_chance,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: &ServerSettings{
			Addr:     ":8080",
			LogLevel: "info",
		},
		Rules: &RulesSettings{},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; zero-valued fields are filled in after decoding.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Server == nil {
		cfg.Server = &ServerSettings{}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Rules == nil {
		cfg.Rules = &RulesSettings{}
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	r := c.Rules
	if r.DealSize < 0 {
		return fmt.Errorf("deal_size must not be negative, got %d", r.DealSize)
	}
	if r.StallMultiplier < 0 {
		return fmt.Errorf("stall_multiplier must not be negative, got %d", r.StallMultiplier)
	}
	if r.ShuffleChance < 0 || r.ShuffleChance > 1 {
		return fmt.Errorf("shuffle_chance must be within [0,1], got %g", r.ShuffleChance)
	}
	for _, n := range []int{r.AttackCards, r.SkipCards, r.FavorCards, r.ShuffleCards, r.SeeTheFutureCards, r.DefuseSurplus} {
		if n < 0 {
			return fmt.Errorf("card multiplicities must not be negative")
		}
	}
	return nil
}

// GameConfig maps the rules settings onto the engine's configuration,
// falling back to the engine defaults for unset fields.
func (c *Config) GameConfig() game.Config {
	out := game.DefaultConfig()
	r := c.Rules
	if r == nil {
		return out
	}

	if len(r.Opponents) > 0 {
		out.Opponents = r.Opponents
	}
	if r.DealSize > 0 {
		out.DealSize = r.DealSize
	}
	if r.SeeFutureCards > 0 {
		out.SeeFutureCards = r.SeeFutureCards
	}
	if r.StallMultiplier > 0 {
		out.StallMultiplier = r.StallMultiplier
	}

	out.Catalog = catalogConfig(r, out.Catalog)

	if r.LowDeckThreshold > 0 {
		out.Policy.LowDeckThreshold = r.LowDeckThreshold
	}
	if r.AttackHandThreshold > 0 {
		out.Policy.AttackHandThreshold = r.AttackHandThreshold
	}
	if r.FavorHandThreshold > 0 {
		out.Policy.FavorHandThreshold = r.FavorHandThreshold
	}
	if r.ShuffleChance > 0 {
		out.Policy.ShuffleChance = r.ShuffleChance
	}

	return out
}

func catalogConfig(r *RulesSettings, def deck.CatalogConfig) deck.CatalogConfig {
	if r.AttackCards > 0 {
		def.AttackCards = r.AttackCards
	}
	if r.SkipCards > 0 {
		def.SkipCards = r.SkipCards
	}
	if r.FavorCards > 0 {
		def.FavorCards = r.FavorCards
	}
	if r.ShuffleCards > 0 {
		def.ShuffleCards = r.ShuffleCards
	}
	if r.SeeTheFutureCards > 0 {
		def.SeeTheFutureCards = r.SeeTheFutureCards
	}
	if r.DefuseSurplus > 0 {
		def.DefuseSurplus = r.DefuseSurplus
	}
	return def
}
