// Package config loads the YAML configuration the CLI/TUI harness reads
// before starting a search: which strategy to run, its parameters, the
// search time budget, the RNG seed, and the rule variant flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bran/ismcts/internal/rules"
	"github.com/bran/ismcts/internal/strategy"
)

// Config is the on-disk shape, unmarshaled directly from YAML.
type Config struct {
	Strategy     StrategyConfig `yaml:"strategy"`
	Rules        RulesConfig    `yaml:"rules"`
	TimeBudgetMs int            `yaml:"time_budget_ms"`
	Seed         int64          `yaml:"seed"`
}

// StrategyConfig mirrors strategy.Config's fields at the YAML boundary.
// Numeric fields are pointers so an explicit `alpha: 0` in the file is
// distinguishable from the field being absent — the same ambiguity the
// strategy package itself rejects.
type StrategyConfig struct {
	Type             string         `yaml:"type"`
	Alpha            *float64       `yaml:"alpha"`
	Beta             *float64       `yaml:"beta"`
	AggressionFactor *float64       `yaml:"aggression_factor"`
	PointValues      map[string]int `yaml:"point_values"`
}

// RulesConfig mirrors rules.Config at the YAML boundary.
type RulesConfig struct {
	CanLeadTrump bool `yaml:"can_lead_trump"`
}

// Default returns the configuration the CLI runs with when no file is
// given: the default strategy, default rules, a 500ms budget, and a
// zero seed (callers needing reproducibility should set one).
func Default() Config {
	return Config{
		Strategy:     StrategyConfig{Type: string(strategy.Default)},
		Rules:        RulesConfig{CanLeadTrump: rules.DefaultConfig().CanLeadTrump},
		TimeBudgetMs: 500,
	}
}

// Load reads and parses a YAML config file on top of Default(): fields
// the file omits keep Default()'s values. Strategy parameters the file
// leaves unset are filled from the variant's documented defaults later,
// by ToStrategyConfig.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ToStrategyConfig converts the on-disk strategy section into the engine's
// strategy.Config, starting from the variant's documented defaults and
// overlaying every field the file set.
func (c Config) ToStrategyConfig() strategy.Config {
	var base strategy.Config
	switch strategy.Type(c.Strategy.Type) {
	case strategy.Aggressive:
		base = strategy.NewAggressiveConfig()
	case strategy.SloughPoints:
		base = strategy.NewSloughConfig()
	default:
		base = strategy.DefaultConfig()
	}
	base.Type = strategy.Type(c.Strategy.Type)
	if base.Type == "" {
		base.Type = strategy.Default
	}
	if c.Strategy.Alpha != nil {
		base.Alpha = *c.Strategy.Alpha
	}
	if c.Strategy.Beta != nil {
		base.Beta = *c.Strategy.Beta
	}
	if c.Strategy.AggressionFactor != nil {
		base.AggressionFactor = *c.Strategy.AggressionFactor
	}
	if len(c.Strategy.PointValues) > 0 {
		base.PointValues = c.Strategy.PointValues
	}
	return base
}

// ToRulesConfig converts the on-disk rules section into rules.Config.
func (c Config) ToRulesConfig() rules.Config {
	return rules.Config{CanLeadTrump: c.Rules.CanLeadTrump}
}
