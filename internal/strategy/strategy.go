// Package strategy provides pluggable terminal-state evaluation
// functions. Every strategy is a pure function of (state, observer,
// config) to a scalar in a bounded range, since UCB1 backprop assumes
// bounded rewards.
package strategy

import (
	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/state"
)

// Type tags which evaluation function to dispatch to. Unknown tags fall
// back to Default.
type Type string

const (
	Default       Type = "DEFAULT"
	Aggressive    Type = "AGGRESSIVE"
	SloughPoints  Type = "SLOUGH_POINTS"
	BidAware      Type = "BID_AWARE" // enumerated, not implemented — see DESIGN.md
)

// Config carries the parameters every strategy variant might read.
// Unused fields are simply ignored by strategies that don't need them.
type Config struct {
	Type             Type
	Alpha            float64
	Beta             float64
	AggressionFactor float64
	PointValues      map[string]int
}

// DefaultConfig returns the Default strategy with no parameters.
func DefaultConfig() Config {
	return Config{Type: Default}
}

// NewAggressiveConfig returns an Aggressive config pre-filled with the
// spec's defaults (alpha=0.5, beta=1.0, aggression_factor=0.3); callers
// overwrite individual fields on the returned value before use. Zero is
// a valid, deliberate override once set this way — Evaluate never
// second-guesses it.
func NewAggressiveConfig() Config {
	return Config{Type: Aggressive, Alpha: 0.5, Beta: 1.0, AggressionFactor: 0.3}
}

// NewSloughConfig returns a Slough-points config pre-filled with the
// spec's defaults (alpha=0.0, beta=1.0, point_values={hearts:1,
// spades:Q:13}).
func NewSloughConfig() Config {
	return Config{
		Type:  SloughPoints,
		Alpha: 0.0,
		Beta:  1.0,
		PointValues: map[string]int{
			"hearts":   1,
			"spades:Q": 13,
		},
	}
}

// Evaluate dispatches to the configured strategy, from the observer's
// perspective, over a terminal state.
func Evaluate(s state.GameState, observerID state.PlayerID, cfg Config) float64 {
	switch cfg.Type {
	case Aggressive:
		return evaluateAggressive(s, observerID, cfg)
	case SloughPoints:
		return evaluateSloughPoints(s, observerID, cfg)
	default:
		return evaluateDefault(s, observerID)
	}
}

// evaluateDefault returns the fraction of tricks the observer won.
// Range [0, 1].
func evaluateDefault(s state.GameState, observerID state.PlayerID) float64 {
	ps, ok := s.PlayerStates[observerID]
	if !ok || s.RoundState == nil || s.RoundState.CardsPerPlayer == 0 {
		return 0
	}
	return float64(ps.TricksWon) / float64(s.RoundState.CardsPerPlayer)
}

// evaluateAggressive rewards winning tricks early in the round, per
// spec.md §4.4: alpha*default + beta*(early_wins/max(1,threshold)).
func evaluateAggressive(s state.GameState, observerID state.PlayerID, cfg Config) float64 {
	alpha, beta := cfg.Alpha, cfg.Beta

	if s.RoundState == nil {
		return 0
	}
	threshold := int(float64(s.RoundState.CardsPerPlayer) * cfg.AggressionFactor)
	if threshold < 2 {
		threshold = 2
	}

	earlyWins := 0
	for _, trick := range s.RoundState.CompletedTricks {
		if trick.TrickIndex < threshold && trick.WinningPlayerID == observerID {
			earlyWins++
		}
	}
	denom := threshold
	if denom < 1 {
		denom = 1
	}

	return alpha*evaluateDefault(s, observerID) + beta*(float64(earlyWins)/float64(denom))
}

// evaluateSloughPoints rewards dumping point cards on tricks the
// observer loses and penalizes winning tricks carrying points, per
// spec.md §4.4: alpha*default + beta*(slough_raw/26).
func evaluateSloughPoints(s state.GameState, observerID state.PlayerID, cfg Config) float64 {
	alpha, beta := cfg.Alpha, cfg.Beta
	if s.RoundState == nil {
		return alpha * evaluateDefault(s, observerID)
	}

	var sloughRaw float64
	for _, trick := range s.RoundState.CompletedTricks {
		points := trickPoints(trick, cfg.PointValues)
		if points == 0 {
			continue
		}
		if trick.WinningPlayerID == observerID {
			sloughRaw -= points
			continue
		}
		for _, play := range trick.Plays {
			if play.PlayerID == observerID {
				sloughRaw += cardPoints(play.Card, cfg.PointValues)
			}
		}
	}

	return alpha*evaluateDefault(s, observerID) + beta*(sloughRaw/26.0)
}

func trickPoints(trick state.TrickState, pointValues map[string]int) float64 {
	var total float64
	for _, play := range trick.Plays {
		total += cardPoints(play.Card, pointValues)
	}
	return total
}

// cardPoints looks up a card's point value, keyed first by "suit:rank"
// then by "suit" alone, per spec.md §6's slough config schema.
func cardPoints(c cards.Card, pointValues map[string]int) float64 {
	if pointValues == nil {
		return 0
	}
	if v, ok := pointValues[c.Suit.String()+":"+c.Rank.String()]; ok {
		return float64(v)
	}
	if v, ok := pointValues[c.Suit.String()]; ok {
		return float64(v)
	}
	return 0
}
