// Package snapshot is the CLI harness's file-boundary format: a YAML
// rendering of the observer-visible GameState the engine decides over.
// Nothing in the core engine imports this package — it exists so
// "ismctsctl decide --state file.yaml" has something to parse, standing
// in for the payload-parsing layer spec.md places out of scope.
package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/rules"
	"github.com/bran/ismcts/internal/state"
)

// Document is the on-disk shape. Hands and plays reference cards by the
// fixture alias ("S-A") for readability; trump is an optional suit name.
type Document struct {
	GameID         string              `yaml:"game_id"`
	ObserverID     string              `yaml:"observer_id"`
	CardsPerPlayer int                 `yaml:"cards_per_player"`
	TrumpSuit      *string             `yaml:"trump_suit"`
	TrumpBroken    bool                `yaml:"trump_broken"`
	Players        []PlayerDoc         `yaml:"players"`
	Hands          map[string][]string `yaml:"hands"`
	CompletedTricks []TrickDoc         `yaml:"completed_tricks"`
	CurrentTrick    *TrickDoc          `yaml:"current_trick"`
}

// PlayerDoc is one seat.
type PlayerDoc struct {
	ID   string `yaml:"id"`
	Seat int    `yaml:"seat"`
}

// PlayDoc is one card played into a trick, in order.
type PlayDoc struct {
	PlayerID string `yaml:"player_id"`
	Card     string `yaml:"card"`
}

// TrickDoc is one trick, in progress or completed.
type TrickDoc struct {
	Leader string    `yaml:"leader"`
	Plays  []PlayDoc `yaml:"plays"`
}

// Load reads and parses a Document from path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("snapshot: parse %s: %w", path, err)
	}
	return doc, nil
}

// ToGameState reconstructs a state.GameState from the document. Hands
// not listed for a player are left empty — a caller deciding for an
// observer normally only supplies the observer's own hand and relies on
// the determinizer to fill the rest.
func (d Document) ToGameState() (state.GameState, error) {
	players := make([]state.Player, len(d.Players))
	playerStates := make(map[state.PlayerID]state.PlayerRoundState, len(d.Players))
	for i, p := range d.Players {
		id := state.PlayerID(p.ID)
		players[i] = state.Player{ID: id, SeatIndex: p.Seat, Status: state.StatusActive}
		hand, err := parseHand(d.Hands[p.ID])
		if err != nil {
			return state.GameState{}, fmt.Errorf("snapshot: player %s: %w", p.ID, err)
		}
		playerStates[id] = state.PlayerRoundState{PlayerID: id, Hand: hand}
	}

	round := &state.RoundState{
		CardsPerPlayer: d.CardsPerPlayer,
		TrumpBroken:    d.TrumpBroken,
		Bids:           make(map[state.PlayerID]*int),
	}
	if d.TrumpSuit != nil {
		suit, err := cards.ParseSuit(*d.TrumpSuit)
		if err != nil {
			return state.GameState{}, fmt.Errorf("snapshot: trump_suit: %w", err)
		}
		round.TrumpSuit = &suit
	}

	completed := make([]state.TrickState, len(d.CompletedTricks))
	for i, td := range d.CompletedTricks {
		trick, err := td.toTrickState(i)
		if err != nil {
			return state.GameState{}, fmt.Errorf("snapshot: completed_tricks[%d]: %w", i, err)
		}
		completeTrick(&trick, round.TrumpSuit)
		completed[i] = trick

		ps := playerStates[trick.WinningPlayerID]
		ps.TricksWon++
		playerStates[trick.WinningPlayerID] = ps
	}
	round.CompletedTricks = completed

	if d.CurrentTrick != nil {
		trick, err := d.CurrentTrick.toTrickState(len(completed))
		if err != nil {
			return state.GameState{}, fmt.Errorf("snapshot: current_trick: %w", err)
		}
		round.TrickInProgress = &trick
	} else if len(completed) < d.CardsPerPlayer {
		leader := state.PlayerID("")
		if len(players) > 0 {
			leader = players[0].ID
		}
		if len(completed) > 0 {
			leader = completed[len(completed)-1].WinningPlayerID
		}
		round.TrickInProgress = &state.TrickState{TrickIndex: len(completed), LeaderPlayerID: leader}
	}

	return state.GameState{
		GameID:       d.GameID,
		Phase:        state.PhasePlaying,
		Players:      players,
		PlayerStates: playerStates,
		RoundState:   round,
		CumulativeScores: make(map[state.PlayerID]int),
	}, nil
}

func parseHand(fixtures []string) ([]cards.Card, error) {
	hand := make([]cards.Card, 0, len(fixtures))
	for _, f := range fixtures {
		c, err := cards.ParseFixture(f)
		if err != nil {
			return nil, err
		}
		hand = append(hand, c)
	}
	return hand, nil
}

func (td TrickDoc) toTrickState(index int) (state.TrickState, error) {
	trick := state.TrickState{TrickIndex: index, LeaderPlayerID: state.PlayerID(td.Leader)}
	for i, pd := range td.Plays {
		c, err := cards.ParseFixture(pd.Card)
		if err != nil {
			return state.TrickState{}, err
		}
		if i == 0 {
			suit := c.Suit
			trick.LedSuit = &suit
		}
		trick.Plays = append(trick.Plays, state.TrickPlay{PlayerID: state.PlayerID(pd.PlayerID), Card: c, Order: i})
	}
	return trick, nil
}

// completeTrick fills in the winner fields for a trick loaded as
// already-completed history, reusing the rule kernel's own winner
// precedence so this never drifts from CompleteTrick's behavior.
func completeTrick(trick *state.TrickState, trump *cards.Suit) {
	if len(trick.Plays) == 0 {
		return
	}
	bestIdx := rules.WinningPlayIndex(trick.Plays, trump)
	trick.WinningPlayerID = trick.Plays[bestIdx].PlayerID
	trick.WinningCardID = trick.Plays[bestIdx].Card.ID()
	trick.Completed = true
}
