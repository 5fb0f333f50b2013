// Package deal synthesizes a playable round from scratch: a shuffled
// deck dealt out to a fixed seat order. It exists for the CLI/TUI
// harness, which needs a runnable game to hand the search engine when
// no external dealer has produced a GameState file — the engine itself
// never deals, it only reads.
package deal

import (
	"math/rand"

	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/state"
)

// Config describes the round to synthesize.
type Config struct {
	GameID         string
	PlayerIDs      []state.PlayerID
	CardsPerPlayer int
	Seed           int64
}

// New deals Config.CardsPerPlayer cards to each player from a shuffled
// standard deck and returns a GameState with an empty trick in progress
// led by the first player. TrumpSuit is left unset; callers that want a
// trump (e.g. via internal/bidding) set RoundState.TrumpSuit themselves
// before play starts.
func New(cfg Config) state.GameState {
	rng := rand.New(rand.NewSource(cfg.Seed))

	deck := cards.FullDeck()
	shuffled := append([]cards.Card(nil), deck...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	players := make([]state.Player, len(cfg.PlayerIDs))
	playerStates := make(map[state.PlayerID]state.PlayerRoundState, len(cfg.PlayerIDs))
	idx := 0
	for i, id := range cfg.PlayerIDs {
		players[i] = state.Player{ID: id, SeatIndex: i, Status: state.StatusActive}
		hand := append([]cards.Card(nil), shuffled[idx:idx+cfg.CardsPerPlayer]...)
		idx += cfg.CardsPerPlayer
		playerStates[id] = state.PlayerRoundState{PlayerID: id, Hand: hand}
	}

	leader := cfg.PlayerIDs[0]
	return state.GameState{
		GameID: cfg.GameID,
		Config: state.GameConfig{
			GameID:     cfg.GameID,
			RoundCount: 1,
			MinPlayers: len(cfg.PlayerIDs),
			MaxPlayers: len(cfg.PlayerIDs),
		},
		Phase:        state.PhasePlaying,
		Players:      players,
		PlayerStates: playerStates,
		RoundState: &state.RoundState{
			RoundIndex:     0,
			CardsPerPlayer: cfg.CardsPerPlayer,
			Bids:           make(map[state.PlayerID]*int),
			TrickInProgress: &state.TrickState{
				TrickIndex:     0,
				LeaderPlayerID: leader,
			},
		},
		CumulativeScores: make(map[state.PlayerID]int),
	}
}
