// Package state holds the immutable-by-convention data model the rule
// kernel, determinizer, and search operate over: players, rounds, tricks.
// Nothing in this package enforces game rules; it is a plain data model
// plus the deep-clone every search iteration relies on.
package state

import "github.com/bran/ismcts/internal/cards"

// PlayerID identifies a seat. Kept as a string to match the wire format
// external callers (a dealer, a lobby service) already use.
type PlayerID string

// Status mirrors the subset of player lifecycle the engine cares about.
type Status string

const (
	StatusActive       Status = "active"
	StatusDisconnected Status = "disconnected"
	StatusLeft         Status = "left"
)

// Player is seating and lifecycle metadata for one participant.
type Player struct {
	ID         PlayerID
	SeatIndex  int
	IsBot      bool
	Spectator  bool
	Status     Status
}

// PlayerRoundState is one player's per-round mutable state: their hand,
// tricks won so far, and an optional bid recorded by the bidding stub.
type PlayerRoundState struct {
	PlayerID  PlayerID
	Hand      []cards.Card
	TricksWon int
	Bid       *int // nil means no bid recorded
}

// Clone returns a deep copy; every search iteration works on a clone so
// the input state is never mutated.
func (p PlayerRoundState) Clone() PlayerRoundState {
	clone := p
	clone.Hand = append([]cards.Card(nil), p.Hand...)
	if p.Bid != nil {
		bid := *p.Bid
		clone.Bid = &bid
	}
	return clone
}

// HasCard reports whether the hand contains the given card id.
func (p PlayerRoundState) HasCard(id string) bool {
	for _, c := range p.Hand {
		if c.ID() == id {
			return true
		}
	}
	return false
}

// TrickPlay is one card played into a trick, in insertion order.
type TrickPlay struct {
	PlayerID PlayerID
	Card     cards.Card
	Order    int
}

// TrickState is a single trick, in progress or completed.
type TrickState struct {
	TrickIndex     int
	LeaderPlayerID PlayerID
	LedSuit        *cards.Suit // nil until the first card is played
	Plays          []TrickPlay
	WinningPlayerID PlayerID
	WinningCardID   string
	Completed       bool
}

// Clone returns a deep copy of the trick.
func (t TrickState) Clone() TrickState {
	clone := t
	clone.Plays = append([]TrickPlay(nil), t.Plays...)
	if t.LedSuit != nil {
		suit := *t.LedSuit
		clone.LedSuit = &suit
	}
	return clone
}

// RoundState is everything that changes within a single deal: trump,
// bids, the trick in progress, and the history of completed tricks.
type RoundState struct {
	RoundIndex     int
	CardsPerPlayer int
	TrumpSuit      *cards.Suit // nil if no trump has been set
	TrumpBroken    bool
	Bids           map[PlayerID]*int
	TrickInProgress *TrickState // nil once all tricks are complete
	CompletedTricks []TrickState
}

// Clone returns a deep copy of the round, including all nested tricks.
func (r RoundState) Clone() RoundState {
	clone := r
	if r.TrumpSuit != nil {
		suit := *r.TrumpSuit
		clone.TrumpSuit = &suit
	}
	clone.Bids = make(map[PlayerID]*int, len(r.Bids))
	for id, bid := range r.Bids {
		if bid == nil {
			clone.Bids[id] = nil
			continue
		}
		b := *bid
		clone.Bids[id] = &b
	}
	if r.TrickInProgress != nil {
		trick := r.TrickInProgress.Clone()
		clone.TrickInProgress = &trick
	}
	clone.CompletedTricks = make([]TrickState, len(r.CompletedTricks))
	for i, t := range r.CompletedTricks {
		clone.CompletedTricks[i] = t.Clone()
	}
	return clone
}

// Phase tags the lifecycle stage of a GameState, mirroring the wire
// values a lobby service would send.
type Phase string

const (
	PhaseLobby    Phase = "LOBBY"
	PhaseBidding  Phase = "BIDDING"
	PhasePlaying  Phase = "PLAYING"
	PhaseScoring  Phase = "SCORING"
	PhaseComplete Phase = "COMPLETED"
)

// GameConfig is static configuration for the game the engine is deciding
// within: how many rounds and how many players. Deck size is not
// configured here.
type GameConfig struct {
	GameID     string
	RoundCount int
	MinPlayers int
	MaxPlayers int
}

// GameState is the full snapshot the engine reads. Callers must treat it
// as read-only for the duration of a decision call; the engine only
// reads and clones it.
type GameState struct {
	GameID          string
	Config          GameConfig
	Phase           Phase
	Players         []Player
	PlayerStates    map[PlayerID]PlayerRoundState
	RoundState      *RoundState
	CumulativeScores map[PlayerID]int
}

// Clone returns a deep copy of the entire game state.
func (g GameState) Clone() GameState {
	clone := g
	clone.Players = append([]Player(nil), g.Players...)
	clone.PlayerStates = make(map[PlayerID]PlayerRoundState, len(g.PlayerStates))
	for id, ps := range g.PlayerStates {
		clone.PlayerStates[id] = ps.Clone()
	}
	clone.CumulativeScores = make(map[PlayerID]int, len(g.CumulativeScores))
	for id, score := range g.CumulativeScores {
		clone.CumulativeScores[id] = score
	}
	if g.RoundState != nil {
		round := g.RoundState.Clone()
		clone.RoundState = &round
	}
	return clone
}

// SeatOrder returns player ids ordered by seat index — the fixed turn
// order the rule kernel walks around.
func (g GameState) SeatOrder() []PlayerID {
	players := append([]Player(nil), g.Players...)
	// Players are expected to already be seat-ordered; a stable sort
	// guards against callers that hand us an arbitrary slice order.
	for i := 1; i < len(players); i++ {
		for j := i; j > 0 && players[j].SeatIndex < players[j-1].SeatIndex; j-- {
			players[j], players[j-1] = players[j-1], players[j]
		}
	}
	order := make([]PlayerID, len(players))
	for i, p := range players {
		order[i] = p.ID
	}
	return order
}
