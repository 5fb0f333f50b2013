package rules

import (
	"testing"

	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/state"
)

func mustFixture(t *testing.T, s string) cards.Card {
	t.Helper()
	c, err := cards.ParseFixture(s)
	if err != nil {
		t.Fatalf("ParseFixture(%q): %v", s, err)
	}
	return c
}

func twoPlayerState(t *testing.T, p1Hand, p2Hand []string, trump cards.Suit, leader state.PlayerID) state.GameState {
	t.Helper()
	hand := func(fixtures []string) []cards.Card {
		out := make([]cards.Card, 0, len(fixtures))
		for _, f := range fixtures {
			out = append(out, mustFixture(t, f))
		}
		return out
	}
	return state.GameState{
		GameID: "g1",
		Phase:  state.PhasePlaying,
		Players: []state.Player{
			{ID: "p1", SeatIndex: 0},
			{ID: "p2", SeatIndex: 1},
		},
		PlayerStates: map[state.PlayerID]state.PlayerRoundState{
			"p1": {PlayerID: "p1", Hand: hand(p1Hand)},
			"p2": {PlayerID: "p2", Hand: hand(p2Hand)},
		},
		RoundState: &state.RoundState{
			CardsPerPlayer: len(p1Hand),
			TrumpSuit:      &trump,
			TrickInProgress: &state.TrickState{
				TrickIndex:     0,
				LeaderPlayerID: leader,
			},
		},
	}
}

func TestCurrentPlayerFollowsLeader(t *testing.T) {
	s := twoPlayerState(t, []string{"S-A", "H-2"}, []string{"S-K", "H-5"}, cards.Clubs, "p1")
	if got := CurrentPlayer(s); got != "p1" {
		t.Errorf("CurrentPlayer = %q, want p1", got)
	}
	s.RoundState.TrickInProgress.Plays = append(s.RoundState.TrickInProgress.Plays, state.TrickPlay{PlayerID: "p1"})
	if got := CurrentPlayer(s); got != "p2" {
		t.Errorf("CurrentPlayer after one play = %q, want p2", got)
	}
}

// S3: MUST_FOLLOW_SUIT.
func TestPlayCardMustFollowSuit(t *testing.T) {
	s := twoPlayerState(t, []string{"S-A", "H-2"}, []string{"H-5", "D-2"}, cards.Clubs, "p1")
	led := cards.Hearts
	s.RoundState.TrickInProgress.LedSuit = &led
	s.RoundState.TrickInProgress.Plays = []state.TrickPlay{{PlayerID: "p2", Card: mustFixture(t, "H-5"), Order: 0}}

	err := PlayCard(&s, "p1", "d0:spades:A")
	if err != ErrMustFollowSuit {
		t.Errorf("PlayCard = %v, want ErrMustFollowSuit", err)
	}
}

func TestPlayCardNoMatchingSuitAllowsDiscard(t *testing.T) {
	s := twoPlayerState(t, []string{"S-A", "D-2"}, []string{"H-5", "D-3"}, cards.Clubs, "p1")
	led := cards.Hearts
	s.RoundState.TrickInProgress.LedSuit = &led
	s.RoundState.TrickInProgress.Plays = []state.TrickPlay{{PlayerID: "p2", Card: mustFixture(t, "H-5"), Order: 0}}

	if err := PlayCard(&s, "p1", "d0:spades:A"); err != nil {
		t.Errorf("PlayCard returned unexpected error: %v", err)
	}
}

func TestPlayCardNotInHand(t *testing.T) {
	s := twoPlayerState(t, []string{"S-A"}, []string{"H-5"}, cards.Clubs, "p1")
	if err := PlayCard(&s, "p1", "d0:hearts:K"); err != ErrCardNotInHand {
		t.Errorf("PlayCard = %v, want ErrCardNotInHand", err)
	}
}

func TestLegalMovesDefaultAllowsLeadingTrump(t *testing.T) {
	s := twoPlayerState(t, []string{"S-A", "H-2"}, []string{"S-K", "H-5"}, cards.Spades, "p1")
	moves := LegalMoves(s, DefaultConfig())
	if len(moves) != 2 {
		t.Errorf("default config should allow leading trump, got %v", moves)
	}
}

func TestLegalMovesCannotLeadTrumpUnbroken(t *testing.T) {
	s := twoPlayerState(t, []string{"S-A", "H-2"}, []string{"S-K", "H-5"}, cards.Spades, "p1")
	moves := LegalMoves(s, Config{CanLeadTrump: false})
	for _, m := range moves {
		if m.Suit == cards.Spades {
			t.Errorf("legal moves should exclude unbroken trump: %v", moves)
		}
	}
}

func TestLegalMovesPureTrumpHandExempt(t *testing.T) {
	s := twoPlayerState(t, []string{"S-A", "S-K"}, []string{"H-5", "H-2"}, cards.Spades, "p1")
	moves := LegalMoves(s, Config{CanLeadTrump: false})
	if len(moves) != 2 {
		t.Errorf("pure-trump hand should have all cards legal to lead, got %v", moves)
	}
}

// S4: both plays are trump; the higher trump wins.
func TestCompleteTrickTrumpWins(t *testing.T) {
	s := twoPlayerState(t, nil, nil, cards.Spades, "p1")
	s.RoundState.TrickInProgress.Plays = []state.TrickPlay{
		{PlayerID: "p1", Card: mustFixture(t, "S-A"), Order: 0},
		{PlayerID: "p2", Card: mustFixture(t, "S-K"), Order: 1},
	}
	s.RoundState.CardsPerPlayer = 1
	s.PlayerStates["p1"] = state.PlayerRoundState{PlayerID: "p1"}
	s.PlayerStates["p2"] = state.PlayerRoundState{PlayerID: "p2"}

	if err := CompleteTrick(&s); err != nil {
		t.Fatalf("CompleteTrick returned error: %v", err)
	}
	if s.RoundState.CompletedTricks[0].WinningPlayerID != "p1" {
		t.Errorf("winner = %q, want p1", s.RoundState.CompletedTricks[0].WinningPlayerID)
	}
	if s.PlayerStates["p1"].TricksWon != 1 {
		t.Errorf("TricksWon for p1 = %d, want 1", s.PlayerStates["p1"].TricksWon)
	}
}

// S5: four-player trick, a low trump wins over higher led-suit cards.
func TestCompleteTrickFourPlayer(t *testing.T) {
	s := state.GameState{
		Players: []state.Player{
			{ID: "p1", SeatIndex: 0}, {ID: "p2", SeatIndex: 1},
			{ID: "p3", SeatIndex: 2}, {ID: "p4", SeatIndex: 3},
		},
		PlayerStates: map[state.PlayerID]state.PlayerRoundState{
			"p1": {PlayerID: "p1"}, "p2": {PlayerID: "p2"},
			"p3": {PlayerID: "p3"}, "p4": {PlayerID: "p4"},
		},
	}
	trump := cards.Spades
	s.RoundState = &state.RoundState{
		CardsPerPlayer: 1,
		TrumpSuit:      &trump,
		TrickInProgress: &state.TrickState{
			Plays: []state.TrickPlay{
				{PlayerID: "p1", Card: mustFixture(t, "H-10"), Order: 0},
				{PlayerID: "p2", Card: mustFixture(t, "H-2"), Order: 1},
				{PlayerID: "p3", Card: mustFixture(t, "S-2"), Order: 2},
				{PlayerID: "p4", Card: mustFixture(t, "H-K"), Order: 3},
			},
		},
	}
	led := cards.Hearts
	s.RoundState.TrickInProgress.LedSuit = &led

	if err := CompleteTrick(&s); err != nil {
		t.Fatalf("CompleteTrick returned error: %v", err)
	}
	if got := s.RoundState.CompletedTricks[0].WinningPlayerID; got != "p3" {
		t.Errorf("winner = %q, want p3", got)
	}
}
