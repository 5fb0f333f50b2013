package snapshot

import (
	"testing"

	"github.com/bran/ismcts/internal/state"
)

func TestToGameStateBuildsObserverHandAndTrump(t *testing.T) {
	trump := "spades"
	doc := Document{
		GameID:         "g1",
		ObserverID:     "p1",
		CardsPerPlayer: 2,
		TrumpSuit:      &trump,
		Players: []PlayerDoc{
			{ID: "p1", Seat: 0},
			{ID: "p2", Seat: 1},
		},
		Hands: map[string][]string{
			"p1": {"S-A", "H-2"},
		},
	}

	s, err := doc.ToGameState()
	if err != nil {
		t.Fatalf("ToGameState: %v", err)
	}
	ps, ok := s.PlayerStates["p1"]
	if !ok || len(ps.Hand) != 2 {
		t.Fatalf("observer hand = %+v, want 2 cards", ps)
	}
	if s.RoundState.TrumpSuit == nil {
		t.Fatal("expected trump suit to be set")
	}
	if s.RoundState.TrickInProgress == nil {
		t.Fatal("expected an empty trick in progress led by the first player")
	}
	if s.RoundState.TrickInProgress.LeaderPlayerID != "p1" {
		t.Errorf("leader = %s, want p1", s.RoundState.TrickInProgress.LeaderPlayerID)
	}
}

func TestToGameStateResolvesCompletedTrickWinner(t *testing.T) {
	trump := "spades"
	doc := Document{
		CardsPerPlayer: 1,
		TrumpSuit:      &trump,
		Players: []PlayerDoc{
			{ID: "p1", Seat: 0},
			{ID: "p2", Seat: 1},
		},
		CompletedTricks: []TrickDoc{
			{
				Leader: "p1",
				Plays: []PlayDoc{
					{PlayerID: "p1", Card: "H-10"},
					{PlayerID: "p2", Card: "S-2"},
				},
			},
		},
	}

	s, err := doc.ToGameState()
	if err != nil {
		t.Fatalf("ToGameState: %v", err)
	}
	if len(s.RoundState.CompletedTricks) != 1 {
		t.Fatalf("completed tricks = %d, want 1", len(s.RoundState.CompletedTricks))
	}
	trick := s.RoundState.CompletedTricks[0]
	if trick.WinningPlayerID != state.PlayerID("p2") {
		t.Errorf("winner = %s, want p2 (trumped the led heart)", trick.WinningPlayerID)
	}
	if s.RoundState.TrickInProgress != nil {
		t.Error("all tricks complete per CardsPerPlayer=1, expected no trick in progress")
	}
	if got := s.PlayerStates["p2"].TricksWon; got != 1 {
		t.Errorf("p2 TricksWon = %d, want 1", got)
	}
	if got := s.PlayerStates["p1"].TricksWon; got != 0 {
		t.Errorf("p1 TricksWon = %d, want 0", got)
	}
}
