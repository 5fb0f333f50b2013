package state

import (
	"reflect"
	"testing"

	"github.com/bran/ismcts/internal/cards"
)

func sampleGame() GameState {
	trump := cards.Spades
	bid := 2
	return GameState{
		GameID: "g1",
		Config: GameConfig{GameID: "g1", RoundCount: 1, MinPlayers: 2, MaxPlayers: 2},
		Phase:  PhasePlaying,
		Players: []Player{
			{ID: "p2", SeatIndex: 1},
			{ID: "p1", SeatIndex: 0},
		},
		PlayerStates: map[PlayerID]PlayerRoundState{
			"p1": {PlayerID: "p1", Hand: []cards.Card{cards.New(cards.Spades, cards.Ace)}, Bid: &bid},
			"p2": {PlayerID: "p2", Hand: []cards.Card{cards.New(cards.Hearts, cards.Two)}},
		},
		RoundState: &RoundState{
			RoundIndex:     0,
			CardsPerPlayer: 1,
			TrumpSuit:      &trump,
			Bids:           map[PlayerID]*int{"p1": &bid, "p2": nil},
			TrickInProgress: &TrickState{
				TrickIndex:     0,
				LeaderPlayerID: "p1",
				Plays: []TrickPlay{
					{PlayerID: "p1", Card: cards.New(cards.Spades, cards.Ace), Order: 0},
				},
			},
			CompletedTricks: []TrickState{},
		},
		CumulativeScores: map[PlayerID]int{"p1": 3, "p2": 1},
	}
}

// Cloning then never mutating the clone yields a structurally identical
// state (spec.md §8 round-trip property).
func TestCloneStructuralEquality(t *testing.T) {
	original := sampleGame()
	clone := original.Clone()

	if !reflect.DeepEqual(original, clone) {
		t.Fatalf("clone differs from original:\n  original=%+v\n  clone=%+v", original, clone)
	}
}

// Mutating a clone must never be visible through the original — every
// nested slice and map is deep-copied, not shared.
func TestCloneIndependence(t *testing.T) {
	original := sampleGame()
	clone := original.Clone()

	clone.PlayerStates["p1"] = PlayerRoundState{PlayerID: "p1", Hand: nil}
	clone.RoundState.TrickInProgress.Plays = append(clone.RoundState.TrickInProgress.Plays, TrickPlay{PlayerID: "p2"})
	*clone.RoundState.TrumpSuit = cards.Clubs
	clone.CumulativeScores["p1"] = 99

	if len(original.PlayerStates["p1"].Hand) != 1 {
		t.Errorf("mutating clone's PlayerStates leaked into original hand: %v", original.PlayerStates["p1"].Hand)
	}
	if len(original.RoundState.TrickInProgress.Plays) != 1 {
		t.Errorf("mutating clone's trick plays leaked into original: %v", original.RoundState.TrickInProgress.Plays)
	}
	if *original.RoundState.TrumpSuit != cards.Spades {
		t.Errorf("mutating clone's trump suit leaked into original: %v", *original.RoundState.TrumpSuit)
	}
	if original.CumulativeScores["p1"] != 3 {
		t.Errorf("mutating clone's scores leaked into original: %v", original.CumulativeScores["p1"])
	}
}

func TestSeatOrderSortsBySeatIndex(t *testing.T) {
	g := sampleGame()
	order := g.SeatOrder()
	want := []PlayerID{"p1", "p2"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("SeatOrder = %v, want %v", order, want)
	}
}

func TestPlayerRoundStateHasCard(t *testing.T) {
	ps := PlayerRoundState{Hand: []cards.Card{cards.New(cards.Hearts, cards.King)}}
	if !ps.HasCard(cards.New(cards.Hearts, cards.King).ID()) {
		t.Error("HasCard should find a card present in hand")
	}
	if ps.HasCard(cards.New(cards.Clubs, cards.King).ID()) {
		t.Error("HasCard should not find a card absent from hand")
	}
}
