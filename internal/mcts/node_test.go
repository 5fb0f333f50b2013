package mcts

import (
	"testing"

	"github.com/bran/ismcts/internal/cards"
)

func TestUntriedMovesRecomputedAgainstCurrentLegalSet(t *testing.T) {
	t1 := newTree()

	sA := cards.New(cards.Spades, cards.Ace)
	hK := cards.New(cards.Hearts, cards.King)
	dQ := cards.New(cards.Diamonds, cards.Queen)

	// No children yet: every legal move in the current sample is untried.
	untried := t1.untriedMoves(0, []cards.Card{sA, hK})
	if len(untried) != 2 {
		t.Fatalf("expected 2 untried moves before any child exists, got %d", len(untried))
	}

	childIdx := t1.addChild(0, sA, "p1")
	t1.get(childIdx).update(1)

	// sA now has a child, but a different determinization can make a move
	// legal that wasn't in the first sample (dQ) — it must show up as
	// untried even though it was never part of the node's original legal
	// set, since untriedMoves is computed fresh from the caller's legal
	// slice every time rather than cached at node construction.
	untried = t1.untriedMoves(0, []cards.Card{hK, dQ})
	if len(untried) != 2 {
		t.Fatalf("expected both hK and dQ untried once sA has a child, got %d: %v", len(untried), untried)
	}

	// A move that already has a child must never reappear as untried,
	// regardless of which legal set is passed in.
	untried = t1.untriedMoves(0, []cards.Card{sA, hK, dQ})
	for _, c := range untried {
		if c.ID() == sA.ID() {
			t.Errorf("sA should not be untried once it has a child: %v", untried)
		}
	}
}
