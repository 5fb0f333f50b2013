// Package bidding is a rule-based stub for the bid phase the search
// engine itself does not play: a cheap heuristic a caller can use to
// seed trump selection and initial bids before handing control to the
// search. It is deliberately simple — the decision engine's quality
// lives in internal/mcts, not here.
package bidding

import "github.com/bran/ismcts/internal/cards"

// EvaluateHandStrength scores a hand (0-100) assuming the given suit is
// trump: trump count dominates, off-suit aces add a smaller bonus,
// mirroring the weight the rest of the pack's hand-strength heuristics
// give trump length over raw high cards.
func EvaluateHandStrength(hand []cards.Card, trump cards.Suit) int {
	strength := 0
	trumpCount := 0
	offAces := 0

	for _, c := range hand {
		if c.Suit == trump {
			trumpCount++
			continue
		}
		if c.Rank == cards.Ace {
			offAces++
		}
	}

	switch {
	case trumpCount >= 5:
		strength += 95
	case trumpCount == 4:
		strength += 75
	case trumpCount == 3:
		strength += 55
	case trumpCount == 2:
		strength += 35
	case trumpCount == 1:
		strength += 15
	}

	strength += offAces * 8

	if strength > 100 {
		strength = 100
	}
	return strength
}

// MinStrengthToBid is the configurable strength threshold a hand's best
// candidate suit must clear before ChooseTrump will bid it. Below this,
// the hand is too weak to name trump and the caller must supply one
// from elsewhere (a fixed/forced suit for demo purposes).
const MinStrengthToBid = 20

// ChooseTrump picks the suit maximizing EvaluateHandStrength. If that
// suit's strength clears MinStrengthToBid, it returns the suit, a bid
// derived from that strength (1 + strength/34, capped at
// cardsPerPlayer), and ok=true. Otherwise ok=false and the returned
// suit/bid are zero values — the round's trump must come from
// elsewhere.
func ChooseTrump(hand []cards.Card, cardsPerPlayer int) (suit cards.Suit, bid int, ok bool) {
	bestSuit := cards.Clubs
	bestStrength := -1

	for _, candidate := range cards.AllSuits() {
		strength := EvaluateHandStrength(hand, candidate)
		if strength > bestStrength {
			bestStrength = strength
			bestSuit = candidate
		}
	}

	if bestStrength < MinStrengthToBid {
		return cards.Clubs, 0, false
	}

	bid = 1 + bestStrength/34
	if bid > cardsPerPlayer {
		bid = cardsPerPlayer
	}
	return bestSuit, bid, true
}
