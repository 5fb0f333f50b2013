// Package determinize samples a concrete world from an observer's
// information set: it fills in every opponent's hand with cards
// consistent with what has been observed, respecting void constraints
// derived from completed tricks.
package determinize

import (
	"math/rand"

	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/state"
)

// MaxRetries bounds the number of independent shuffles attempted before
// falling back to unconstrained dealing.
const MaxRetries = 50

// Result reports the outcome of one determinization attempt, mirroring
// the tuple the spec's core API returns: (state, attempts, retries,
// success).
type Result struct {
	State     state.GameState
	Attempts  int
	Retries   int
	Succeeded bool
}

// Sink is the subset of the instrumentation capability interface this
// package needs. A nil Sink is valid; failure to emit must never affect
// the returned state.
type Sink interface {
	Determinization(attempts, retries int, succeeded bool)
}

// Determinize returns a clone of s in which every player's hand is fully
// populated, consistent with observerID's information set and the void
// constraints derivable from completed tricks. The original state is
// never mutated.
func Determinize(s state.GameState, observerID state.PlayerID, rng *rand.Rand, sink Sink) Result {
	clone := s.Clone()
	if clone.RoundState == nil {
		return Result{State: clone, Attempts: 0, Retries: 0, Succeeded: true}
	}

	voids := deriveVoids(clone)
	pool := buildPool(clone, observerID)
	needed := neededCounts(clone, observerID)

	order := orderByConstraintCount(needed, voids)

	for attempt := 1; attempt <= MaxRetries; attempt++ {
		shuffled := append([]cards.Card(nil), pool...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assignment, ok := tryAllocate(shuffled, order, needed, voids)
		if ok {
			applyAssignment(&clone, assignment)
			if sink != nil {
				sink.Determinization(attempt, attempt-1, true)
			}
			return Result{State: clone, Attempts: attempt, Retries: attempt - 1, Succeeded: true}
		}
	}

	// Graceful degradation: deal the pool out ignoring voids.
	shuffled := append([]cards.Card(nil), pool...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	assignment := make(map[state.PlayerID][]cards.Card, len(order))
	idx := 0
	for _, pid := range order {
		n := needed[pid]
		if idx+n > len(shuffled) {
			n = len(shuffled) - idx
		}
		assignment[pid] = append([]cards.Card(nil), shuffled[idx:idx+n]...)
		idx += n
	}
	applyAssignment(&clone, assignment)
	if sink != nil {
		sink.Determinization(MaxRetries, MaxRetries-1, false)
	}
	return Result{State: clone, Attempts: MaxRetries, Retries: MaxRetries - 1, Succeeded: false}
}

// deriveVoids records, for each player, the suits they are known not to
// hold: whenever a completed trick had a known led suit and a player's
// play was a different suit, that player is void in the led suit.
func deriveVoids(s state.GameState) map[state.PlayerID]map[cards.Suit]bool {
	voids := make(map[state.PlayerID]map[cards.Suit]bool, len(s.PlayerStates))
	for id := range s.PlayerStates {
		voids[id] = make(map[cards.Suit]bool)
	}
	if s.RoundState == nil {
		return voids
	}
	for _, trick := range s.RoundState.CompletedTricks {
		if trick.LedSuit == nil {
			continue
		}
		led := *trick.LedSuit
		for _, play := range trick.Plays {
			if play.Card.Suit != led {
				if voids[play.PlayerID] == nil {
					voids[play.PlayerID] = make(map[cards.Suit]bool)
				}
				voids[play.PlayerID][led] = true
			}
		}
	}
	return voids
}

// buildPool returns the universe of cards minus everything currently
// visible to the observer: their own hand, and every card played in
// completed or in-progress tricks.
func buildPool(s state.GameState, observerID state.PlayerID) []cards.Card {
	visible := make(map[string]bool)
	if observer, ok := s.PlayerStates[observerID]; ok {
		for _, c := range observer.Hand {
			visible[c.ID()] = true
		}
	}
	if s.RoundState != nil {
		for _, trick := range s.RoundState.CompletedTricks {
			for _, play := range trick.Plays {
				visible[play.Card.ID()] = true
			}
		}
		if s.RoundState.TrickInProgress != nil {
			for _, play := range s.RoundState.TrickInProgress.Plays {
				visible[play.Card.ID()] = true
			}
		}
	}

	full := cards.FullDeck()
	pool := make([]cards.Card, 0, len(full))
	for _, c := range full {
		if !visible[c.ID()] {
			pool = append(pool, c)
		}
	}
	return pool
}

// neededCounts returns, for every non-observer player, how many more
// cards they must hold: cards_per_player minus plays already made.
func neededCounts(s state.GameState, observerID state.PlayerID) map[state.PlayerID]int {
	needed := make(map[state.PlayerID]int, len(s.PlayerStates))
	if s.RoundState == nil {
		return needed
	}
	playsMade := make(map[state.PlayerID]int)
	for _, trick := range s.RoundState.CompletedTricks {
		for _, play := range trick.Plays {
			playsMade[play.PlayerID]++
		}
	}
	if s.RoundState.TrickInProgress != nil {
		for _, play := range s.RoundState.TrickInProgress.Plays {
			playsMade[play.PlayerID]++
		}
	}
	for id := range s.PlayerStates {
		if id == observerID {
			continue
		}
		needed[id] = s.RoundState.CardsPerPlayer - playsMade[id]
	}
	return needed
}

// orderByConstraintCount returns player ids sorted by void-set size
// descending, so the most-constrained players are allocated first.
func orderByConstraintCount(needed map[state.PlayerID]int, voids map[state.PlayerID]map[cards.Suit]bool) []state.PlayerID {
	order := make([]state.PlayerID, 0, len(needed))
	for id, n := range needed {
		if n > 0 {
			order = append(order, id)
		}
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && len(voids[order[j]]) > len(voids[order[j-1]]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// tryAllocate attempts one allocation pass over a shuffled pool,
// assigning each player's needed count from cards not in their void
// set. Returns ok=false if any player runs out of valid cards.
func tryAllocate(shuffled []cards.Card, order []state.PlayerID, needed map[state.PlayerID]int, voids map[state.PlayerID]map[cards.Suit]bool) (map[state.PlayerID][]cards.Card, bool) {
	pool := append([]cards.Card(nil), shuffled...)
	assignment := make(map[state.PlayerID][]cards.Card, len(order))

	for _, pid := range order {
		count := needed[pid]
		voidSet := voids[pid]

		var valid []cards.Card
		for _, c := range pool {
			if !voidSet[c.Suit] {
				valid = append(valid, c)
			}
		}
		if len(valid) < count {
			return nil, false
		}
		selected := valid[:count]
		assignment[pid] = append([]cards.Card(nil), selected...)

		taken := make(map[string]bool, count)
		for _, c := range selected {
			taken[c.ID()] = true
		}
		remaining := pool[:0]
		for _, c := range pool {
			if !taken[c.ID()] {
				remaining = append(remaining, c)
			}
		}
		pool = remaining
	}
	return assignment, true
}

func applyAssignment(s *state.GameState, assignment map[state.PlayerID][]cards.Card) {
	for pid, hand := range assignment {
		ps := s.PlayerStates[pid]
		ps.Hand = hand
		s.PlayerStates[pid] = ps
	}
}
