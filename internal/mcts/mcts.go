// Package mcts implements information-set Monte Carlo tree search over
// the rule kernel in internal/rules: determinize the hidden information,
// walk the tree by UCB1, expand one node per iteration, roll out to a
// terminal state with uniform-random play, and backpropagate the
// configured strategy's score. Repeated under a wall-clock budget; the
// legal root move with the highest rank (visit count breaking ties) is
// returned.
package mcts

import (
	"math/rand"
	"time"

	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/determinize"
	"github.com/bran/ismcts/internal/rules"
	"github.com/bran/ismcts/internal/state"
	"github.com/bran/ismcts/internal/strategy"
)

// Sink receives per-decision instrumentation. A nil Sink is valid.
type Sink interface {
	determinize.Sink
	Iteration(n int)
}

// Engine runs ISMCTS rooted at a single decision point for one observer.
type Engine struct {
	root       state.GameState
	observer   state.PlayerID
	rulesCfg   rules.Config
	stratCfg   strategy.Config
	rng        *rand.Rand
	sink       Sink
}

// NewEngine constructs a search rooted at rootState, deciding on behalf
// of observerID.
func NewEngine(rootState state.GameState, observerID state.PlayerID, rulesCfg rules.Config, stratCfg strategy.Config, rng *rand.Rand, sink Sink) *Engine {
	return &Engine{
		root:     rootState,
		observer: observerID,
		rulesCfg: rulesCfg,
		stratCfg: stratCfg,
		rng:      rng,
		sink:     sink,
	}
}

// Search runs iterations until budget elapses, returning the root move
// chosen by bestMove. Returns nil if the root has no legal moves (e.g.
// the observer's hand is empty or it is not a playing phase) or if zero
// iterations completed before the budget expired — a search yields no
// decision in that case, per spec.md §5/§6, rather than an arbitrary
// default move. The one exception is a root with exactly one legal move,
// which is returned immediately without running any iteration.
func (e *Engine) Search(budget time.Duration) *cards.Card {
	return e.SearchUntil(func() bool { return false }, budget)
}

// SearchUntil is Search with an additional cooperative-cancellation
// predicate, checked once per iteration; the search stops as soon as
// either the predicate returns true or the budget elapses. If the
// predicate is already true (or the budget is already expired) on the
// first check, zero iterations run and SearchUntil returns nil unless
// exactly one legal move exists at the root.
func (e *Engine) SearchUntil(stop func() bool, budget time.Duration) *cards.Card {
	rootLegal := rules.LegalMoves(e.root, e.rulesCfg)
	if len(rootLegal) == 0 {
		return nil
	}
	if len(rootLegal) == 1 {
		return &rootLegal[0]
	}

	t := newTree()
	deadline := time.Now().Add(budget)
	iterations := 0

	for time.Now().Before(deadline) && !stop() {
		e.iterate(t)
		iterations++
	}
	if e.sink != nil {
		e.sink.Iteration(iterations)
	}

	return bestMove(t, rootLegal)
}

// iterate runs one determinize-select-expand-rollout-backprop cycle.
func (e *Engine) iterate(t *tree) {
	det := determinize.Determinize(e.root, e.observer, e.rng, e.sink)
	s := det.State

	path := []int{0}
	nodeIdx := 0

	for {
		legal := rules.LegalMoves(s, e.rulesCfg)
		if len(legal) == 0 {
			break
		}
		if len(t.untriedMoves(nodeIdx, legal)) > 0 {
			break
		}
		legalSet := make(map[string]bool, len(legal))
		for _, c := range legal {
			legalSet[c.ID()] = true
		}
		child := t.selectUCB1Child(nodeIdx, legalSet)
		if child < 0 {
			break
		}
		mover := rules.CurrentPlayer(s)
		move := *t.get(child).move
		applyMove(&s, mover, move)
		nodeIdx = child
		path = append(path, nodeIdx)
	}

	// Expand: recompute legal_moves(s) against the current determinized
	// sample and subtract moves the node already has children for —
	// spec.md §4.3 step 3. A move's legality is re-derived every
	// iteration rather than cached at node-construction time, since a
	// different determinization can make a previously-untried move
	// illegal, or a previously-exhausted node expandable again.
	legal := rules.LegalMoves(s, e.rulesCfg)
	untried := t.untriedMoves(nodeIdx, legal)
	if len(untried) > 0 {
		idx := e.rng.Intn(len(untried))
		move := untried[idx]
		mover := rules.CurrentPlayer(s)
		applyMove(&s, mover, move)
		nodeIdx = t.addChild(nodeIdx, move, mover)
		path = append(path, nodeIdx)
	}

	terminal := e.rollout(s)
	score := strategy.Evaluate(terminal, e.observer, e.stratCfg)
	for _, idx := range path {
		t.get(idx).update(score)
	}
}

// rollout plays uniform-random legal moves to a terminal state: no
// active trick and no legal moves remain for anyone.
func (e *Engine) rollout(s state.GameState) state.GameState {
	for i := 0; i < 10000; i++ {
		legal := rules.LegalMoves(s, e.rulesCfg)
		if len(legal) == 0 {
			if s.RoundState == nil || s.RoundState.TrickInProgress == nil {
				break
			}
			break
		}
		move := legal[e.rng.Intn(len(legal))]
		mover := rules.CurrentPlayer(s)
		applyMove(&s, mover, move)
	}
	return s
}

// applyMove plays a card and, if that completes the trick in progress,
// immediately resolves it.
func applyMove(s *state.GameState, mover state.PlayerID, move cards.Card) {
	if err := rules.PlayCard(s, mover, move.ID()); err != nil {
		return
	}
	if s.RoundState == nil || s.RoundState.TrickInProgress == nil {
		return
	}
	order := s.SeatOrder()
	if len(s.RoundState.TrickInProgress.Plays) == len(order) {
		_ = rules.CompleteTrick(s)
	}
}

// bestMove picks, among root children whose move is currently legal, the
// one maximizing the lexicographic key (RANK_VALUE, visits) per spec.md
// §4.3: the highest-ranked move wins, and visit count decides between
// moves of equal rank.
// Returns nil if the root has no qualifying child — i.e. zero iterations
// completed before the budget or cancellation predicate cut the search
// short. Per spec.md §5/§6, a search with no completed iterations
// returns no decision; it is the caller's job to retry or fall through
// to a default policy.
func bestMove(t *tree, rootLegal []cards.Card) *cards.Card {
	legalSet := make(map[string]bool, len(rootLegal))
	for _, c := range rootLegal {
		legalSet[c.ID()] = true
	}

	root := t.root()
	var best *cards.Card
	bestVisits := -1
	bestRank := -1

	for _, childIdx := range root.children {
		child := t.get(childIdx)
		if child.move == nil || !legalSet[child.move.ID()] {
			continue
		}
		rank := child.move.Rank.Value()
		switch {
		case rank > bestRank:
			bestRank, bestVisits, best = rank, child.visits, child.move
		case rank == bestRank && child.visits > bestVisits:
			bestVisits, best = child.visits, child.move
		}
	}
	return best
}
