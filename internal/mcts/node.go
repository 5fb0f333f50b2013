package mcts

import (
	"math"

	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/state"
)

// node is one entry in the search tree's arena. Children are indexed
// into the same arena rather than pointer-chased, so the whole tree is
// dropped in bulk when a decision returns (per the spec's arena
// re-architecture note). Untried moves are not cached on the node: they
// depend on which determinization is in play, so they are recomputed
// against the current sample every time they are needed (spec.md §4.3
// step 3) rather than frozen at construction time.
type node struct {
	parent          int // -1 for root
	move            *cards.Card
	children        []int
	wins            float64
	visits          int
	playerJustMoved state.PlayerID
}

// tree is the arena: a flat slice of nodes plus the root index (always
// 0). Allocating from a slice keeps clone/drop a single bulk operation.
type tree struct {
	nodes []node
}

func newTree() *tree {
	t := &tree{nodes: make([]node, 0, 64)}
	t.nodes = append(t.nodes, node{parent: -1})
	return t
}

func (t *tree) root() *node { return &t.nodes[0] }

func (t *tree) get(i int) *node { return &t.nodes[i] }

// untriedMoves returns the subset of legal (in the caller's current
// determinized state) moves that the node does not already have a child
// for. This is recomputed every call rather than cached, since a child
// created under one determinization may or may not be legal under
// another.
func (t *tree) untriedMoves(nodeIdx int, legal []cards.Card) []cards.Card {
	n := t.get(nodeIdx)
	existing := make(map[string]bool, len(n.children))
	for _, childIdx := range n.children {
		if move := t.get(childIdx).move; move != nil {
			existing[move.ID()] = true
		}
	}
	var untried []cards.Card
	for _, c := range legal {
		if !existing[c.ID()] {
			untried = append(untried, c)
		}
	}
	return untried
}

// addChild creates a new node for the given move and returns its index.
func (t *tree) addChild(parentIdx int, move cards.Card, playerJustMoved state.PlayerID) int {
	n := node{
		parent:          parentIdx,
		move:            &move,
		playerJustMoved: playerJustMoved,
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)

	parent := t.get(parentIdx)
	parent.children = append(parent.children, idx)

	return idx
}

// update applies one backpropagation step: a visit plus the terminal
// score, from the observer's perspective. The same scalar is applied to
// every ancestor — valid because the observer is the sole
// decision-maker whose policy the tree optimizes.
func (n *node) update(score float64) {
	n.visits++
	n.wins += score
}

// selectUCB1Child picks, among a node's children whose move is still
// legal in the current determinized state, the one maximizing UCB1
// with exploration constant c = sqrt(2). Returns -1 if none qualify.
func (t *tree) selectUCB1Child(parentIdx int, legal map[string]bool) int {
	parent := t.get(parentIdx)
	best := -1
	bestScore := math.Inf(-1)
	for _, childIdx := range parent.children {
		child := t.get(childIdx)
		if child.move == nil || !legal[child.move.ID()] {
			continue
		}
		if child.visits == 0 {
			return childIdx
		}
		exploitation := child.wins / float64(child.visits)
		exploration := math.Sqrt2 * math.Sqrt(math.Log(float64(parent.visits))/float64(child.visits))
		score := exploitation + exploration
		if score > bestScore {
			bestScore = score
			best = childIdx
		}
	}
	return best
}
