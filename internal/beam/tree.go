// Package beam implements the implicit-tree beam search: a forest of
// move nodes in a preallocated pool with a free-list, enumerated by an
// Euler-tour depth-first walk that mutates a single puzzle.State in
// place (apply going down, revert coming back up) instead of
// materializing a board per candidate.
//
// This is the same shape as the teacher's negamax search
// (internal/engine/search.go): one Position mutated by MakeMove/
// UnmakeMove pairs along a single traversal, with a TranspositionTable
// (internal/engine/transposition.go) doing hash-keyed bookkeeping
// alongside it. Here the traversal additionally needs explicit tree
// nodes (a negamax call stack is implicit; a resumable multi-iteration
// beam frontier is not), so the pool in this file plays the role the
// teacher's recursion stack plays there.
package beam

import (
	"errors"
	"fmt"

	"github.com/hexbeam/hexbeam/internal/puzzle"
)

// sentinel marks an absent parent/child/sibling link, matching the
// spec's "reserved out-of-range value" guidance for index-handle pools.
const sentinel = ^uint32(0)

// ErrPoolExhausted is returned when growing the node pool would exceed
// MaxNodes. The caller must raise MaxNodes or shrink MaxWidth.
var ErrPoolExhausted = errors.New("hexbeam: node pool exhausted; raise MaxNodes or lower MaxWidth")

// ErrNoCandidates is returned if enumeration has produced no candidates
// at all, which never happens on a reachable state: every leaf has at
// least one unfiltered move.
var ErrNoCandidates = errors.New("hexbeam: enumeration produced no candidates")

type node struct {
	op     puzzle.Move
	parent uint32
	child  uint32
	prev   uint32
	next   uint32
	score  int64
}

// Candidate is one proposed expansion of a current leaf: the move, the
// leaf it extends, its resulting score, the blank's resulting cell (for
// the diversity filter), and its resulting hash (for dedupe).
type Candidate struct {
	Op      puzzle.Move
	Parent  uint32
	Score   int64
	EmptyI  int
	EmptyJ  int
	Hash    uint64
}

// Tree is the beam's implicit forest plus the single mutable State it
// is enumerated against.
type Tree struct {
	state *puzzle.State

	nodes []node
	free  []uint32

	leaf     []uint32
	nextLeaf []uint32

	curNode uint32

	maxNodes int
}

// NewTree builds a one-node tree (the root, carrying the state's
// initial score) ready to enumerate from state. maxWidth sizes the
// initial leaf-slice capacity; maxNodes bounds how large the pool may
// grow before ErrPoolExhausted.
func NewTree(state *puzzle.State, maxWidth, maxNodes int) *Tree {
	rootScore := int64(state.Score())

	t := &Tree{
		state:    state,
		nodes:    make([]node, 1, maxNodes),
		leaf:     make([]uint32, 0, maxWidth),
		nextLeaf: make([]uint32, 0, maxWidth),
		curNode:  0,
		maxNodes: maxNodes,
	}
	t.nodes[0] = node{
		op:     puzzle.RootMove,
		parent: sentinel,
		child:  sentinel,
		prev:   sentinel,
		next:   sentinel,
		score:  rootScore,
	}
	t.leaf = append(t.leaf, 0)
	return t
}

// addNode attaches cand as the first child of cand.Parent, reusing a
// free slot if one exists (growing the pool otherwise), and pushes the
// new node onto nextLeaf.
func (t *Tree) addNode(cand Candidate) (uint32, error) {
	next := t.nodes[cand.Parent].child

	n := node{
		op:     cand.Op,
		parent: cand.Parent,
		child:  sentinel,
		prev:   sentinel,
		next:   next,
		score:  cand.Score,
	}

	var idx uint32
	if len(t.free) > 0 {
		idx = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[idx] = n
	} else {
		idx = uint32(len(t.nodes))
		if int(idx) >= t.maxNodes {
			return 0, ErrPoolExhausted
		}
		if idx == sentinel {
			return 0, ErrPoolExhausted
		}
		t.nodes = append(t.nodes, n)
	}

	if next != sentinel {
		t.nodes[next].prev = idx
	}
	t.nodes[cand.Parent].child = idx

	t.nextLeaf = append(t.nextLeaf, idx)
	return idx, nil
}

// delNode unlinks and frees idx; if its parent becomes childless as a
// result, it recurses on the parent. The root (parent == sentinel) must
// never be deleted.
func (t *Tree) delNode(idx uint32) {
	for {
		t.free = append(t.free, idx)
		n := t.nodes[idx]
		if n.parent == sentinel {
			panic("hexbeam: attempted to delete the beam tree root")
		}

		if n.prev == sentinel && n.next == sentinel {
			idx = n.parent
			continue
		}

		if n.prev != sentinel {
			t.nodes[n.prev].next = n.next
		} else {
			t.nodes[n.parent].child = n.next
		}
		if n.next != sentinel {
			t.nodes[n.next].prev = n.prev
		}
		return
	}
}

// Update installs a new leaf set: each candidate becomes a child node
// (pushed onto nextLeaf), then any current leaf that ended up with no
// children is pruned, then leaf and nextLeaf swap.
func (t *Tree) Update(cands []Candidate) error {
	t.nextLeaf = t.nextLeaf[:0]
	for _, c := range cands {
		if _, err := t.addNode(c); err != nil {
			return err
		}
	}

	for _, n := range t.leaf {
		if t.nodes[n].child == sentinel {
			t.delNode(n)
		}
	}

	t.leaf, t.nextLeaf = t.nextLeaf, t.leaf
	return nil
}

// Restore walks parent pointers from idx to the root, returning the
// move sequence in the order it was applied.
func (t *Tree) Restore(idx uint32) []puzzle.Move {
	var rev []puzzle.Move
	for {
		n := t.nodes[idx]
		if n.parent == sentinel {
			break
		}
		rev = append(rev, n.op)
		idx = n.parent
	}
	out := make([]puzzle.Move, len(rev))
	for i, m := range rev {
		out[len(rev)-1-i] = m
	}
	return out
}

// EnumCands performs the Euler-tour DFS over the current leaf set,
// appending every leaf's legal expansions to cands. It first descends
// through any straight-line run below the current node; that descent
// moves the tree's current node down and leaves its moves applied to
// State across calls. State is then mutated in place during the walk
// (apply descending, revert ascending) and, once EnumCands returns, is
// back at the position of that (possibly advanced) current node.
func (t *Tree) EnumCands(cands *[]Candidate) error {
	if len(t.leaf) == 0 {
		return fmt.Errorf("hexbeam: no leaves to enumerate from")
	}

	// Descend straight through any long linear run (next == sentinel and
	// child != sentinel means the current node is the tree's only path
	// forward) without the backtrack bookkeeping below.
	for {
		n := t.nodes[t.curNode]
		if n.next != sentinel || n.child == sentinel {
			break
		}
		t.curNode = n.child
		t.state.Apply(t.nodes[t.curNode].op)
	}

	root := t.curNode
	for {
		child := t.nodes[t.curNode].child
		if child == sentinel {
			if err := t.appendCands(t.curNode, cands); err != nil {
				return err
			}
			for {
				if t.curNode == root {
					return nil
				}
				n := t.nodes[t.curNode]
				t.state.Revert(n.op)
				if n.next != sentinel {
					t.curNode = n.next
					t.state.Apply(t.nodes[t.curNode].op)
					break
				}
				t.curNode = n.parent
			}
		} else {
			t.curNode = child
			t.state.Apply(t.nodes[t.curNode].op)
		}
	}
}

// appendCands enumerates the twelve moves at leaf idx, excluding any
// that would repeat the prior move's chirality, and emits a Candidate
// for each survivor with its score computed by an incremental
// apply/revert over the blank's 7-cell neighborhood.
func (t *Tree) appendCands(idx uint32, cands *[]Candidate) error {
	n := t.nodes[idx]
	if n.child != sentinel {
		return fmt.Errorf("hexbeam: appendCands called on a non-leaf node")
	}

	wasCW := puzzle.IsClockwise(n.op)
	wasACW := puzzle.IsAnticlockwise(n.op)

	for _, op := range puzzle.AllMoves {
		if wasCW && puzzle.IsClockwise(op) {
			continue
		}
		if wasACW && puzzle.IsAnticlockwise(op) {
			continue
		}

		surrounding := t.state.Surrounding(0)
		var diff int64
		for _, tile := range surrounding {
			diff -= int64(t.state.WeightedDistance(int(tile)))
		}
		diff -= int64(t.state.MismatchCost())

		t.state.Apply(op)
		nextHash := t.state.Hash
		for _, tile := range surrounding {
			diff += int64(t.state.WeightedDistance(int(tile)))
		}
		diff += int64(t.state.MismatchCost())
		zero := t.state.ZeroPosition
		t.state.Revert(op)

		*cands = append(*cands, Candidate{
			Op:     op,
			Parent: idx,
			Score:  n.score + diff,
			EmptyI: zero.I,
			EmptyJ: zero.J,
			Hash:   nextHash,
		})
	}

	if len(*cands) == 0 {
		return ErrNoCandidates
	}
	return nil
}
