package beam

import (
	"context"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"

	"github.com/hexbeam/hexbeam/internal/puzzle"
)

// DefaultMaxWidth is the beam width used when the caller does not
// override it: at most this many leaves survive each iteration.
const DefaultMaxWidth = 3000

// DefaultMaxNodes bounds the node pool. A width-3000 beam can hold at
// most 3000 leaves alive at once, but dead branches accumulate between
// prunes, so the pool is sized generously above the beam width.
const DefaultMaxNodes = DefaultMaxWidth * 50

// diversityCap is the maximum number of surviving candidates that may
// share a single resulting blank cell, so the beam doesn't collapse
// onto a handful of cells it can cheaply oscillate the blank between.
const diversityCap = 10

// Driver runs the beam search to completion (or until ctx is
// cancelled), reporting progress through log.
type Driver struct {
	MaxWidth int
	MaxNodes int
	Log      logr.Logger
}

// Solve runs the beam search against state until a zero-score leaf is
// found, ctx is cancelled, or the pool is exhausted. On success it
// returns the winning move sequence as a string.
func (d *Driver) Solve(ctx context.Context, state *puzzle.State) (string, error) {
	maxWidth := d.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	maxNodes := d.MaxNodes
	if maxNodes <= 0 {
		maxNodes = maxWidth * 50
	}

	tree := NewTree(state, maxWidth, maxNodes)

	if state.Score() == 0 {
		return "", nil
	}

	var cands []Candidate
	iter := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		cands = cands[:0]
		if err := tree.EnumCands(&cands); err != nil {
			return "", fmt.Errorf("hexbeam: iteration %d: %w", iter, err)
		}

		sort.Slice(cands, func(i, j int) bool { return cands[i].Score < cands[j].Score })

		if cands[0].Score == 0 {
			idx, err := tree.addNode(cands[0])
			if err != nil {
				return "", err
			}
			moves := tree.Restore(idx)
			return movesToString(moves), nil
		}

		capped := capPerCell(cands)
		kept := dedupeAndTruncate(capped, maxWidth)

		if err := tree.Update(kept); err != nil {
			return "", fmt.Errorf("hexbeam: iteration %d: %w", iter, err)
		}

		iter++
		if iter%10 == 0 {
			d.Log.Info("beam search progress",
				"iteration", iter,
				"bestScore", cands[0].Score,
				"leaves", humanize.Comma(int64(len(tree.leaf))),
				"candidates", humanize.Comma(int64(len(cands))),
			)
		}
	}
}

// capPerCell keeps, in the order given (expected: score-ascending), at
// most diversityCap candidates resolving to each distinct blank cell.
// This runs before hash dedup, so two candidates that happen to reach
// the same resulting state both still count against their cell's cap —
// matching the reference search, which filters diversity before dedup.
func capPerCell(cands []Candidate) []Candidate {
	perCell := make(map[[2]int]int)
	kept := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		cell := [2]int{c.EmptyI, c.EmptyJ}
		if perCell[cell] >= diversityCap {
			continue
		}
		perCell[cell]++
		kept = append(kept, c)
	}
	return kept
}

// dedupeAndTruncate drops candidates whose resulting hash repeats one
// already kept, then returns at most maxWidth survivors.
func dedupeAndTruncate(cands []Candidate, maxWidth int) []Candidate {
	seenHash := make(map[uint64]bool, len(cands))
	kept := make([]Candidate, 0, maxWidth)
	for _, c := range cands {
		if len(kept) >= maxWidth {
			break
		}
		if seenHash[c.Hash] {
			continue
		}
		seenHash[c.Hash] = true
		kept = append(kept, c)
	}
	return kept
}

func movesToString(moves []puzzle.Move) string {
	b := make([]byte, len(moves))
	for i, m := range moves {
		b[i] = byte(m)
	}
	return string(b)
}
