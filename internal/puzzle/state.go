// Package puzzle implements the mutable board State: tile positions,
// target positions, mismatch bookkeeping, and the rolling hash, together
// with the apply/revert pair that are exact inverses of one another.
//
// This mirrors the teacher's board.Position (internal/board/position.go)
// and its MakeMove/UnmakeMove pair (internal/board/movegen.go): a single
// mutable struct carrying cached derived state (there: occupancy
// bitboards and a Zobrist hash; here: per-axis mismatch counts and a
// polynomial hash) that make/unmake keep incrementally consistent
// instead of recomputing from scratch on every move.
package puzzle

import (
	"fmt"

	"github.com/hexbeam/hexbeam/internal/geometry"
	"github.com/hexbeam/hexbeam/internal/phash"
)

// Pos is a board coordinate.
type Pos struct{ I, J int }

// State is the mutable puzzle board. The zero value is not usable; build
// one with NewState.
type State struct {
	geo geometry.Board

	board           []int32 // flat Size*Size, -1 for invalid cells
	TilePositions   []Pos   // tile id -> current position
	TargetPositions []Pos   // tile id -> target position
	ZeroPosition    Pos     // TilePositions[0]

	mismatchI []int // per row
	mismatchJ []int // per column
	mismatchK []int // per anti-diagonal, index n-1+j-i

	bases []uint64
	Hash  uint64

	opeCount int
}

// NewState builds the initial State from a parsed Input. Tile 0 (the
// blank) targets the hexagon's center; tiles 1..K-1 target the
// remaining valid cells in row-major scan order.
func NewState(input *Input) (*State, error) {
	geo := geometry.New(input.N)
	size := geo.Size
	k := geo.CellCount()

	tilePositions := make([]Pos, k)
	targetPositions := make([]Pos, k)
	board := make([]int32, size*size)

	cx, cy := geo.Center()
	num := 0
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			idx := geo.FlatIndex(i, j)
			if !geo.Valid(i, j) {
				board[idx] = -1
				continue
			}
			t := input.Board[i][j]
			if t < 0 || int(t) >= k {
				return nil, fmt.Errorf("hexbeam: tile id %d at (%d,%d) out of range [0,%d)", t, i, j, k)
			}
			board[idx] = t
			tilePositions[t] = Pos{i, j}
			if i == cx && j == cy {
				targetPositions[0] = Pos{i, j}
			} else {
				num++
				targetPositions[num] = Pos{i, j}
			}
		}
	}

	s := &State{
		geo:             geo,
		board:           board,
		TilePositions:   tilePositions,
		TargetPositions: targetPositions,
		ZeroPosition:    tilePositions[0],
		mismatchI:       make([]int, size),
		mismatchJ:       make([]int, size),
		mismatchK:       make([]int, size),
		bases:           phash.Bases(k + 1),
	}

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if !geo.Valid(i, j) {
				continue
			}
			num := s.board[geo.FlatIndex(i, j)]
			if s.TargetPositions[num] != s.TilePositions[num] {
				s.mismatchI[i]++
				s.mismatchJ[j]++
				s.mismatchK[geo.N-1+j-i]++
			}
		}
	}

	vec := make([]uint64, k+1)
	for t, p := range tilePositions {
		vec[t] = uint64(geo.FlatIndex(p.I, p.J))
	}
	vec[k] = 0 // no move applied yet
	s.Hash = phash.Hash(vec)

	return s, nil
}

// Geometry returns the board's geometry.
func (s *State) Geometry() geometry.Board { return s.geo }

// TileAt returns the tile id at (i,j), or -1 if the cell is invalid.
func (s *State) TileAt(i, j int) int32 {
	return s.board[s.geo.FlatIndex(i, j)]
}

// OpeCount returns the number of moves applied minus reverted since
// construction.
func (s *State) OpeCount() int { return s.opeCount }

// rotateTiles performs board[a],board[b],board[c] <- board[c],board[a],board[b],
// keeping mismatch bookkeeping and the position-vector hash (but not the
// trailing chirality marker) exactly consistent.
func (s *State) rotateTiles(a, b, c Pos) {
	geo := s.geo
	fa, fb, fc := geo.FlatIndex(a.I, a.J), geo.FlatIndex(b.I, b.J), geo.FlatIndex(c.I, c.J)

	h := phash.Change(s.Hash, s.bases, int(s.board[fa]), uint64(fa), 0)
	h = phash.Change(h, s.bases, int(s.board[fb]), uint64(fb), 0)
	h = phash.Change(h, s.bases, int(s.board[fc]), uint64(fc), 0)

	for _, p := range [3]Pos{a, b, c} {
		num := s.board[geo.FlatIndex(p.I, p.J)]
		if s.TargetPositions[num] != s.TilePositions[num] {
			s.mismatchI[p.I]--
			s.mismatchJ[p.J]--
			s.mismatchK[geo.N-1+p.J-p.I]--
		}
	}

	s.board[fa], s.board[fb], s.board[fc] = s.board[fc], s.board[fa], s.board[fb]

	s.TilePositions[s.board[fb]] = b
	s.TilePositions[s.board[fc]] = c
	s.TilePositions[s.board[fa]] = a

	for _, p := range [3]Pos{a, b, c} {
		num := s.board[geo.FlatIndex(p.I, p.J)]
		if s.TargetPositions[num] != s.TilePositions[num] {
			s.mismatchI[p.I]++
			s.mismatchJ[p.J]++
			s.mismatchK[geo.N-1+p.J-p.I]++
		}
	}

	h = phash.Change(h, s.bases, int(s.board[fa]), 0, uint64(fa))
	h = phash.Change(h, s.bases, int(s.board[fb]), 0, uint64(fb))
	h = phash.Change(h, s.bases, int(s.board[fc]), 0, uint64(fc))
	s.Hash = h
}

// Apply performs move m: rotates the triangle of cells adjacent to the
// blank and moves the blank to its new cell. The trailing hash marker
// records m's chirality; the update assumes (as the beam tree's
// chirality-streak filter guarantees for any move sequence it actually
// generates) that consecutive applied moves alternate chirality.
func (s *State) Apply(m Move) {
	a := s.ZeroPosition
	offs := moveOffsets(m)
	b := s.wrapFrom(a, offs[0])
	c := s.wrapFrom(a, offs[1])
	s.rotateTiles(a, b, c)

	cw := IsClockwise(m)
	last := len(s.bases) - 1
	if s.opeCount != 0 {
		if cw {
			s.Hash = phash.Change(s.Hash, s.bases, last, 2, 0)
		} else {
			s.Hash = phash.Change(s.Hash, s.bases, last, 1, 0)
		}
	}
	if cw {
		s.Hash = phash.Change(s.Hash, s.bases, last, 0, 1)
	} else {
		s.Hash = phash.Change(s.Hash, s.bases, last, 0, 2)
	}
	s.opeCount++
	s.ZeroPosition = s.TilePositions[0]
}

// Revert undoes move m, restoring the exact State (board, tile
// positions, zero position, mismatch tables, hash, ope count) from
// before Apply(m) was called.
func (s *State) Revert(m Move) {
	a := s.ZeroPosition
	offs := moveOffsets(Inverse(m))
	b := s.wrapFrom(a, offs[0])
	c := s.wrapFrom(a, offs[1])
	s.rotateTiles(a, b, c)

	cw := IsClockwise(m)
	last := len(s.bases) - 1
	s.opeCount--
	if cw {
		s.Hash = phash.Change(s.Hash, s.bases, last, 1, 0)
	} else {
		s.Hash = phash.Change(s.Hash, s.bases, last, 2, 0)
	}
	if s.opeCount != 0 {
		if cw {
			s.Hash = phash.Change(s.Hash, s.bases, last, 0, 2)
		} else {
			s.Hash = phash.Change(s.Hash, s.bases, last, 0, 1)
		}
	}
	s.ZeroPosition = s.TilePositions[0]
}

func (s *State) wrapFrom(a Pos, off offset) Pos {
	i, j := s.geo.Wrap(a.I+off.di, a.J+off.dj)
	return Pos{i, j}
}

// MismatchCost is the bounding-box width over the three hexagonal axes
// that have any mismatched tile.
func (s *State) MismatchCost() int {
	lo := func(a []int) (int, int) {
		left, right := -1, 0
		for idx, v := range a {
			if v > 0 {
				if left == -1 {
					left = idx
				}
				right = idx
			}
		}
		if left == -1 {
			left = 0
		}
		return left, right
	}
	li, ri := lo(s.mismatchI)
	lj, rj := lo(s.mismatchJ)
	lk, rk := lo(s.mismatchK)
	return (ri - li) + (rj - lj) + (rk - lk)
}

// Surrounding returns the tile ids currently occupying the seven cells
// at geometry.NeighborOffsets around tile's position (wrapped).
func (s *State) Surrounding(tile int) [7]int32 {
	p := s.TilePositions[tile]
	var out [7]int32
	for idx, off := range geometry.NeighborOffsets {
		wi, wj := s.geo.Wrap(p.I+off[0], p.J+off[1])
		out[idx] = s.board[s.geo.FlatIndex(wi, wj)]
	}
	return out
}

// RawDistance is the minimum hex-lattice distance, over the seven wrap
// offsets, from tile's current position to its target.
func (s *State) RawDistance(tile int) int {
	now := s.TilePositions[tile]
	target := s.TargetPositions[tile]
	min := -1
	n := s.geo.N
	offsets := [7][2]int{
		{0, 0},
		{-n + 1, n},
		{n, 2*n - 1},
		{2*n - 1, n - 1},
		{n - 1, -n},
		{-n, -2*n + 1},
		{-2*n + 1, -n + 1},
	}
	for _, off := range offsets {
		d := geometry.HexDistance(now.I+off[0], now.J+off[1], target.I, target.J)
		if min == -1 || d < min {
			min = d
		}
	}
	return min
}
