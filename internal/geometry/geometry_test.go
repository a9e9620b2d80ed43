package geometry

import "testing"

func TestValidCellCount(t *testing.T) {
	for n := 2; n <= 6; n++ {
		b := New(n)
		count := 0
		for i := 0; i < b.Size; i++ {
			for j := 0; j < b.Size; j++ {
				if b.Valid(i, j) {
					count++
				}
			}
		}
		if count != b.CellCount() {
			t.Errorf("n=%d: counted %d valid cells, CellCount() = %d", n, count, b.CellCount())
		}
	}
}

func TestCenterIsValid(t *testing.T) {
	for n := 2; n <= 6; n++ {
		b := New(n)
		ci, cj := b.Center()
		if !b.Valid(ci, cj) {
			t.Errorf("n=%d: center (%d,%d) not valid", n, ci, cj)
		}
	}
}

func TestWrapIdentityOnValidCells(t *testing.T) {
	for n := 2; n <= 5; n++ {
		b := New(n)
		for i := 0; i < b.Size; i++ {
			for j := 0; j < b.Size; j++ {
				if !b.Valid(i, j) {
					continue
				}
				wi, wj := b.Wrap(i, j)
				if wi != i || wj != j {
					t.Errorf("n=%d: Wrap(%d,%d) = (%d,%d), want identity on a valid cell", n, i, j, wi, wj)
				}
			}
		}
	}
}

// TestWrapAnnulusMapsBack checks that every cell adjacent to the hexagon's
// boundary but just outside it (at most one step beyond NeighborOffsets
// from a valid cell) wraps to some valid cell.
func TestWrapAnnulusMapsBack(t *testing.T) {
	for n := 2; n <= 5; n++ {
		b := New(n)
		for i := 0; i < b.Size; i++ {
			for j := 0; j < b.Size; j++ {
				if !b.Valid(i, j) {
					continue
				}
				for _, off := range NeighborOffsets {
					wi, wj := b.Wrap(i+off[0], j+off[1])
					if !b.Valid(wi, wj) {
						t.Errorf("n=%d: Wrap(%d,%d) = (%d,%d) not valid", n, i+off[0], j+off[1], wi, wj)
					}
				}
			}
		}
	}
}

func TestHexDistanceSymmetric(t *testing.T) {
	b := New(4)
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			if !b.Valid(i, j) {
				continue
			}
			for i2 := 0; i2 < b.Size; i2++ {
				for j2 := 0; j2 < b.Size; j2++ {
					if !b.Valid(i2, j2) {
						continue
					}
					d1 := HexDistance(i, j, i2, j2)
					d2 := HexDistance(i2, j2, i, j)
					if d1 != d2 {
						t.Fatalf("HexDistance(%d,%d,%d,%d)=%d != reverse %d", i, j, i2, j2, d1, d2)
					}
				}
			}
		}
	}
}

func TestHexDistanceZeroAtSelf(t *testing.T) {
	b := New(3)
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			if !b.Valid(i, j) {
				continue
			}
			if d := HexDistance(i, j, i, j); d != 0 {
				t.Errorf("HexDistance(%d,%d,%d,%d) = %d, want 0", i, j, i, j, d)
			}
		}
	}
}

func TestFlatIndexInjective(t *testing.T) {
	b := New(4)
	seen := make(map[int]bool)
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			idx := b.FlatIndex(i, j)
			if seen[idx] {
				t.Fatalf("FlatIndex(%d,%d) = %d collides with an earlier cell", i, j, idx)
			}
			seen[idx] = true
		}
	}
}
