package puzzle

import "testing"

func TestInverseIsInvolution(t *testing.T) {
	for _, m := range AllMoves {
		inv := Inverse(m)
		if back := Inverse(inv); back != m {
			t.Errorf("Inverse(Inverse(%c)) = %c, want %c", m, back, m)
		}
	}
}

func TestInverseFlipsChirality(t *testing.T) {
	for _, m := range AllMoves {
		inv := Inverse(m)
		if IsClockwise(m) == IsClockwise(inv) {
			t.Errorf("Inverse(%c) = %c did not flip chirality", m, inv)
		}
	}
}

func TestEveryMoveExactlyOneChirality(t *testing.T) {
	for _, m := range AllMoves {
		cw, acw := IsClockwise(m), IsAnticlockwise(m)
		if cw == acw {
			t.Errorf("move %c: IsClockwise=%v IsAnticlockwise=%v, want exactly one true", m, cw, acw)
		}
	}
}

func TestMoveOffsetTableCoversAllMoves(t *testing.T) {
	for _, m := range AllMoves {
		offs := moveOffsets(m)
		if offs == ([2]offset{}) {
			t.Errorf("move %c has no offset table entry", m)
		}
	}
}
