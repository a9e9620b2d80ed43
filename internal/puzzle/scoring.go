package puzzle

import "math"

// WeightedDistance is round(RawDistance(tile)^1.7); the blank (tile 0)
// always scores 0. Exponentiating the raw hex distance biases the beam
// toward finishing far-away tiles first.
func (s *State) WeightedDistance(tile int) int {
	if tile == 0 {
		return 0
	}
	d := float64(s.RawDistance(tile))
	return int(math.Round(math.Pow(d, 1.7)))
}

// Score is the sum of every tile's weighted distance plus the mismatch
// bounding-box cost. A state with Score() == 0 is solved.
func (s *State) Score() int {
	total := 0
	for t := range s.TilePositions {
		total += s.WeightedDistance(t)
	}
	return total + s.MismatchCost()
}
