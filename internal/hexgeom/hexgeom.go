// Package hexgeom projects the solver's axial (i,j) board coordinates
// onto a Euclidean plane, for debug dumps where a board snapshot needs
// to be reasoned about geometrically (relative tile spacing, bounding
// extent) rather than as raw array indices.
//
// This plays the same supplementary role the skurzyp-kaggle-christmas-
// challenge-2025 example's pkg/tree/geometry.go plays for its tree
// shapes: a thin adapter from the solver's own coordinate system to
// github.com/paulmach/orb's Point/MultiPoint/Bound types, kept separate from the
// hot apply/revert path since nothing performance-sensitive needs it.
package hexgeom

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/hexbeam/hexbeam/internal/geometry"
)

// axialToCartesian converts an (i,j) board coordinate to a hexagon
// center on the plane, x = j - i/2 and y = i*sqrt(3)/2, so adjacent
// cells in every one of the board's six directions map to unit-length
// Euclidean steps.
func axialToCartesian(i, j int) orb.Point {
	x := float64(j) - float64(i)/2
	y := float64(i) * math.Sqrt(3) / 2
	return orb.Point{x, y}
}

// Project returns the Euclidean center of board cell (i,j).
func Project(geo geometry.Board, i, j int) orb.Point {
	return axialToCartesian(i, j)
}

// BoardPoints returns the Euclidean center of every valid cell in geo,
// in row-major scan order, as an orb.MultiPoint suitable for bounding-box
// or spacing inspection in a debug dump.
func BoardPoints(geo geometry.Board) orb.MultiPoint {
	pts := make(orb.MultiPoint, 0, geo.CellCount())
	for i := 0; i < geo.Size; i++ {
		for j := 0; j < geo.Size; j++ {
			if !geo.Valid(i, j) {
				continue
			}
			pts = append(pts, Project(geo, i, j))
		}
	}
	return pts
}

// Bound returns the axis-aligned bounding box enclosing every valid
// cell's projected center.
func Bound(geo geometry.Board) orb.Bound {
	return BoardPoints(geo).Bound()
}
