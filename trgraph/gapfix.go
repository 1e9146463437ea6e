package trgraph

import (
	"math"

	"github.com/paulmach/orb"
)

// gapGridCellMeters sizes the ad-hoc 1-meter-neighborhood grid used only by
// Cleanup's gap-fixing step; it is local to trgraph and does not use the
// spatialindex package, whose grids are keyed on web-Mercator cells rather
// than on degrees.
const gapGridCellMeters = 1.0

// gapGrid is a minimal uniform grid over node points, used once per
// Cleanup run to find degree-1 leaves within a 1 m neighborhood of another
// degree-1 leaf.
type gapGrid struct {
	cellDeg float64
	cells   map[[2]int][]string
}

func newGapGrid(g *Graph) *gapGrid {
	// Roughly 1 meter in degrees of longitude/latitude at mid-latitudes;
	// exact enough for a neighborhood scan that is re-verified with a real
	// distance check before acting.
	const metersPerDegree = 111_320.0
	grid := &gapGrid{
		cellDeg: gapGridCellMeters / metersPerDegree,
		cells:   make(map[[2]int][]string),
	}
	for _, n := range g.Nodes() {
		grid.insert(n.ID, n.Point)
	}

	return grid
}

func (gg *gapGrid) cellOf(p orb.Point) [2]int {
	return [2]int{int(math.Floor(p[0] / gg.cellDeg)), int(math.Floor(p[1] / gg.cellDeg))}
}

func (gg *gapGrid) insert(id string, p orb.Point) {
	c := gg.cellOf(p)
	gg.cells[c] = append(gg.cells[c], id)
}

// near returns every node id placed within the 3x3 cell neighborhood of p,
// excluding self.
func (gg *gapGrid) near(self string, p orb.Point) []string {
	c := gg.cellOf(p)
	var out []string
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			key := [2]int{c[0] + dx, c[1] + dy}
			for _, id := range gg.cells[key] {
				if id != self {
					out = append(out, id)
				}
			}
		}
	}

	return out
}
