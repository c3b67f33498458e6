package hillshade

import "github.com/gogpu/hillshade/raster"

// Window is the 3×3 neighborhood of a cell.
//
// Window[r][c] holds x{r+1}{c+1}: row 0 is the row above the cell, column 0
// the column to its west, and Window[1][1] is the cell itself.
type Window [3][3]float64

// Center returns the value of the cell the window was sampled for.
func (w Window) Center() float64 { return w[1][1] }

// EdgePolicy decides which cells stand in for neighbors that fall outside
// the grid.
type EdgePolicy uint8

const (
	// EdgeCenter replaces every neighbor outside the grid with the center
	// value, so border cells see a locally flat neighborhood on their open
	// side.
	EdgeCenter EdgePolicy = iota

	// EdgeClamp clamps neighbor row and column indices into the grid
	// independently (up=i at the top row, down=i at the bottom row, and the
	// same for columns), repeating the edge row or column.
	EdgeClamp
)

// String returns the policy name.
func (p EdgePolicy) String() string {
	switch p {
	case EdgeCenter:
		return "center"
	case EdgeClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// ParseEdgePolicy parses the name returned by EdgePolicy.String.
func ParseEdgePolicy(s string) (EdgePolicy, bool) {
	switch s {
	case "center", "":
		return EdgeCenter, true
	case "clamp":
		return EdgeClamp, true
	default:
		return EdgeCenter, false
	}
}

// SampleWindow gathers the neighborhood of (row, col).
//
// ok is false when the cell itself is no-data; the window is then zero and
// must not be shaded. Otherwise no-data neighbors, and neighbors outside the
// grid under EdgeCenter, take the center value, so the window never holds
// a no-data sample.
func SampleWindow(b *raster.Block, row, col int, policy EdgePolicy) (w Window, ok bool) {
	center, noData := b.Sample(row, col)
	if noData {
		return w, false
	}

	height, width := b.Height(), b.Width()
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if policy == EdgeClamp {
			r = clampIndex(r, height)
		}
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if policy == EdgeClamp {
				c = clampIndex(c, width)
			}
			v, nd := b.Sample(r, c)
			if nd {
				v = center
			}
			w[dr+1][dc+1] = v
		}
	}
	return w, true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Derivatives returns the elevation change per unit ground distance of the
// window (Horn 1981).
//
// dx is positive when elevation rises to the east. dy is divided by the
// negated cell height, so it is positive when elevation rises to the north
// (towards lower row indices).
func Derivatives(w Window, cellSizeX, cellSizeY float64) (dx, dy float64) {
	x11, x12, x13 := w[0][0], w[0][1], w[0][2]
	x21, x23 := w[1][0], w[1][2]
	x31, x32, x33 := w[2][0], w[2][1], w[2][2]

	dx = ((x13 + 2*x23 + x33) - (x11 + 2*x21 + x31)) / (8 * cellSizeX)
	dy = ((x31 + 2*x32 + x33) - (x11 + 2*x12 + x13)) / (8 * -cellSizeY)
	return dx, dy
}
