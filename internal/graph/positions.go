package graph

import (
	"math"

	"github.com/glucoxe/netspread/internal/rng"
)

// Position-arena constants. The canvas area scales with the node count so
// density stays roughly constant; width and height are clamped to the
// configured bounds.
const (
	areaPerNode = 10000.0 // px^2 allocated per node
	aspectRatio = 1.5     // width / height

	minCanvasWidth  = 400.0
	maxCanvasWidth  = 4000.0
	minCanvasHeight = 300.0
	maxCanvasHeight = 3000.0

	minSeparation     = 12.0 // minimum distance between any two nodes
	placementAttempts = 50   // tries per node before giving up on separation
)

// canvasSize returns the bounded width/height for n nodes.
func canvasSize(n int) (float64, float64) {
	area := float64(n) * areaPerNode
	height := math.Sqrt(area / aspectRatio)
	width := aspectRatio * height

	width = math.Min(math.Max(width, minCanvasWidth), maxCanvasWidth)
	height = math.Min(math.Max(height, minCanvasHeight), maxCanvasHeight)
	return width, height
}

// generatePositions produces collision-free coordinates for n nodes by
// rejection sampling: each node gets up to placementAttempts random
// placements and rejects any candidate closer than minSeparation to an
// already-placed node. When the attempt budget runs out the last candidate
// is placed anyway; the returned count reports such unresolved collisions.
//
// A uniform grid with minSeparation-sized cells keeps the separation check
// O(1) per candidate, so large node counts stay cheap.
func generatePositions(n int, stream *rng.Stream) ([]point, int) {
	width, height := canvasSize(n)

	cols := int(width/minSeparation) + 1
	rows := int(height/minSeparation) + 1
	grid := make([][]int, cols*rows)

	cellOf := func(p point) (int, int) {
		cx := int(p.x / minSeparation)
		cy := int(p.y / minSeparation)
		if cx >= cols {
			cx = cols - 1
		}
		if cy >= rows {
			cy = rows - 1
		}
		return cx, cy
	}

	positions := make([]point, 0, n)

	tooClose := func(p point) bool {
		cx, cy := cellOf(p)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				x, y := cx+dx, cy+dy
				if x < 0 || x >= cols || y < 0 || y >= rows {
					continue
				}
				for _, id := range grid[y*cols+x] {
					if p.distTo(positions[id]) < minSeparation {
						return true
					}
				}
			}
		}
		return false
	}

	collisions := 0
	for i := 0; i < n; i++ {
		var candidate point
		placed := false
		for attempt := 0; attempt < placementAttempts; attempt++ {
			candidate = point{
				x: stream.Float64() * width,
				y: stream.Float64() * height,
			}
			if !tooClose(candidate) {
				placed = true
				break
			}
		}
		if !placed {
			collisions++
		}
		positions = append(positions, candidate)
		cx, cy := cellOf(candidate)
		grid[cy*cols+cx] = append(grid[cy*cols+cx], i)
	}

	return positions, collisions
}
