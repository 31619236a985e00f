package maze

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// DefaultSeed is the seed used by generators constructed with New.
// Every call to Generate re-seeds the generator's private random
// source with this value, so repeated calls on one instance, or on
// fresh instances with the same dimensions, produce bit-identical
// grids. Drivers rely on this to present the same maze across runs and
// restored sessions.
const DefaultSeed uint64 = 12345

// Generator produces deterministic grid mazes by randomized
// depth-first carving. A Generator owns its random source; it is never
// shared and never global.
type Generator struct {
	width, height int
	seed          uint64
}

// New returns a Generator for width × height mazes using DefaultSeed
func New(width, height int) (*Generator, error) {
	return NewWithSeed(width, height, DefaultSeed)
}

// NewWithSeed returns a Generator whose carving is driven by the given
// seed. Width and height must both be at least 1.
func NewWithSeed(width, height int, seed uint64) (*Generator, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("newWithSeed: dimensions must be positive, "+
			"got %d × %d", width, height)
	}
	return &Generator{width, height, seed}, nil
}

// Generate carves and returns a new Maze. The carving walks from (1,1)
// in jumps of two cells, staying strictly inside the outer border, and
// clears the wall between each visited pair. Afterwards the 2×2 blocks
// at the start corner (0,0) and the goal corner (width-1,height-1) are
// cleared unconditionally so that both anchors are always reachable,
// even when carving never touched the true corners.
//
// Generate never fails. For grids too small to carve (width or height
// below 3) the corner pass alone determines the layout.
func (g *Generator) Generate() *Maze {
	rng := rand.New(rand.NewSource(g.seed))

	cells := make([][]Cell, g.height)
	for y := range cells {
		cells[y] = make([]Cell, g.width)
		for x := range cells[y] {
			cells[y][x] = Cell{X: x, Y: y, Wall: true}
		}
	}
	m := &Maze{g.width, g.height, cells}

	start := Position{1, 1}
	if g.interior(start) {
		visited := map[Position]bool{start: true}
		cells[start.Y][start.X].Wall = false
		stack := []Position{start}

		for len(stack) > 0 {
			current := stack[len(stack)-1]

			candidates := g.UnvisitedNeighbors(current, visited)
			if len(candidates) == 0 {
				stack = stack[:len(stack)-1]
				continue
			}

			next := candidates[int(rng.Float64()*float64(len(candidates)))]
			mid := Position{(current.X + next.X) / 2, (current.Y + next.Y) / 2}
			cells[mid.Y][mid.X].Wall = false
			cells[next.Y][next.X].Wall = false

			visited[next] = true
			stack = append(stack, next)
		}
	}

	g.clearCorner(m, 0, 0)
	g.clearCorner(m, g.width-2, g.height-2)

	return m
}

// UnvisitedNeighbors returns the carving candidates two cells away from
// pos in each of the four orthogonal directions, in the fixed order
// {Up, Right, Down, Left}, filtered to cells strictly inside the outer
// border and not yet visited. External maze-editing logic must respect
// the same boundary rule. The order is stable so that the seeded
// random source consumes candidates deterministically.
func (g *Generator) UnvisitedNeighbors(pos Position,
	visited map[Position]bool) []Position {

	var neighbors []Position
	for d := Up; d <= Left; d++ {
		dx, dy := d.Offsets()
		candidate := Position{pos.X + 2*dx, pos.Y + 2*dy}

		if !g.interior(candidate) || visited[candidate] {
			continue
		}
		neighbors = append(neighbors, candidate)
	}
	return neighbors
}

// interior reports whether pos lies strictly inside the outer border
func (g *Generator) interior(pos Position) bool {
	return pos.X > 0 && pos.X < g.width-1 && pos.Y > 0 && pos.Y < g.height-1
}

// clearCorner clears the 2×2 block whose top-left cell is (x, y),
// clipped to the grid for degenerate sizes
func (g *Generator) clearCorner(m *Maze, x, y int) {
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if m.InBounds(x+dx, y+dy) {
				m.cells[y+dy][x+dx].Wall = false
			}
		}
	}
}
