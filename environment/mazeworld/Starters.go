package mazeworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qaribhaider/learn-a-maze/environment"
	"github.com/qaribhaider/learn-a-maze/maze"
	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// SingleStart starts every episode at the same fixed cell
type SingleStart struct {
	state mat.Vector
}

// NewSingleStart returns a Starter that always starts at p. The
// position must be an open cell of m.
func NewSingleStart(p maze.Position, m *maze.Maze) (environment.Starter,
	error) {

	if m.IsWall(p.X, p.Y) {
		return nil, fmt.Errorf("newSingleStart: %v is not an open cell", p)
	}
	return &SingleStart{ts.FromPosition(p)}, nil
}

// Start returns the starting state vector
func (s *SingleStart) Start() mat.Vector {
	return s.state
}

// FloorStarter samples episode starts uniformly from the open cells of
// a maze
type FloorStarter struct {
	cells []maze.Position
	dist  distuv.Categorical
}

// NewFloorStarter returns a Starter sampling uniformly over the open
// cells of m
func NewFloorStarter(m *maze.Maze, seed uint64) (environment.Starter, error) {
	var cells []maze.Position
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.IsWall(x, y) {
				cells = append(cells, maze.Position{X: x, Y: y})
			}
		}
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("newFloorStarter: maze has no open cells")
	}

	weights := make([]float64, len(cells))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	source := rand.NewSource(seed)

	return &FloorStarter{cells, distuv.NewCategorical(weights, source)}, nil
}

// Start returns a starting state vector
func (f *FloorStarter) Start() mat.Vector {
	pos := f.cells[int(f.dist.Rand())]
	return ts.FromPosition(pos)
}
