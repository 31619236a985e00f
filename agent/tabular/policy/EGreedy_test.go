package policy

import (
	"testing"

	"github.com/qaribhaider/learn-a-maze/maze"
	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// stubValues returns a fixed row for every position
type stubValues struct {
	row []float64
}

func (s stubValues) QValues(maze.Position) []float64 {
	return s.row
}

func selectDirection(p *EGreedy, step ts.TimeStep) maze.Direction {
	return maze.Direction(int(p.SelectAction(step).AtVec(0)))
}

func TestEGreedyZeroEpsilonPicksUniqueArgmax(t *testing.T) {
	p := NewEGreedy(stubValues{[]float64{0, 0, 1, 0}}, 0, 14)
	step := ts.New(ts.First, 0, 1, ts.FromPosition(maze.Position{}), 0)

	for i := 0; i < 50; i++ {
		if d := selectDirection(p, step); d != maze.Down {
			t.Fatalf("call %d: expected %v, got %v", i, maze.Down, d)
		}
	}
}

func TestEGreedySharesTiesUniformly(t *testing.T) {
	// Two tied maxima: both must appear, the dominated actions never
	p := NewGreedy(stubValues{[]float64{2, -1, 2, -3}}, 14)
	step := ts.New(ts.First, 0, 1, ts.FromPosition(maze.Position{}), 0)

	counts := make(map[maze.Direction]int)
	for i := 0; i < 400; i++ {
		counts[selectDirection(p, step)]++
	}

	if counts[maze.Up] == 0 || counts[maze.Down] == 0 {
		t.Errorf("expected both tied actions to be selected, got %v", counts)
	}
	if counts[maze.Right] != 0 || counts[maze.Left] != 0 {
		t.Errorf("dominated actions were selected: %v", counts)
	}
}

func TestEGreedyFullExplorationCoversActions(t *testing.T) {
	p := NewEGreedy(stubValues{[]float64{100, 0, 0, 0}}, 1.0, 14)
	step := ts.New(ts.First, 0, 1, ts.FromPosition(maze.Position{}), 0)

	seen := make(map[maze.Direction]bool)
	for i := 0; i < 400; i++ {
		seen[selectDirection(p, step)] = true
	}
	if len(seen) != maze.NumDirections {
		t.Errorf("with ε = 1 expected all %d actions over 400 selections, "+
			"got %d", maze.NumDirections, len(seen))
	}
}

func TestSetEpsilon(t *testing.T) {
	p := NewEGreedy(stubValues{make([]float64, 4)}, 0.5, 14)
	if p.Epsilon() != 0.5 {
		t.Errorf("expected 0.5, got %v", p.Epsilon())
	}
	p.SetEpsilon(0.25)
	if p.Epsilon() != 0.25 {
		t.Errorf("expected 0.25, got %v", p.Epsilon())
	}
}
