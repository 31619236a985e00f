package mazeworld

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/qaribhaider/learn-a-maze/environment"
	"github.com/qaribhaider/learn-a-maze/maze"
	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// testMaze builds a maze from rows of '.' (floor) and '#' (wall)
func testMaze(t *testing.T, rows []string) *maze.Maze {
	t.Helper()

	cells := make([][]maze.Cell, len(rows))
	for y, row := range rows {
		cells[y] = make([]maze.Cell, len(row))
		for x, r := range row {
			cells[y][x] = maze.Cell{X: x, Y: y, Wall: r == '#'}
		}
	}

	m, err := maze.FromCells(cells)
	if err != nil {
		t.Fatalf("could not build maze: %v", err)
	}
	return m
}

func testWorld(t *testing.T, m *maze.Maze, goal maze.Position,
	stepLimit int) (*MazeWorld, ts.TimeStep) {
	t.Helper()

	starter, err := NewSingleStart(maze.Position{X: 0, Y: 0}, m)
	if err != nil {
		t.Fatalf("could not create starter: %v", err)
	}

	task, err := NewSolve(starter, m, goal, DefaultStepReward,
		DefaultCollisionReward, DefaultGoalReward)
	if err != nil {
		t.Fatalf("could not create task: %v", err)
	}

	world, first, err := New(m, task, environment.NewStepLimit(stepLimit),
		0.99)
	if err != nil {
		t.Fatalf("could not create world: %v", err)
	}
	return world, first
}

func action(d maze.Direction) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(d)})
}

func TestStepMoves(t *testing.T) {
	m := testMaze(t, []string{
		"....",
		".#..",
		"....",
	})
	world, first := testWorld(t, m, maze.Position{X: 3, Y: 2}, 100)

	if !first.First() || first.Number != 0 {
		t.Fatalf("expected a first timestep numbered 0, got %v", first)
	}

	step, last, err := world.Step(action(maze.Right))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last {
		t.Error("episode should not end on a plain move")
	}
	if pos := step.Position(); pos != (maze.Position{X: 1, Y: 0}) {
		t.Errorf("expected to move to (1,0), got %v", pos)
	}
	if step.Reward != DefaultStepReward {
		t.Errorf("expected step reward %v, got %v", DefaultStepReward,
			step.Reward)
	}
	if step.Number != 1 {
		t.Errorf("expected step number 1, got %d", step.Number)
	}
}

func TestStepWallCollision(t *testing.T) {
	m := testMaze(t, []string{
		"....",
		".#..",
		"....",
	})
	world, _ := testWorld(t, m, maze.Position{X: 3, Y: 2}, 100)

	// Move onto (1,0), then try to walk down into the wall at (1,1)
	if _, _, err := world.Step(action(maze.Right)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	step, _, err := world.Step(action(maze.Down))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos := step.Position(); pos != (maze.Position{X: 1, Y: 0}) {
		t.Errorf("collision should leave the agent in place, got %v", pos)
	}
	if step.Reward != DefaultCollisionReward {
		t.Errorf("expected collision reward %v, got %v",
			DefaultCollisionReward, step.Reward)
	}
}

func TestStepBorderCollision(t *testing.T) {
	m := testMaze(t, []string{
		"....",
		".#..",
		"....",
	})
	world, _ := testWorld(t, m, maze.Position{X: 3, Y: 2}, 100)

	step, _, err := world.Step(action(maze.Up))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos := step.Position(); pos != (maze.Position{X: 0, Y: 0}) {
		t.Errorf("walking off the grid should leave the agent in place, "+
			"got %v", pos)
	}
	if step.Reward != DefaultCollisionReward {
		t.Errorf("expected collision reward %v, got %v",
			DefaultCollisionReward, step.Reward)
	}
}

func TestStepReachesGoal(t *testing.T) {
	m := testMaze(t, []string{
		"..",
		"..",
	})
	world, _ := testWorld(t, m, maze.Position{X: 1, Y: 0}, 100)

	step, last, err := world.Step(action(maze.Right))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !last || !step.Last() {
		t.Error("reaching the goal should end the episode")
	}
	if step.Reward != DefaultGoalReward {
		t.Errorf("expected goal reward %v, got %v", DefaultGoalReward,
			step.Reward)
	}
	if !world.AtGoal(step.Observation) {
		t.Error("AtGoal should report the goal state")
	}
}

func TestStepLimitEndsEpisode(t *testing.T) {
	m := testMaze(t, []string{
		"....",
		"....",
	})
	world, _ := testWorld(t, m, maze.Position{X: 3, Y: 1}, 2)

	step, last, err := world.Step(action(maze.Right))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last {
		t.Fatal("episode ended one step early")
	}

	step, last, err = world.Step(action(maze.Left))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !last || !step.Last() {
		t.Error("step limit should end the episode")
	}
	if world.AtGoal(step.Observation) {
		t.Error("cut-off episode should not be at the goal")
	}
}

func TestReset(t *testing.T) {
	m := testMaze(t, []string{
		"....",
		"....",
	})
	world, _ := testWorld(t, m, maze.Position{X: 3, Y: 1}, 100)

	if _, _, err := world.Step(action(maze.Right)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	step, err := world.Reset()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !step.First() || step.Number != 0 {
		t.Errorf("expected a first timestep numbered 0, got %v", step)
	}
	if pos := step.Position(); pos != (maze.Position{X: 0, Y: 0}) {
		t.Errorf("expected reset to the start cell, got %v", pos)
	}
	if world.StartPosition() != (maze.Position{X: 0, Y: 0}) {
		t.Errorf("unexpected start position %v", world.StartPosition())
	}
}

func TestStepRejectsBadActions(t *testing.T) {
	m := testMaze(t, []string{
		"..",
		"..",
	})
	world, _ := testWorld(t, m, maze.Position{X: 1, Y: 1}, 100)

	if _, _, err := world.Step(mat.NewVecDense(2, nil)); err == nil {
		t.Error("expected an error for a 2-dimensional action")
	}

	// Out-of-range action values must surface as errors, not silently
	// move the agent
	if _, _, err := world.Step(action(maze.Direction(9))); err == nil {
		t.Error("expected an error for an out-of-range action")
	}
	if _, _, err := world.Step(action(maze.Direction(-1))); err == nil {
		t.Error("expected an error for a negative action")
	}
}

func TestSpecs(t *testing.T) {
	m := testMaze(t, []string{
		".....",
		".....",
		".....",
	})
	world, _ := testWorld(t, m, maze.Position{X: 4, Y: 2}, 100)

	a := world.ActionSpec()
	if a.Cardinality != environment.Discrete {
		t.Error("actions should be discrete")
	}
	if got := int(a.UpperBound.AtVec(0)); got != maze.NumDirections-1 {
		t.Errorf("expected action upper bound %d, got %d",
			maze.NumDirections-1, got)
	}

	o := world.ObservationSpec()
	if got := o.UpperBound.AtVec(0); got != 4 {
		t.Errorf("expected x upper bound 4, got %v", got)
	}
	if got := o.UpperBound.AtVec(1); got != 2 {
		t.Errorf("expected y upper bound 2, got %v", got)
	}

	r := world.RewardSpec()
	if r.LowerBound.AtVec(0) != DefaultCollisionReward ||
		r.UpperBound.AtVec(0) != DefaultGoalReward {
		t.Error("reward spec should span the task's reward constants")
	}
}

func TestConstructorsRejectWallCells(t *testing.T) {
	m := testMaze(t, []string{
		"..",
		".#",
	})

	if _, err := NewSingleStart(maze.Position{X: 1, Y: 1}, m); err == nil {
		t.Error("expected an error for a wall start")
	}

	starter, err := NewSingleStart(maze.Position{X: 0, Y: 0}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewSolve(starter, m, maze.Position{X: 1, Y: 1},
		DefaultStepReward, DefaultCollisionReward,
		DefaultGoalReward); err == nil {
		t.Error("expected an error for a wall goal")
	}
}

func TestResetWithCategoricalStarter(t *testing.T) {
	// A fully open grid, so every cell the starter samples is a valid
	// starting position
	m := testMaze(t, []string{
		"....",
		"....",
		"....",
	})

	starter := environment.NewCategoricalStarter(
		[]int{m.Width(), m.Height()}, 42)
	task, err := NewSolve(starter, m, maze.Position{X: 3, Y: 2},
		DefaultStepReward, DefaultCollisionReward, DefaultGoalReward)
	if err != nil {
		t.Fatalf("could not create task: %v", err)
	}
	world, first, err := New(m, task, environment.NewStepLimit(100), 0.99)
	if err != nil {
		t.Fatalf("could not create world: %v", err)
	}

	positions := map[maze.Position]bool{first.Position(): true}
	for i := 0; i < 50; i++ {
		step, err := world.Reset()
		if err != nil {
			t.Fatalf("reset %d: %v", i, err)
		}
		pos := step.Position()
		if !m.InBounds(pos.X, pos.Y) || m.IsWall(pos.X, pos.Y) {
			t.Fatalf("reset %d produced an invalid start %v", i, pos)
		}
		if world.StartPosition() != pos {
			t.Fatalf("reset %d: StartPosition %v does not match the first "+
				"timestep %v", i, world.StartPosition(), pos)
		}
		positions[pos] = true
	}

	if len(positions) < 2 {
		t.Error("expected varied starting positions over 50 resets")
	}
}

func TestFloorStarterSamplesOpenCells(t *testing.T) {
	m := testMaze(t, []string{
		".#.",
		"###",
		".#.",
	})

	starter, err := NewFloorStarter(m, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 100; i++ {
		start := starter.Start()
		x, y := int(start.AtVec(0)), int(start.AtVec(1))
		if m.IsWall(x, y) {
			t.Fatalf("starter produced the wall cell (%d, %d)", x, y)
		}
	}
}

func TestMazeAccessorIsACopy(t *testing.T) {
	m := testMaze(t, []string{
		"..",
		"..",
	})
	world, _ := testWorld(t, m, maze.Position{X: 1, Y: 1}, 100)

	clone := world.Maze()
	if clone == m {
		t.Error("Maze() should return a copy, not the original")
	}
	if clone.String() != m.String() {
		t.Error("copied maze differs from the original")
	}
}
