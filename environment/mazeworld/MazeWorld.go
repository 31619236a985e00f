// Package mazeworld implements an environment over generated grid
// mazes.
//
// A MazeWorld owns a generated maze and tracks the agent's position in
// it. The maze itself is read-only: movement never mutates the grid,
// and moves into walls or out of bounds leave the agent in place.
package mazeworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qaribhaider/learn-a-maze/environment"
	"github.com/qaribhaider/learn-a-maze/maze"
	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// MazeWorld is an Environment in which an agent navigates a grid maze
type MazeWorld struct {
	environment.Task
	m *maze.Maze

	position    maze.Position
	start       maze.Position
	discount    float64
	ender       environment.Ender
	currentStep ts.TimeStep
}

// New returns a new MazeWorld over maze m with task t. The ender e
// cuts episodes off independently of the task's goal; pass the step
// limit the driving loop wants. The returned timestep is the first of
// the initial episode.
func New(m *maze.Maze, t environment.Task, e environment.Ender,
	discount float64) (*MazeWorld, ts.TimeStep, error) {

	world := &MazeWorld{
		Task:     t,
		m:        m,
		discount: discount,
		ender:    e,
	}

	step, err := world.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	return world, step, nil
}

// Reset resets the environment to a starting position sampled from the
// task's Starter and returns the first timestep of the new episode
func (w *MazeWorld) Reset() (ts.TimeStep, error) {
	start := w.Start()
	if start.Len() != 2 {
		return ts.TimeStep{}, fmt.Errorf("reset: starting states must be "+
			"2-dimensional, got %d", start.Len())
	}

	pos := maze.Position{X: int(start.AtVec(0)), Y: int(start.AtVec(1))}
	if w.m.IsWall(pos.X, pos.Y) {
		return ts.TimeStep{}, fmt.Errorf("reset: starting position %v is "+
			"a wall", pos)
	}

	w.position = pos
	w.start = pos
	w.currentStep = ts.New(ts.First, 0, w.discount, ts.FromPosition(pos), 0)

	return w.currentStep, nil
}

// Step takes one environmental step given an action and returns the
// next timestep and whether that timestep is the last in the episode
func (w *MazeWorld) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != 1 {
		return ts.TimeStep{}, false, fmt.Errorf("step: actions must be " +
			"1-dimensional")
	}

	dir := maze.Direction(int(action.AtVec(0)))
	if dir < 0 || dir >= maze.NumDirections {
		return ts.TimeStep{}, false, fmt.Errorf("step: invalid action %v",
			action.AtVec(0))
	}

	reward := w.GetReward(w.currentStep, action)

	next, _ := resolve(w.m, w.position, dir)
	w.position = next

	obs := ts.FromPosition(next)
	stepType := ts.Mid
	if w.AtGoal(obs) {
		stepType = ts.Last
	}

	nextStep := ts.New(stepType, reward, w.discount, obs,
		w.currentStep.Number+1)
	w.ender.End(&nextStep)

	w.currentStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// CurrentTimeStep returns the current timestep of the environment
func (w *MazeWorld) CurrentTimeStep() ts.TimeStep {
	return w.currentStep
}

// Maze returns a copy of the environment's maze for display or
// persistence. Mutating the copy does not affect the environment.
func (w *MazeWorld) Maze() *maze.Maze {
	return w.m.Clone()
}

// StartPosition returns the starting position of the current episode
func (w *MazeWorld) StartPosition() maze.Position {
	return w.start
}

// ActionSpec returns the action specification of the environment
func (w *MazeWorld) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0.0})
	upperBound := mat.NewVecDense(1, []float64{maze.NumDirections - 1})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (w *MazeWorld) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(2, nil)
	lowerBound := mat.NewVecDense(2, []float64{0.0, 0.0})
	upperBound := mat.NewVecDense(2, []float64{
		float64(w.m.Width() - 1),
		float64(w.m.Height() - 1),
	})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// DiscountSpec returns the discount specification of the environment
func (w *MazeWorld) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{w.discount})

	return environment.NewSpec(shape, environment.Discount, bound, bound,
		environment.Continuous)
}

// RewardSpec returns the reward specification of the environment
func (w *MazeWorld) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{w.Min()})
	upperBound := mat.NewVecDense(1, []float64{w.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}

func (w *MazeWorld) String() string {
	return fmt.Sprintf("MazeWorld | At: %v  |  Bounds: (%d, %d)\n%v",
		w.position, w.m.Width(), w.m.Height(), w.m)
}

// resolve computes the position reached by taking one step from pos in
// direction d, and whether the step collided with a wall or the grid
// border. Collisions leave the position unchanged.
func resolve(m *maze.Maze, pos maze.Position, d maze.Direction) (maze.Position,
	bool) {

	next := pos.Move(d)
	if m.IsWall(next.X, next.Y) {
		return pos, true
	}
	return next, false
}
