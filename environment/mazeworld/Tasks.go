package mazeworld

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/qaribhaider/learn-a-maze/environment"
	"github.com/qaribhaider/learn-a-maze/maze"
	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// Default reward shaping for the Solve task. These are driver-side
// configuration, not learning-core invariants; they materially affect
// learned policy quality, so callers tune them through NewSolve.
const (
	DefaultStepReward      float64 = -1
	DefaultCollisionReward float64 = -100
	DefaultGoalReward      float64 = 1000
)

// Solve represents the task of reaching a goal cell in a maze. Each
// step costs stepReward, bumping into a wall or the grid border costs
// collisionReward, and arriving at the goal earns goalReward.
type Solve struct {
	environment.Starter
	m    *maze.Maze
	goal maze.Position

	stepReward      float64
	collisionReward float64
	goalReward      float64
}

// NewSolve returns a new Solve task with goal cell goal. The goal must
// be an open cell of m.
func NewSolve(s environment.Starter, m *maze.Maze, goal maze.Position,
	stepReward, collisionReward, goalReward float64) (*Solve, error) {

	if m.IsWall(goal.X, goal.Y) {
		return nil, fmt.Errorf("newSolve: goal %v is not an open cell", goal)
	}

	return &Solve{
		Starter:         s,
		m:               m,
		goal:            goal,
		stepReward:      stepReward,
		collisionReward: collisionReward,
		goalReward:      goalReward,
	}, nil
}

// GetReward returns the reward for taking action a on timestep t
func (s *Solve) GetReward(t ts.TimeStep, a mat.Vector) float64 {
	pos := t.Position()

	next, collided := resolve(s.m, pos, maze.Direction(int(a.AtVec(0))))
	if collided {
		return s.collisionReward
	}
	if next == s.goal {
		return s.goalReward
	}
	return s.stepReward
}

// AtGoal returns whether the argument state is the goal state
func (s *Solve) AtGoal(state mat.Vector) bool {
	pos := maze.Position{X: int(state.AtVec(0)), Y: int(state.AtVec(1))}
	return pos == s.goal
}

// Goal returns the goal cell of the task
func (s *Solve) Goal() maze.Position {
	return s.goal
}

// Min returns the minimum reward attainable in the Task
func (s *Solve) Min() float64 {
	rewards := []float64{s.stepReward, s.collisionReward, s.goalReward}
	return floats.Min(rewards)
}

// Max returns the maximum reward attainable in the Task
func (s *Solve) Max() float64 {
	rewards := []float64{s.stepReward, s.collisionReward, s.goalReward}
	return floats.Max(rewards)
}
