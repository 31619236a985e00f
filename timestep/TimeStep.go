// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/qaribhaider/learn-a-maze/maze"
)

// StepType denotes the type of step that a TimeStep can be: the first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment. For
// maze environments the observation is the 2-dimensional vector [x, y]
// of the agent's grid position.
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation mat.Vector
	Number      int
}

// New constructs a new TimeStep
func New(t StepType, reward, discount float64, obs mat.Vector,
	number int) TimeStep {
	return TimeStep{t, reward, discount, obs, number}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// Position converts the TimeStep's observation back into the grid
// position it denotes
func (t *TimeStep) Position() maze.Position {
	return maze.Position{
		X: int(t.Observation.AtVec(0)),
		Y: int(t.Observation.AtVec(1)),
	}
}

// FromPosition converts a grid position into an observation vector
func FromPosition(p maze.Position) *mat.VecDense {
	return mat.NewVecDense(2, []float64{float64(p.X), float64(p.Y)})
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number)
}
