// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/qaribhaider/learn-a-maze/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when environmental episodes end. Enders only end
// episodes based on timestep properties such as the step number;
// task-based termination, such as reaching a goal, is the Task's
// responsibility.
type Ender interface {
	// End takes a pointer to a timestep and returns whether the
	// episode should end at that timestep. If so, End also adjusts the
	// timestep's StepType to timestep.Last.
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment
type Task interface {
	Starter

	// GetReward returns the reward for taking action a on timestep t
	GetReward(t timestep.TimeStep, a mat.Vector) float64

	// AtGoal returns whether the argument state is a goal state
	AtGoal(state mat.Vector) bool

	// Min and Max return the minimum and maximum attainable rewards
	Min() float64
	Max() float64
}

// Environment implements a simulated environment, which includes a
// Task to complete
type Environment interface {
	Task

	// Reset resets the environment between episodes
	Reset() (timestep.TimeStep, error)

	// Step takes one environmental step given an action, returning the
	// next timestep and whether it is the last in the episode
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)

	// CurrentTimeStep returns the current timestep of the environment
	CurrentTimeStep() timestep.TimeStep

	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
