// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/qaribhaider/learn-a-maze/timestep"
)

// Agent determines the implementation details of an agent or
// algorithm.
//
// An Agent is composed of a Learner, which updates action-values from
// observed transitions, and a Policy, which chooses actions in each
// state. The Policy chooses which actions are taken, and the Learner
// uses the resulting transitions to improve the Policy.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how
// action-values are updated.
//
// Learners are driven synchronously, one transition at a time: every
// Observe must be followed by a Step before the next transition is
// observed, so that each update sees the table state left by the
// previous one. Learners provide no internal locking; concurrent use
// of one Learner must be serialized by the caller.
type Learner interface {
	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// Observe records that an action led to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// Step performs a single update to the learner
	Step() error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. The Policy and Learner
// of an agent share the same action-values, so any changes the Learner
// makes are reflected in the actions the Policy chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
