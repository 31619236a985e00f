// Package policy implements policies over tabular action-values
package policy

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qaribhaider/learn-a-maze/maze"
	"github.com/qaribhaider/learn-a-maze/timestep"
	"github.com/qaribhaider/learn-a-maze/utils/floatutils"
)

// ValueFunction provides the action-values that a policy selects
// actions from. The returned slice always has one entry per direction,
// in the fixed maze.Direction order.
type ValueFunction interface {
	QValues(p maze.Position) []float64
}

// EGreedy implements an ε-greedy policy over tabular action-values.
//
// With probability ε an action is chosen uniformly at random.
// Otherwise the greedy action is taken, with ties at the maximum
// action-value broken uniformly at random. The tie-breaking matters:
// rows start all-zero, and always preferring one fixed action there
// would bias exploration systematically toward one direction.
//
// The policy's random source is independent of any seeded maze
// generation: action selection is meant to vary run-to-run while maze
// layouts are meant not to.
type EGreedy struct {
	values  ValueFunction
	epsilon float64
	source  rand.Source
}

// NewEGreedy constructs a new EGreedy policy, where epsilon is the
// probability with which a random action is selected and values
// provides the action-values. Epsilon is expected to stay in [0, 1];
// callers own keeping it sane.
func NewEGreedy(values ValueFunction, epsilon float64, seed uint64) *EGreedy {
	return &EGreedy{values, epsilon, rand.NewSource(seed)}
}

// SelectAction selects an action from the ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	values := p.values.QValues(t.Position())

	// Every action gets the ε/n exploration mass; the tied greedy
	// actions split the remaining 1-ε uniformly
	_, greedy := floatutils.MaxSlice(values)

	probabilities := make([]float64, len(values))
	explore := p.epsilon / float64(len(values))
	for i := range probabilities {
		probabilities[i] = explore
	}
	for _, action := range greedy {
		probabilities[action] += (1.0 - p.epsilon) / float64(len(greedy))
	}

	dist := distuv.NewCategorical(probabilities, p.source)
	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// Epsilon returns the current exploration probability
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the current exploration probability
func (p *EGreedy) SetEpsilon(epsilon float64) {
	p.epsilon = epsilon
}

// NewGreedy constructs a fully greedy policy, which is the ε-greedy
// policy with ε = 0. Ties at the maximum are still broken uniformly at
// random.
func NewGreedy(values ValueFunction, seed uint64) *EGreedy {
	return NewEGreedy(values, 0.0, seed)
}
