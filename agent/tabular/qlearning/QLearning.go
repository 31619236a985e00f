// Package qlearning implements tabular Q-Learning over maze positions.
//
// The agent keeps a sparse table of action-value rows keyed by grid
// position. Rows are created lazily on first access, so the table only
// ever holds positions the agent has actually touched. Action-values
// improve through the standard off-policy Bellman backup, applied once
// per observed transition, and actions are chosen by an ε-greedy
// behaviour policy whose exploration probability decays once per
// episode.
package qlearning

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/qaribhaider/learn-a-maze/agent/tabular/policy"
	"github.com/qaribhaider/learn-a-maze/maze"
	"github.com/qaribhaider/learn-a-maze/timestep"
	"github.com/qaribhaider/learn-a-maze/utils/floatutils"
)

// QLearning implements the tabular Q-Learning algorithm
type QLearning struct {
	*policy.EGreedy

	alpha          float64
	gamma          float64
	initialEpsilon float64
	minEpsilon     float64
	decayRate      float64

	table map[maze.Position][]float64

	// Last observed transition, recorded by ObserveFirst/Observe and
	// consumed by Step
	step     timestep.TimeStep
	action   maze.Direction
	nextStep timestep.TimeStep
}

// New creates a new QLearning agent from the argument Config. The seed
// drives the behaviour policy's action sampling only; it has no effect
// on stored action-values.
func New(c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	q := &QLearning{
		alpha:          c.Alpha,
		gamma:          c.Gamma,
		initialEpsilon: c.InitialEpsilon,
		minEpsilon:     c.MinEpsilon,
		decayRate:      c.DecayRate,
		table:          make(map[maze.Position][]float64),
	}
	q.EGreedy = policy.NewEGreedy(q, c.InitialEpsilon, seed)

	return q, nil
}

// row returns the live action-value row for p, creating an all-zero
// row on first access
func (q *QLearning) row(p maze.Position) []float64 {
	r, ok := q.table[p]
	if !ok {
		r = make([]float64, maze.NumDirections)
		q.table[p] = r
	}
	return r
}

// QValues returns a copy of the action-value row for position p, one
// entry per direction in the fixed maze.Direction order. If p has
// never been seen, an all-zero row is created and stored first: the
// table grows on first access of a novel position.
func (q *QLearning) QValues(p maze.Position) []float64 {
	row := q.row(p)
	values := make([]float64, len(row))
	copy(values, row)
	return values
}

// MaxQ returns the maximum action-value at position p, which is 0 for
// any position never updated
func (q *QLearning) MaxQ(p maze.Position) float64 {
	return floatutils.Max(q.row(p)...)
}

// Update performs a single Bellman backup for taking action from state
// with the given reward, landing in next:
//
//	Q(state, action) += α · (reward + γ·maxQ(next) - Q(state, action))
//
// Only the entry for action changes. Update is the single point of
// mutation driving learning and must be called once per transition, in
// order; each call observes the table state left by the previous one.
func (q *QLearning) Update(state maze.Position, action maze.Direction,
	reward float64, next maze.Position) {

	target := reward + q.gamma*q.MaxQ(next)

	row := q.row(state)
	row[action] += q.alpha * (target - row[action])
}

// DecayCuriosity decays the exploration probability by the configured
// rate, never dropping below the configured floor. Intended to run
// once per completed episode, not once per step.
func (q *QLearning) DecayCuriosity() {
	q.SetEpsilon(floatutils.Max(q.minEpsilon, q.Epsilon()*q.decayRate))
}

// ResetQTable clears the table and resets the exploration probability
// to its configured starting value. Alpha, gamma, and the decay
// schedule are untouched.
func (q *QLearning) ResetQTable() {
	q.table = make(map[maze.Position][]float64)
	q.SetEpsilon(q.initialEpsilon)
}

// SetParameters overwrites alpha, gamma, and the initial exploration
// probability, and resets the current exploration probability to the
// new initial value. The table is untouched.
func (q *QLearning) SetParameters(alpha, gamma, initialEpsilon float64) {
	q.alpha = alpha
	q.gamma = gamma
	q.initialEpsilon = initialEpsilon
	q.SetEpsilon(initialEpsilon)
}

// SetQTable replaces the agent's table with a deep copy of the
// argument mapping: later mutation of the caller's rows cannot alias
// into the agent's state. Rows are normalized to one entry per
// direction. Scalar parameters are untouched.
func (q *QLearning) SetQTable(table map[maze.Position][]float64) {
	q.table = make(map[maze.Position][]float64, len(table))
	for p, row := range table {
		r := make([]float64, maze.NumDirections)
		copy(r, row)
		q.table[p] = r
	}
}

// QTable returns a deep copy of the agent's table, suitable for
// display snapshots or persistence. Mutating the copy does not affect
// the agent.
func (q *QLearning) QTable() map[maze.Position][]float64 {
	table := make(map[maze.Position][]float64, len(q.table))
	for p, row := range q.table {
		r := make([]float64, len(row))
		copy(r, row)
		table[p] = r
	}
	return table
}

// Alpha returns the learning rate
func (q *QLearning) Alpha() float64 { return q.alpha }

// Gamma returns the discount factor
func (q *QLearning) Gamma() float64 { return q.gamma }

// InitialEpsilon returns the exploration probability that
// ResetQTable and SetParameters restore the current value to
func (q *QLearning) InitialEpsilon() float64 { return q.initialEpsilon }

// ObserveFirst observes and records the first episodic timestep
func (q *QLearning) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
	return nil
}

// Observe observes and records any timestep other than the first
func (q *QLearning) Observe(action mat.Vector,
	nextStep timestep.TimeStep) error {

	if action.Len() != 1 {
		return fmt.Errorf("observe: actions must be 1-dimensional, got %d",
			action.Len())
	}

	q.step = q.nextStep
	q.action = maze.Direction(int(action.AtVec(0)))
	q.nextStep = nextStep
	return nil
}

// Step applies the Bellman backup for the last observed transition
func (q *QLearning) Step() error {
	q.Update(q.step.Position(), q.action, q.nextStep.Reward,
		q.nextStep.Position())
	return nil
}

// EndEpisode decays the exploration probability at the end of an
// episode
func (q *QLearning) EndEpisode() {
	q.DecayCuriosity()
}
