package qlearning

import (
	"fmt"

	"github.com/qaribhaider/learn-a-maze/agent"
	"github.com/qaribhaider/learn-a-maze/environment"
	"github.com/qaribhaider/learn-a-maze/maze"
)

// Default agent parameters
const (
	DefaultAlpha          float64 = 0.1
	DefaultGamma          float64 = 0.9
	DefaultInitialEpsilon float64 = 1.0
	DefaultMinEpsilon     float64 = 0.01
	DefaultDecayRate      float64 = 0.99
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Alpha          float64 // learning rate
	Gamma          float64 // discount factor
	InitialEpsilon float64 // starting exploration probability
	MinEpsilon     float64 // exploration decay floor
	DecayRate      float64 // per-episode multiplicative decay, in (0, 1)
}

// NewConfig returns a Config with the default agent parameters
func NewConfig() Config {
	return Config{
		Alpha:          DefaultAlpha,
		Gamma:          DefaultGamma,
		InitialEpsilon: DefaultInitialEpsilon,
		MinEpsilon:     DefaultMinEpsilon,
		DecayRate:      DefaultDecayRate,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Alpha <= 0 {
		return fmt.Errorf("alpha must be positive, got %v", c.Alpha)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in [0, 1], got %v", c.Gamma)
	}
	if c.InitialEpsilon < 0 || c.InitialEpsilon > 1 {
		return fmt.Errorf("initial epsilon must be in [0, 1], got %v",
			c.InitialEpsilon)
	}
	if c.MinEpsilon < 0 || c.MinEpsilon > c.InitialEpsilon {
		return fmt.Errorf("minimum epsilon must be in [0, %v], got %v",
			c.InitialEpsilon, c.MinEpsilon)
	}
	if c.DecayRate <= 0 || c.DecayRate >= 1 {
		return fmt.Errorf("decay rate must be in (0, 1), got %v", c.DecayRate)
	}
	return nil
}

// CreateAgent creates the agent from the Config on the argument
// environment, which must have a 1-dimensional discrete action space
// over the four maze directions
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {

	spec := env.ActionSpec()
	if spec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("createAgent: QLearning can only be used " +
			"with discrete actions")
	}
	if actions := int(spec.UpperBound.AtVec(0)) + 1; actions != maze.NumDirections {
		return nil, fmt.Errorf("createAgent: expected %d actions, got %d",
			maze.NumDirections, actions)
	}

	return New(c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}
