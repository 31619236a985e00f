package agent

import "github.com/qaribhaider/learn-a-maze/environment"

// Config represents a configuration from which an agent can be
// constructed
type Config interface {
	// CreateAgent creates the agent that the Config describes on the
	// argument environment
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is a valid agent
	// for construction with the Config
	ValidAgent(Agent) bool

	// Validate ensures that the Config is valid
	Validate() error
}
