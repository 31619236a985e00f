// Package experiment implements functionality for running an
// experiment
package experiment

import "github.com/qaribhaider/learn-a-maze/experiment/tracker"

// Experiment runs an agent on an environment for some budget of
// timesteps. Experiments forward every environmental timestep to their
// Trackers, which cache data in RAM; Save then writes all cached data
// to disk, usually after the experiment has finished.
//
// An Experiment owns the simulation loop: the core library components
// (environment, agent) expose no loop themselves and are invoked once
// per simulated step. Experiments run the loop synchronously on the
// calling goroutine; agents and environments are not safe for
// concurrent use.
type Experiment interface {
	// Run runs all episodes until the timestep budget is exhausted
	Run() error

	// RunEpisode runs a single episode, returning whether the timestep
	// budget has been exhausted
	RunEpisode() (bool, error)

	// Save writes all tracked data to disk
	Save()

	// Register adds a Tracker to the (possibly already running)
	// experiment
	Register(t tracker.Tracker)
}
