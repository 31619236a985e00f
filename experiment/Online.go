package experiment

import (
	"fmt"

	"github.com/qaribhaider/learn-a-maze/agent"
	env "github.com/qaribhaider/learn-a-maze/environment"
	"github.com/qaribhaider/learn-a-maze/experiment/tracker"
	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
//
// Each episode repeats the choose → step → observe → update cycle: the
// agent selects an action for the current timestep, the environment
// resolves the transition and reward, and the agent backs the
// transition up into its action-values — one synchronous update per
// simulated step. At the end of every episode, successful or cut off
// by the step budget, the agent's EndEpisode hook runs (for Q-learning
// agents this decays exploration).
type Online struct {
	env.Environment
	agent.Agent
	maxSteps     uint
	currentSteps uint
	trackers     []tracker.Tracker

	episodes      int
	bestStepCount int // length of the shortest successful episode, 0 if none
}

// NewOnline creates and returns a new online experiment running agent
// a on environment e. The steps parameter determines how many
// timesteps the experiment is run for, and t determines what data is
// saved.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	t []tracker.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		maxSteps:    steps,
		trackers:    t,
	}
}

// Register adds a Tracker to the experiment so that data generated
// during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment and returns
// whether the timestep budget has been exhausted
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return false, fmt.Errorf("runEpisode: could not reset "+
			"environment: %v", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return false, fmt.Errorf("runEpisode: %v", err)
	}
	o.track(step)

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}

		o.track(step)

		// Observe the timestep and update the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}
		if err := o.Agent.Step(); err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}
	}

	o.Agent.EndEpisode()
	o.episodes++

	if step.Last() && o.Environment.AtGoal(step.Observation) {
		if o.bestStepCount == 0 || step.Number < o.bestStepCount {
			o.bestStepCount = step.Number
		}
	}

	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	for {
		ended, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
		if ended {
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() {
	for _, t := range o.trackers {
		t.Save()
	}
}

// Episodes returns the number of episodes completed so far
func (o *Online) Episodes() int {
	return o.episodes
}

// BestStepCount returns the length of the shortest episode that ended
// at the goal, or 0 if no episode has reached the goal yet
func (o *Online) BestStepCount() int {
	return o.bestStepCount
}

// track forwards the current timestep to each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
