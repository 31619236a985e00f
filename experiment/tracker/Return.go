package tracker

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker extracts the reward
// and accumulates the return separately for each episode.
//
// An episode must finish for this Tracker to cache its data. If the
// last episode in an experiment does not finish, that episode's return
// is not saved.
type Return struct {
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which will save
// its data at filename
func NewReturn(filename string) Tracker {
	return &Return{filename: filename}
}

// Track accumulates the reward seen on a timestep. When the timestep
// is the last in its episode, the accumulated return is cached and
// accumulation restarts for the next episode.
func (r *Return) Track(step ts.TimeStep) {
	if step.First() {
		r.currentReturn = 0.0
		return
	}

	r.currentReturn += step.Reward
	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
	}
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() {
	file, err := os.Create(r.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(r.episodeReturns); err != nil {
		log.Fatalf("could not encode return data: %v", err)
	}
}
