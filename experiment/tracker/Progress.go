package tracker

import (
	"time"

	ts "github.com/qaribhaider/learn-a-maze/timestep"
	"github.com/qaribhaider/learn-a-maze/utils/progressbar"
)

// Progress displays a terminal progress bar over the timestep budget
// of an experiment. It is a Tracker so that experiments can drive it
// like any other per-timestep consumer; it saves nothing.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress returns a Progress Tracker sized to maxSteps experiment
// timesteps
func NewProgress(maxSteps uint) Tracker {
	bar := progressbar.New(40, int(maxSteps), 500*time.Millisecond)
	bar.Display()
	return &Progress{bar}
}

// Track advances the progress bar by one timestep. Episode-starting
// timesteps are not counted: they do not consume the step budget.
func (p *Progress) Track(t ts.TimeStep) {
	if !t.First() {
		p.bar.Increment()
	}
}

// Save closes the progress bar display
func (p *Progress) Save() {
	p.bar.Close()
}
