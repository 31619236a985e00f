// Package progressbar implements printing a progress bar to the
// terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar implements a concurrent progress bar for long training
// runs. Rendering happens in its own goroutine so that incrementing
// from the simulation loop never blocks on terminal I/O.
type ProgressBar struct {
	// width is the number of characters the filled portion spans at
	// 100%
	width float64

	// maxProgress is the number of Increment calls that bring the bar
	// to 100%
	maxProgress float64

	incrementEvent chan struct{}
	closeEvent     chan struct{}
	closed         bool

	updateEvery time.Duration
}

// New returns a progress bar that is width characters wide and reaches
// 100% after max Increment calls, re-rendering every updateEvery
func New(width, max int, updateEvery time.Duration) *ProgressBar {
	return &ProgressBar{
		width:          float64(width),
		maxProgress:    float64(max),
		incrementEvent: make(chan struct{}, 64),
		closeEvent:     make(chan struct{}),
		updateEvery:    updateEvery,
	}
}

// Increment advances the internal progress counter by one step. It
// never blocks: increments that arrive while the channel buffer is
// full are dropped, trading exactness of the display for a hot loop
// that never waits on terminal I/O.
func (pbar *ProgressBar) Increment() {
	if pbar.closed {
		return
	}
	select {
	case pbar.incrementEvent <- struct{}{}:
	default:
	}
}

// Close stops the progress bar display and releases its resources
func (pbar *ProgressBar) Close() {
	if pbar.closed {
		return
	}
	pbar.closed = true
	close(pbar.closeEvent)
	fmt.Println() // jump to the next line after the printed bar
}

// Display starts rendering the progress bar. It should only be called
// once.
func (pbar *ProgressBar) Display() {
	go func() {
		tick := time.NewTicker(pbar.updateEvery)
		defer tick.Stop()

		var progress float64
		var elapsed time.Duration
		var bar strings.Builder

		for {
			select {
			case <-pbar.incrementEvent:
				progress++
				continue

			case <-tick.C:
				elapsed += pbar.updateEvery

			case <-pbar.closeEvent:
				return
			}

			// Drain increments that arrived since the last render
			for {
				select {
				case <-pbar.incrementEvent:
					progress++
					continue
				default:
				}
				break
			}

			bar.Reset()
			bar.WriteString("|")

			filled := progress / pbar.maxProgress * pbar.width
			for i := 0.0; i < filled; i++ {
				bar.WriteString("█")
			}
			for i := filled; i < pbar.width; i++ {
				bar.WriteString(" ")
			}
			fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]",
				progress/pbar.maxProgress*100, elapsed)

			fmt.Printf("\n\033[1A\033[K%v", bar.String())
		}
	}()
}
