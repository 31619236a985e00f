// Package tracker implements Trackers, which track and save data
// generated during an experiment
package tracker

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/qaribhaider/learn-a-maze/timestep"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished. An experiment sends every environmental
// timestep to each of its Trackers through Track; each Tracker decides
// which data it caches.
type Tracker interface {
	Track(t ts.TimeStep)
	Save()
}

// LoadData loads and returns the float64 data saved by a Tracker
func LoadData(filename string) []float64 {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []float64

	if err := dec.Decode(&data); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}

	return data
}

// LoadIntData loads and returns the int data saved by a Tracker
func LoadIntData(filename string) []int {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []int

	if err := dec.Decode(&data); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}

	return data
}
