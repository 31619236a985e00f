// Package savefile implements the data shape exchanged with external
// save/load collaborators.
//
// The shape is fixed by interoperability with previously saved data:
// the grid is rows of {x, y, isWall}, and the Q-table is keyed by the
// exact textual position form "x,y" with no padding beyond default
// integer formatting. In-memory components never use the string form;
// it exists only at this boundary.
package savefile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/qaribhaider/learn-a-maze/agent/tabular/qlearning"
	"github.com/qaribhaider/learn-a-maze/maze"
	"github.com/qaribhaider/learn-a-maze/utils/floatutils"
)

// Cell is one persisted grid cell
type Cell struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	IsWall bool `json:"isWall"`
}

// Point is a persisted grid position
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Params bundles the agent parameters and driver statistics that
// accompany a saved session
type Params struct {
	Alpha          float64 `json:"alpha"`
	Gamma          float64 `json:"gamma"`
	InitialEpsilon float64 `json:"initialEpsilon"`
	Epsilon        float64 `json:"epsilon"`
	Episode        int     `json:"episode"`
	BestStepCount  int     `json:"bestStepCount"`
}

// File is a complete saved session: the maze layout, the start and
// goal anchors, the learned Q-table, and the parameter bundle
type File struct {
	Maze   [][]Cell             `json:"maze"`
	Start  Point                `json:"start"`
	Goal   Point                `json:"goal"`
	QTable map[string][]float64 `json:"qTable"`
	Params Params               `json:"params"`
}

// Snapshot captures the current session into a File. The snapshot is a
// deep copy: later learning does not change it.
func Snapshot(m *maze.Maze, start, goal maze.Position,
	q *qlearning.QLearning, episode, bestStepCount int) *File {

	rows := m.Cells()
	grid := make([][]Cell, len(rows))
	for y, row := range rows {
		grid[y] = make([]Cell, len(row))
		for x, cell := range row {
			grid[y][x] = Cell{X: cell.X, Y: cell.Y, IsWall: cell.Wall}
		}
	}

	table := make(map[string][]float64)
	for pos, row := range q.QTable() {
		table[pos.Key()] = row
	}

	return &File{
		Maze:   grid,
		Start:  Point{start.X, start.Y},
		Goal:   Point{goal.X, goal.Y},
		QTable: table,
		Params: Params{
			Alpha:          q.Alpha(),
			Gamma:          q.Gamma(),
			InitialEpsilon: q.InitialEpsilon(),
			Epsilon:        q.Epsilon(),
			Episode:        episode,
			BestStepCount:  bestStepCount,
		},
	}
}

// Grid reconstructs the saved maze layout
func (f *File) Grid() (*maze.Maze, error) {
	rows := make([][]maze.Cell, len(f.Maze))
	for y, row := range f.Maze {
		rows[y] = make([]maze.Cell, len(row))
		for x, cell := range row {
			rows[y][x] = maze.Cell{X: cell.X, Y: cell.Y, Wall: cell.IsWall}
		}
	}

	m, err := maze.FromCells(rows)
	if err != nil {
		return nil, fmt.Errorf("grid: %v", err)
	}
	return m, nil
}

// Restore loads the saved Q-table and parameters into the agent. The
// agent receives its own deep copy of the table, so later mutation of
// the File cannot alias into it. Saved rows of the wrong length are
// normalized, and the saved exploration probability is clipped into
// [0, 1].
func (f *File) Restore(q *qlearning.QLearning) error {
	table := make(map[maze.Position][]float64, len(f.QTable))
	for key, row := range f.QTable {
		pos, err := maze.ParseKey(key)
		if err != nil {
			return fmt.Errorf("restore: %v", err)
		}
		table[pos] = row
	}

	q.SetParameters(f.Params.Alpha, f.Params.Gamma, f.Params.InitialEpsilon)
	q.SetEpsilon(floatutils.Clip(f.Params.Epsilon, 0, 1))
	q.SetQTable(table)

	return nil
}

// Encode writes the File as JSON
func (f *File) Encode(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encode: %v", err)
	}
	return nil
}

// Decode reads a File from JSON
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %v", err)
	}
	return &f, nil
}
