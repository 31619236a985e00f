package savefile

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaribhaider/learn-a-maze/agent/tabular/qlearning"
	"github.com/qaribhaider/learn-a-maze/maze"
)

func newAgent(t *testing.T) *qlearning.QLearning {
	t.Helper()
	q, err := qlearning.New(qlearning.NewConfig(), 42)
	require.NoError(t, err)
	return q
}

func TestSnapshotRoundTrip(t *testing.T) {
	gen, err := maze.New(7, 7)
	require.NoError(t, err)
	m := gen.Generate()

	q := newAgent(t)
	q.SetParameters(0.2, 0.8, 0.9)
	q.Update(maze.Position{X: 0, Y: 0}, maze.Right, 10, maze.Position{X: 1, Y: 0})
	q.Update(maze.Position{X: 1, Y: 0}, maze.Down, -1, maze.Position{X: 1, Y: 1})

	start := maze.Position{X: 0, Y: 0}
	goal := maze.Position{X: 6, Y: 6}
	file := Snapshot(m, start, goal, q, 12, 34)

	var buf bytes.Buffer
	require.NoError(t, file.Encode(&buf))

	loaded, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, Point{0, 0}, loaded.Start)
	assert.Equal(t, Point{6, 6}, loaded.Goal)
	assert.Equal(t, 12, loaded.Params.Episode)
	assert.Equal(t, 34, loaded.Params.BestStepCount)
	assert.InDelta(t, 0.2, loaded.Params.Alpha, 1e-12)
	assert.InDelta(t, 0.8, loaded.Params.Gamma, 1e-12)
	assert.InDelta(t, 0.9, loaded.Params.Epsilon, 1e-12)

	grid, err := loaded.Grid()
	require.NoError(t, err)
	assert.Equal(t, m.String(), grid.String())

	restored := newAgent(t)
	require.NoError(t, loaded.Restore(restored))

	assert.Equal(t, q.QValues(maze.Position{X: 0, Y: 0}),
		restored.QValues(maze.Position{X: 0, Y: 0}))
	assert.Equal(t, q.QValues(maze.Position{X: 1, Y: 0}),
		restored.QValues(maze.Position{X: 1, Y: 0}))
	assert.Equal(t, 0.2, restored.Alpha())
	assert.Equal(t, 0.8, restored.Gamma())
	assert.Equal(t, 0.9, restored.Epsilon())
}

func TestQTableKeysUseCanonicalForm(t *testing.T) {
	gen, err := maze.New(5, 5)
	require.NoError(t, err)

	q := newAgent(t)
	q.QValues(maze.Position{X: 3, Y: 14})

	file := Snapshot(gen.Generate(), maze.Position{}, maze.Position{X: 4, Y: 4},
		q, 0, 0)

	raw, err := json.Marshal(file)
	require.NoError(t, err)

	var decoded struct {
		QTable map[string][]float64 `json:"qTable"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded.QTable, "3,14")
	assert.Len(t, decoded.QTable["3,14"], maze.NumDirections)
}

func TestRestoreCopies(t *testing.T) {
	file := &File{
		QTable: map[string][]float64{
			"2,3": {1, 2, 3, 4},
		},
		Params: Params{Alpha: 0.1, Gamma: 0.9, InitialEpsilon: 1, Epsilon: 0.5},
	}

	q := newAgent(t)
	require.NoError(t, file.Restore(q))

	file.QTable["2,3"][0] = 99
	assert.Equal(t, 1.0, q.QValues(maze.Position{X: 2, Y: 3})[maze.Up],
		"mutating the file after Restore must not reach the agent")
}

func TestRestoreNormalizes(t *testing.T) {
	file := &File{
		QTable: map[string][]float64{
			"0,0": {5},
		},
		Params: Params{Alpha: 0.1, Gamma: 0.9, InitialEpsilon: 1, Epsilon: 7},
	}

	q := newAgent(t)
	require.NoError(t, file.Restore(q))

	row := q.QValues(maze.Position{X: 0, Y: 0})
	assert.Len(t, row, maze.NumDirections)
	assert.Equal(t, 5.0, row[maze.Up])
	assert.Equal(t, 1.0, q.Epsilon(), "out-of-range epsilon must be clipped")
}

func TestRestoreRejectsBadKeys(t *testing.T) {
	file := &File{
		QTable: map[string][]float64{
			"not a key": {0, 0, 0, 0},
		},
	}

	q := newAgent(t)
	assert.Error(t, file.Restore(q))
}

func TestGridRejectsMalformedRows(t *testing.T) {
	file := &File{
		Maze: [][]Cell{
			{{X: 0, Y: 0}, {X: 1, Y: 0}},
			{{X: 0, Y: 1}},
		},
	}
	_, err := file.Grid()
	assert.Error(t, err)
}
