// Package maze implements deterministic generation of 2D grid mazes
package maze

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction is one of the four orthogonal moves through a maze. The
// numeric order Up, Right, Down, Left is fixed: it indexes action-value
// rows and the generator consumes neighbour candidates in this order.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// NumDirections is the size of the action space over a maze
const NumDirections = 4

// Offsets returns the (dx, dy) step for a Direction. The origin is the
// top-left corner, so Up decreases y.
func (d Direction) Offsets() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		panic("invalid direction " + d.String())
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// Position identifies a single cell in a maze grid
type Position struct {
	X, Y int
}

// Move returns the Position one step away in Direction d. No bounds
// checking is performed.
func (p Position) Move(d Direction) Position {
	dx, dy := d.Offsets()
	return Position{p.X + dx, p.Y + dy}
}

// Key returns the canonical textual form of a Position, exactly
// "x,y". This form is used only at the persistence boundary; in-memory
// tables key on the Position value itself. Equal positions always
// produce equal keys.
func (p Position) Key() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// ParseKey parses the textual "x,y" form back into a Position
func ParseKey(key string) (Position, error) {
	first, second, found := strings.Cut(key, ",")
	if !found {
		return Position{}, &KeyError{key}
	}

	x, err := strconv.Atoi(first)
	if err != nil {
		return Position{}, &KeyError{key}
	}
	y, err := strconv.Atoi(second)
	if err != nil {
		return Position{}, &KeyError{key}
	}

	return Position{x, y}, nil
}

// KeyError indicates that a string is not a valid "x,y" position key
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return "invalid position key " + strconv.Quote(e.Key)
}

// Cell is a single grid position together with its wall flag
type Cell struct {
	X, Y int
	Wall bool
}

// Maze is a width × height grid of Cells produced by a Generator.
// A Maze is immutable once generated: every accessor that exposes
// cells returns a copy.
type Maze struct {
	width, height int
	cells         [][]Cell // indexed [y][x]
}

// FromCells builds a Maze from externally supplied grid rows, for
// example rows loaded from a save file or edited outside the
// generator. The rows must form a non-empty rectangle and every cell's
// stored coordinates must equal its grid indices.
func FromCells(rows [][]Cell) (*Maze, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("fromCells: grid must be non-empty")
	}

	height := len(rows)
	width := len(rows[0])

	cells := make([][]Cell, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("fromCells: row %d has %d cells, "+
				"expected %d", y, len(row), width)
		}
		cells[y] = make([]Cell, width)
		for x, cell := range row {
			if cell.X != x || cell.Y != y {
				return nil, fmt.Errorf("fromCells: cell at index (%d, %d) "+
					"stores coordinates (%d, %d)", x, y, cell.X, cell.Y)
			}
			cells[y][x] = cell
		}
	}

	return &Maze{width, height, cells}, nil
}

// Width returns the number of columns in the Maze
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows in the Maze
func (m *Maze) Height() int {
	return m.height
}

// InBounds returns whether (x, y) lies inside the grid
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the Cell at (x, y), which must be in bounds
func (m *Maze) At(x, y int) Cell {
	return m.cells[y][x]
}

// IsWall returns whether the cell at (x, y) is a wall. Positions
// outside the grid are treated as walls so that movement code can
// handle the border uniformly.
func (m *Maze) IsWall(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.cells[y][x].Wall
}

// Cells returns a deep copy of the grid rows, ordered by y then x
func (m *Maze) Cells() [][]Cell {
	rows := make([][]Cell, m.height)
	for y := range m.cells {
		rows[y] = make([]Cell, m.width)
		copy(rows[y], m.cells[y])
	}
	return rows
}

// Clone returns a deep copy of the Maze
func (m *Maze) Clone() *Maze {
	return &Maze{m.width, m.height, m.Cells()}
}

// String renders the grid with '#' for walls and '.' for floor cells
func (m *Maze) String() string {
	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.cells[y][x].Wall {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
