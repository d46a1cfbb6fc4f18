package universe

import (
	"bytes"
	"fmt"
	"math/rand"
)

type Cell bool

//Grid is the square field where cells are living
//the size is fixed at construction, cells outside the field are always dead
type Grid struct {
	size  int
	cells [][]Cell
	next  [][]Cell //second buffer used by Step
}

//NewGrid allocates the n x n grid with all cells dead
func NewGrid(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, n)
	}
	return &Grid{
		size:  n,
		cells: createArea(n),
		next:  createArea(n),
	}, nil
}

//Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

//Rows exposes the current generation, callers must not modify it
func (g *Grid) Rows() [][]Cell {
	return g.cells
}

//Alive reports the cell state at row, col; positions outside the grid are dead
func (g *Grid) Alive(row int, col int) bool {
	if !g.contains(row, col) {
		return false
	}
	return bool(g.cells[row][col])
}

//Set changes the cell state at row, col, returns false if the position is outside the grid
func (g *Grid) Set(row int, col int, alive bool) bool {
	if !g.contains(row, col) {
		return false
	}
	g.cells[row][col] = Cell(alive)
	return true
}

//Randomize makes each cell alive with probability density
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	g.walk(func(row int, col int, _ Cell) {
		g.cells[row][col] = Cell(rng.Float64() < density)
	})
}

//Clear kills all cells
func (g *Grid) Clear() {
	g.walk(func(row int, col int, _ Cell) {
		g.cells[row][col] = false
	})
}

//Step calculates the next generation into the second buffer and swaps the buffers
func (g *Grid) Step() (liveCells int, changed bool) {
	liveCells, changed = nextRows(g.cells, g.next, 0, g.size)
	g.swap()
	return
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() int {
	live := 0
	g.walk(func(_ int, _ int, c Cell) {
		if c {
			live++
		}
	})
	return live
}

//Clone returns the deep copy of the current generation
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, cells: createArea(g.size), next: createArea(g.size)}
	for row := range g.cells {
		copy(c.cells[row], g.cells[row])
	}
	return c
}

//Equal reports whether both grids have the same size and the same live cells
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.size != o.size {
		return false
	}
	for row := range g.cells {
		for col := range g.cells[row] {
			if g.cells[row][col] != o.cells[row][col] {
				return false
			}
		}
	}
	return true
}

//String renders the grid as rows of 1 (alive) and 0 (dead) separated by spaces
func (g *Grid) String() string {
	var b bytes.Buffer
	for row, l := range g.cells {
		if row != 0 {
			b.WriteByte('\n')
		}
		for col, c := range l {
			if col != 0 {
				b.WriteByte(' ')
			}
			if c {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}

func (g *Grid) contains(row int, col int) bool {
	return row >= 0 && col >= 0 && row < g.size && col < g.size
}

func (g *Grid) swap() {
	g.cells, g.next = g.next, g.cells
}

//walk walks the entire grid and calls the cb function for each cell
func (g *Grid) walk(cb func(row int, col int, c Cell)) {
	for row := range g.cells {
		for col := range g.cells[row] {
			cb(row, col, g.cells[row][col])
		}
	}
}

//createArea allocates n rows sharing one backing array
func createArea(n int) [][]Cell {
	area := make([][]Cell, n)
	b := make([]Cell, n*n)
	for i := range area {
		start := n * i
		area[i] = b[start : start+n : start+n]
	}
	return area
}
