package universe

import (
	"errors"
	"math/rand"
	"testing"
)

func newGrid(t testing.TB, n int) *Grid {
	t.Helper()
	g, err := NewGrid(n)
	if err != nil {
		t.Fatalf("NewGrid(%d): %v", n, err)
	}
	return g
}

//settle sets the [row, col] cells alive
func settle(g *Grid, cells ...[2]int) {
	for _, c := range cells {
		g.Set(c[0], c[1], true)
	}
}

//expectCells fails unless exactly the given cells are alive
func expectCells(t *testing.T, g *Grid, cells ...[2]int) {
	t.Helper()
	expects := map[[2]int]bool{}
	for _, c := range cells {
		expects[c] = true
	}
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			if g.Alive(row, col) != expects[[2]int{row, col}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v\n%v", row, col, g.Alive(row, col), expects[[2]int{row, col}], g)
			}
		}
	}
}

func TestNewGrid(t *testing.T) {
	for _, n := range []int{1, 2, 5, 40} {
		g := newGrid(t, n)
		if g.Size() != n || len(g.Rows()) != n {
			t.Fatalf("size %d, got %d with %d rows", n, g.Size(), len(g.Rows()))
		}
		for _, row := range g.Rows() {
			if len(row) != n {
				t.Fatalf("row length %d, expected %d", len(row), n)
			}
		}
		if g.LiveCells() != 0 {
			t.Fatalf("new grid %d has %d live cells", n, g.LiveCells())
		}
	}
}

func TestNewGridInvalidDimension(t *testing.T) {
	for _, n := range []int{0, -1, -40} {
		g, err := NewGrid(n)
		if !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("NewGrid(%d) error %v, expected ErrInvalidDimension", n, err)
		}
		if g != nil {
			t.Fatalf("NewGrid(%d) returned the grid", n)
		}
	}
}

func TestClearIsIdempotent(t *testing.T) {
	g := newGrid(t, 10)
	g.Randomize(rand.New(rand.NewSource(1)), 0.5)
	g.Clear()
	first := g.Clone()
	g.Clear()
	if !g.Equal(first) || g.LiveCells() != 0 {
		t.Fatalf("second clear changed the grid:\n%v", g)
	}
}

func TestEmptyGridIsFixedPoint(t *testing.T) {
	g := newGrid(t, 8)
	for i := 0; i < 3; i++ {
		live, changed := g.Step()
		if live != 0 || changed {
			t.Fatalf("step %d: live=%d changed=%v", i, live, changed)
		}
	}
	expectCells(t, g)
}

func TestIsolatedCellDies(t *testing.T) {
	g := newGrid(t, 5)
	settle(g, [2]int{2, 2})
	g.Step()
	expectCells(t, g)
}

func TestBlockStillLife(t *testing.T) {
	g := newGrid(t, 6)
	block := [][2]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	settle(g, block...)
	for i := 0; i < 5; i++ {
		if _, changed := g.Step(); changed {
			t.Fatalf("block changed on step %d", i)
		}
		expectCells(t, g, block...)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := newGrid(t, 5)
	horizontal := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	vertical := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	settle(g, horizontal...)

	g.Step()
	expectCells(t, g, vertical...)

	g.Step()
	expectCells(t, g, horizontal...)
}

func TestCornerCellDies(t *testing.T) {
	g := newGrid(t, 4)
	settle(g, [2]int{0, 0})
	if n := CountLiveNeighbors(g, 0, 0); n != 0 {
		t.Fatalf("corner has %d live neighbours", n)
	}
	g.Step()
	expectCells(t, g)
}

func TestCornerNeighboursStayInBounds(t *testing.T) {
	g := newGrid(t, 4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			g.Set(row, col, true)
		}
	}
	cases := []struct {
		row, col, expected int
	}{
		{0, 0, 3}, {0, 3, 3}, {3, 0, 3}, {3, 3, 3},
		{0, 1, 5}, {1, 0, 5}, {1, 1, 8},
	}
	for _, c := range cases {
		if n := CountLiveNeighbors(g, c.row, c.col); n != c.expected {
			t.Fatalf("(%d,%d) has %d neighbours, expected %d", c.row, c.col, n, c.expected)
		}
	}
}

func TestRandomizeDensity(t *testing.T) {
	const n = 200
	g := newGrid(t, n)
	for _, density := range []float64{0.2, 0.5, 0.8} {
		for seed := int64(1); seed <= 5; seed++ {
			g.Randomize(rand.New(rand.NewSource(seed)), density)
			ratio := float64(g.LiveCells()) / float64(n*n)
			if ratio < density-0.02 || ratio > density+0.02 {
				t.Fatalf("density %v seed %d: live ratio %v", density, seed, ratio)
			}
		}
	}
}

func TestSetOutsideGrid(t *testing.T) {
	g := newGrid(t, 3)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if g.Set(c[0], c[1], true) {
			t.Fatalf("Set(%d,%d) reported success", c[0], c[1])
		}
		if g.Alive(c[0], c[1]) {
			t.Fatalf("Alive(%d,%d) outside the grid", c[0], c[1])
		}
	}
	if g.LiveCells() != 0 {
		t.Fatalf("grid changed:\n%v", g)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := newGrid(t, 3)
	settle(g, [2]int{1, 1})
	c := g.Clone()
	g.Clear()
	if !c.Alive(1, 1) || c.LiveCells() != 1 {
		t.Fatalf("clone follows the original:\n%v", c)
	}
	if g.Equal(c) {
		t.Fatal("cleared grid equals the clone")
	}
}

func TestString(t *testing.T) {
	g := newGrid(t, 3)
	settle(g, [2]int{0, 0}, [2]int{1, 2})
	expected := "1 0 0\n0 0 1\n0 0 0"
	if s := g.String(); s != expected {
		t.Fatalf("got\n%s\nexpected\n%s", s, expected)
	}
}
