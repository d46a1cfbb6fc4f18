package universe

import "testing"

func TestNextState(t *testing.T) {
	for n := 0; n <= 8; n++ {
		if got, expected := NextState(true, n), n == 2 || n == 3; got != expected {
			t.Fatalf("alive with %d neighbours: %v, expected %v", n, got, expected)
		}
		if got, expected := NextState(false, n), n == 3; got != expected {
			t.Fatalf("dead with %d neighbours: %v, expected %v", n, got, expected)
		}
	}
}

func TestCountLiveNeighborsSkipsSelf(t *testing.T) {
	g := newGrid(t, 3)
	settle(g, [2]int{1, 1})
	if n := CountLiveNeighbors(g, 1, 1); n != 0 {
		t.Fatalf("the cell counted itself: %d", n)
	}
	if n := CountLiveNeighbors(g, 0, 0); n != 1 {
		t.Fatalf("diagonal neighbour counted %d times", n)
	}
}

func TestCountLiveNeighborsDoesNotWrap(t *testing.T) {
	g := newGrid(t, 5)
	//cells on the opposite edges would be neighbours on a torus
	settle(g, [2]int{4, 0}, [2]int{0, 4}, [2]int{4, 4}, [2]int{2, 4})
	if n := CountLiveNeighbors(g, 0, 0); n != 0 {
		t.Fatalf("corner sees %d neighbours across the edges", n)
	}
	if n := CountLiveNeighbors(g, 2, 0); n != 0 {
		t.Fatalf("left edge sees %d neighbours across the edge", n)
	}
}

func TestStepUsesCurrentGenerationOnly(t *testing.T) {
	//(0,1) and (1,1) are born from the three cells of the current generation
	g := newGrid(t, 4)
	settle(g, [2]int{0, 0}, [2]int{0, 2}, [2]int{1, 0})
	g.Step()
	expectCells(t, g, [2]int{0, 1}, [2]int{1, 1})
}
