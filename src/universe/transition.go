package universe

//CountLiveNeighbors counts live cells among the 8 neighbours of row, col
//positions outside the grid are skipped, there is no wrap around
func CountLiveNeighbors(g *Grid, row int, col int) int {
	return countLiveNeighbors(g.cells, row, col)
}

//NextState applies the B3/S23 rule to the cell
func NextState(alive bool, liveNeighbours int) bool {
	if alive {
		return liveNeighbours == 2 || liveNeighbours == 3
	}
	return liveNeighbours == 3
}

func countLiveNeighbors(area [][]Cell, row int, col int) int {
	n := len(area)
	liveNeighbours := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			r := row + i
			c := col + j
			//skip coordinates outside the area
			if r < 0 || c < 0 || r >= n || c >= n {
				continue
			}
			if area[r][c] {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//nextRows writes the next state of rows [from, to) of cur into dst
//cur is only read, so bands of rows can be calculated concurrently
func nextRows(cur [][]Cell, dst [][]Cell, from int, to int) (liveCells int, changed bool) {
	for row := from; row < to; row++ {
		for col := range cur[row] {
			alive := bool(cur[row][col])
			nextState := NextState(alive, countLiveNeighbors(cur, row, col))
			if nextState {
				liveCells++
			}
			changed = changed || nextState != alive
			dst[row][col] = Cell(nextState)
		}
	}
	return
}
