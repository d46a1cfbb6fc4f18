package universe

import (
	"fmt"
	"sort"
	"sync"
)

/*
	Engines calculate the next generation of the grid.
	All of them read only the current generation and write the whole next generation
	to a separate buffer, the grid sees the new generation at once.
*/

const (
	DefWorkers          = 10 //default workers
	DefMinRowsPerWorker = 3  //minimum rows for one worker
)

//Engine does one simulation cycle on the grid
type Engine interface {
	Name() string
	Next(g *Grid) (liveCells int, changed bool)
}

//Engines is the registry of the available engines, keyed by name
var Engines = map[string]func(size int) Engine{
	"base":          func(int) Engine { return baseEngine{} },
	"simple":        func(int) Engine { return simpleEngine{} },
	"multithreaded": func(size int) Engine { return newMultithreadedEngine(size, DefWorkers) },
}

//NewEngine creates the engine by name for the grid of the given size
func NewEngine(name string, size int) (Engine, error) {
	f, ok := Engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return f(size), nil
}

//EngineNames returns the sorted names of the registered engines
func EngineNames() []string {
	names := make([]string, 0, len(Engines))
	for k := range Engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//baseEngine is the simplest implementation: creates the new area buffer with full size on each call
//all cells are calculated to the new buffer and then it replaces the grid's area
type baseEngine struct{}

func (baseEngine) Name() string { return "base" }

func (baseEngine) Next(g *Grid) (liveCells int, changed bool) {
	a := createArea(g.size)
	liveCells, changed = nextRows(g.cells, a, 0, g.size)
	g.cells = a
	return
}

//simpleEngine uses the grid's persistent second buffer and swaps them
type simpleEngine struct{}

func (simpleEngine) Name() string { return "simple" }

func (simpleEngine) Next(g *Grid) (liveCells int, changed bool) {
	return g.Step()
}

//multithreadedEngine splits the grid into bands of rows, each band is calculated by its own goroutine
//the bands are rebuilt when the engine meets the grid of another size
type multithreadedEngine struct {
	workers int
	size    int
	bands   []band
}

//band describes the rows [from, to) calculated by one worker
type band struct {
	from      int
	to        int
	liveCells int
	changed   bool
}

func newMultithreadedEngine(size int, workers int) *multithreadedEngine {
	if workers < 1 {
		workers = 1
	}
	me := &multithreadedEngine{workers: workers}
	me.split(size)
	return me
}

//split divides size rows between the workers
func (me *multithreadedEngine) split(size int) {
	rowsPerWorker := size / me.workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	} else if rowsPerWorker*me.workers < size {
		rowsPerWorker++
	}
	me.size = size
	me.bands = make([]band, 0, me.workers)
	for from := 0; from < size; from += rowsPerWorker {
		to := from + rowsPerWorker
		if to > size {
			to = size
		}
		me.bands = append(me.bands, band{from: from, to: to})
	}
}

func (me *multithreadedEngine) Name() string { return "multithreaded" }

//Next starts one goroutine per band, waits for all of them and swaps the buffers
func (me *multithreadedEngine) Next(g *Grid) (liveCells int, changed bool) {
	if me.size != g.size {
		me.split(g.size)
	}
	var waitGroup sync.WaitGroup
	for i := range me.bands {
		b := &me.bands[i]
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			b.liveCells, b.changed = nextRows(g.cells, g.next, b.from, b.to)
		}()
	}
	waitGroup.Wait()
	for _, b := range me.bands {
		liveCells += b.liveCells
		changed = changed || b.changed
	}
	g.swap()
	return
}
