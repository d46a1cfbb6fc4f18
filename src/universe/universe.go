package universe

import (
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"sync"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Size        int
	Interval    time.Duration //pause between the generations while running
	Density     float64       //probability of the cell to be alive after Randomize
	Engine      string
	Seed        int64 //random seed, 0 means seeded by the current time
	RandomStart bool  //settle with random data before the main loop starts
	Template    string
	Origin      [2]int //[row, col] of the template origin
	Logger      *log.Logger
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Snapshot is the consistent copy of the grid and the status
type Snapshot struct {
	Grid   *Grid
	Status Status
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 200
	DefSize               = 40
	DefDensity            = 0.2
	DefEngine             = "simple"
)

const (
	RunningStateStopped RunningState = iota
	RunningStateRunning
)

func (rs RunningState) String() string {
	if rs == RunningStateRunning {
		return "running"
	}
	return "stopped"
}

var DefaultUniverseOptions = Options{
	Size:     DefSize,
	Interval: DefSimulationInterval,
	Density:  DefDensity,
	Engine:   DefEngine,
}

//Universe owns the grid and the goroutine which is the only writer of it
//commands are queued and applied by the main loop, readers take the same lock
type Universe struct {
	options Options
	state   struct {
		sync.Mutex
		grid   *Grid
		status Status
		fault  error //set when the main loop failed while holding the lock
	}
	commands      *commandQueue
	stateCh       chan Status
	rng           *rand.Rand
	log           *log.Logger
	nextIteration func(g *Grid) (liveCells int, changed bool)
	done          chan struct{}
}

//New creates the Universe and starts its main loop
//stateCh is optional: every change is offered to it without blocking
func New(o *Options, stateCh chan Status) (*Universe, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	opts := *o
	if opts.Interval == 0 {
		opts.Interval = DefSimulationInterval
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, opts.Interval)
	}
	if opts.Density == 0 {
		opts.Density = DefDensity
	}
	if opts.Density <= 0 || opts.Density >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDensity, opts.Density)
	}
	if opts.Engine == "" {
		opts.Engine = DefEngine
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(ioutil.Discard, "", 0)
	}

	grid, err := NewGrid(opts.Size)
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(opts.Engine, opts.Size)
	if err != nil {
		return nil, err
	}

	u := &Universe{
		options:       opts,
		commands:      newCommandQueue(),
		stateCh:       stateCh,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		log:           opts.Logger,
		nextIteration: engine.Next,
		done:          make(chan struct{}),
	}
	u.state.grid = grid

	if opts.RandomStart {
		grid.Randomize(u.rng, opts.Density)
	}
	if opts.Template != "" {
		tmpl, err := TemplateByName(opts.Template)
		if err != nil {
			return nil, err
		}
		grid.SettleTemplate(tmpl, opts.Origin[0], opts.Origin[1])
	}
	u.state.status.LiveCells = grid.LiveCells()

	u.log.Printf("universe %dx%d, engine %s, interval %v", opts.Size, opts.Size, engine.Name(), opts.Interval)
	go u.mainLoop()
	return u, nil
}

//Options returns the universe configuration
func (u *Universe) Options() Options {
	return u.options
}

//Send queues the command for the main loop, returns immediately
func (u *Universe) Send(c Command) error {
	return u.commands.push(c)
}

//Run starts the continuous simulation, returns immediately
func (u *Universe) Run() error { return u.Send(CommandStart) }

//Stop stops the continuous simulation, returns immediately
func (u *Universe) Stop() error { return u.Send(CommandStop) }

//Step does one simulation step, returns immediately
func (u *Universe) Step() error { return u.Send(CommandStep) }

//Randomize settles the universe with random data, returns immediately
func (u *Universe) Randomize() error { return u.Send(CommandRandomize) }

//Clear kills all cells, returns immediately
func (u *Universe) Clear() error { return u.Send(CommandClear) }

//Close closes the command queue, the main loop exits after the queued commands are applied
//Done is closed when it has exited
func (u *Universe) Close() {
	u.commands.close()
}

//Done returns the channel closed when the main loop has exited
func (u *Universe) Done() <-chan struct{} {
	return u.done
}

//View calls fn with the grid and the status while holding the lock
//fn must not keep the grid and must return quickly, the main loop waits for it
func (u *Universe) View(fn func(g *Grid, st Status)) error {
	u.state.Lock()
	defer u.state.Unlock()
	if u.state.fault != nil {
		return u.state.fault
	}
	fn(u.state.grid, u.state.status)
	return nil
}

//Snapshot returns the copy of the grid and the status
func (u *Universe) Snapshot() (s Snapshot, err error) {
	err = u.View(func(g *Grid, st Status) {
		s = Snapshot{Grid: g.Clone(), Status: st}
	})
	return
}

//Status returns current universe status
func (u *Universe) Status() (st Status, err error) {
	err = u.View(func(_ *Grid, s Status) {
		st = s
	})
	return
}

//mainLoop - the main cycle, should start as a goroutine
//waits for the command and applies it, while running steps on every tick
//taking at most one queued command per tick
func (u *Universe) mainLoop() {
	defer close(u.done)
	defer u.log.Printf("main loop finished")
	for {
		cmd, ok := u.commands.pop()
		if !ok {
			return
		}
		u.state.Lock()
		u.apply(cmd)
		for u.state.status.RunningMode == RunningStateRunning {
			u.apply(CommandStep)
			u.state.Unlock()

			time.Sleep(u.options.Interval)

			u.state.Lock()
			cmd, ok, closed := u.commands.tryPop()
			if closed {
				u.state.Unlock()
				return
			}
			if ok {
				u.apply(cmd)
			}
		}
		u.state.Unlock()
	}
}

//apply executes the command, the lock must be held
//a panic is turned into the fault returned to the readers, the universe is stopped
func (u *Universe) apply(c Command) {
	defer func() {
		if r := recover(); r != nil {
			u.state.fault = fmt.Errorf("%w: %v failed: %v", ErrLockUnavailable, c, r)
			u.state.status.RunningMode = RunningStateStopped
			u.log.Printf("%v", u.state.fault)
		}
	}()

	st := &u.state.status
	if u.state.fault != nil && (c == CommandStart || c == CommandStep) {
		u.log.Printf("%v ignored, the grid must be cleared or randomized first", c)
		return
	}
	switch c {
	case CommandStart:
		st.RunningMode = RunningStateRunning
	case CommandStop:
		st.RunningMode = RunningStateStopped
	case CommandStep:
		start := time.Now()
		live, _ := u.nextIteration(u.state.grid)
		st.IterationNum++
		st.LiveCells = live
		st.IterationTime = time.Since(start)
	case CommandRandomize:
		u.state.grid.Randomize(u.rng, u.options.Density)
		u.reset()
	case CommandClear:
		u.state.grid.Clear()
		u.reset()
	default:
		u.log.Printf("unknown command %d ignored", int(c))
		return
	}
	u.publish(*st)
}

//reset resets the counters after the whole grid was rewritten, it also clears the fault
func (u *Universe) reset() {
	u.state.status.IterationNum = 0
	u.state.status.IterationTime = 0
	u.state.status.LiveCells = u.state.grid.LiveCells()
	u.state.fault = nil
}

//publish offers the status to the stateCh, skipped if the reader is behind
func (u *Universe) publish(st Status) {
	if u.stateCh == nil {
		return
	}
	select {
	case u.stateCh <- st:
	default:
	}
}
