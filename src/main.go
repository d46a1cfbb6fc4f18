package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"lifeloop/src/universe"
	"lifeloop/src/view"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/integrii/flaggy"
)

const DefMaxSteps = 1000

type EnvOptions struct {
	interactive bool
	randomData  bool
	template    string
	row         int //template origin, -1 centres the template
	col         int
	maxSteps    int
	logPath     string
}

func main() {
	eo, uo := initOptions()

	logger, closeLog, err := newLogger(eo)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	log.SetOutput(logger.Writer())
	uo.Logger = logger

	if err := eo.apply(uo); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	if eo.interactive {
		if err := runInteractive(uo); err != nil {
			logger.Print(err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := runHeadless(uo, eo.maxSteps); err != nil {
		log.Fatal(err)
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	o := universe.DefaultUniverseOptions
	uo = &o
	eo = &EnvOptions{row: -1, col: -1, maxSteps: DefMaxSteps}

	flaggy.SetName("lifeloop")
	flaggy.SetDescription("Conway's Game of Life driven by the command loop")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Size, "n", "size", "Side length of the square simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Float64(&uo.Density, "d", "density", "Probability of the cell to be alive after randomize, in (0, 1)")
	flaggy.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	flaggy.Int64(&uo.Seed, "", "seed", "Random seed, 0 seeds with the current time")
	flaggy.String(&eo.template, "t", "template", "Settle with the template ["+strings.Join(universe.TemplateNames(), "|")+"]")
	flaggy.Int(&eo.row, "", "row", "Template origin row, centred when omitted")
	flaggy.Int(&eo.col, "", "col", "Template origin column, centred when omitted")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "Stop the headless simulation after maxSteps, 0 runs until interrupted")
	flaggy.Bool(&eo.interactive, "u", "interactive", "Start interactive mode")
	flaggy.String(&eo.logPath, "l", "log", "Write the log to the file")

	flaggy.Parse()

	return
}

//apply copies the seeding options to the universe options
func (eo *EnvOptions) apply(uo *universe.Options) error {
	if _, err := universe.NewEngine(uo.Engine, 1); err != nil {
		return err
	}
	uo.RandomStart = eo.randomData
	if eo.template == "" {
		return nil
	}
	tmpl, err := universe.TemplateByName(eo.template)
	if err != nil {
		return err
	}
	uo.Template = tmpl.Name
	h, w := templateExtent(tmpl)
	uo.Origin = [2]int{eo.row, eo.col}
	if eo.row < 0 {
		uo.Origin[0] = (uo.Size - h) / 2
	}
	if eo.col < 0 {
		uo.Origin[1] = (uo.Size - w) / 2
	}
	return nil
}

//templateExtent returns the height and the width of the template
func templateExtent(t universe.Template) (h int, w int) {
	for _, c := range t.Coordinates {
		if len(c) < 2 {
			continue
		}
		if c[0]+1 > h {
			h = c[0] + 1
		}
		if c[1]+1 > w {
			w = c[1] + 1
		}
	}
	return
}

//newLogger writes to the log file if it is set
//the interactive mode discards the log otherwise, it would break the terminal UI
func newLogger(eo *EnvOptions) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case eo.logPath != "":
		f, err := os.OpenFile(eo.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case eo.interactive:
		w = ioutil.Discard
	}
	return log.New(w, "lifeloop ", log.LstdFlags), closeFn, nil
}

func runInteractive(uo *universe.Options) error {
	u, err := universe.New(uo, nil)
	if err != nil {
		return err
	}
	defer func() {
		u.Close()
		<-u.Done()
	}()

	ui, err := view.NewConsoleUI(u, refreshInterval(u))
	if err != nil {
		return err
	}
	return ui.Start()
}

//refreshInterval redraws the field once per generation
//the universe options carry the resolved interval, zero in the flags means the default
func refreshInterval(u *universe.Universe) time.Duration {
	return u.Options().Interval
}

func runHeadless(uo *universe.Options, maxSteps int) error {
	stateCh := make(chan universe.Status, 10) //the buffered channel to getting the universe status
	u, err := universe.New(uo, stateCh)
	if err != nil {
		return err
	}

	out := view.NewConsoleOut(os.Stdout, true)
	out.Configuration(u.Options())
	out.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	if err := u.Run(); err != nil {
		return err
	}
loop:
	for {
		select {
		case st := <-stateCh:
			out.Refresh(st)
			if maxSteps > 0 && st.IterationNum >= maxSteps {
				break loop
			}
		case <-interrupt:
			break loop
		}
	}

	if err := u.Stop(); err != nil {
		return err
	}
	u.Close()
	<-u.Done()

	st, err := u.Status()
	if err != nil {
		return err
	}
	out.Finish(st)
	return nil
}
