package view

import (
	"fmt"
	"io"
	"lifeloop/src/universe"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
)

//ConsoleOut prints the universe progress for the headless mode
type ConsoleOut struct {
	w         io.Writer
	au        aurora.Aurora
	startTime time.Time
	every     int //print every n-th iteration
}

func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: 10}
}

//Configuration prints the running configuration
func (c *ConsoleOut) Configuration(o universe.Options) {
	_, _ = fmt.Fprintln(c.w, c.au.Bold("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension": fmt.Sprintf("%v x %v", o.Size, o.Size),
		"Interval":  o.Interval,
		"Density":   o.Density,
		"Engine":    o.Engine,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

//Refresh prints the status of every n-th iteration
func (c *ConsoleOut) Refresh(st universe.Status) {
	if st.IterationNum == 0 || st.IterationNum%c.every != 0 {
		return
	}
	_, _ = fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", c.au.Cyan(st.IterationNum), st.LiveCells)
}

//Finish prints the final status
func (c *ConsoleOut) Finish(st universe.Status) {
	_, _ = fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
	c.printHashData(map[string]interface{}{
		"Last iteration": st.IterationNum,
		"Total time":     time.Since(c.startTime).Round(time.Millisecond),
		"Live cells":     st.LiveCells,
	})
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
