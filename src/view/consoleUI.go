package view

import (
	"bytes"
	"errors"
	"fmt"
	"lifeloop/src/universe"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI renders the universe in the terminal and sends the commands bound to the keys
//the field is redrawn from the universe snapshot on its own timer
type ConsoleUI struct {
	u       *universe.Universe
	g       *gocui.Gui
	k       []keyBindings
	refresh time.Duration
	done    chan struct{}

	liveFiller string
	deadFiller string
}

const cropMessage = "The field size is larger than the viewing area"

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateStopped: aurora.Colorize("stopped", aurora.BlueFg).String(),
		universe.RunningStateRunning: aurora.Colorize("running", aurora.CyanFg).String(),
	}
)

//ErrInvalidRefresh is returned for the non-positive refresh interval
var ErrInvalidRefresh = errors.New("refresh interval must be positive")

func NewConsoleUI(u *universe.Universe, refresh time.Duration) (*ConsoleUI, error) {
	if refresh <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefresh, refresh)
	}
	var err error
	t := ConsoleUI{
		u:          u,
		refresh:    refresh,
		done:       make(chan struct{}),
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}

	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Start/Stop", t.cmdToggle, ""},
		{'r', "R", "Run", t.send(universe.CommandStart), ""},
		{'s', "S", "Stop", t.send(universe.CommandStop), ""},
		{'n', "N", "Next step", t.send(universe.CommandStep), ""},
		{'w', "W", "Randomize", t.send(universe.CommandRandomize), ""},
		{'c', "C", "Clear", t.send(universe.CommandClear), ""},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return err
		}
	}
	return nil
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() error {
	go t.refreshLoop()
	defer t.g.Close()
	defer close(t.done)
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (t *ConsoleUI) refreshLoop() {
	ticker := time.NewTicker(t.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.Refresh()
		case <-t.done:
			return
		}
	}
}

//Refresh redraws the field and the status from the current snapshot
func (t *ConsoleUI) Refresh() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderStatus(g)
		return nil
	})
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View("battlefield")
	if e != nil {
		return
	}
	//the entire field is redrawing at once
	v.Clear()
	maxW, maxH := v.Size()
	var field string
	err := t.u.View(func(grid *universe.Grid, _ universe.Status) {
		field = renderArea(grid.Rows(), maxW, maxH, t.liveFiller, t.deadFiller,
			aurora.Red(cropMessage).BgBlack().String())
	})
	if err != nil {
		field = aurora.Red(err.Error()).String()
	}
	_, _ = fmt.Fprint(v, field)
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, e := g.View("status")
	if e != nil {
		return
	}
	v.Clear()
	s, err := t.u.Status()
	if err != nil {
		_, _ = fmt.Fprintln(v, t.renderProp("Error", "%v", aurora.Red(err)))
		return
	}
	_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View) {
	c := t.u.Options()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Size, c.Size))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Density", "%v", c.Density))
	_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", c.Engine))
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//renderArea draws the rows into the maxW x maxH text block
//the last visible line is replaced by cropMsg when the rows do not fit
func renderArea(rows [][]universe.Cell, maxW int, maxH int, live string, dead string, cropMsg string) string {
	crop := len(rows) > maxH || (len(rows) > 0 && len(rows[0]) > maxW)

	var b bytes.Buffer
	for i, l := range rows {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == maxH-1 {
			b.WriteString(cropMsg)
			break
		}
		for j, e := range l {
			if j >= maxW {
				break
			}
			if e {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}

const (
	leftColumnWidth = 28
	headerHeight    = 3
	footerHeight    = 5
	minWindowHeight = 20
)

//pane is the view placed by layout, rect is computed from the terminal size
type pane struct {
	name  string
	title string
	rect  func(maxX, maxY int) (x0, y0, x1, y1 int)
	init  func(v *gocui.View) //called once when the view is created
}

func (t *ConsoleUI) panes() []pane {
	middle := func(maxY int) int { return headerHeight + (maxY-footerHeight-headerHeight)/2 }
	return []pane{
		{"configuration", "Configuration", func(_, maxY int) (int, int, int, int) {
			return 0, headerHeight, leftColumnWidth, middle(maxY)
		}, t.renderConfiguration},
		{"status", "Status", func(_, maxY int) (int, int, int, int) {
			return 0, middle(maxY) + 1, leftColumnWidth, maxY - footerHeight
		}, nil},
		{"battlefield", "Battle Field", func(maxX, maxY int) (int, int, int, int) {
			return leftColumnWidth + 1, headerHeight, maxX - 1, maxY - footerHeight
		}, nil},
		{"help", "", func(maxX, maxY int) (int, int, int, int) {
			return -1, maxY - footerHeight, maxX, maxY - footerHeight + 2
		}, func(v *gocui.View) {
			_, _ = fmt.Fprintln(v, keyHelp(t.k, aurora.NewAurora(true)))
		}},
	}
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minWindowHeight {
		for _, p := range t.panes() {
			_ = g.DeleteView(p.name)
		}
		return t.banner(g, maxX, maxY, "Terminal height too small")
	}
	if err := t.banner(g, maxX, headerHeight, "Conway's Game of Life"); err != nil {
		return err
	}

	for _, p := range t.panes() {
		x0, y0, x1, y1 := p.rect(maxX, maxY)
		v, err := g.SetView(p.name, x0, y0, x1, y1)
		if err == nil {
			continue
		}
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = p.title
		v.Frame = p.title != ""
		if p.init != nil {
			p.init(v)
		}
	}
	t.renderField(g)
	t.renderStatus(g)
	return nil
}

//banner draws the text centred in the header view of the given height
func (t *ConsoleUI) banner(g *gocui.Gui, maxX int, height int, text string) error {
	v, err := g.SetView("header", -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	_, _ = fmt.Fprint(v, centerText(text, maxX, height))
	return nil
}

//centerText pads the text to the middle of the width x height block
func centerText(text string, width int, height int) string {
	pad := 0
	if width > len(text) {
		pad = (width - len(text)) / 2
	}
	return strings.Repeat("\n", height/2) + strings.Repeat(" ", pad) + text
}

//keyHelp lists the key bindings in one line
func keyHelp(k []keyBindings, au aurora.Aurora) string {
	items := make([]string, 0, len(k))
	for _, kb := range k {
		items = append(items, fmt.Sprintf("%v: %s", au.Green(kb.name), kb.descr))
	}
	return "KEYBINDINGS: " + strings.Join(items, ", ")
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

//cmdToggle starts the stopped universe and stops the running one
func (t *ConsoleUI) cmdToggle(_ *gocui.View) error {
	st, err := t.u.Status()
	if err != nil {
		log.Printf("toggle: %v", err)
		return nil
	}
	if st.RunningMode == universe.RunningStateRunning {
		return t.sendCommand(universe.CommandStop)
	}
	return t.sendCommand(universe.CommandStart)
}

func (t *ConsoleUI) send(c universe.Command) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		return t.sendCommand(c)
	}
}

//sendCommand queues the command, a closed universe ends the UI
func (t *ConsoleUI) sendCommand(c universe.Command) error {
	if err := t.u.Send(c); err != nil {
		log.Printf("%v: %v", c, err)
		return gocui.ErrQuit
	}
	return nil
}
