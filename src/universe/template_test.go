package universe

import (
	"errors"
	"testing"
)

func TestSettleTemplateKeepsOtherCells(t *testing.T) {
	g := newGrid(t, 10)
	settle(g, [2]int{9, 9}, [2]int{0, 0})
	placed := g.SettleTemplate(Templates["blinker"], 4, 3)
	if placed != 3 {
		t.Fatalf("placed %d cells", placed)
	}
	expectCells(t, g, [2]int{9, 9}, [2]int{0, 0}, [2]int{4, 3}, [2]int{4, 4}, [2]int{4, 5})
}

func TestSettleTemplateClipsAtEdges(t *testing.T) {
	g := newGrid(t, 5)
	placed := g.SettleTemplate(Templates["block"], 4, 4)
	if placed != 1 {
		t.Fatalf("placed %d cells", placed)
	}
	expectCells(t, g, [2]int{4, 4})

	g.Clear()
	if placed := g.SettleTemplate(Templates["block"], -1, -1); placed != 1 {
		t.Fatalf("negative origin placed %d cells", placed)
	}
	expectCells(t, g, [2]int{0, 0})
}

func TestGosperGun(t *testing.T) {
	tmpl, err := TemplateByName("gosper-gun")
	if err != nil {
		t.Fatal(err)
	}
	g := newGrid(t, 50)
	if placed := g.SettleTemplate(tmpl, 2, 2); placed != 36 {
		t.Fatalf("placed %d cells", placed)
	}
	if !g.Alive(2, 26) || !g.Alive(6, 2) || !g.Alive(10, 15) {
		t.Fatalf("gun is misplaced:\n%v", g)
	}
}

func TestTemplateOscillators(t *testing.T) {
	for _, name := range []string{"blinker", "beacon", "toad"} {
		t.Run(name, func(t *testing.T) {
			g := newGrid(t, 8)
			g.SettleTemplate(Templates[name], 2, 2)
			start := g.Clone()
			g.Step()
			if g.Equal(start) {
				t.Fatalf("%s did not change after one step", name)
			}
			g.Step()
			if !g.Equal(start) {
				t.Fatalf("%s did not return after two steps:\n%v", name, g)
			}
		})
	}
}

func TestTemplateByNameUnknown(t *testing.T) {
	if _, err := TemplateByName("r-pentomino"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	for _, name := range TemplateNames() {
		if tmpl, err := TemplateByName(name); err != nil || tmpl.Name != name {
			t.Fatalf("template %q: %v, %q", name, err, tmpl.Name)
		}
	}
}
