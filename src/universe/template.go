package universe

import (
	"fmt"
	"sort"
)

//Template represent the seeding template which can used to settle the grid with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [row, col] offsets from the origin
}

//Templates holds the built-in seeding templates
var Templates = map[string]Template{
	"gosper-gun": {
		"gosper-gun",
		"Gosper glider gun, emits a glider every 30 generations",
		[][]int{
			{0, 24},
			{1, 22}, {1, 24},
			{2, 12}, {2, 13}, {2, 20}, {2, 21}, {2, 34}, {2, 35},
			{3, 11}, {3, 15}, {3, 20}, {3, 21}, {3, 34}, {3, 35},
			{4, 0}, {4, 1}, {4, 10}, {4, 16}, {4, 20}, {4, 21},
			{5, 0}, {5, 1}, {5, 10}, {5, 14}, {5, 16}, {5, 17}, {5, 22}, {5, 24},
			{6, 10}, {6, 16}, {6, 24},
			{7, 11}, {7, 15},
			{8, 12}, {8, 13},
		},
	},
	"glider": {
		"glider",
		"moves one cell down and right every 4 generations",
		[][]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	},
	"blinker": {
		"blinker",
		"period 2 oscillator",
		[][]int{{0, 0}, {0, 1}, {0, 2}},
	},
	"block": {
		"block",
		"still life",
		[][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	"beacon": {
		"beacon",
		"period 2 oscillator made of two blocks",
		[][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}, {2, 3}, {3, 2}, {3, 3}},
	},
	"toad": {
		"toad",
		"period 2 oscillator",
		[][]int{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}},
	},
}

//TemplateByName looks the built-in template up
func TemplateByName(name string) (Template, error) {
	t, ok := Templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

//TemplateNames returns the sorted names of the built-in templates
func TemplateNames() []string {
	names := make([]string, 0, len(Templates))
	for k := range Templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//SettleTemplate sets the template cells alive relative to the origin row, col
//other cells are kept, cells falling outside the grid are skipped
//returns the number of cells placed
func (g *Grid) SettleTemplate(t Template, row int, col int) int {
	placed := 0
	for _, v := range t.Coordinates {
		if len(v) < 2 {
			continue
		}
		if g.Set(row+v[0], col+v[1], true) {
			placed++
		}
	}
	return placed
}
