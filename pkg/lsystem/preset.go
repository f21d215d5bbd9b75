package lsystem

import (
	"sort"

	"github.com/samber/lo"

	"github.com/chazu/morpho/pkg/geom"
)

// Preset is a named, ready-to-run rewriting system.
type Preset struct {
	Axiom       string
	Rules       map[rune]string
	Angle       float64 // degrees
	Draw        string  // symbols that step forward and draw; empty means DefaultDraw
	Description string
}

var presets = map[string]Preset{
	"tree": {
		Axiom:       "F",
		Rules:       map[rune]string{'F': "FF+[+F-F-F]-[-F+F+F]"},
		Angle:       25,
		Description: "realistic tree branching",
	},
	"bush": {
		Axiom:       "F",
		Rules:       map[rune]string{'F': "FF-[-F+F+F]+[+F-F-F]"},
		Angle:       22.5,
		Description: "dense bush",
	},
	"fern": {
		Axiom:       "X",
		Rules:       map[rune]string{'X': "F+[[X]-X]-F[-FX]+X", 'F': "FF"},
		Angle:       25,
		Description: "Barnsley-like fern",
	},
	"seaweed": {
		Axiom:       "F",
		Rules:       map[rune]string{'F': "FF-[XY]+[XY]", 'X': "+FY", 'Y': "-FX"},
		Angle:       22.5,
		Description: "swaying seaweed",
	},
	"dragon": {
		Axiom:       "FX",
		Rules:       map[rune]string{'X': "X+YF+", 'Y': "-FX-Y"},
		Angle:       90,
		Description: "dragon curve",
	},
	"sierpinski": {
		Axiom:       "F-G-G",
		Rules:       map[rune]string{'F': "F-G+F+G-F", 'G': "GG"},
		Angle:       120,
		Description: "Sierpinski triangle",
	},
	"hilbert": {
		Axiom:       "A",
		Rules:       map[rune]string{'A': "-BF+AFA+FB-", 'B': "+AF-BFB-FA+"},
		Angle:       90,
		Description: "Hilbert space-filling curve",
	},
	"gosper": {
		Axiom:       "A",
		Rules:       map[rune]string{'A': "A-B--B+A++AA+B-", 'B': "+A-BB--B-A++A+B"},
		Angle:       60,
		Draw:        "AB",
		Description: "Gosper curve (flowsnake)",
	},
	"binary_tree": {
		Axiom:       "0",
		Rules:       map[rune]string{'0': "1[+0]-0", '1': "11"},
		Angle:       45,
		Draw:        "01",
		Description: "simple binary tree",
	},
	"crystal": {
		Axiom:       "F+F+F+F",
		Rules:       map[rune]string{'F': "FF+F++F+F"},
		Angle:       90,
		Description: "crystal-like growth",
	},
	"snowflake": {
		Axiom:       "F++F++F",
		Rules:       map[rune]string{'F': "F-F++F-F"},
		Angle:       60,
		Description: "Koch snowflake variation",
	},
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// FromPreset builds a System from the named preset. The returned system owns
// a copy of the preset's rules.
func FromPreset(name string) (*System, error) {
	p, ok := presets[name]
	if !ok {
		return nil, geom.Invalid("preset", name, "unknown preset")
	}
	return &System{
		Axiom: p.Axiom,
		Rules: lo.Assign(p.Rules),
		Angle: p.Angle,
		Draw:  p.Draw,
	}, nil
}
