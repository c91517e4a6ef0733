// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"image/color"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// BaseType is the pseudo plot type that holds a phase's global
// defaults.
const BaseType = "*"

// A Cycle is the sequence of style values handed out to successive
// categories of a grouping dimension.
type Cycle struct {
	Colors     []color.Color
	Markers    []string
	LineStyles []string
}

func (c Cycle) clone() Cycle {
	return Cycle{
		Colors:     append([]color.Color(nil), c.Colors...),
		Markers:    append([]string(nil), c.Markers...),
		LineStyles: append([]string(nil), c.LineStyles...),
	}
}

// A Theme is an immutable set of default attribute values, organized
// by phase and plot type.
//
// Themes are shared by every resolution on a figure and are never
// modified after construction. Derive a new theme with With.
type Theme struct {
	name string
	// values maps phase -> plot type -> attribute defaults. The
	// BaseType entry holds the global defaults for the phase.
	// Within a plot type, a key of the form "component.attr"
	// overrides "attr" for that component.
	values   map[Phase]map[string]Attrs
	cycle    Cycle
	colormap string
}

// Name returns the theme's name.
func (t *Theme) Name() string {
	return t.name
}

// Cycle returns a copy of the theme's style cycle.
func (t *Theme) Cycle() Cycle {
	return t.cycle.clone()
}

// Colormap returns the name of the theme's default continuous color
// map.
func (t *Theme) Colormap() string {
	return t.colormap
}

// Lookup returns the plot-type default for attr of component in
// phase, falling back to the base default. It reports which layer
// supplied the value.
func (t *Theme) Lookup(phase Phase, plotType, component, attr string) (v interface{}, fromPlotType, ok bool) {
	if v, ok := t.lookupType(phase, plotType, component, attr); ok {
		return v, true, true
	}
	v, ok = t.lookupType(phase, BaseType, component, attr)
	if !ok && attr == "cmap" && t.colormap != "" {
		return t.colormap, false, true
	}
	return v, false, ok
}

func (t *Theme) lookupType(phase Phase, plotType, component, attr string) (interface{}, bool) {
	vals := t.values[phase][plotType]
	if vals == nil {
		return nil, false
	}
	if component != "" && component != MainComponent {
		if v, ok := vals[component+"."+attr]; ok {
			return v, true
		}
	}
	v, ok := vals[attr]
	return v, ok
}

// Overrides describes changes to a theme. Values replace individual
// attributes and leave the rest of the theme alone. A non-nil Cycle
// replaces the whole cycle.
type Overrides struct {
	Name     string
	Values   map[Phase]map[string]Attrs
	Cycle    *Cycle
	Colormap string
}

// With returns a new theme that applies o on top of t. t itself is
// unchanged.
func (t *Theme) With(o Overrides) (*Theme, error) {
	nt := &Theme{
		name:     t.name,
		values:   make(map[Phase]map[string]Attrs, len(t.values)),
		cycle:    t.cycle.clone(),
		colormap: t.colormap,
	}
	for phase, types := range t.values {
		nt.values[phase] = make(map[string]Attrs, len(types))
		for pt, attrs := range types {
			nt.values[phase][pt] = attrs.Clone()
		}
	}
	if o.Name != "" {
		nt.name = o.Name
	}
	if o.Colormap != "" {
		nt.colormap = o.Colormap
	}
	if o.Cycle != nil {
		if len(o.Cycle.Colors) == 0 || len(o.Cycle.Markers) == 0 || len(o.Cycle.LineStyles) == 0 {
			return nil, diag.Configf("Cycle", "colors, markers, and line styles must all be non-empty")
		}
		nt.cycle = o.Cycle.clone()
	}
	for phase, types := range o.Values {
		if !phase.valid() {
			return nil, diag.Configf("theme", "unknown phase %q", phase)
		}
		if nt.values[phase] == nil {
			nt.values[phase] = make(map[string]Attrs)
		}
		for pt, attrs := range types {
			attrs, err := normalize(attrs)
			if err != nil {
				return nil, err
			}
			dst := nt.values[phase][pt]
			if dst == nil {
				dst = make(Attrs, len(attrs))
				nt.values[phase][pt] = dst
			}
			for k, v := range attrs {
				dst[k] = v
			}
		}
	}
	return nt, nil
}

// autoPalette is the default color cycle. The first six colors match
// go-gg's discrete palette.
var autoPalette = []color.Color{
	color.RGBA{0x4c, 0x72, 0xb0, 0xff},
	color.RGBA{0x55, 0xa8, 0x68, 0xff},
	color.RGBA{0xc4, 0x4e, 0x52, 0xff},
	color.RGBA{0x81, 0x72, 0xb2, 0xff},
	color.RGBA{0xcc, 0xb9, 0x74, 0xff},
	color.RGBA{0x64, 0xb5, 0xcd, 0xff},
	color.RGBA{0x8c, 0x8c, 0x8c, 0xff},
	color.RGBA{0xda, 0x8b, 0xc3, 0xff},
}

var defaultTheme = mustTheme(Overrides{
	Name: "default",
	Cycle: &Cycle{
		Colors:     autoPalette,
		Markers:    []string{"o", "s", "^", "D", "v", "x", "+"},
		LineStyles: []string{"-", "--", ":", "-."},
	},
	Colormap: "viridis",
	Values: map[Phase]map[string]Attrs{
		PhaseDraw: {
			BaseType: {
				"color":     autoPalette[0],
				"alpha":     1.0,
				"linewidth": 1.5,
				"linestyle": "-",
			},
			"scatter": {
				"alpha":  0.8,
				"marker": "o",
				"size":   6.0,
			},
			"line": {
				"linewidth":  2.0,
				"markersize": 4.0,
			},
			"bar": {
				"alpha": 0.9,
				"width": 0.8,
			},
			"errorbar": {
				"marker":               "o",
				"markersize":           4.0,
				"error-bars.linewidth": 1.0,
				"error-bars.capsize":   3.0,
				"error-bars.alpha":     0.7,
			},
			"fill": {
				"alpha": 0.3,
			},
		},
		PhasePost: {
			BaseType: {
				"zorder":  2,
				"visible": true,
			},
			"scatter": {
				"edgecolor": "white",
				"edgewidth": 0.5,
			},
			"fill": {
				"zorder": 1,
			},
		},
		PhaseAxes: {
			BaseType: {
				"grid":       true,
				"gridcolor":  "#e5e5e5",
				"background": "white",
				"ticks":      5,
				"legend":     true,
			},
		},
	},
})

func mustTheme(o Overrides) *Theme {
	t, err := (&Theme{}).With(o)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in theme.
func Default() *Theme {
	return defaultTheme
}
