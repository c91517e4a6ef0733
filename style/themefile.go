// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// themeFile is the YAML form of a theme overlay:
//
//	name: paper
//	colormap: viridis
//	cycle:
//	  colors: ["#1b9e77", "#d95f02", "#7570b3"]
//	  markers: [o, s, "^"]
//	  linestyles: ["-", "--"]
//	draw:
//	  "*": {linewidth: 1}
//	  scatter: {size: 4}
//	axes:
//	  "*": {grid: false}
type themeFile struct {
	Name     string `yaml:"name"`
	Colormap string `yaml:"colormap"`
	Cycle    *struct {
		Colors     []string `yaml:"colors"`
		Markers    []string `yaml:"markers"`
		LineStyles []string `yaml:"linestyles"`
	} `yaml:"cycle"`
	Draw map[string]map[string]interface{} `yaml:"draw"`
	Post map[string]map[string]interface{} `yaml:"post"`
	Axes map[string]map[string]interface{} `yaml:"axes"`
}

// LoadTheme reads a YAML theme overlay from r and applies it on top of
// the default theme.
func LoadTheme(r io.Reader) (*Theme, error) {
	var f themeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading theme: %w", err)
	}

	o := Overrides{
		Name:     f.Name,
		Colormap: f.Colormap,
		Values:   make(map[Phase]map[string]Attrs),
	}
	if f.Cycle != nil {
		c := &Cycle{Markers: f.Cycle.Markers, LineStyles: f.Cycle.LineStyles}
		for _, s := range f.Cycle.Colors {
			col, err := ParseColor(s)
			if err != nil {
				return nil, diag.Configf("cycle.colors", "%v", err)
			}
			c.Colors = append(c.Colors, col)
		}
		base := Default().Cycle()
		if c.Colors == nil {
			c.Colors = base.Colors
		}
		if c.Markers == nil {
			c.Markers = base.Markers
		}
		if c.LineStyles == nil {
			c.LineStyles = base.LineStyles
		}
		o.Cycle = c
	}
	for phase, types := range map[Phase]map[string]map[string]interface{}{
		PhaseDraw: f.Draw,
		PhasePost: f.Post,
		PhaseAxes: f.Axes,
	} {
		if len(types) == 0 {
			continue
		}
		o.Values[phase] = make(map[string]Attrs, len(types))
		for pt, attrs := range types {
			o.Values[phase][pt] = Attrs(attrs)
		}
	}
	return Default().With(o)
}
