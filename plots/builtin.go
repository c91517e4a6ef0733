// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"github.com/drothermel/dr-plotter-sub000/style"
)

// ErrorBarsComponent is the error bar component of errorbar plots.
const ErrorBarsComponent = "error-bars"

var (
	postAttrs = style.AttrSet{Accepted: []string{"zorder", "visible"}}
	axesAttrs = style.AttrSet{Accepted: []string{"grid", "gridcolor", "background", "ticks", "legend"}}
)

func mustSchema(name string, draw, post map[string]style.AttrSet) *style.Schema {
	s, err := style.NewSchema(name, map[style.Phase]map[string]style.AttrSet{
		style.PhaseDraw: draw,
		style.PhasePost: post,
		style.PhaseAxes: {style.AxesComponent: axesAttrs},
	})
	if err != nil {
		panic(err)
	}
	return s
}

func builtins() []*Kind {
	return []*Kind{
		{
			Name: "scatter",
			Schema: mustSchema("scatter",
				map[string]style.AttrSet{
					style.MainComponent: {
						Accepted: []string{"color", "alpha", "marker", "size", "c", "cmap", "vmin", "vmax"},
						Required: []string{"color"},
					},
				},
				map[string]style.AttrSet{
					style.MainComponent: {Accepted: []string{"zorder", "visible", "edgecolor", "edgewidth"}},
				}),
			Roles: []string{RoleX, RoleY},
		},
		{
			Name: "line",
			Schema: mustSchema("line",
				map[string]style.AttrSet{
					style.MainComponent: {
						Accepted: []string{"color", "alpha", "linestyle", "linewidth", "marker", "markersize"},
						Required: []string{"color"},
					},
				},
				map[string]style.AttrSet{style.MainComponent: postAttrs}),
			Roles: []string{RoleX, RoleY},
		},
		{
			Name: "bar",
			Schema: mustSchema("bar",
				map[string]style.AttrSet{
					style.MainComponent: {
						Accepted: []string{"color", "alpha", "width"},
						Required: []string{"color"},
					},
				},
				map[string]style.AttrSet{
					style.MainComponent: {Accepted: []string{"zorder", "visible", "edgecolor", "edgewidth"}},
				}),
			Roles: []string{RoleX, RoleY},
		},
		{
			Name: "errorbar",
			Schema: mustSchema("errorbar",
				map[string]style.AttrSet{
					style.MainComponent: {
						Accepted: []string{"color", "alpha", "linestyle", "linewidth", "marker", "markersize"},
						Required: []string{"color"},
					},
					ErrorBarsComponent: {
						Accepted: []string{"color", "alpha", "linewidth", "capsize"},
					},
				},
				map[string]style.AttrSet{
					style.MainComponent: postAttrs,
					ErrorBarsComponent:  postAttrs,
				}),
			Roles: []string{RoleX, RoleY, RoleErr},
		},
		{
			Name: "fill",
			Schema: mustSchema("fill",
				map[string]style.AttrSet{
					style.MainComponent: {
						Accepted: []string{"color", "alpha"},
						Required: []string{"color"},
					},
				},
				map[string]style.AttrSet{style.MainComponent: postAttrs}),
			Roles: []string{RoleX, RoleY, RoleY2},
		},
	}
}

// Default returns a new registry holding the built-in plot types:
// scatter, line, bar, errorbar, and fill. Each call returns a
// distinct registry, so callers may register more kinds without
// affecting anyone else.
func Default() *Registry {
	r := NewRegistry()
	for _, k := range builtins() {
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
	return r
}
