// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plots is the registry of plot types.
//
// A plot type is a flat record: its component schema, a draw function
// that issues backend draw calls, and a post-processing function that
// styles the returned artists. There is no type hierarchy; behavior
// varies by dispatching on the registry entry.
package plots

import (
	"sort"
	"strings"

	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// Data roles a plot type may require.
const (
	RoleX   = "x"
	RoleY   = "y"
	RoleY2  = "y2"
	RoleErr = "err"
)

// Input is one group's worth of data and styles for a draw function.
type Input struct {
	Cell   render.Cell
	Series render.Series
	Label  string
	// Attrs holds the resolved draw-phase attributes of each
	// component.
	Attrs map[string]style.Attrs
}

// A DrawFunc draws in through b and returns the artist of each
// component.
type DrawFunc func(b render.Backend, kind *Kind, in Input) (map[string]render.Artist, error)

// A PostFunc applies resolved post-phase attributes, keyed by
// component, to the artists a DrawFunc returned.
type PostFunc func(artists map[string]render.Artist, attrs map[string]style.Attrs) error

// A Kind describes one plot type.
type Kind struct {
	Name   string
	Schema *style.Schema
	// Roles lists the data roles the plot type needs.
	Roles []string
	Draw  DrawFunc
	Post  PostFunc
}

// Needs reports whether k requires data role.
func (k *Kind) Needs(role string) bool {
	for _, r := range k.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DrawComponents is the standard DrawFunc. It issues one backend draw
// call per draw-phase component, in component name order with main
// first.
func DrawComponents(b render.Backend, kind *Kind, in Input) (map[string]render.Artist, error) {
	comps := kind.Schema.ComponentsIn(style.PhaseDraw)
	sort.SliceStable(comps, func(i, j int) bool {
		return comps[i] == style.MainComponent && comps[j] != style.MainComponent
	})
	artists := make(map[string]render.Artist, len(comps))
	for _, comp := range comps {
		a, err := b.Draw(render.DrawCall{
			Kind:      kind.Name,
			Component: comp,
			Cell:      in.Cell,
			Series:    in.Series,
			Label:     in.Label,
			Attrs:     in.Attrs[comp],
		})
		if err != nil {
			return nil, err
		}
		artists[comp] = a
	}
	return artists, nil
}

// ApplyPost is the standard PostFunc. It applies each component's
// attributes to that component's artist.
func ApplyPost(artists map[string]render.Artist, attrs map[string]style.Attrs) error {
	comps := make([]string, 0, len(attrs))
	for comp := range attrs {
		comps = append(comps, comp)
	}
	sort.Strings(comps)
	for _, comp := range comps {
		a := artists[comp]
		if a == nil || len(attrs[comp]) == 0 {
			continue
		}
		if err := a.Apply(attrs[comp]); err != nil {
			return err
		}
	}
	return nil
}

// A Registry maps plot type names to kinds.
type Registry struct {
	kinds map[string]*Kind
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Register adds k to r. Names must be unique.
func (r *Registry) Register(k *Kind) error {
	if k.Name == "" || k.Schema == nil {
		return diag.Configf("Kind", "plot type needs a name and a schema")
	}
	if _, ok := r.kinds[k.Name]; ok {
		return diag.Configf("Kind", "plot type %q is already registered", k.Name)
	}
	if k.Draw == nil {
		k.Draw = DrawComponents
	}
	if k.Post == nil {
		k.Post = ApplyPost
	}
	r.kinds[k.Name] = k
	return nil
}

// Lookup returns the kind named name.
func (r *Registry) Lookup(name string) (*Kind, error) {
	k, ok := r.kinds[name]
	if !ok {
		return nil, diag.Configf("Kind", "unknown plot type %q (have %s)", name, strings.Join(r.Names(), ", "))
	}
	return k, nil
}

// Names returns the registered plot type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for n := range r.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
