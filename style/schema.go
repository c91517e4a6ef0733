// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"sort"
	"strings"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// MainComponent is the component that bare keyword arguments target.
const MainComponent = "main"

// AxesComponent is the component that receives axes-phase attributes.
const AxesComponent = "axes"

// An AttrSet declares the attributes a component accepts in one
// phase.
type AttrSet struct {
	Accepted []string
	// Required attributes must resolve from some source.
	Required []string
}

// A Schema declares, for one plot type, which components exist in
// each phase and which attributes each component accepts.
// Schemas are immutable once built.
type Schema struct {
	plotType string
	phases   map[Phase]map[string]attrSet
	// components lists component names in declaration order.
	components []string
}

type attrSet struct {
	accepted map[string]bool
	required map[string]bool
	order    []string
}

// NewSchema builds the schema for plotType from decl, which maps
// phase -> component -> attribute set.
func NewSchema(plotType string, decl map[Phase]map[string]AttrSet) (*Schema, error) {
	s := &Schema{plotType: plotType, phases: make(map[Phase]map[string]attrSet)}
	seen := make(map[string]bool)
	for _, phase := range Phases {
		comps := decl[phase]
		names := make([]string, 0, len(comps))
		for name := range comps {
			names = append(names, name)
		}
		sort.Strings(names)
		s.phases[phase] = make(map[string]attrSet, len(comps))
		for _, name := range names {
			d := comps[name]
			as := attrSet{accepted: make(map[string]bool), required: make(map[string]bool)}
			for _, a := range d.Accepted {
				if strings.Contains(a, ".") {
					return nil, &diag.SchemaError{PlotType: plotType, Component: name, Phase: string(phase), Attr: a, Msg: "attribute names may not contain '.'"}
				}
				if !as.accepted[a] {
					as.accepted[a] = true
					as.order = append(as.order, a)
				}
			}
			for _, a := range d.Required {
				if !as.accepted[a] {
					return nil, &diag.SchemaError{PlotType: plotType, Component: name, Phase: string(phase), Attr: a, Msg: "required attribute is not accepted"}
				}
				as.required[a] = true
			}
			s.phases[phase][name] = as
			if !seen[name] {
				seen[name] = true
				s.components = append(s.components, name)
			}
		}
	}
	for phase := range decl {
		if !phase.valid() {
			return nil, &diag.SchemaError{PlotType: plotType, Phase: string(phase), Msg: "unknown phase"}
		}
	}
	return s, nil
}

// PlotType returns the plot type the schema describes.
func (s *Schema) PlotType() string {
	return s.plotType
}

// Components returns the names of all components in any phase.
func (s *Schema) Components() []string {
	return append([]string(nil), s.components...)
}

// ComponentsIn returns the components declared for phase, sorted by
// name.
func (s *Schema) ComponentsIn(phase Phase) []string {
	var names []string
	for name := range s.phases[phase] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attrs returns the attributes component accepts in phase. It fails
// with a *diag.SchemaError if the phase or component is unknown.
func (s *Schema) Attrs(phase Phase, component string) ([]string, error) {
	as, err := s.lookup(phase, component)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), as.order...), nil
}

// Required reports whether attr is required for component in phase.
func (s *Schema) Required(phase Phase, component, attr string) bool {
	return s.phases[phase][component].required[attr]
}

// Accepts reports whether component accepts attr in any phase.
func (s *Schema) Accepts(component, attr string) bool {
	for _, comps := range s.phases {
		if comps[component].accepted[attr] {
			return true
		}
	}
	return false
}

func (s *Schema) lookup(phase Phase, component string) (attrSet, error) {
	if !phase.valid() {
		return attrSet{}, &diag.SchemaError{PlotType: s.plotType, Component: component, Phase: string(phase), Msg: "unknown phase"}
	}
	as, ok := s.phases[phase][component]
	if !ok {
		return attrSet{}, &diag.SchemaError{
			PlotType:  s.plotType,
			Component: component,
			Phase:     string(phase),
			Msg:       "no such component; have " + strings.Join(s.ComponentsIn(phase), ", "),
		}
	}
	return as, nil
}

// acceptedAnywhere returns every attribute component accepts in any
// phase, sorted.
func (s *Schema) acceptedAnywhere(component string) []string {
	set := make(map[string]bool)
	for _, comps := range s.phases {
		for a := range comps[component].accepted {
			set[a] = true
		}
	}
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// ScopeKwargs validates caller keyword arguments against s and splits
// them by component. A bare key targets MainComponent; a key of the
// form "component.attr" targets that component. Keys that no phase of
// the target component accepts are a *diag.ConfigError.
func (s *Schema) ScopeKwargs(kwargs Attrs) (map[string]Attrs, error) {
	out := make(map[string]Attrs)
	for _, key := range kwargs.Keys() {
		comp, attr := MainComponent, key
		if i := strings.IndexByte(key, '.'); i >= 0 {
			comp, attr = key[:i], key[i+1:]
		}
		if !s.Accepts(comp, attr) {
			known := s.acceptedAnywhere(comp)
			if len(known) == 0 {
				return nil, diag.Configf(key, "plot type %s has no component %q (have %s)", s.plotType, comp, strings.Join(s.components, ", "))
			}
			return nil, diag.Configf(key, "%s/%s does not accept %q (accepted: %s)", s.plotType, comp, attr, strings.Join(known, ", "))
		}
		if out[comp] == nil {
			out[comp] = make(Attrs)
		}
		out[comp][attr] = kwargs[key]
	}
	return out, nil
}
