// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"sort"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// derived maps attributes that are only meaningful alongside another
// attribute to that precondition attribute.
var derived = map[string]string{
	"cmap": ChannelC,
	"vmin": ChannelC,
	"vmax": ChannelC,
}

// Source identifies which layer supplied a resolved value.
type Source int

const (
	SourceNone Source = iota
	SourceBase
	SourcePlotType
	SourceCycle
	SourceCaller
)

func (s Source) String() string {
	switch s {
	case SourceBase:
		return "base"
	case SourcePlotType:
		return "plot-type"
	case SourceCycle:
		return "cycle"
	case SourceCaller:
		return "caller"
	}
	return "none"
}

// A Resolver combines a theme with per-call inputs to produce final
// attribute maps. A Resolver holds no mutable state and may be shared.
type Resolver struct {
	theme *Theme
}

// NewResolver returns a Resolver backed by t. A nil t means Default().
func NewResolver(t *Theme) *Resolver {
	if t == nil {
		t = Default()
	}
	return &Resolver{theme: t}
}

// Theme returns the resolver's theme.
func (r *Resolver) Theme() *Theme {
	return r.theme
}

// A Request asks for the attributes of one component in one phase.
type Request struct {
	Schema    *Schema
	Component string
	Phase     Phase

	// Kwargs are the caller's literal values for this component,
	// keyed by bare attribute name. See Schema.ScopeKwargs.
	Kwargs Attrs

	// Mapped holds values for channels currently mapped to a
	// grouping column: cycle bundle values for the active category,
	// or a ColumnRef for a continuous channel.
	Mapped Attrs
}

// Resolve returns the attributes for req. Every attribute the
// component accepts in req.Phase takes the value of the highest
// precedence source that has one: caller, then mapped channel, then
// plot-type default, then base default. Attributes with no source are
// omitted unless required.
func (r *Resolver) Resolve(req Request) (Attrs, error) {
	out, _, err := r.resolve(req)
	return out, err
}

// Explain is like Resolve but also reports the source of each value.
func (r *Resolver) Explain(req Request) (Attrs, map[string]Source, error) {
	return r.resolve(req)
}

func (r *Resolver) resolve(req Request) (Attrs, map[string]Source, error) {
	s := req.Schema
	accepted, err := s.Attrs(req.Phase, req.Component)
	if err != nil {
		return nil, nil, err
	}
	for _, k := range req.Kwargs.Keys() {
		if !s.Accepts(req.Component, k) {
			return nil, nil, diag.Configf(k, "%s/%s does not accept %q", s.PlotType(), req.Component, k)
		}
	}
	kwargs, err := normalize(req.Kwargs)
	if err != nil {
		return nil, nil, err
	}

	out := make(Attrs, len(accepted))
	src := make(map[string]Source, len(accepted))
	for _, a := range accepted {
		if v, ok := kwargs[a]; ok {
			out[a], src[a] = v, SourceCaller
			continue
		}
		if v, ok := req.Mapped[a]; ok {
			out[a], src[a] = v, SourceCycle
			continue
		}
		if v, fromType, ok := r.theme.Lookup(req.Phase, s.PlotType(), req.Component, a); ok {
			out[a], src[a] = v, SourceBase
			if fromType {
				src[a] = SourcePlotType
			}
		}
	}

	// Drop derived attributes whose precondition did not resolve.
	for a, pre := range derived {
		if _, ok := out[a]; !ok {
			continue
		}
		if _, ok := out[pre]; !ok {
			delete(out, a)
			delete(src, a)
		}
	}

	var missing []string
	for _, a := range accepted {
		if _, ok := out[a]; !ok && s.Required(req.Phase, req.Component, a) {
			missing = append(missing, a)
		}
	}
	if missing != nil {
		sort.Strings(missing)
		return nil, nil, &diag.SchemaError{
			PlotType:  s.PlotType(),
			Component: req.Component,
			Phase:     string(req.Phase),
			Attr:      missing[0],
			Msg:       "required attribute did not resolve from any source",
		}
	}
	return out, src, nil
}

// SplitChannels separates channel selections from literal values in
// caller kwargs. A bare channel key whose value is a string naming a
// column of the active data is a channel selection; anything else is
// a literal. The c channel only accepts column names.
func SplitChannels(kwargs Attrs, hasColumn func(string) bool) (literals Attrs, channels map[string]string, err error) {
	literals = make(Attrs, len(kwargs))
	channels = make(map[string]string)
	for _, k := range kwargs.Keys() {
		v := kwargs[k]
		if IsChannel(k) {
			if col, ok := v.(string); ok && hasColumn(col) {
				channels[k] = col
				continue
			}
			if k == ChannelC {
				return nil, nil, diag.Configf(k, "%v must name a numeric data column", v)
			}
		}
		literals[k] = v
	}
	return literals, channels, nil
}
