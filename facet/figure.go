// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package facet lays data out over a grid of subplots and draws it
// with consistent styles.
//
// A Figure owns a rendering backend and the state shared by every
// call that draws into it: the established grid shape and the
// category-to-style assignments of each grouping dimension. Each call
// to Plot facets one table by a Spec and draws one plot type into the
// targeted subplots. Layering several calls on one Figure overlays
// plots in the same subplots, and a category keeps the same color,
// marker, and line style in every subplot and every layer.
package facet

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/plots"
	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// A Figure is a grid of subplots drawn through a render.Backend.
//
// A Figure is not safe for concurrent use.
type Figure struct {
	backend  render.Backend
	registry *plots.Registry
	resolver *style.Resolver
	coord    *Coordinator
	logger   *slog.Logger
	dimCap   int

	// grid is the established layout, or nil before the first
	// successful Plot.
	grid   *Grid
	closed bool
}

// An Option configures a Figure.
type Option func(*Figure)

// WithTheme sets the theme styles resolve against. The default is
// style.Default().
func WithTheme(t *style.Theme) Option {
	return func(f *Figure) {
		if t != nil {
			f.resolver = style.NewResolver(t)
		}
	}
}

// WithRegistry sets the plot type registry. The default is
// plots.Default().
func WithRegistry(r *plots.Registry) Option {
	return func(f *Figure) {
		if r != nil {
			f.registry = r
		}
	}
}

// WithLogger sets the logger for empty-subplot warnings. The default
// discards them.
func WithLogger(l *slog.Logger) Option {
	return func(f *Figure) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithDimensionCap sets how many grouping dimensions the figure keeps
// style assignments for. See Coordinator.
func WithDimensionCap(n int) Option {
	return func(f *Figure) {
		f.dimCap = n
	}
}

// NewFigure returns an empty figure drawing through b.
func NewFigure(b render.Backend, opts ...Option) *Figure {
	f := &Figure{
		backend:  b,
		registry: plots.Default(),
		resolver: style.NewResolver(nil),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.coord = NewCoordinator(f.resolver.Theme().Cycle(), f.dimCap)
	return f
}

// Grid returns the figure's established grid, or nil if nothing has
// been plotted yet.
func (f *Figure) Grid() *Grid {
	return f.grid
}

// Theme returns the figure's theme.
func (f *Figure) Theme() *style.Theme {
	return f.resolver.Theme()
}

// StylesFor returns the style bundles assigned to values of dim, for
// building legends.
func (f *Figure) StylesFor(dim string, values []interface{}) (map[interface{}]style.Bundle, error) {
	if f.closed {
		return nil, diag.Configf("Figure", "figure is closed")
	}
	return f.coord.StylesFor(dim, values)
}

// Close releases the figure's state. Plot fails after Close.
func (f *Figure) Close() {
	f.closed = true
	f.grid = nil
	f.coord = nil
}

// A Layer is one plot type drawn from columns of the data.
type Layer struct {
	// Kind names a registered plot type.
	Kind string
	// X, Y, Y2, and Err name the data columns for each role. The
	// plot type determines which are required.
	X, Y, Y2, Err string
	// Label prefixes the legend label of each drawn series.
	Label string
	// Kwargs are caller style values. A key is either an attribute
	// of the main component or "component.attr". A bare channel key
	// ("color", "marker", "linestyle", "c") whose value names a data
	// column selects that column instead of a literal value.
	Kwargs style.Attrs
}

// Result reports what a Plot call did.
type Result struct {
	Grid *Grid
	// Targets are the cells the call addressed.
	Targets []render.Cell
	// Drawn are the targets that received data.
	Drawn []render.Cell
	// Skipped are the targets left undrawn for lack of data.
	Skipped []render.Cell
	// Warnings has one entry per skipped cell under EmptyWarn.
	Warnings []*diag.EmptyCellWarning
}

// plan is a validated Plot call.
type plan struct {
	kind    *plots.Kind
	layer   Layer
	spec    *Spec
	roles   map[string]string
	scoped  map[string]style.Attrs
	mapping map[string]string // channel -> column
	dims    []string          // grouping columns, sorted
}

// Plot facets data by spec and draws layer into the targeted subplots.
//
// Plot validates everything it can before drawing. Configuration
// errors, missing columns, a grid shape that differs from the
// established one, and empty subplots under EmptyError all fail the
// call without touching the backend or the figure's state.
func (f *Figure) Plot(data frame.Frame, layer Layer, spec Spec) (*Result, error) {
	if f.closed {
		return nil, diag.Configf("Figure", "figure is closed")
	}
	p, err := f.plan(data, layer, &spec)
	if err != nil {
		return nil, err
	}

	g, err := ComputeGrid(data, &spec)
	if err != nil {
		return nil, err
	}
	if f.grid != nil && f.grid.Shape() != g.Shape() {
		return nil, &diag.GridConflictError{Have: f.grid.Shape(), Got: g.Shape()}
	}
	targets, err := ResolveTargets(g, &spec)
	if err != nil {
		return nil, err
	}
	subsets := Subset(data, g, targets)

	res := &Result{Grid: g, Targets: targets}
	var live []render.Cell
	groups := make(map[render.Cell][]*lineGroup, len(targets))
	for _, cell := range targets {
		// Rows with a null grouping value belong to no series.
		if sub := subsets[cell]; sub.Len() > 0 {
			if grps := splitGroups(sub, p.dims); len(grps) > 0 {
				groups[cell] = grps
				live = append(live, cell)
				continue
			}
		}
		fc, _ := g.Facet(cell)
		w := fc.warning()
		switch spec.EmptyPolicy {
		case EmptyError:
			return nil, w
		case EmptyWarn:
			f.logger.Warn("subplot has no data",
				"row", cell.Row, "col", cell.Col, "facet", fc.Title(g.RowDim, g.ColDim))
			res.Warnings = append(res.Warnings, w)
		}
		res.Skipped = append(res.Skipped, cell)
	}
	if f.grid == nil {
		f.grid = g
	}

	for _, dim := range p.dims {
		f.coord.Pin(dim)
		defer f.coord.Unpin(dim)
	}
	for _, dim := range p.dims {
		f.coord.RegisterValues(dim, data.Sorted(dim))
	}

	for _, cell := range live {
		if err := f.configureAxes(p, g, cell); err != nil {
			return res, err
		}
		if err := f.drawCell(p, cell, subsets[cell], groups[cell]); err != nil {
			return res, err
		}
		res.Drawn = append(res.Drawn, cell)
	}
	return res, nil
}

func (f *Figure) plan(data frame.Frame, layer Layer, spec *Spec) (*plan, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	kind, err := f.registry.Lookup(layer.Kind)
	if err != nil {
		return nil, err
	}
	p := &plan{kind: kind, layer: layer, spec: spec, roles: make(map[string]string)}

	for _, r := range []struct{ role, col string }{
		{plots.RoleX, layer.X}, {plots.RoleY, layer.Y}, {plots.RoleY2, layer.Y2}, {plots.RoleErr, layer.Err},
	} {
		if !kind.Needs(r.role) {
			if r.col != "" {
				return nil, diag.Configf(r.role, "plot type %s does not use a %s column", kind.Name, r.role)
			}
			continue
		}
		if r.col == "" {
			return nil, diag.Configf(r.role, "plot type %s requires a %s column", kind.Name, r.role)
		}
		if _, err := data.Floats(r.col); err != nil {
			return nil, err
		}
		p.roles[r.role] = r.col
	}
	if err := data.Require(spec.LinesDimension); err != nil {
		return nil, err
	}

	literals, channels, err := style.SplitChannels(layer.Kwargs, data.Has)
	if err != nil {
		return nil, err
	}
	if p.scoped, err = kind.Schema.ScopeKwargs(literals); err != nil {
		return nil, err
	}

	p.mapping = make(map[string]string)
	if spec.LinesDimension != "" {
		for _, ch := range spec.linesChannels() {
			p.mapping[ch] = spec.LinesDimension
		}
	}
	for ch, col := range channels {
		p.mapping[ch] = col
	}
	seen := make(map[string]bool)
	for ch, col := range p.mapping {
		if !kind.Schema.Accepts(style.MainComponent, ch) {
			return nil, diag.Configf(ch, "plot type %s does not accept %q", kind.Name, ch)
		}
		if ch == style.ChannelC {
			if _, err := data.Floats(col); err != nil {
				return nil, err
			}
			continue
		}
		if !seen[col] {
			seen[col] = true
			p.dims = append(p.dims, col)
		}
	}
	sort.Strings(p.dims)
	for _, dim := range p.dims {
		if len(data.Distinct(dim)) == 0 {
			return nil, &diag.DataError{Column: dim, Available: data.Columns(), Msg: "grouping column has no non-null values"}
		}
	}
	return p, nil
}

func (f *Figure) configureAxes(p *plan, g *Grid, cell render.Cell) error {
	fc, _ := g.Facet(cell)
	xl, yl := p.layer.X, p.layer.Y
	if l := cellLabel(p.spec.XLabels, cell.Row, cell.Col); l != "" {
		xl = l
	}
	if l := cellLabel(p.spec.YLabels, cell.Row, cell.Col); l != "" {
		yl = l
	}
	ops := []render.AxisOp{
		{Kind: render.SetTitle, Text: fc.Title(g.RowDim, g.ColDim)},
		{Kind: render.SetXLabel, Text: xl},
		{Kind: render.SetYLabel, Text: yl},
	}
	if l := cellLimits(p.spec.XLimits, cell.Row, cell.Col); l != nil {
		ops = append(ops, render.AxisOp{Kind: render.SetXLimits, Min: l.Min, Max: l.Max})
	}
	if l := cellLimits(p.spec.YLimits, cell.Row, cell.Col); l != nil {
		ops = append(ops, render.AxisOp{Kind: render.SetYLimits, Min: l.Min, Max: l.Max})
	}
	axes, err := f.resolver.Resolve(style.Request{
		Schema:    p.kind.Schema,
		Component: style.AxesComponent,
		Phase:     style.PhaseAxes,
		Kwargs:    p.scoped[style.AxesComponent],
	})
	if err != nil {
		return err
	}
	ops = append(ops, render.AxisOp{Kind: render.SetStyle, Attrs: axes})
	return f.backend.ConfigureAxis(cell, ops...)
}

// groupKey holds a category of each grouping dimension. There is at
// most one grouping column per cycled channel.
type groupKey [3]interface{}

// A lineGroup is the rows of one subplot sharing a category in every
// grouping dimension.
type lineGroup struct {
	key     groupKey
	rows    []int
	bundles []style.Bundle
}

func splitGroups(sub frame.Frame, dims []string) []*lineGroup {
	if len(dims) == 0 {
		all := &lineGroup{rows: make([]int, sub.Len())}
		for i := range all.rows {
			all.rows[i] = i
		}
		return []*lineGroup{all}
	}
	cols := make([][]interface{}, len(dims))
	for i, d := range dims {
		cols[i] = sub.Values(d)
	}
	index := make(map[groupKey]*lineGroup)
	var out []*lineGroup
rows:
	for row := 0; row < sub.Len(); row++ {
		var k groupKey
		for i := range dims {
			v := cols[i][row]
			if frame.IsNull(v) {
				continue rows
			}
			k[i] = v
		}
		grp := index[k]
		if grp == nil {
			grp = &lineGroup{key: k}
			index[k] = grp
			out = append(out, grp)
		}
		grp.rows = append(grp.rows, row)
	}
	return out
}

func (f *Figure) drawCell(p *plan, cell render.Cell, sub frame.Frame, groups []*lineGroup) error {
	dimIndex := make(map[string]int, len(p.dims))
	for i, dim := range p.dims {
		dimIndex[dim] = i
		vals := make([]interface{}, len(groups))
		for j, grp := range groups {
			vals[j] = grp.key[i]
		}
		bundles, err := f.coord.StylesFor(dim, vals)
		if err != nil {
			return err
		}
		for _, grp := range groups {
			grp.bundles = append(grp.bundles, bundles[grp.key[i]])
		}
	}
	// Draw groups in the order their categories were assigned.
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].bundles, groups[j].bundles
		for k := range a {
			if a[k].Index != b[k].Index {
				return a[k].Index < b[k].Index
			}
		}
		return false
	})

	schema := p.kind.Schema
	for _, grp := range groups {
		mapped := make(style.Attrs, len(p.mapping))
		for ch, col := range p.mapping {
			if ch == style.ChannelC {
				mapped[ch] = style.ColumnRef(col)
				continue
			}
			if v, ok := grp.bundles[dimIndex[col]].Attr(ch); ok {
				mapped[ch] = v
			}
		}

		gdata := sub.Select(grp.rows)
		series, err := p.series(gdata)
		if err != nil {
			return err
		}
		in := plots.Input{
			Cell:   cell,
			Series: series,
			Label:  p.label(grp),
			Attrs:  make(map[string]style.Attrs),
		}
		for _, comp := range schema.ComponentsIn(style.PhaseDraw) {
			attrs, err := f.resolver.Resolve(style.Request{
				Schema: schema, Component: comp, Phase: style.PhaseDraw,
				Kwargs: p.scoped[comp], Mapped: mapped,
			})
			if err != nil {
				return err
			}
			in.Attrs[comp] = attrs
		}
		artists, err := p.kind.Draw(f.backend, p.kind, in)
		if err != nil {
			return fmt.Errorf("drawing %s in subplot %v: %w", p.kind.Name, cell, err)
		}

		post := make(map[string]style.Attrs)
		for _, comp := range schema.ComponentsIn(style.PhasePost) {
			attrs, err := f.resolver.Resolve(style.Request{
				Schema: schema, Component: comp, Phase: style.PhasePost,
				Kwargs: p.scoped[comp],
			})
			if err != nil {
				return err
			}
			post[comp] = attrs
		}
		if err := p.kind.Post(artists, post); err != nil {
			return fmt.Errorf("styling %s in subplot %v: %w", p.kind.Name, cell, err)
		}
	}
	return nil
}

func (p *plan) series(data frame.Frame) (render.Series, error) {
	var s render.Series
	for role, dst := range map[string]*[]float64{
		plots.RoleX: &s.X, plots.RoleY: &s.Y, plots.RoleY2: &s.Y2, plots.RoleErr: &s.Err,
	} {
		col, ok := p.roles[role]
		if !ok {
			continue
		}
		vs, err := data.Floats(col)
		if err != nil {
			return s, err
		}
		*dst = vs
	}
	if col, ok := p.mapping[style.ChannelC]; ok {
		vs, err := data.Floats(col)
		if err != nil {
			return s, err
		}
		s.C = vs
	}
	return s, nil
}

func (p *plan) label(grp *lineGroup) string {
	var parts []string
	for i := range p.dims {
		parts = append(parts, fmt.Sprint(grp.key[i]))
	}
	cats := strings.Join(parts, ", ")
	switch {
	case p.layer.Label == "":
		return cats
	case cats == "":
		return p.layer.Label
	}
	return p.layer.Label + " " + cats
}
