// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package echarts implements a render.Backend that writes an
// interactive HTML page with one ECharts chart per subplot.
package echarts

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aclements/go-gg/palette"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// Options control the page layout.
type Options struct {
	// Title is the page title.
	Title string
	// CellWidth and CellHeight are CSS sizes of each chart. The
	// defaults are "480px" and "360px".
	CellWidth, CellHeight string
}

// A Page is a render.Backend that collects draw calls into charts.
type Page struct {
	opts  Options
	cells map[render.Cell]*chart
}

// New returns an empty Page.
func New(opts Options) *Page {
	if opts.CellWidth == "" {
		opts.CellWidth = "480px"
	}
	if opts.CellHeight == "" {
		opts.CellHeight = "360px"
	}
	return &Page{opts: opts, cells: make(map[render.Cell]*chart)}
}

type chart struct {
	title, xlabel, ylabel string
	xlim, ylim            *[2]float64
	style                 style.Attrs
	series                []*series
}

// A series is one draw call and the render.Artist for it.
type series struct {
	call render.DrawCall
	post style.Attrs
}

func (s *series) Apply(attrs style.Attrs) error {
	for k, v := range attrs {
		s.post[k] = v
	}
	return nil
}

func (p *Page) chart(cell render.Cell) *chart {
	c := p.cells[cell]
	if c == nil {
		c = &chart{style: make(style.Attrs)}
		p.cells[cell] = c
	}
	return c
}

func (p *Page) Draw(call render.DrawCall) (render.Artist, error) {
	switch call.Kind {
	case "scatter", "line", "bar", "errorbar", "fill":
	default:
		return nil, fmt.Errorf("echarts: cannot draw %s/%s", call.Kind, call.Component)
	}
	if cm, ok := call.Attrs.String("cmap"); ok && cm != "viridis" {
		return nil, fmt.Errorf("echarts: unsupported colormap %q", cm)
	}
	s := &series{call: call, post: make(style.Attrs)}
	c := p.chart(call.Cell)
	c.series = append(c.series, s)
	return s, nil
}

func (p *Page) ConfigureAxis(cell render.Cell, ops ...render.AxisOp) error {
	c := p.chart(cell)
	for _, op := range ops {
		switch op.Kind {
		case render.SetTitle:
			c.title = op.Text
		case render.SetXLabel:
			c.xlabel = op.Text
		case render.SetYLabel:
			c.ylabel = op.Text
		case render.SetXLimits:
			c.xlim = &[2]float64{op.Min, op.Max}
		case render.SetYLimits:
			c.ylim = &[2]float64{op.Min, op.Max}
		case render.SetStyle:
			for k, v := range op.Attrs {
				c.style[k] = v
			}
		default:
			return fmt.Errorf("echarts: unknown axis operation %v", op.Kind)
		}
	}
	return nil
}

// Cells returns the cells holding charts, in row-major order.
func (p *Page) Cells() []render.Cell {
	cells := make([]render.Cell, 0, len(p.cells))
	for cell := range p.cells {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// Render writes the page to w.
func (p *Page) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = p.opts.Title
	if page.PageTitle == "" {
		page.PageTitle = "facetplot"
	}
	page.SetLayout(components.PageFlexLayout)
	for _, cell := range p.Cells() {
		page.AddCharts(p.cells[cell].build(p.opts))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

func (c *chart) build(o Options) *charts.Line {
	init := opts.Initialization{Width: o.CellWidth, Height: o.CellHeight}
	if bg, ok := c.style.Color("background"); ok {
		init.BackgroundColor = style.Hex(bg)
	}
	split := &opts.SplitLine{Show: opts.Bool(true)}
	if g, ok := c.style.Bool("grid"); ok {
		split.Show = opts.Bool(g)
	}
	if gc, ok := c.style.Color("gridcolor"); ok {
		split.LineStyle = &opts.LineStyle{Color: style.Hex(gc)}
	}
	legend := true
	if lg, ok := c.style.Bool("legend"); ok {
		legend = lg
	}

	xa := opts.XAxis{Name: c.xlabel, Type: "value", SplitLine: split}
	if c.xlim != nil {
		xa.Min, xa.Max = c.xlim[0], c.xlim[1]
	}
	ya := opts.YAxis{Name: c.ylabel, Type: "value", SplitLine: split}
	if c.ylim != nil {
		ya.Min, ya.Max = c.ylim[0], c.ylim[1]
	}

	base := charts.NewLine()
	gopts := []charts.GlobalOpts{
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: c.title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(legend), Top: "bottom"}),
		charts.WithXAxisOpts(xa),
		charts.WithYAxisOpts(ya),
	}
	if vm, ok := c.visualMap(); ok {
		gopts = append(gopts, charts.WithVisualMapOpts(vm))
	}
	base.SetGlobalOptions(gopts...)

	visible := make([]*series, 0, len(c.series))
	for _, s := range c.series {
		if v, ok := s.post.Bool("visible"); !ok || v {
			visible = append(visible, s)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		zi, _ := visible[i].post.Float("zorder")
		zj, _ := visible[j].post.Float("zorder")
		return zi < zj
	})
	for i, s := range visible {
		s.add(base, i)
	}
	return base
}

// visualMap returns the continuous color mapping for the chart's c
// channel, if any series uses one.
func (c *chart) visualMap() (opts.VisualMap, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := false
	for _, s := range c.series {
		if _, ok := s.call.Attrs["c"]; !ok {
			continue
		}
		found = true
		for _, v := range s.call.Series.C {
			if !math.IsNaN(v) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
		if v, ok := s.call.Attrs.Float("vmin"); ok {
			lo = v
		}
		if v, ok := s.call.Attrs.Float("vmax"); ok {
			hi = v
		}
	}
	if !found || math.IsInf(lo, 1) {
		return opts.VisualMap{}, false
	}
	stops := make([]string, 5)
	for i := range stops {
		stops[i] = style.Hex(palette.Viridis.Map(float64(i) / float64(len(stops)-1)))
	}
	return opts.VisualMap{
		Calculable: opts.Bool(true),
		Dimension:  "2",
		Min:        float32(lo),
		Max:        float32(hi),
		InRange:    &opts.VisualMapInRange{Color: stops},
	}, true
}

var symbols = map[string]string{
	"o": "circle",
	"s": "rect",
	"^": "triangle",
	"v": "triangle",
	"D": "diamond",
	"x": "pin",
	"+": "pin",
}

var lineTypes = map[string]string{
	"-":  "solid",
	"--": "dashed",
	":":  "dotted",
	"-.": "dashed",
}

func (s *series) color() string {
	if c, ok := s.call.Attrs.Color("color"); ok {
		return style.Hex(c)
	}
	return ""
}

func (s *series) itemStyle() opts.ItemStyle {
	is := opts.ItemStyle{Color: s.color()}
	if a, ok := s.call.Attrs.Float("alpha"); ok {
		is.Opacity = opts.Float(float32(a))
	}
	if ec, ok := s.post.Color("edgecolor"); ok {
		is.BorderColor = style.Hex(ec)
		if ew, ok := s.post.Float("edgewidth"); ok {
			is.BorderWidth = float32(ew)
		}
	}
	return is
}

func (s *series) lineStyle() opts.LineStyle {
	ls := opts.LineStyle{Color: s.color(), Width: 1.5}
	if w, ok := s.call.Attrs.Float("linewidth"); ok {
		ls.Width = float32(w)
	}
	if t, ok := s.call.Attrs.String("linestyle"); ok {
		ls.Type = lineTypes[t]
	}
	return ls
}

func name(s *series) string {
	if s.call.Label != "" {
		return s.call.Label
	}
	return s.call.Kind
}

func (s *series) add(base *charts.Line, idx int) {
	d := s.call.Series
	switch {
	case s.call.Component == "error-bars":
		// Each bar is a two-point segment sharing the series name,
		// so the legend toggles them together.
		for i, x := range d.X {
			y, e := at(d.Y, i), at(d.Err, i)
			if math.IsNaN(y) || math.IsNaN(e) {
				continue
			}
			base.AddSeries(name(s), []opts.LineData{
				{Value: []interface{}{num(x), num(y - e)}},
				{Value: []interface{}{num(x), num(y + e)}},
			},
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
				charts.WithLineStyleOpts(s.lineStyle()),
				charts.WithItemStyleOpts(s.itemStyle()),
			)
		}

	case s.call.Kind == "scatter":
		size := 6
		if v, ok := s.call.Attrs.Float("size"); ok {
			size = int(v + 0.5)
		}
		sym := "circle"
		if m, ok := s.call.Attrs.String("marker"); ok && symbols[m] != "" {
			sym = symbols[m]
		}
		_, mapped := s.call.Attrs["c"]
		data := make([]opts.ScatterData, 0, len(d.X))
		for i, x := range d.X {
			v := []interface{}{num(x), num(at(d.Y, i))}
			if mapped {
				v = append(v, num(at(d.C, i)))
			}
			data = append(data, opts.ScatterData{Value: v, Symbol: sym, SymbolSize: size})
		}
		sc := charts.NewScatter()
		sc.AddSeries(name(s), data, charts.WithItemStyleOpts(s.itemStyle()))
		base.Overlap(sc)

	case s.call.Kind == "bar":
		data := make([]opts.BarData, 0, len(d.X))
		for i, x := range d.X {
			data = append(data, opts.BarData{Value: []interface{}{num(x), num(at(d.Y, i))}})
		}
		bar := charts.NewBar()
		bar.AddSeries(name(s), data, charts.WithItemStyleOpts(s.itemStyle()))
		base.Overlap(bar)

	case s.call.Kind == "fill":
		// A transparent lower bound with the band stacked on top.
		stack := fmt.Sprintf("fill%d", idx)
		lower := make([]opts.LineData, 0, len(d.X))
		band := make([]opts.LineData, 0, len(d.X))
		for i, x := range d.X {
			lo, hi := at(d.Y2, i), at(d.Y, i)
			if lo > hi {
				lo, hi = hi, lo
			}
			lower = append(lower, opts.LineData{Value: []interface{}{num(x), num(lo)}})
			band = append(band, opts.LineData{Value: []interface{}{num(x), num(hi - lo)}})
		}
		alpha := float32(0.3)
		if a, ok := s.call.Attrs.Float("alpha"); ok {
			alpha = float32(a)
		}
		base.AddSeries(name(s)+" (lower)", lower,
			charts.WithLineChartOpts(opts.LineChart{Stack: stack, ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Opacity: opts.Float(0)}),
		)
		base.AddSeries(name(s), band,
			charts.WithLineChartOpts(opts.LineChart{Stack: stack, ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Opacity: opts.Float(0)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: s.color(), Opacity: opts.Float(alpha)}),
		)

	default: // line and errorbar main
		data := make([]opts.LineData, 0, len(d.X))
		for i, x := range d.X {
			data = append(data, opts.LineData{Value: []interface{}{num(x), num(at(d.Y, i))}})
		}
		lc := opts.LineChart{ShowSymbol: opts.Bool(false)}
		if m, ok := s.call.Attrs.String("marker"); ok && symbols[m] != "" {
			lc = opts.LineChart{ShowSymbol: opts.Bool(true), Symbol: symbols[m]}
		}
		base.AddSeries(name(s), data,
			charts.WithLineChartOpts(lc),
			charts.WithLineStyleOpts(s.lineStyle()),
			charts.WithItemStyleOpts(s.itemStyle()),
		)
	}
}

// num returns v for a chart data point. ECharts spells a missing
// value "-", and NaN does not encode as JSON.
func num(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return v
}

func at(vs []float64, i int) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return math.NaN()
}
