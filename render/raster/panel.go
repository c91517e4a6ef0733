// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/scale"

	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// A mark is one draw call. It is the render.Artist for that call.
type mark struct {
	call render.DrawCall
	post style.Attrs
}

func (m *mark) Apply(attrs style.Attrs) error {
	for k, v := range attrs {
		m.post[k] = v
	}
	return nil
}

func (m *mark) visible() bool {
	v, ok := m.post.Bool("visible")
	return !ok || v
}

func (m *mark) zorder() float64 {
	z, _ := m.post.Float("zorder")
	return z
}

func (m *mark) color(key string, def color.Color) color.Color {
	c, ok := m.call.Attrs.Color(key)
	if !ok {
		c, ok = m.post.Color(key)
	}
	if !ok {
		return def
	}
	alpha, ok := m.call.Attrs.Float("alpha")
	if !ok {
		return c
	}
	return withAlpha(c, alpha)
}

func (m *mark) float(key string, def float64) float64 {
	if v, ok := m.call.Attrs.Float(key); ok {
		return v
	}
	if v, ok := m.post.Float(key); ok {
		return v
	}
	return def
}

type panel struct {
	title, xlabel, ylabel string
	xlim, ylim            *[2]float64
	style                 style.Attrs
	marks                 []*mark
}

// A layout is a panel's position in output pixels and its data
// scales.
type layout struct {
	cell, plot image.Rectangle
	x, y       scale.Linear
	xticks     []float64
	yticks     []float64
}

const (
	marginLeft   = 52
	marginRight  = 12
	marginTop    = 22
	marginBottom = 34
)

func (p *panel) layout(cell image.Rectangle) *layout {
	l := &layout{
		cell: cell,
		plot: image.Rect(cell.Min.X+marginLeft, cell.Min.Y+marginTop, cell.Max.X-marginRight, cell.Max.Y-marginBottom),
	}
	xmin, xmax, ymin, ymax := p.dataRange()
	l.x = axisScale(xmin, xmax, p.xlim)
	l.y = axisScale(ymin, ymax, p.ylim)

	n := 5
	if v, ok := p.style.Float("ticks"); ok && v >= 1 {
		n = int(v)
	}
	l.xticks = ticks(l.x, n)
	l.yticks = ticks(l.y, n)
	return l
}

func axisScale(min, max float64, lim *[2]float64) scale.Linear {
	if lim != nil {
		return scale.Linear{Min: lim[0], Max: lim[1]}
	}
	if math.IsInf(min, 1) {
		return scale.Linear{Min: 0, Max: 1}
	}
	if min == max {
		return scale.Linear{Min: min - 0.5, Max: max + 0.5}
	}
	pad := (max - min) * 0.05
	return scale.Linear{Min: min - pad, Max: max + pad}
}

func ticks(s scale.Linear, n int) []float64 {
	major, _ := s.Ticks(scale.TickOptions{Max: n})
	out := major[:0:0]
	for _, t := range major {
		if t >= s.Min && t <= s.Max {
			out = append(out, t)
		}
	}
	return out
}

// dataRange returns the extent of every visible mark's data.
func (p *panel) dataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	addX := func(v float64) {
		if !math.IsNaN(v) {
			xmin, xmax = math.Min(xmin, v), math.Max(xmax, v)
		}
	}
	addY := func(v float64) {
		if !math.IsNaN(v) {
			ymin, ymax = math.Min(ymin, v), math.Max(ymax, v)
		}
	}
	for _, m := range p.marks {
		s := m.call.Series
		for i, x := range s.X {
			y := at(s.Y, i)
			switch {
			case m.call.Component == "error-bars":
				e := at(s.Err, i)
				addY(y - e)
				addY(y + e)
			case m.call.Kind == "bar":
				w := m.float("width", 0.8) / 2
				addX(x - w)
				addX(x + w)
				addY(0)
			case m.call.Kind == "fill":
				addY(at(s.Y2, i))
			}
			addX(x)
			addY(y)
		}
	}
	return
}

func at(vs []float64, i int) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return math.NaN()
}

// project maps a data point to supersampled pixels.
func (l *layout) project(x, y, ss float64) pt {
	px := float64(l.plot.Min.X) + l.x.Map(x)*float64(l.plot.Dx())
	py := float64(l.plot.Max.Y) - l.y.Map(y)*float64(l.plot.Dy())
	return pt{px * ss, py * ss}
}

func scaleRect(r image.Rectangle, ss float64) image.Rectangle {
	k := int(ss)
	return image.Rect(r.Min.X*k, r.Min.Y*k, r.Max.X*k, r.Max.Y*k)
}

func (p *panel) paintShapes(pa *painter, l *layout, ss float64) {
	bg := color.Color(color.White)
	if c, ok := p.style.Color("background"); ok {
		bg = c
	}
	pa.setClip(scaleRect(l.cell, ss))
	pa.fillRect(scaleRect(l.plot, ss), bg)

	if g, ok := p.style.Bool("grid"); !ok || g {
		gc := color.Color(color.RGBA{0xe5, 0xe5, 0xe5, 0xff})
		if c, ok := p.style.Color("gridcolor"); ok {
			gc = c
		}
		pa.setClip(scaleRect(l.plot, ss))
		for _, t := range l.xticks {
			pa.stroke([]pt{l.project(t, l.y.Min, ss), l.project(t, l.y.Max, ss)}, ss, gc, "-")
		}
		for _, t := range l.yticks {
			pa.stroke([]pt{l.project(l.x.Min, t, ss), l.project(l.x.Max, t, ss)}, ss, gc, "-")
		}
	}

	marks := make([]*mark, 0, len(p.marks))
	for _, m := range p.marks {
		if m.visible() {
			marks = append(marks, m)
		}
	}
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].zorder() < marks[j].zorder() })
	pa.setClip(scaleRect(l.plot, ss))
	for _, m := range marks {
		paintMark(pa, l, m, ss)
	}

	// Axis frame and tick marks.
	pa.setClip(scaleRect(l.cell, ss))
	frame := []pt{
		{float64(l.plot.Min.X) * ss, float64(l.plot.Min.Y) * ss},
		{float64(l.plot.Min.X) * ss, float64(l.plot.Max.Y) * ss},
		{float64(l.plot.Max.X) * ss, float64(l.plot.Max.Y) * ss},
	}
	pa.stroke(frame, ss, color.Black, "-")
	for _, t := range l.xticks {
		q := l.project(t, l.y.Min, ss)
		pa.stroke([]pt{q, {q.x, q.y + 4*ss}}, ss, color.Black, "-")
	}
	for _, t := range l.yticks {
		q := l.project(l.x.Min, t, ss)
		pa.stroke([]pt{q, {q.x - 4*ss, q.y}}, ss, color.Black, "-")
	}

	if lg, ok := p.style.Bool("legend"); !ok || lg {
		p.paintLegendSwatches(pa, l, ss)
	}
}

func paintMark(pa *painter, l *layout, m *mark, ss float64) {
	s := m.call.Series
	col := m.color("color", color.Black)
	points := make([]pt, len(s.X))
	for i, x := range s.X {
		points[i] = l.project(x, at(s.Y, i), ss)
	}

	switch {
	case m.call.Component == "error-bars":
		w := m.float("linewidth", 1) * ss
		capw := m.float("capsize", 0) * ss
		for i, x := range s.X {
			y, e := at(s.Y, i), at(s.Err, i)
			lo, hi := l.project(x, y-e, ss), l.project(x, y+e, ss)
			pa.stroke([]pt{lo, hi}, w, col, "-")
			if capw > 0 {
				pa.stroke([]pt{{lo.x - capw, lo.y}, {lo.x + capw, lo.y}}, w, col, "-")
				pa.stroke([]pt{{hi.x - capw, hi.y}, {hi.x + capw, hi.y}}, w, col, "-")
			}
		}

	case m.call.Kind == "scatter":
		size := m.float("size", 6) * ss
		shape, _ := m.call.Attrs.String("marker")
		colors := pointColors(m, len(points), col)
		edge, hasEdge := m.post.Color("edgecolor")
		ew := m.float("edgewidth", 0) * ss
		for i, q := range points {
			pa.marker(shape, q, size, colors[i])
			if hasEdge {
				pa.outline(shape, q, size, ew, edge)
			}
		}

	case m.call.Kind == "bar":
		half := m.float("width", 0.8) / 2
		edge, hasEdge := m.post.Color("edgecolor")
		ew := m.float("edgewidth", 0) * ss
		for i, x := range s.X {
			y := at(s.Y, i)
			if math.IsNaN(x) || math.IsNaN(y) {
				continue
			}
			a, b := l.project(x-half, 0, ss), l.project(x+half, y, ss)
			rect := []pt{a, {b.x, a.y}, b, {a.x, b.y}}
			pa.fillPolygon(rect, col)
			if hasEdge {
				pa.stroke(append(rect, a), ew, edge, "-")
			}
		}

	case m.call.Kind == "fill":
		var poly []pt
		for i, x := range s.X {
			poly = append(poly, l.project(x, at(s.Y, i), ss))
		}
		for i := len(s.X) - 1; i >= 0; i-- {
			poly = append(poly, l.project(s.X[i], at(s.Y2, i), ss))
		}
		pa.fillPolygon(poly, col)

	default: // line and errorbar main
		ls, _ := m.call.Attrs.String("linestyle")
		pa.stroke(points, m.float("linewidth", 1.5)*ss, col, ls)
		if shape, ok := m.call.Attrs.String("marker"); ok && shape != "" {
			size := m.float("markersize", 4) * ss
			for _, q := range points {
				pa.marker(shape, q, size, col)
			}
		}
	}
}

// pointColors returns the fill of each scatter point, mapping the c
// channel through the colormap if it is set.
func pointColors(m *mark, n int, def color.Color) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = def
	}
	if _, ok := m.call.Attrs["c"]; !ok || len(m.call.Series.C) < n {
		return out
	}
	cs := m.call.Series.C
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range cs {
		if !math.IsNaN(v) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if v, ok := m.call.Attrs.Float("vmin"); ok {
		lo = v
	}
	if v, ok := m.call.Attrs.Float("vmax"); ok {
		hi = v
	}
	name, _ := m.call.Attrs.String("cmap")
	cmap, ok := colormaps[name]
	if !ok {
		cmap = colormaps["viridis"]
	}
	norm := scale.Linear{Min: lo, Max: hi, Clamp: true}
	if !(hi > lo) {
		norm = scale.Linear{Min: lo - 0.5, Max: lo + 0.5, Clamp: true}
	}
	alpha, hasAlpha := m.call.Attrs.Float("alpha")
	for i, v := range cs[:n] {
		if math.IsNaN(v) {
			continue
		}
		c := cmap.Map(norm.Map(v))
		if hasAlpha {
			c = withAlpha(c, alpha)
		}
		out[i] = c
	}
	return out
}

// legendEntries returns the distinct labels of visible main marks and
// their colors, in draw order.
func (p *panel) legendEntries() (labels []string, colors []color.Color) {
	seen := make(map[string]bool)
	for _, m := range p.marks {
		if m.call.Component != style.MainComponent || m.call.Label == "" || !m.visible() || seen[m.call.Label] {
			continue
		}
		seen[m.call.Label] = true
		labels = append(labels, m.call.Label)
		colors = append(colors, m.color("color", color.Black))
	}
	return
}

const legendRow = 14

func (p *panel) paintLegendSwatches(pa *painter, l *layout, ss float64) {
	_, colors := p.legendEntries()
	for i, c := range colors {
		x := float64(l.plot.Max.X-8) * ss
		y := float64(l.plot.Min.Y+6+i*legendRow) * ss
		pa.fillRect(image.Rect(int(x-8*ss), int(y), int(x), int(y+8*ss)), c)
	}
}

func (p *panel) paintText(dst *image.RGBA, l *layout) {
	black := color.Black
	text(dst, p.title, (l.plot.Min.X+l.plot.Max.X)/2, l.cell.Min.Y+15, alignCenter, black)
	text(dst, p.xlabel, (l.plot.Min.X+l.plot.Max.X)/2, l.cell.Max.Y-4, alignCenter, black)
	text(dst, p.ylabel, l.cell.Min.X+4, l.plot.Min.Y-4, alignLeft, black)

	for _, t := range l.xticks {
		q := l.project(t, l.y.Min, 1)
		text(dst, tickLabel(t), int(q.x), l.plot.Max.Y+16, alignCenter, black)
	}
	for _, t := range l.yticks {
		q := l.project(l.x.Min, t, 1)
		text(dst, tickLabel(t), l.plot.Min.X-6, int(q.y)+4, alignRight, black)
	}

	if lg, ok := p.style.Bool("legend"); !ok || lg {
		labels, _ := p.legendEntries()
		for i, s := range labels {
			text(dst, s, l.plot.Max.X-20, l.plot.Min.Y+14+i*legendRow, alignRight, black)
		}
	}
}

func tickLabel(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
