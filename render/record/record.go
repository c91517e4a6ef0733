// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record implements a render.Backend that draws nothing and
// remembers every call made to it.
package record

import (
	"fmt"
	"io"
	"sort"

	"github.com/aclements/go-gg/table"

	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// A Recorder is a render.Backend that records calls.
type Recorder struct {
	// Draws lists every draw call in the order received.
	Draws []*Draw
	// Axes holds the axis operations applied to each cell, in
	// order.
	Axes map[render.Cell][]render.AxisOp
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{Axes: make(map[render.Cell][]render.AxisOp)}
}

// A Draw is a recorded draw call. It is also the Artist returned for
// that call.
type Draw struct {
	render.DrawCall
	// Applied lists the post-phase attribute maps applied to this
	// artist.
	Applied []style.Attrs
}

// Apply records attrs.
func (d *Draw) Apply(attrs style.Attrs) error {
	d.Applied = append(d.Applied, attrs.Clone())
	return nil
}

func (r *Recorder) Draw(call render.DrawCall) (render.Artist, error) {
	d := &Draw{DrawCall: call}
	r.Draws = append(r.Draws, d)
	return d, nil
}

func (r *Recorder) ConfigureAxis(cell render.Cell, ops ...render.AxisOp) error {
	if r.Axes == nil {
		r.Axes = make(map[render.Cell][]render.AxisOp)
	}
	r.Axes[cell] = append(r.Axes[cell], ops...)
	return nil
}

// At returns the draws recorded for cell.
func (r *Recorder) At(cell render.Cell) []*Draw {
	var out []*Draw
	for _, d := range r.Draws {
		if d.Cell == cell {
			out = append(out, d)
		}
	}
	return out
}

// Cells returns the cells that received at least one draw, in
// row-major order.
func (r *Recorder) Cells() []render.Cell {
	seen := make(map[render.Cell]bool)
	var out []render.Cell
	for _, d := range r.Draws {
		if !seen[d.Cell] {
			seen[d.Cell] = true
			out = append(out, d.Cell)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Fprint writes a table of the recorded draw calls to w.
func (r *Recorder) Fprint(w io.Writer) error {
	n := len(r.Draws)
	var (
		kinds  = make([]string, n)
		comps  = make([]string, n)
		rows   = make([]int, n)
		cols   = make([]int, n)
		labels = make([]string, n)
		points = make([]int, n)
		colors = make([]string, n)
		marks  = make([]string, n)
	)
	for i, d := range r.Draws {
		kinds[i], comps[i] = d.Kind, d.Component
		rows[i], cols[i] = d.Cell.Row, d.Cell.Col
		labels[i] = d.Label
		points[i] = len(d.Series.X)
		if c, ok := d.Attrs.Color("color"); ok {
			colors[i] = style.Hex(c)
		}
		if m, ok := d.Attrs.String("marker"); ok {
			marks[i] = m
		} else if ls, ok := d.Attrs.String("linestyle"); ok {
			marks[i] = ls
		}
	}
	t := new(table.Builder).
		Add("kind", kinds).
		Add("component", comps).
		Add("row", rows).
		Add("col", cols).
		Add("label", labels).
		Add("points", points).
		Add("color", colors).
		Add("mark", marks).
		Done()
	table.Fprint(w, t)

	cells := make([]render.Cell, 0, len(r.Axes))
	for c := range r.Axes {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	for _, c := range cells {
		for _, op := range r.Axes[c] {
			if _, err := fmt.Fprintf(w, "axis %v: %v\n", c, op); err != nil {
				return err
			}
		}
	}
	return nil
}
