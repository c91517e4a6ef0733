// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package echarts

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/style"
)

var blue = color.RGBA{0x1f, 0x77, 0xb4, 0xff}

func TestRender(t *testing.T) {
	p := New(Options{Title: "runs"})
	calls := []render.DrawCall{
		{
			Cell:      render.Cell{Row: 0, Col: 0},
			Kind:      "line",
			Component: style.MainComponent,
			Label:     "lr=0.1",
			Series:    render.Series{X: []float64{0, 1, 2}, Y: []float64{3, math.NaN(), 1}},
			Attrs:     style.Attrs{"color": blue, "linestyle": "--"},
		},
		{
			Cell:      render.Cell{Row: 0, Col: 1},
			Kind:      "scatter",
			Component: style.MainComponent,
			Label:     "points",
			Series:    render.Series{X: []float64{0, 1}, Y: []float64{1, 2}, C: []float64{0, 5}},
			Attrs:     style.Attrs{"color": blue, "c": style.ColumnRef("z"), "cmap": "viridis"},
		},
	}
	for _, call := range calls {
		if _, err := p.Draw(call); err != nil {
			t.Fatal(err)
		}
	}
	err := p.ConfigureAxis(render.Cell{Row: 0, Col: 0},
		render.AxisOp{Kind: render.SetTitle, Text: "metric=loss"},
		render.AxisOp{Kind: render.SetYLimits, Min: 0, Max: 4},
	)
	if err != nil {
		t.Fatal(err)
	}

	want := []render.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	if diff := cmp.Diff(want, p.Cells()); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"runs", "metric=loss", "lr=0.1", "points", style.Hex(blue), "dashed"} {
		if !strings.Contains(out, s) {
			t.Errorf("page does not contain %q", s)
		}
	}
}

func TestHidden(t *testing.T) {
	p := New(Options{})
	a, err := p.Draw(render.DrawCall{
		Kind:      "bar",
		Component: style.MainComponent,
		Label:     "hidden-bars",
		Series:    render.Series{X: []float64{1}, Y: []float64{2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Apply(style.Attrs{"visible": false}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "hidden-bars") {
		t.Error("invisible series was rendered")
	}
}

func TestDrawErrors(t *testing.T) {
	p := New(Options{})
	if _, err := p.Draw(render.DrawCall{Kind: "violin", Component: style.MainComponent}); err == nil {
		t.Error("drawing an unknown kind succeeded")
	}
	_, err := p.Draw(render.DrawCall{
		Kind:      "scatter",
		Component: style.MainComponent,
		Attrs:     style.Attrs{"c": style.ColumnRef("z"), "cmap": "gray"},
	})
	if err == nil {
		t.Error("drawing with an unsupported colormap succeeded")
	}
	if err := p.ConfigureAxis(render.Cell{}, render.AxisOp{Kind: render.AxisOpKind(99)}); err == nil {
		t.Error("unknown axis operation succeeded")
	}
}
