// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/facet"
	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/render/record"
	"github.com/drothermel/dr-plotter-sub000/style"
)

const runsCSV = `metric,lr,step,value,err
loss,0.1,0,1,0.1
loss,0.1,1,0.5,0.1
loss,0.01,0,1,0.2
loss,0.01,1,0.8,0.2
acc,0.1,0,0.2,0.05
acc,0.1,1,0.6,0.05
acc,0.01,0,0.1,0.05
acc,0.01,1,0.3,0.05
`

func runs(t *testing.T) frame.Frame {
	t.Helper()
	f, err := frame.FromCSV(strings.NewReader(runsCSV))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestParseKwargs(t *testing.T) {
	got, err := parseKwargs(`color=lr marker=s size=3 visible=false label='two words'`)
	if err != nil {
		t.Fatal(err)
	}
	want := style.Attrs{
		"color":   "lr",
		"marker":  "s",
		"size":    3.0,
		"visible": false,
		"label":   "two words",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseKwargs (-want +got):\n%s", diff)
	}

	for _, bad := range []string{`size`, `=3`, `color='unterminated`} {
		if _, err := parseKwargs(bad); err == nil {
			t.Errorf("parseKwargs(%q) succeeded", bad)
		}
	}
}

func TestLayerList(t *testing.T) {
	cfg := &config{
		kind:   "errorbar",
		layers: listFlag{"scatter"},
		kwargs: listFlag{"linewidth=2"},
		x:      "step",
		y:      "value",
		err:    "err",
	}
	got, err := cfg.layerList()
	if err != nil {
		t.Fatal(err)
	}
	want := []facet.Layer{
		{Kind: "errorbar", X: "step", Y: "value", Err: "err", Label: "errorbar", Kwargs: style.Attrs{"linewidth": 2.0}},
		{Kind: "scatter", X: "step", Y: "value", Label: "scatter"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("layerList (-want +got):\n%s", diff)
	}

	cfg.kwargs = listFlag{"a=1", "b=2", "c=3"}
	if _, err := cfg.layerList(); err == nil {
		t.Error("more -kw flags than layers succeeded")
	}
}

func TestPlot(t *testing.T) {
	rec := record.New()
	fig := facet.NewFigure(rec, facet.WithRegistry(registry))
	cfg := &config{
		kind:     "line",
		layers:   listFlag{"scatter"},
		kwargs:   listFlag{"", "marker=s"},
		x:        "step",
		y:        "value",
		rows:     "metric",
		lines:    "lr",
		rowOrder: "loss",
		ylim:     "0,2",
	}
	if err := plot(fig, runs(t), cfg); err != nil {
		t.Fatal(err)
	}
	if got, want := fig.Grid().Shape(), (diag.Shape{Rows: 2, Cols: 1}); got != want {
		t.Errorf("grid is %v, want %v", got, want)
	}
	if len(rec.Draws) != 8 {
		t.Fatalf("got %d draws, want 8", len(rec.Draws))
	}

	// Each lr value has the same color in both layers and rows.
	colors := make(map[string]string)
	for _, d := range rec.Draws {
		c, ok := d.Attrs.Color("color")
		if !ok {
			t.Fatalf("%s draw has no color", d.Kind)
		}
		key := strings.TrimPrefix(strings.TrimPrefix(d.Label, "line "), "scatter ")
		if prev, ok := colors[key]; ok && prev != style.Hex(c) {
			t.Errorf("%s: color %s, previously %s", d.Label, style.Hex(c), prev)
		}
		colors[key] = style.Hex(c)
		if d.Kind == "scatter" {
			if m, _ := d.Attrs.String("marker"); m != "s" {
				t.Errorf("scatter marker is %q, want s", m)
			}
		}
	}
	if len(colors) != 2 {
		t.Errorf("got colors for %v, want two lr values", colors)
	}

	// -row-order puts loss first, and -ylim reaches every cell.
	var title string
	for _, op := range rec.Axes[render.Cell{Row: 0, Col: 0}] {
		if op.Kind == render.SetTitle {
			title = op.Text
		}
	}
	if title != "metric=loss" {
		t.Errorf("first row title is %q, want metric=loss", title)
	}
	for _, cell := range []render.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}} {
		found := false
		for _, op := range rec.Axes[cell] {
			if op.Kind == render.SetYLimits && op.Min == 0 && op.Max == 2 {
				found = true
			}
		}
		if !found {
			t.Errorf("%v has no y limits", cell)
		}
	}

	var buf bytes.Buffer
	if err := rec.Fprint(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "scatter") {
		t.Errorf("dry run output lacks scatter draws:\n%s", buf.String())
	}
}

func TestPlotErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		cfg  config
	}{
		{"no dimensions", config{kind: "line", x: "step", y: "value"}},
		{"missing column", config{kind: "line", x: "step", y: "nope", rows: "metric"}},
		{"bad limits", config{kind: "line", x: "step", y: "value", rows: "metric", ylim: "1"}},
		{"unknown kind", config{kind: "violin", x: "step", y: "value", rows: "metric"}},
	} {
		t.Run(test.name, func(t *testing.T) {
			fig := facet.NewFigure(record.New(), facet.WithRegistry(registry))
			if err := plot(fig, runs(t), &test.cfg); err == nil {
				t.Error("plot succeeded")
			}
		})
	}
}

func TestTintWriter(t *testing.T) {
	var buf bytes.Buffer
	warnLogger(&buf).Warn("subplot has no data", "row", 1)
	out := buf.String()
	if !strings.Contains(out, "subplot has no data") || !strings.Contains(out, "row=1") {
		t.Errorf("log output is %q", out)
	}
}

func TestReadInput(t *testing.T) {
	f, err := readInput(strings.NewReader("BenchmarkX-4\t10\t5 ns/op\n"), "bench")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]interface{}{"X"}, f.Distinct("name")); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if _, err := readInput(strings.NewReader(runsCSV), "json"); err == nil {
		t.Error("unknown format succeeded")
	}
}
