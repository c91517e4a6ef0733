// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/google/go-cmp/cmp"

	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/render/record"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// training returns a table of two metrics by three learning rates by
// two models, two steps each.
func training() frame.Frame {
	var metric, model []string
	var lr []float64
	var step []int
	var value []float64
	for _, m := range []string{"loss", "acc"} {
		for _, r := range []float64{0.1, 0.01, 0.001} {
			for _, mod := range []string{"B", "A"} {
				for s := 0; s < 2; s++ {
					metric = append(metric, m)
					lr = append(lr, r)
					model = append(model, mod)
					step = append(step, s)
					value = append(value, float64(s)*r)
				}
			}
		}
	}
	return frame.New(new(table.Builder).
		Add("metric", metric).
		Add("lr", lr).
		Add("model", model).
		Add("step", step).
		Add("value", value).
		Done())
}

func letters(n int) frame.Frame {
	vals := make([]string, n)
	xs := make([]int, n)
	for i := range vals {
		vals[i] = string(rune('a' + i))
		xs[i] = i
	}
	return frame.New(new(table.Builder).Add("k", vals).Add("x", xs).Done())
}

func cells(cs ...[2]int) []render.Cell {
	out := make([]render.Cell, len(cs))
	for i, c := range cs {
		out[i] = render.Cell{Row: c[0], Col: c[1]}
	}
	return out
}

func TestComputeGrid(t *testing.T) {
	for _, test := range []struct {
		name   string
		data   frame.Frame
		spec   Spec
		rows   int
		cols   int
		layout Layout
		order  []render.Cell
	}{
		{
			name: "explicit", data: training(),
			spec: Spec{RowDimension: "metric", ColDimension: "lr"},
			rows: 2, cols: 3, layout: Explicit,
			order: cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2}),
		},
		{
			name: "row only", data: letters(3),
			spec: Spec{RowDimension: "k"},
			rows: 3, cols: 1, layout: Explicit,
			order: cells([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}),
		},
		{
			name: "col only", data: letters(2),
			spec: Spec{ColDimension: "k"},
			rows: 1, cols: 2, layout: Explicit,
			order: cells([2]int{0, 0}, [2]int{0, 1}),
		},
		{
			name: "wrap cols", data: letters(6),
			spec: Spec{RowDimension: "k", WrapCols: 4},
			rows: 2, cols: 4, layout: RowWrapped,
			order: cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{1, 0}, [2]int{1, 1}),
		},
		{
			name: "wrap rows", data: letters(6),
			spec: Spec{ColDimension: "k", WrapRows: 4},
			rows: 4, cols: 2, layout: ColWrapped,
			order: cells([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{0, 1}, [2]int{1, 1}),
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			g, err := ComputeGrid(test.data, &test.spec)
			if err != nil {
				t.Fatal(err)
			}
			if g.Rows != test.rows || g.Cols != test.cols || g.Layout != test.layout {
				t.Errorf("got %v %v, want %dx%d %v", g.Shape(), g.Layout, test.rows, test.cols, test.layout)
			}
			if diff := cmp.Diff(test.order, g.Order); diff != "" {
				t.Errorf("Order (-want +got):\n%s", diff)
			}
			// Repeated computation is identical.
			g2, _ := ComputeGrid(test.data, &test.spec)
			if diff := cmp.Diff(g.Order, g2.Order); diff != "" {
				t.Errorf("second ComputeGrid differs:\n%s", diff)
			}
		})
	}
}

func TestWrappedCells(t *testing.T) {
	g, err := ComputeGrid(letters(6), &Spec{RowDimension: "k", WrapCols: 4})
	if err != nil {
		t.Fatal(err)
	}
	f, ok := g.Facet(render.Cell{Row: 1, Col: 1})
	if !ok || f.RowValue != "f" {
		t.Errorf("cell (1, 1) = %v, %v; want value f", f.RowValue, ok)
	}
	for _, c := range cells([2]int{1, 2}, [2]int{1, 3}) {
		if g.Used(c) {
			t.Errorf("cell %v should be unused", c)
		}
	}
	if f.Title("k", "") != "k=f" {
		t.Errorf("title = %q", f.Title("k", ""))
	}
}

func TestComputeGridOrder(t *testing.T) {
	spec := Spec{RowDimension: "k", RowOrder: []interface{}{"c", "z"}}
	g, err := ComputeGrid(letters(3), &spec)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]interface{}{"c", "z", "a", "b"}, g.RowValues); diff != "" {
		t.Errorf("RowValues (-want +got):\n%s", diff)
	}
}

func TestComputeGridErrors(t *testing.T) {
	var cerr *diag.ConfigError
	var derr *diag.DataError
	empty := frame.New(new(table.Builder).Add("k", []string{}).Done())
	nulls := frame.New(new(table.Builder).Add("k", []string{"", ""}).Done())
	for _, test := range []struct {
		name   string
		data   frame.Frame
		spec   Spec
		target interface{}
	}{
		{"no dims", letters(2), Spec{}, &cerr},
		{"same dims", letters(2), Spec{RowDimension: "k", ColDimension: "k"}, &cerr},
		{"both wraps", letters(2), Spec{RowDimension: "k", WrapCols: 2, WrapRows: 2}, &cerr},
		{"wrap explicit", training(), Spec{RowDimension: "metric", ColDimension: "lr", WrapCols: 2}, &cerr},
		{"wrap wrong dim", letters(2), Spec{ColDimension: "k", WrapCols: 2}, &cerr},
		{"negative wrap", letters(2), Spec{RowDimension: "k", WrapCols: -1}, &cerr},
		{"duplicate order", letters(2), Spec{RowDimension: "k", RowOrder: []interface{}{"a", "a"}}, &cerr},
		{"labels too big", letters(2), Spec{RowDimension: "k", XLabels: [][]string{{"x", "y"}}}, &cerr},
		{"bad limits", letters(2), Spec{RowDimension: "k", YLimits: [][]*Limits{{{Min: 1, Max: 0}}}}, &cerr},
		{"missing column", letters(2), Spec{RowDimension: "nope"}, &derr},
		{"no rows", empty, Spec{RowDimension: "k"}, &derr},
		{"all null", nulls, Spec{RowDimension: "k"}, &derr},
		{"row and rows", letters(2), Spec{RowDimension: "k", TargetRow: Index(0), TargetRows: []int{1}}, &cerr},
		{"col and cols", training(), Spec{RowDimension: "metric", ColDimension: "lr", TargetCol: Index(0), TargetCols: []int{1}}, &cerr},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := ComputeGrid(test.data, &test.spec)
			if !errors.As(err, test.target) {
				t.Errorf("got %v, want %T", err, test.target)
			}
			if test.target == &derr && test.data.Len() > 0 && !strings.Contains(err.Error(), "available columns: k") {
				t.Errorf("data error %q does not list the available columns", err)
			}
		})
	}
}

func TestResolveTargets(t *testing.T) {
	g, err := ComputeGrid(training(), &Spec{RowDimension: "metric", ColDimension: "lr"})
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name string
		spec Spec
		want []render.Cell
	}{
		{"rows and cols", Spec{TargetRows: []int{0}, TargetCols: []int{1, 2}}, cells([2]int{0, 1}, [2]int{0, 2})},
		{"single", Spec{TargetRow: Index(1), TargetCol: Index(0)}, cells([2]int{1, 0})},
		{"row only", Spec{TargetRow: Index(1)}, cells([2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})},
		{"col only", Spec{TargetCols: []int{2}}, cells([2]int{0, 2}, [2]int{1, 2})},
		{"list order", Spec{TargetRows: []int{1, 0, 1}, TargetCol: Index(0)}, cells([2]int{1, 0}, [2]int{0, 0})},
		{"all", Spec{}, g.Order},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := ResolveTargets(g, &test.spec)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}

	for _, test := range []struct {
		name string
		spec Spec
		want string
	}{
		{"row out of range", Spec{TargetRow: Index(2)}, "[0, 2)"},
		{"negative col", Spec{TargetCols: []int{-1}}, "[0, 3)"},
		{"col out of range", Spec{TargetCol: Index(3)}, "[0, 3)"},
		{"rows out of range", Spec{TargetRows: []int{0, 5}}, "[0, 2)"},
	} {
		var cerr *diag.ConfigError
		_, err := ResolveTargets(g, &test.spec)
		if !errors.As(err, &cerr) || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got %v, want ConfigError naming %s", test.name, err, test.want)
		}
	}

	wrapped, _ := ComputeGrid(letters(6), &Spec{RowDimension: "k", WrapCols: 4})
	got, err := ResolveTargets(wrapped, &Spec{TargetRow: Index(1)})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cells([2]int{1, 0}, [2]int{1, 1}), got); diff != "" {
		t.Errorf("wrapped row 1 should skip unused cells (-want +got):\n%s", diff)
	}
}

func TestSubset(t *testing.T) {
	data := frame.New(new(table.Builder).
		Add("g", []string{"x", "y", "", "x"}).
		Add("v", []float64{1, 2, 3, 4}).
		Done())
	spec := Spec{RowDimension: "g", RowOrder: []interface{}{"x", "y", "w"}}
	g, err := ComputeGrid(data, &spec)
	if err != nil {
		t.Fatal(err)
	}
	targets, _ := ResolveTargets(g, &spec)
	subs := Subset(data, g, targets)
	for cell, want := range map[render.Cell][]float64{
		{Row: 0}: {1, 4},
		{Row: 1}: {2},
		{Row: 2}: nil,
	} {
		got, err := subs[cell].Floats("v")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) || (len(want) > 0 && cmp.Diff(want, got) != "") {
			t.Errorf("cell %v: got %v, want %v", cell, got, want)
		}
	}
}

func TestCoordinator(t *testing.T) {
	c := NewCoordinator(style.Default().Cycle(), 2)
	c.RegisterValues("model", []interface{}{"A", "B"})
	c.RegisterValues("model", []interface{}{"C", "A"})
	got, err := c.StylesFor("model", []interface{}{"A", "B", "C"})
	if err != nil {
		t.Fatal(err)
	}
	for v, idx := range map[string]int{"A": 0, "B": 1, "C": 2} {
		if got[v].Index != idx {
			t.Errorf("%s has index %d, want %d", v, got[v].Index, idx)
		}
	}
	if _, err := c.StylesFor("model", []interface{}{"D"}); err == nil {
		t.Error("StylesFor of an unregistered value succeeded")
	}

	// Pinned dimensions survive eviction.
	c.Pin("model")
	c.RegisterValues("seed", []interface{}{1})
	c.RegisterValues("opt", []interface{}{"adam"})
	if diff := cmp.Diff([]string{"opt", "model"}, c.Dimensions()); diff != "" {
		t.Errorf("after eviction (-want +got):\n%s", diff)
	}
	c.RegisterValues("lr", []interface{}{0.1})
	if diff := cmp.Diff([]string{"lr", "model"}, c.Dimensions()); diff != "" {
		t.Errorf("after second eviction (-want +got):\n%s", diff)
	}
	c.Unpin("model")
	c.RegisterValues("batch", []interface{}{32})
	if diff := cmp.Diff([]string{"batch", "lr"}, c.Dimensions()); diff != "" {
		t.Errorf("after unpin (-want +got):\n%s", diff)
	}
	// A forgotten dimension starts over.
	c.RegisterValues("model", []interface{}{"C"})
	got, _ = c.StylesFor("model", []interface{}{"C"})
	if got["C"].Index != 0 {
		t.Errorf("re-registered C has index %d, want 0", got["C"].Index)
	}
}

func TestCoordinatorOverPinned(t *testing.T) {
	c := NewCoordinator(style.Default().Cycle(), 1)
	c.Pin("a")
	c.Pin("b")
	c.RegisterValues("a", []interface{}{1})
	c.RegisterValues("b", []interface{}{1})
	if len(c.Dimensions()) != 2 {
		t.Errorf("pinned dimensions were evicted: %v", c.Dimensions())
	}
	c.Unpin("a")
	if diff := cmp.Diff([]string{"b"}, c.Dimensions()); diff != "" {
		t.Errorf("after unpin (-want +got):\n%s", diff)
	}
}

func colorOf(t *testing.T, d *record.Draw) string {
	t.Helper()
	c, ok := d.Attrs.Color("color")
	if !ok {
		t.Fatalf("draw %s/%s in %v has no color", d.Kind, d.Component, d.Cell)
	}
	return style.Hex(c)
}

func TestLayeredColors(t *testing.T) {
	rec := record.New()
	fig := NewFigure(rec)
	data := training()
	spec := Spec{RowDimension: "metric", ColDimension: "lr", LinesDimension: "model"}

	res, err := fig.Plot(data, Layer{Kind: "line", X: "step", Y: "value"}, spec)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Drawn) != 6 || len(res.Skipped) != 0 {
		t.Fatalf("drew %v, skipped %v", res.Drawn, res.Skipped)
	}

	// The second layer sees only model B.
	onlyB := data.Where(data.Eq("model", "B"))
	if _, err := fig.Plot(onlyB, Layer{Kind: "scatter", X: "step", Y: "value"}, spec); err != nil {
		t.Fatal(err)
	}

	byLabel := make(map[string]string)
	for _, d := range rec.Draws {
		got := colorOf(t, d)
		if want, ok := byLabel[d.Label]; ok && got != want {
			t.Errorf("%s %s in %v has color %s, want %s", d.Kind, d.Label, d.Cell, got, want)
		}
		byLabel[d.Label] = got
	}
	cycle := style.Default().Cycle()
	if byLabel["A"] != style.Hex(cycle.Colors[0]) || byLabel["B"] != style.Hex(cycle.Colors[1]) {
		t.Errorf("A=%s B=%s; want first and second cycle colors", byLabel["A"], byLabel["B"])
	}

	// A is drawn before B in every cell, regardless of row order.
	first := rec.At(render.Cell{Row: 0, Col: 0})
	if len(first) != 3 || first[0].Label != "A" || first[1].Label != "B" || first[2].Kind != "scatter" {
		t.Errorf("cell (0, 0) draws: %+v", first)
	}

	var titles []string
	for _, op := range rec.Axes[render.Cell{Row: 1, Col: 2}] {
		if op.Kind == render.SetTitle {
			titles = append(titles, op.Text)
		}
	}
	if len(titles) == 0 || titles[0] != "metric=loss, lr=0.1" {
		t.Errorf("titles of (1, 2) = %q", titles)
	}
}

func TestGridConflict(t *testing.T) {
	rec := record.New()
	fig := NewFigure(rec)
	data := training()
	layer := Layer{Kind: "line", X: "step", Y: "value"}
	if _, err := fig.Plot(data, layer, Spec{RowDimension: "metric", ColDimension: "lr"}); err != nil {
		t.Fatal(err)
	}
	n := len(rec.Draws)

	_, err := fig.Plot(data, layer, Spec{
		RowDimension: "metric", ColDimension: "lr",
		RowOrder: []interface{}{"acc", "loss", "ppl"},
	})
	var gerr *diag.GridConflictError
	if !errors.As(err, &gerr) {
		t.Fatalf("got %v, want GridConflictError", err)
	}
	if gerr.Have != (diag.Shape{Rows: 2, Cols: 3}) || gerr.Got != (diag.Shape{Rows: 3, Cols: 3}) {
		t.Errorf("conflict %v -> %v", gerr.Have, gerr.Got)
	}
	if len(rec.Draws) != n {
		t.Errorf("conflicting call drew %d times", len(rec.Draws)-n)
	}
	if fig.Grid().Shape() != (diag.Shape{Rows: 2, Cols: 3}) {
		t.Errorf("established grid changed to %v", fig.Grid().Shape())
	}
}

func TestEmptyPolicy(t *testing.T) {
	spec := Spec{RowDimension: "metric", RowOrder: []interface{}{"acc", "ppl", "loss"}}
	layer := Layer{Kind: "scatter", X: "step", Y: "value"}
	empty := render.Cell{Row: 1, Col: 0}

	t.Run("warn", func(t *testing.T) {
		var buf bytes.Buffer
		rec := record.New()
		fig := NewFigure(rec, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		res, err := fig.Plot(training(), layer, spec)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]render.Cell{empty}, res.Skipped); diff != "" {
			t.Errorf("Skipped (-want +got):\n%s", diff)
		}
		if len(res.Warnings) != 1 || res.Warnings[0].RowValue != "ppl" {
			t.Errorf("Warnings = %v", res.Warnings)
		}
		if !strings.Contains(buf.String(), "subplot has no data") {
			t.Errorf("log = %q", buf.String())
		}
		if len(rec.At(empty)) != 0 {
			t.Error("empty cell was drawn")
		}
	})

	t.Run("error", func(t *testing.T) {
		rec := record.New()
		fig := NewFigure(rec)
		spec := spec
		spec.EmptyPolicy = EmptyError
		_, err := fig.Plot(training(), layer, spec)
		var w *diag.EmptyCellWarning
		if !errors.As(err, &w) || w.Row != 1 {
			t.Fatalf("got %v, want EmptyCellWarning", err)
		}
		if len(rec.Draws) != 0 || fig.Grid() != nil {
			t.Error("failed call changed the figure")
		}
	})

	t.Run("silent", func(t *testing.T) {
		var buf bytes.Buffer
		fig := NewFigure(record.New(), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		spec := spec
		spec.EmptyPolicy = EmptySilent
		res, err := fig.Plot(training(), layer, spec)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Skipped) != 1 || len(res.Warnings) != 0 || buf.Len() != 0 {
			t.Errorf("skipped %v, warnings %v, log %q", res.Skipped, res.Warnings, buf.String())
		}
	})
}

func TestPlotAxes(t *testing.T) {
	rec := record.New()
	fig := NewFigure(rec)
	spec := Spec{
		RowDimension: "metric",
		TargetRow:    Index(0),
		XLabels:      [][]string{{"training step"}},
		YLimits:      [][]*Limits{{{Min: 0, Max: 1}}},
	}
	layer := Layer{Kind: "line", X: "step", Y: "value", Kwargs: style.Attrs{"axes.grid": false}}
	if _, err := fig.Plot(training(), layer, spec); err != nil {
		t.Fatal(err)
	}
	if cs := rec.Cells(); len(cs) != 1 || cs[0] != (render.Cell{}) {
		t.Errorf("drew into %v, want only (0, 0)", cs)
	}
	var got []string
	for _, op := range rec.Axes[render.Cell{}] {
		got = append(got, op.String())
		if op.Kind == render.SetStyle {
			if g, _ := op.Attrs.Bool("grid"); g {
				t.Error("axes.grid kwarg did not override the theme")
			}
		}
	}
	for _, want := range []string{`xlabel "training step"`, `ylabel "value"`, "ylim [0, 1]"} {
		found := false
		for _, g := range got {
			found = found || g == want
		}
		if !found {
			t.Errorf("axis ops %q missing %q", got, want)
		}
	}
}

func TestPlotErrors(t *testing.T) {
	data := training()
	spec := Spec{RowDimension: "metric"}
	var cerr *diag.ConfigError
	var derr *diag.DataError
	for _, test := range []struct {
		name   string
		layer  Layer
		spec   Spec
		target interface{}
	}{
		{"unknown kind", Layer{Kind: "violin", X: "step", Y: "value"}, spec, &cerr},
		{"missing role", Layer{Kind: "errorbar", X: "step", Y: "value"}, spec, &cerr},
		{"unused role", Layer{Kind: "line", X: "step", Y: "value", Y2: "value"}, spec, &cerr},
		{"missing column", Layer{Kind: "line", X: "epoch", Y: "value"}, spec, &derr},
		{"non-numeric", Layer{Kind: "line", X: "model", Y: "value"}, spec, &derr},
		{"bad kwarg", Layer{Kind: "line", X: "step", Y: "value", Kwargs: style.Attrs{"size": 3}}, spec, &cerr},
		{"literal c", Layer{Kind: "scatter", X: "step", Y: "value", Kwargs: style.Attrs{"c": "red"}}, spec, &cerr},
		{"unmappable", Layer{Kind: "bar", X: "step", Y: "value"}, Spec{RowDimension: "metric", LinesDimension: "model", LinesChannels: []string{"marker"}}, &cerr},
		{"missing lines", Layer{Kind: "line", X: "step", Y: "value"}, Spec{RowDimension: "metric", LinesDimension: "seed"}, &derr},
	} {
		t.Run(test.name, func(t *testing.T) {
			rec := record.New()
			_, err := NewFigure(rec).Plot(data, test.layer, test.spec)
			if !errors.As(err, test.target) {
				t.Errorf("got %v, want %T", err, test.target)
			}
			if len(rec.Draws) != 0 {
				t.Errorf("failed call drew %d times", len(rec.Draws))
			}
		})
	}

	_, err := NewFigure(record.New()).Plot(data, Layer{Kind: "line", X: "model", Y: "value"}, spec)
	if err == nil || !strings.Contains(err.Error(), "available columns: metric, lr, model, step, value") {
		t.Errorf("non-numeric column error %v does not list the available columns", err)
	}

	fig := NewFigure(record.New())
	if _, err := fig.Plot(data, Layer{Kind: "line", X: "step", Y: "value"}, Spec{RowDimension: "metric", LinesDimension: "model"}); err != nil {
		t.Fatal(err)
	}
	fig.Close()
	if _, err := fig.Plot(data, Layer{Kind: "line", X: "step", Y: "value"}, spec); !errors.As(err, &cerr) {
		t.Errorf("Plot after Close: got %v", err)
	}
	if _, err := fig.StylesFor("model", []interface{}{"A"}); !errors.As(err, &cerr) {
		t.Errorf("StylesFor after Close: got %v", err)
	}
}

func TestContinuousColor(t *testing.T) {
	rec := record.New()
	fig := NewFigure(rec)
	layer := Layer{Kind: "scatter", X: "step", Y: "value", Kwargs: style.Attrs{"c": "lr"}}
	if _, err := fig.Plot(training(), layer, Spec{ColDimension: "metric"}); err != nil {
		t.Fatal(err)
	}
	d := rec.Draws[0]
	if d.Attrs["c"] != style.ColumnRef("lr") || d.Attrs["cmap"] != "viridis" {
		t.Errorf("attrs = %v", d.Attrs)
	}
	if len(d.Series.C) != len(d.Series.X) || math.IsNaN(d.Series.C[0]) {
		t.Errorf("C = %v", d.Series.C)
	}
}

func TestNullLines(t *testing.T) {
	var derr *diag.DataError
	allNull := frame.New(new(table.Builder).
		Add("m", []string{"a", "a"}).
		Add("g", []string{"", ""}).
		Add("x", []int{0, 1}).
		Done())
	rec := record.New()
	_, err := NewFigure(rec).Plot(allNull, Layer{Kind: "line", X: "x", Y: "x"}, Spec{RowDimension: "m", LinesDimension: "g"})
	if !errors.As(err, &derr) || derr.Column != "g" || !strings.Contains(err.Error(), "available columns") {
		t.Errorf("all-null lines column: got %v, want DataError for g", err)
	}
	if len(rec.Draws) != 0 {
		t.Errorf("failed call drew %d times", len(rec.Draws))
	}

	// Cell b has rows, but none with a lines value.
	partial := frame.New(new(table.Builder).
		Add("m", []string{"a", "a", "b"}).
		Add("g", []string{"u", "v", ""}).
		Add("x", []int{0, 1, 2}).
		Done())
	var buf bytes.Buffer
	rec = record.New()
	fig := NewFigure(rec, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	res, err := fig.Plot(partial, Layer{Kind: "line", X: "x", Y: "x"}, Spec{RowDimension: "m", LinesDimension: "g"})
	if err != nil {
		t.Fatal(err)
	}
	b := render.Cell{Row: 1, Col: 0}
	if diff := cmp.Diff([]render.Cell{{Row: 0, Col: 0}}, res.Drawn); diff != "" {
		t.Errorf("Drawn (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]render.Cell{b}, res.Skipped); diff != "" {
		t.Errorf("Skipped (-want +got):\n%s", diff)
	}
	if len(res.Warnings) != 1 || !strings.Contains(buf.String(), "subplot has no data") {
		t.Errorf("warnings %v, log %q", res.Warnings, buf.String())
	}
	if len(rec.At(b)) != 0 {
		t.Error("cell with only null lines values was drawn")
	}
}
