// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"fmt"
	"strings"

	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/render"
)

// A Layout is the way dimension values map to grid cells.
type Layout int

const (
	// Explicit places row values down the rows and column values
	// across the columns.
	Explicit Layout = iota
	// RowWrapped fills the values of one dimension row by row.
	RowWrapped
	// ColWrapped fills the values of one dimension column by column.
	ColWrapped
)

func (l Layout) String() string {
	switch l {
	case Explicit:
		return "explicit"
	case RowWrapped:
		return "row-wrapped"
	case ColWrapped:
		return "col-wrapped"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// A Facet is the data slice one grid cell shows. RowValue is set when
// the row dimension selects the cell's data and ColValue when the
// column dimension does.
type Facet struct {
	Cell               render.Cell
	RowValue, ColValue interface{}
	hasRow, hasCol     bool
}

// Title returns a subplot title naming f's dimension values.
func (f Facet) Title(rowDim, colDim string) string {
	var parts []string
	if f.hasRow {
		parts = append(parts, fmt.Sprintf("%s=%v", rowDim, f.RowValue))
	}
	if f.hasCol {
		parts = append(parts, fmt.Sprintf("%s=%v", colDim, f.ColValue))
	}
	return strings.Join(parts, ", ")
}

func (f Facet) warning() *diag.EmptyCellWarning {
	w := &diag.EmptyCellWarning{Row: f.Cell.Row, Col: f.Cell.Col}
	if f.hasRow {
		w.RowValue = f.RowValue
	}
	if f.hasCol {
		w.ColValue = f.ColValue
	}
	return w
}

// A Grid is a computed subplot layout.
type Grid struct {
	Rows, Cols     int
	Layout         Layout
	RowDim, ColDim string

	// RowValues and ColValues are the ordered values of RowDim and
	// ColDim. In a wrapped layout only the wrapped dimension has
	// values, and the i'th value occupies Order[i].
	RowValues, ColValues []interface{}

	// Order lists the used cells. For an explicit layout it is
	// every cell in row-major order. For a wrapped layout it is the
	// cell of each value in value order; trailing cells of the last
	// row or column are unused.
	Order []render.Cell

	facets map[render.Cell]Facet
}

// Shape returns the grid's dimensions.
func (g *Grid) Shape() diag.Shape {
	return diag.Shape{Rows: g.Rows, Cols: g.Cols}
}

// Facet returns the facet at cell. ok is false if cell is outside the
// grid or is an unused cell of a wrapped layout.
func (g *Grid) Facet(cell render.Cell) (f Facet, ok bool) {
	f, ok = g.facets[cell]
	return
}

// Used reports whether cell holds a facet.
func (g *Grid) Used(cell render.Cell) bool {
	_, ok := g.facets[cell]
	return ok
}

// ComputeGrid lays out the subplot grid for data according to spec.
//
// With both dimensions set, the grid has one row per row value and
// one column per column value. With one dimension and no wrapping,
// the grid is a single column (row dimension) or a single row (column
// dimension). WrapCols places the i'th row value at (i/k, i%k);
// WrapRows places the i'th column value at (i%k, i/k).
//
// ComputeGrid is a pure function of its arguments.
func ComputeGrid(data frame.Frame, spec *Spec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return nil, &diag.DataError{Available: data.Columns(), Msg: "input table has no rows"}
	}
	if err := data.Require(spec.RowDimension, spec.ColDimension); err != nil {
		return nil, err
	}

	values := func(dim string, order []interface{}, field string) ([]interface{}, error) {
		if dim == "" {
			return nil, nil
		}
		present := data.Sorted(dim)
		if len(present) == 0 {
			return nil, &diag.DataError{Column: dim, Available: data.Columns(), Msg: "dimension has no non-null values"}
		}
		return frame.Order(present, order, field)
	}
	rowVals, err := values(spec.RowDimension, spec.RowOrder, "RowOrder")
	if err != nil {
		return nil, err
	}
	colVals, err := values(spec.ColDimension, spec.ColOrder, "ColOrder")
	if err != nil {
		return nil, err
	}

	g := &Grid{
		RowDim:    spec.RowDimension,
		ColDim:    spec.ColDimension,
		RowValues: rowVals,
		ColValues: colVals,
		facets:    make(map[render.Cell]Facet),
	}
	place := func(f Facet) {
		g.Order = append(g.Order, f.Cell)
		g.facets[f.Cell] = f
	}

	switch {
	case spec.WrapCols > 0:
		k, n := spec.WrapCols, len(rowVals)
		g.Layout = RowWrapped
		g.Rows, g.Cols = (n+k-1)/k, k
		for i, v := range rowVals {
			place(Facet{Cell: render.Cell{Row: i / k, Col: i % k}, RowValue: v, hasRow: true})
		}

	case spec.WrapRows > 0:
		k, n := spec.WrapRows, len(colVals)
		g.Layout = ColWrapped
		g.Rows, g.Cols = k, (n+k-1)/k
		for i, v := range colVals {
			place(Facet{Cell: render.Cell{Row: i % k, Col: i / k}, ColValue: v, hasCol: true})
		}

	default:
		g.Layout = Explicit
		g.Rows, g.Cols = 1, 1
		if rowVals != nil {
			g.Rows = len(rowVals)
		}
		if colVals != nil {
			g.Cols = len(colVals)
		}
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				f := Facet{Cell: render.Cell{Row: r, Col: c}}
				if rowVals != nil {
					f.RowValue, f.hasRow = rowVals[r], true
				}
				if colVals != nil {
					f.ColValue, f.hasCol = colVals[c], true
				}
				place(f)
			}
		}
	}

	if g.Rows == 0 || g.Cols == 0 {
		return nil, diag.Configf("RowDimension", "layout has %v subplots", g.Shape())
	}
	if err := spec.checkPerCell(g.Rows, g.Cols); err != nil {
		return nil, err
	}
	return g, nil
}
