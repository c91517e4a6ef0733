// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"github.com/aclements/go-gg/table"

	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/render"
)

type facetKey struct {
	row, col interface{}
}

// Subset splits data into the rows each target cell of g shows. Every
// target gets an entry; cells whose facet matches no rows get an empty
// frame with data's columns. Rows with a null facet value belong to
// no cell.
func Subset(data frame.Frame, g *Grid, targets []render.Cell) map[render.Cell]frame.Frame {
	var dims []string
	if g.RowDim != "" {
		dims = append(dims, g.RowDim)
	}
	if g.ColDim != "" {
		dims = append(dims, g.ColDim)
	}

	grouped := table.GroupBy(data.Table(), dims...)
	byKey := make(map[facetKey]*table.Table)
	for _, gid := range grouped.Tables() {
		labels := groupLabels(gid)
		if len(labels) != len(dims) {
			continue
		}
		var k facetKey
		i := 0
		if g.RowDim != "" {
			k.row = labels[i]
			i++
		}
		if g.ColDim != "" {
			k.col = labels[i]
		}
		if frame.IsNull(k.row) && g.RowDim != "" || frame.IsNull(k.col) && g.ColDim != "" {
			continue
		}
		byKey[k] = grouped.Table(gid)
	}

	empty := data.Select(nil)
	out := make(map[render.Cell]frame.Frame, len(targets))
	for _, cell := range targets {
		f, ok := g.Facet(cell)
		if !ok {
			continue
		}
		var k facetKey
		if g.RowDim != "" {
			k.row = f.RowValue
		}
		if g.ColDim != "" {
			k.col = f.ColValue
		}
		if t, ok := byKey[k]; ok {
			out[cell] = frame.New(t)
		} else {
			out[cell] = empty
		}
	}
	return out
}

// groupLabels returns the labels along gid's path from the root.
func groupLabels(gid table.GroupID) []interface{} {
	var labels []interface{}
	for ; gid != table.RootGroupID; gid = gid.Parent() {
		labels = append(labels, gid.Label())
	}
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return labels
}
