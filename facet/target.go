// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/render"
)

// ResolveTargets returns the cells of g that spec draws into: the
// cartesian product of the targeted rows and columns, in row-major
// order following the order the targets were listed. An axis with no
// target selects every index. Duplicate indexes are dropped and
// unused cells of a wrapped grid are skipped.
func ResolveTargets(g *Grid, spec *Spec) ([]render.Cell, error) {
	rows, err := targetIndexes("TargetRow", spec.TargetRow, spec.TargetRows, g.Rows)
	if err != nil {
		return nil, err
	}
	cols, err := targetIndexes("TargetCol", spec.TargetCol, spec.TargetCols, g.Cols)
	if err != nil {
		return nil, err
	}

	var out []render.Cell
	for _, r := range rows {
		for _, c := range cols {
			cell := render.Cell{Row: r, Col: c}
			if g.Used(cell) {
				out = append(out, cell)
			}
		}
	}
	return out, nil
}

func targetIndexes(field string, one *int, many []int, n int) ([]int, error) {
	if one != nil {
		many = []int{*one}
	} else if len(many) == 0 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	} else {
		field += "s"
	}

	seen := make(map[int]bool, len(many))
	out := make([]int, 0, len(many))
	for _, i := range many {
		if i < 0 || i >= n {
			return nil, diag.Configf(field, "index %d is out of range [0, %d)", i, n)
		}
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out, nil
}
