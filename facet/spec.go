// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"fmt"
	"math"

	"github.com/drothermel/dr-plotter-sub000/diag"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// EmptyPolicy says what to do with a targeted subplot that has no
// data.
type EmptyPolicy int

const (
	// EmptyWarn logs a warning and leaves the subplot undrawn.
	EmptyWarn EmptyPolicy = iota
	// EmptyError fails the call before anything is drawn.
	EmptyError
	// EmptySilent leaves the subplot undrawn without a diagnostic.
	EmptySilent
)

var emptyPolicyNames = [...]string{"warn", "error", "silent"}

func (p EmptyPolicy) String() string {
	if p >= 0 && int(p) < len(emptyPolicyNames) {
		return emptyPolicyNames[p]
	}
	return fmt.Sprintf("EmptyPolicy(%d)", int(p))
}

// ParseEmptyPolicy parses "warn", "error", or "silent".
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	for i, name := range emptyPolicyNames {
		if s == name {
			return EmptyPolicy(i), nil
		}
	}
	return 0, diag.Configf("EmptyPolicy", "unknown policy %q (want warn, error, or silent)", s)
}

// Limits are axis limits.
type Limits struct {
	Min, Max float64
}

// Index returns a pointer to i, for the single-target fields of Spec.
func Index(i int) *int {
	return &i
}

// A Spec describes how to facet data into subplots and which of
// those subplots a call draws into.
type Spec struct {
	// RowDimension and ColDimension name the columns whose values
	// split the data into grid rows and columns. At least one is
	// required.
	RowDimension, ColDimension string

	// LinesDimension names the column that groups data within a
	// subplot. Each of its values gets a consistent cycled style
	// across every subplot and every call on the figure.
	LinesDimension string

	// LinesChannels lists the cycled channels ("color", "marker",
	// "linestyle") LinesDimension drives. The default is color
	// only.
	LinesChannels []string

	// WrapCols wraps the values of RowDimension into a grid with
	// this many columns, filled row by row. WrapRows wraps the
	// values of ColDimension into this many rows, filled column by
	// column. Wrapping requires exactly one dimension.
	WrapCols, WrapRows int

	// RowOrder and ColOrder give an explicit order for dimension
	// values. Unlisted values follow in ascending order.
	RowOrder, ColOrder []interface{}

	// TargetRow and TargetCol restrict drawing to one grid row or
	// column. TargetRows and TargetCols restrict it to several.
	// The single and multi forms may not be combined on one axis.
	TargetRow, TargetCol   *int
	TargetRows, TargetCols []int

	// XLabels and YLabels override axis labels, indexed
	// [row][col]. Empty strings keep the default.
	XLabels, YLabels [][]string

	// XLimits and YLimits set axis limits, indexed [row][col].
	// Nil entries keep the backend's automatic limits.
	XLimits, YLimits [][]*Limits

	EmptyPolicy EmptyPolicy
}

func (s *Spec) linesChannels() []string {
	if len(s.LinesChannels) == 0 {
		return []string{style.ChannelColor}
	}
	return s.LinesChannels
}

// Validate checks s for contradictory or invalid options. It does
// not consult any data.
func (s *Spec) Validate() error {
	if s.RowDimension == "" && s.ColDimension == "" {
		return diag.Configf("RowDimension", "at least one of RowDimension or ColDimension is required")
	}
	if s.RowDimension != "" && s.RowDimension == s.ColDimension {
		return diag.Configf("ColDimension", "row and column dimensions are both %q", s.RowDimension)
	}
	if s.WrapCols < 0 || s.WrapRows < 0 {
		return diag.Configf("WrapCols", "wrap counts must be positive (WrapCols=%d, WrapRows=%d)", s.WrapCols, s.WrapRows)
	}
	if s.WrapCols > 0 && s.WrapRows > 0 {
		return diag.Configf("WrapRows", "WrapCols and WrapRows may not both be set")
	}
	if s.WrapCols > 0 || s.WrapRows > 0 {
		if s.RowDimension != "" && s.ColDimension != "" {
			return diag.Configf("WrapCols", "wrapped layouts take one dimension; an explicit grid of %q by %q cannot wrap", s.RowDimension, s.ColDimension)
		}
		if s.WrapCols > 0 && s.RowDimension == "" {
			return diag.Configf("WrapCols", "WrapCols wraps RowDimension, which is not set")
		}
		if s.WrapRows > 0 && s.ColDimension == "" {
			return diag.Configf("WrapRows", "WrapRows wraps ColDimension, which is not set")
		}
	}
	if s.TargetRow != nil && len(s.TargetRows) > 0 {
		return diag.Configf("TargetRows", "TargetRow and TargetRows may not both be set")
	}
	if s.TargetCol != nil && len(s.TargetCols) > 0 {
		return diag.Configf("TargetCols", "TargetCol and TargetCols may not both be set")
	}
	for _, ch := range s.LinesChannels {
		switch ch {
		case style.ChannelColor, style.ChannelMarker, style.ChannelLineStyle:
		default:
			return diag.Configf("LinesChannels", "unknown channel %q (want color, marker, or linestyle)", ch)
		}
	}
	if len(s.LinesChannels) > 0 && s.LinesDimension == "" {
		return diag.Configf("LinesChannels", "LinesChannels requires LinesDimension")
	}
	if s.EmptyPolicy < EmptyWarn || s.EmptyPolicy > EmptySilent {
		return diag.Configf("EmptyPolicy", "unknown policy %v", s.EmptyPolicy)
	}
	for name, lims := range map[string][][]*Limits{"XLimits": s.XLimits, "YLimits": s.YLimits} {
		for r, row := range lims {
			for c, l := range row {
				if l == nil {
					continue
				}
				if math.IsNaN(l.Min) || math.IsNaN(l.Max) || l.Min >= l.Max {
					return diag.Configf(name, "limits at (%d, %d) are [%g, %g]; want min < max", r, c, l.Min, l.Max)
				}
			}
		}
	}
	return nil
}

// checkPerCell verifies that per-cell options fit within a rows x
// cols grid.
func (s *Spec) checkPerCell(rows, cols int) error {
	check := func(name string, nrows int, ncols func(int) int) error {
		if nrows > rows {
			return diag.Configf(name, "has %d rows but the grid has %d", nrows, rows)
		}
		for r := 0; r < nrows; r++ {
			if n := ncols(r); n > cols {
				return diag.Configf(name, "row %d has %d columns but the grid has %d", r, n, cols)
			}
		}
		return nil
	}
	for name, labels := range map[string][][]string{"XLabels": s.XLabels, "YLabels": s.YLabels} {
		labels := labels
		if err := check(name, len(labels), func(r int) int { return len(labels[r]) }); err != nil {
			return err
		}
	}
	for name, lims := range map[string][][]*Limits{"XLimits": s.XLimits, "YLimits": s.YLimits} {
		lims := lims
		if err := check(name, len(lims), func(r int) int { return len(lims[r]) }); err != nil {
			return err
		}
	}
	return nil
}

func cellLabel(labels [][]string, r, c int) string {
	if r < len(labels) && c < len(labels[r]) {
		return labels[r][c]
	}
	return ""
}

func cellLimits(lims [][]*Limits, r, c int) *Limits {
	if r < len(lims) && c < len(lims[r]) {
		return lims[r][c]
	}
	return nil
}
