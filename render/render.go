// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render defines the boundary between the plotting engine and
// a drawing backend.
//
// The engine reaches a backend through exactly two primitives: Draw,
// which draws one component of one plot into one subplot and returns
// an opaque Artist, and ConfigureAxis, which applies a short list of
// named operations to a subplot's axes. The engine never inspects a
// backend's internal state.
package render

import (
	"fmt"

	"github.com/drothermel/dr-plotter-sub000/style"
)

// A Cell is a subplot position. Row 0, column 0 is the top left.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Series is the data of one draw call.
type Series struct {
	X, Y []float64
	// Y2 is the second boundary of fill plots.
	Y2 []float64
	// Err holds symmetric error magnitudes for error bars.
	Err []float64
	// C holds the values of a column mapped through a colormap.
	C []float64
}

// A DrawCall asks a backend to draw one component of a plot.
type DrawCall struct {
	// Kind is the plot type, such as "scatter" or "line".
	Kind string
	// Component is the schema component being drawn.
	Component string
	Cell      Cell
	Series    Series
	// Label is the legend label, if any.
	Label string
	// Attrs are the resolved draw-phase attributes.
	Attrs style.Attrs
}

// An Artist is a backend handle on something a draw call produced.
type Artist interface {
	// Apply applies resolved post-phase attributes to the artist.
	Apply(attrs style.Attrs) error
}

// A Backend draws plots.
type Backend interface {
	Draw(call DrawCall) (Artist, error)
	ConfigureAxis(cell Cell, ops ...AxisOp) error
}

// AxisOpKind is the kind of an axis operation.
type AxisOpKind int

const (
	SetXLabel AxisOpKind = iota
	SetYLabel
	SetXLimits
	SetYLimits
	SetTitle
	// SetStyle applies resolved axes-phase attributes.
	SetStyle
)

var axisOpNames = [...]string{"xlabel", "ylabel", "xlim", "ylim", "title", "style"}

func (k AxisOpKind) String() string {
	if int(k) < len(axisOpNames) {
		return axisOpNames[k]
	}
	return fmt.Sprintf("AxisOpKind(%d)", int(k))
}

// An AxisOp is one operation on a subplot's axes.
type AxisOp struct {
	Kind AxisOpKind
	// Text is the label or title for SetXLabel, SetYLabel, and
	// SetTitle.
	Text string
	// Min and Max are the limits for SetXLimits and SetYLimits.
	Min, Max float64
	// Attrs are the attributes for SetStyle.
	Attrs style.Attrs
}

func (op AxisOp) String() string {
	switch op.Kind {
	case SetXLabel, SetYLabel, SetTitle:
		return fmt.Sprintf("%v %q", op.Kind, op.Text)
	case SetXLimits, SetYLimits:
		return fmt.Sprintf("%v [%g, %g]", op.Kind, op.Min, op.Max)
	}
	return fmt.Sprintf("%v %v", op.Kind, op.Attrs.Keys())
}
