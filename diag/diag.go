// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag defines the errors and warnings reported by the
// plotting engine.
//
// Every failure is synchronous and fatal to the call that detected
// it. None of them are transient, so nothing is ever retried. Callers
// distinguish them with errors.As:
//
//	var gerr *diag.GridConflictError
//	if errors.As(err, &gerr) {
//		...
//	}
package diag

import (
	"fmt"
	"strings"
)

// ConfigError reports an invalid or contradictory facet or style
// setting. It is always detected before anything is drawn.
type ConfigError struct {
	// Field names the offending option, such as "TargetRows" or
	// the keyword argument name.
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Msg
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Msg)
}

// Configf returns a *ConfigError for field with a formatted message.
func Configf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// SchemaError reports a component, phase, or attribute that is not
// part of a plot type's component schema.
type SchemaError struct {
	PlotType  string
	Component string
	Phase     string
	Attr      string
	Msg       string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error: ")
	b.WriteString(e.PlotType)
	if e.Component != "" {
		b.WriteString("/" + e.Component)
	}
	if e.Phase != "" {
		b.WriteString(" [" + e.Phase + "]")
	}
	if e.Attr != "" {
		fmt.Fprintf(&b, " attribute %q", e.Attr)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// Shape is the row and column count of a subplot grid.
type Shape struct {
	Rows, Cols int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// GridConflictError reports that a facet call computed a grid whose
// shape differs from the grid already established on its figure.
type GridConflictError struct {
	Have, Got Shape
}

func (e *GridConflictError) Error() string {
	return fmt.Sprintf("grid conflict: figure has a %v grid, but this call's data implies %v", e.Have, e.Got)
}

// DataError reports input data that cannot support the requested
// plot: a missing column, an all-null dimension, an empty table, or a
// non-numeric data column.
type DataError struct {
	Column string
	// Available lists the columns that do exist.
	Available []string
	Msg       string
}

func (e *DataError) Error() string {
	msg := "data error: "
	if e.Column != "" {
		msg += fmt.Sprintf("column %q: ", e.Column)
	}
	msg += e.Msg
	if e.Available != nil {
		msg += fmt.Sprintf(" (available columns: %s)", strings.Join(e.Available, ", "))
	}
	return msg
}

// EmptyCellWarning reports a targeted subplot with no matching data.
// Depending on the figure's empty-cell policy it is logged, returned
// as an error, or dropped.
type EmptyCellWarning struct {
	Row, Col           int
	RowValue, ColValue interface{}
}

func (w *EmptyCellWarning) Error() string {
	return fmt.Sprintf("subplot (%d, %d) has no data for %s", w.Row, w.Col, w.facets())
}

func (w *EmptyCellWarning) facets() string {
	var parts []string
	if w.RowValue != nil {
		parts = append(parts, fmt.Sprintf("row=%v", w.RowValue))
	}
	if w.ColValue != nil {
		parts = append(parts, fmt.Sprintf("col=%v", w.ColValue))
	}
	if parts == nil {
		return "any facet"
	}
	return strings.Join(parts, " ")
}
