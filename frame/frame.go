// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame is the plotting engine's view of tabular input data.
//
// A Frame wraps a go-gg table and answers the few questions the
// engine asks of its data: which columns exist, what distinct non-null
// values a column holds, which rows match a facet, and what a data
// column looks like as float64s.
package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/aclements/go-gg/generic"
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// A Frame is an immutable table of named columns.
type Frame struct {
	t *table.Table
}

// New returns a Frame over t. A nil t is an empty frame.
func New(t *table.Table) Frame {
	if t == nil {
		t = new(table.Table)
	}
	return Frame{t}
}

// FromCSV reads a CSV file whose first record names the columns.
// Columns whose values all parse as numbers become numeric columns.
func FromCSV(r io.Reader) (Frame, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Frame{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return Frame{}, &diag.DataError{Msg: "CSV input has no header row"}
	}
	return New(table.TableFromStrings(rows[0], rows[1:], true)), nil
}

// Table returns the underlying go-gg table.
func (f Frame) Table() *table.Table {
	if f.t == nil {
		return new(table.Table)
	}
	return f.t
}

// Len returns the number of rows in f.
func (f Frame) Len() int {
	if f.t == nil {
		return 0
	}
	return f.t.Len()
}

// Columns returns the column names of f in order.
func (f Frame) Columns() []string {
	if f.t == nil {
		return nil
	}
	return f.t.Columns()
}

// Has reports whether f has column col.
func (f Frame) Has(col string) bool {
	return f.t != nil && f.t.Column(col) != nil
}

// Require returns a *diag.DataError naming the first of cols that f
// lacks, or nil.
func (f Frame) Require(cols ...string) error {
	for _, col := range cols {
		if col != "" && !f.Has(col) {
			return &diag.DataError{Column: col, Available: f.availableColumns(), Msg: "no such column"}
		}
	}
	return nil
}

func (f Frame) availableColumns() []string {
	cols := f.Columns()
	if cols == nil {
		return []string{}
	}
	return cols
}

func (f Frame) column(col string) reflect.Value {
	return reflect.ValueOf(f.t.MustColumn(col))
}

// IsNull reports whether v is a missing value: nil, a nil pointer or
// interface, a NaN, or an empty string.
func IsNull(v interface{}) bool {
	if v == nil {
		return true
	}
	return isNullValue(reflect.ValueOf(v))
}

func isNullValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr:
		return rv.IsNil()
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	case reflect.String:
		return rv.Len() == 0
	}
	return false
}

// Values returns the values of col, one per row.
func (f Frame) Values(col string) []interface{} {
	rv := f.column(col)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Distinct returns the distinct non-null values of col in the order
// they first appear.
func (f Frame) Distinct(col string) []interface{} {
	rv := f.column(col)
	seen := make(map[interface{}]bool)
	var out []interface{}
	for i := 0; i < rv.Len(); i++ {
		ev := rv.Index(i)
		if isNullValue(ev) {
			continue
		}
		v := ev.Interface()
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Sorted returns the distinct non-null values of col in natural
// ascending order if the column's type is orderable, and in
// first-seen order otherwise.
func (f Frame) Sorted(col string) []interface{} {
	vals := f.Distinct(col)
	et := f.column(col).Type().Elem()
	if !generic.CanOrderR(et.Kind()) {
		return vals
	}
	seq := reflect.MakeSlice(reflect.SliceOf(et), 0, len(vals))
	for _, v := range vals {
		seq = reflect.Append(seq, reflect.ValueOf(v))
	}
	slice.Sort(seq.Interface())
	for i := range vals {
		vals[i] = seq.Index(i).Interface()
	}
	return vals
}

// Where returns the rows of f for which pred returns true.
func (f Frame) Where(pred func(row int) bool) Frame {
	var idx []int
	for i := 0; i < f.Len(); i++ {
		if pred(i) {
			idx = append(idx, i)
		}
	}
	return f.Select(idx)
}

// Eq returns a row predicate matching rows where col equals v.
func (f Frame) Eq(col string, v interface{}) func(row int) bool {
	rv := f.column(col)
	return func(row int) bool {
		return rv.Index(row).Interface() == v
	}
}

// Select returns the rows of f at the given indexes, in order.
func (f Frame) Select(idx []int) Frame {
	if idx == nil {
		idx = []int{}
	}
	b := new(table.Builder)
	for _, col := range f.Columns() {
		b.Add(col, slice.Select(f.t.Column(col), idx))
	}
	return New(b.Done())
}

// Floats returns col converted to float64s. Null values become NaN.
// It fails with a *diag.DataError if col is missing or not numeric.
func (f Frame) Floats(col string) ([]float64, error) {
	if err := f.Require(col); err != nil {
		return nil, err
	}
	rv := f.column(col)
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil, &diag.DataError{
			Column:    col,
			Available: f.availableColumns(),
			Msg:       fmt.Sprintf("column has type %s; want a numeric column", rv.Type().Elem()),
		}
	}
	var out []float64
	slice.Convert(&out, rv.Interface())
	return out, nil
}
