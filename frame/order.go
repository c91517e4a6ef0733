// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"fmt"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// Order arranges the present values of a dimension according to an
// explicit caller ordering. Listed values come first, in the order
// given, followed by any present values the caller did not list, in
// their existing order. A listed value matches a present value if
// they are equal or print the same, so "2" names the integer 2 of a
// coerced CSV column. Listed values that are not present are kept;
// they become subplots with no data.
//
// field names the option being applied, for error messages.
func Order(present, explicit []interface{}, field string) ([]interface{}, error) {
	if len(explicit) == 0 {
		return present, nil
	}

	byText := make(map[string]interface{}, len(present))
	for _, v := range present {
		byText[fmt.Sprint(v)] = v
	}

	out := make([]interface{}, 0, len(present)+len(explicit))
	used := make(map[interface{}]bool)
	listed := make(map[string]bool)
	for _, e := range explicit {
		key := fmt.Sprint(e)
		if listed[key] {
			return nil, diag.Configf(field, "value %v is listed more than once", e)
		}
		listed[key] = true

		v := e
		if pv, ok := byText[key]; ok {
			v = pv
		}
		used[v] = true
		out = append(out, v)
	}
	for _, v := range present {
		if !used[v] {
			out = append(out, v)
		}
	}
	return out, nil
}
