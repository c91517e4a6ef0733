// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package style decides the final visual attributes of every drawn
// component.
//
// Attribute values come from four layered sources. From highest to
// lowest precedence they are: an explicit caller keyword, a value
// cycled per category of a grouping dimension, the theme default for
// the plot type, and the theme's base default. The same resolution
// runs for each drawing phase: the initial draw, post-draw styling of
// the returned artists, and axis-level styling.
package style

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// Phase is a stage of styling.
type Phase string

const (
	// PhaseDraw attributes are passed to the backend's draw call.
	PhaseDraw Phase = "draw"
	// PhasePost attributes are applied to the artists returned by
	// a draw call.
	PhasePost Phase = "post"
	// PhaseAxes attributes configure a subplot's axes.
	PhaseAxes Phase = "axes"
)

// Phases lists every phase in the order they are applied.
var Phases = []Phase{PhaseDraw, PhasePost, PhaseAxes}

func (p Phase) valid() bool {
	switch p {
	case PhaseDraw, PhasePost, PhaseAxes:
		return true
	}
	return false
}

// Attrs maps attribute names to values.
type Attrs map[string]interface{}

// Clone returns a shallow copy of a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	b := make(Attrs, len(a))
	for k, v := range a {
		b[k] = v
	}
	return b
}

// Keys returns the attribute names of a in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Float returns attribute key of a as a float64. It accepts any
// numeric value.
func (a Attrs) Float(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// String returns attribute key of a if it is a string.
func (a Attrs) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// Bool returns attribute key of a if it is a bool.
func (a Attrs) Bool(key string) (bool, bool) {
	b, ok := a[key].(bool)
	return b, ok
}

// Color returns attribute key of a if it is a color. Resolved
// attributes always hold parsed colors.
func (a Attrs) Color(key string) (color.Color, bool) {
	c, ok := a[key].(color.Color)
	return c, ok
}

// ColumnRef is the resolved value of a channel attribute that was
// mapped to a data column rather than given a literal value. The
// backend finds the column's values in the draw call's series.
type ColumnRef string

// IsColorAttr reports whether values of attribute name are colors.
func IsColorAttr(name string) bool {
	return name == "color" || strings.HasSuffix(name, "color") || name == "background"
}

// ParseColor converts v to a color. It accepts color.Color values,
// "#rgb", "#rrggbb", and "#rrggbbaa" hex strings, and SVG color names.
// Anything else is rejected immediately.
func ParseColor(v interface{}) (color.Color, error) {
	switch v := v.(type) {
	case color.Color:
		return v, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if strings.HasPrefix(s, "#") {
			return parseHex(s[1:])
		}
		if c, ok := colornames.Map[s]; ok {
			return c, nil
		}
		return nil, fmt.Errorf("unknown color %q", v)
	}
	return nil, fmt.Errorf("%v (%T) is not a color", v, v)
}

func parseHex(s string) (color.Color, error) {
	var digits [8]uint8
	if len(s) != 3 && len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("bad hex color #%s: want 3, 6, or 8 digits", s)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
			digits[i] = c - '0'
		case 'a' <= c && c <= 'f':
			digits[i] = c - 'a' + 10
		default:
			return nil, fmt.Errorf("bad hex color #%s: invalid digit %q", s, c)
		}
	}
	if len(s) == 3 {
		return color.RGBA{digits[0] * 17, digits[1] * 17, digits[2] * 17, 0xff}, nil
	}
	c := color.NRGBA{digits[0]<<4 | digits[1], digits[2]<<4 | digits[3], digits[4]<<4 | digits[5], 0xff}
	if len(s) == 8 {
		c.A = digits[6]<<4 | digits[7]
	}
	return c, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" if c is translucent.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// normalize validates the values of attrs that must be colors and
// replaces them with parsed colors. It returns a new map.
func normalize(attrs Attrs) (Attrs, error) {
	out := make(Attrs, len(attrs))
	for k, v := range attrs {
		if IsColorAttr(k) {
			if _, ok := v.(ColumnRef); !ok {
				c, err := ParseColor(v)
				if err != nil {
					return nil, diag.Configf(k, "%v", err)
				}
				v = c
			}
		}
		out[k] = v
	}
	return out, nil
}
