// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"image/color"
	"sort"
)

// Channel attributes can be mapped to a grouping column instead of
// receiving a literal value.
const (
	ChannelColor     = "color"
	ChannelMarker    = "marker"
	ChannelLineStyle = "linestyle"
	// ChannelC maps a numeric column through a continuous colormap.
	// It is not cycled.
	ChannelC = "c"
)

// CycledChannels are the channels whose values come from a Cycle.
var CycledChannels = []string{ChannelColor, ChannelMarker, ChannelLineStyle}

// IsChannel reports whether attribute name may select a column.
func IsChannel(name string) bool {
	switch name {
	case ChannelColor, ChannelMarker, ChannelLineStyle, ChannelC:
		return true
	}
	return false
}

// A Bundle is the set of cycled style values assigned to one category.
type Bundle struct {
	// Index is the category's position in its dimension's cycle.
	Index     int
	Color     color.Color
	Marker    string
	LineStyle string
}

// Attr returns the bundle's value for a cycled channel.
func (b Bundle) Attr(channel string) (interface{}, bool) {
	switch channel {
	case ChannelColor:
		return b.Color, true
	case ChannelMarker:
		return b.Marker, true
	case ChannelLineStyle:
		return b.LineStyle, true
	}
	return nil, false
}

// Attrs returns the bundle's values for the given channels.
func (b Bundle) Attrs(channels []string) Attrs {
	out := make(Attrs, len(channels))
	for _, ch := range channels {
		if v, ok := b.Attr(ch); ok {
			out[ch] = v
		}
	}
	return out
}

func (c Cycle) bundle(i int) Bundle {
	return Bundle{
		Index:     i,
		Color:     c.Colors[i%len(c.Colors)],
		Marker:    c.Markers[i%len(c.Markers)],
		LineStyle: c.LineStyles[i%len(c.LineStyles)],
	}
}

// An Assigner deterministically maps (dimension, category) pairs to
// positions in a style cycle. Categories are numbered in the order
// they are first assigned, and an assignment never changes.
type Assigner struct {
	cycle Cycle
	dims  map[string]*dimCursor
}

type dimCursor struct {
	next     int
	assigned map[interface{}]Bundle
}

// NewAssigner returns an Assigner drawing from c.
func NewAssigner(c Cycle) *Assigner {
	return &Assigner{cycle: c.clone(), dims: make(map[string]*dimCursor)}
}

// Assign returns value's bundle in dimension dim, assigning the next
// cycle position if value has not been seen before.
func (a *Assigner) Assign(dim string, value interface{}) Bundle {
	d := a.dims[dim]
	if d == nil {
		d = &dimCursor{assigned: make(map[interface{}]Bundle)}
		a.dims[dim] = d
	}
	if b, ok := d.assigned[value]; ok {
		return b
	}
	b := a.cycle.bundle(d.next)
	d.next++
	d.assigned[value] = b
	return b
}

// Bundle returns value's bundle in dim without assigning one.
func (a *Assigner) Bundle(dim string, value interface{}) (Bundle, bool) {
	d := a.dims[dim]
	if d == nil {
		return Bundle{}, false
	}
	b, ok := d.assigned[value]
	return b, ok
}

// Len returns the number of values assigned in dim.
func (a *Assigner) Len(dim string) int {
	if d := a.dims[dim]; d != nil {
		return d.next
	}
	return 0
}

// Forget drops every assignment of dim.
func (a *Assigner) Forget(dim string) {
	delete(a.dims, dim)
}

// Dimensions returns the tracked dimension names, sorted.
func (a *Assigner) Dimensions() []string {
	names := make([]string, 0, len(a.dims))
	for name := range a.dims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
