// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type pt struct{ x, y float64 }

// A painter fills paths into an image, clipped to a rectangle.
// Coordinates are in image pixels.
type painter struct {
	dst  *image.RGBA
	r    *vector.Rasterizer
	clip image.Rectangle
}

func newPainter(dst *image.RGBA) *painter {
	b := dst.Bounds()
	return &painter{dst: dst, r: vector.NewRasterizer(b.Dx(), b.Dy()), clip: b}
}

func (p *painter) setClip(r image.Rectangle) {
	p.clip = r.Intersect(p.dst.Bounds())
}

func (p *painter) begin() {
	p.r.Reset(p.clip.Dx(), p.clip.Dy())
}

func (p *painter) moveTo(q pt) {
	p.r.MoveTo(float32(q.x-float64(p.clip.Min.X)), float32(q.y-float64(p.clip.Min.Y)))
}

func (p *painter) lineTo(q pt) {
	p.r.LineTo(float32(q.x-float64(p.clip.Min.X)), float32(q.y-float64(p.clip.Min.Y)))
}

func (p *painter) paint(c color.Color) {
	if p.clip.Empty() {
		return
	}
	p.r.Draw(p.dst, p.clip, image.NewUniform(c), image.Point{})
}

func (p *painter) polygon(pts []pt) {
	if len(pts) < 3 {
		return
	}
	p.moveTo(pts[0])
	for _, q := range pts[1:] {
		p.lineTo(q)
	}
	p.r.ClosePath()
}

func (p *painter) fillPolygon(pts []pt, c color.Color) {
	p.begin()
	p.polygon(pts)
	p.paint(c)
}

func (p *painter) fillRect(r image.Rectangle, c color.Color) {
	p.fillPolygon([]pt{
		{float64(r.Min.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Max.Y)},
		{float64(r.Min.X), float64(r.Max.Y)},
	}, c)
}

// segment adds a quad covering the line from a to b with half-width w.
func (p *painter) segment(a, b pt, w float64) {
	vx, vy := b.x-a.x, b.y-a.y
	l := math.Hypot(vx, vy)
	if l == 0 {
		return
	}
	nx, ny := -vy/l*w, vx/l*w
	p.moveTo(pt{a.x + nx, a.y + ny})
	p.lineTo(pt{b.x + nx, b.y + ny})
	p.lineTo(pt{b.x - nx, b.y - ny})
	p.lineTo(pt{a.x - nx, a.y - ny})
	p.r.ClosePath()
}

// dashes are on/off lengths in units of line width.
var dashes = map[string][]float64{
	"--": {4, 2},
	":":  {1, 1.5},
	"-.": {4, 1.5, 1, 1.5},
}

// stroke draws a polyline. NaN points break the line.
func (p *painter) stroke(pts []pt, width float64, c color.Color, style string) {
	if width <= 0 {
		return
	}
	w := math.Max(width/2, 0.5)
	pattern := dashes[style]
	p.begin()
	var phase float64
	idx, on := 0, true
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if isNaNPt(a) || isNaNPt(b) {
			continue
		}
		if pattern == nil {
			p.segment(a, b, w)
			continue
		}
		// Walk the segment, toggling at dash boundaries.
		l := math.Hypot(b.x-a.x, b.y-a.y)
		for t := 0.0; t < l; {
			left := pattern[idx]*width - phase
			step := math.Min(left, l-t)
			if on {
				s, e := t/l, (t+step)/l
				p.segment(pt{a.x + (b.x-a.x)*s, a.y + (b.y-a.y)*s}, pt{a.x + (b.x-a.x)*e, a.y + (b.y-a.y)*e}, w)
			}
			t += step
			phase += step
			if phase >= pattern[idx]*width {
				phase = 0
				idx = (idx + 1) % len(pattern)
				on = !on
			}
		}
	}
	p.paint(c)
}

func isNaNPt(q pt) bool {
	return math.IsNaN(q.x) || math.IsNaN(q.y)
}

// marker draws a marker of the given diameter centered at q.
func (p *painter) marker(shape string, q pt, size float64, fill color.Color) {
	if isNaNPt(q) || size <= 0 {
		return
	}
	r := size / 2
	switch shape {
	case "x", "+":
		w := math.Max(size/8, 0.5)
		p.begin()
		if shape == "x" {
			d := r / math.Sqrt2
			p.segment(pt{q.x - d, q.y - d}, pt{q.x + d, q.y + d}, w)
			p.segment(pt{q.x - d, q.y + d}, pt{q.x + d, q.y - d}, w)
		} else {
			p.segment(pt{q.x - r, q.y}, pt{q.x + r, q.y}, w)
			p.segment(pt{q.x, q.y - r}, pt{q.x, q.y + r}, w)
		}
		p.paint(fill)
		return
	}
	p.fillPolygon(markerPath(shape, q, r), fill)
}

func markerPath(shape string, q pt, r float64) []pt {
	switch shape {
	case "s":
		return []pt{{q.x - r, q.y - r}, {q.x + r, q.y - r}, {q.x + r, q.y + r}, {q.x - r, q.y + r}}
	case "^":
		return []pt{{q.x, q.y - r}, {q.x + r, q.y + r}, {q.x - r, q.y + r}}
	case "v":
		return []pt{{q.x - r, q.y - r}, {q.x + r, q.y - r}, {q.x, q.y + r}}
	case "D":
		return []pt{{q.x, q.y - r}, {q.x + r, q.y}, {q.x, q.y + r}, {q.x - r, q.y}}
	}
	const n = 16
	out := make([]pt, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / n
		out[i] = pt{q.x + r*math.Cos(a), q.y + r*math.Sin(a)}
	}
	return out
}

// outline strokes the boundary of a marker.
func (p *painter) outline(shape string, q pt, size, width float64, c color.Color) {
	if shape == "x" || shape == "+" || width <= 0 || isNaNPt(q) {
		return
	}
	path := markerPath(shape, q, size/2)
	p.stroke(append(path, path[0]), width, c, "-")
}

var face = basicfont.Face7x13

// Text anchors.
const (
	alignLeft = iota
	alignCenter
	alignRight
)

// text draws s with its baseline at y, anchored horizontally at x.
func text(dst *image.RGBA, s string, x, y int, align int, c color.Color) {
	if s == "" {
		return
	}
	w := font.MeasureString(face, s).Round()
	switch align {
	case alignCenter:
		x -= w / 2
	case alignRight:
		x -= w
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// withAlpha scales c's opacity by alpha.
func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha = math.Max(0, math.Min(1, alpha))
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}
