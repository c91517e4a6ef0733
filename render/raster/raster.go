// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster implements a render.Backend that paints a subplot
// grid into an image.
//
// Draw calls are collected and painted when the image is requested,
// so each subplot's axis ranges cover every layer drawn into it.
// Shapes are painted at a multiple of the output resolution and scaled
// down for antialiasing; text is drawn at the output resolution.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sort"

	"github.com/aclements/go-gg/palette"
	"golang.org/x/image/draw"

	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// Options control the size of the painted image.
type Options struct {
	// CellWidth and CellHeight are the size of each subplot in
	// pixels. The defaults are 320 and 240.
	CellWidth, CellHeight int
	// Supersample is the factor shapes are painted at before
	// scaling down. The default is 2; 1 disables antialiasing.
	Supersample int
}

// A Canvas is a render.Backend that paints a grid of subplots.
type Canvas struct {
	opts       Options
	rows, cols int
	panels     map[render.Cell]*panel
}

// New returns an empty Canvas.
func New(opts Options) *Canvas {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 320
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 240
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 2
	}
	return &Canvas{opts: opts, panels: make(map[render.Cell]*panel)}
}

// SetShape sets the grid size. Without it, the grid is just large
// enough to hold every cell drawn into.
func (c *Canvas) SetShape(rows, cols int) {
	c.rows, c.cols = rows, cols
}

func (c *Canvas) panel(cell render.Cell) *panel {
	p := c.panels[cell]
	if p == nil {
		p = &panel{}
		c.panels[cell] = p
	}
	return p
}

// colormaps are the continuous palettes the c channel may use.
var colormaps = map[string]palette.Continuous{
	"viridis": palette.Viridis,
	"gray": palette.RGBGradient{Colors: []color.RGBA{
		{0x00, 0x00, 0x00, 0xff},
		{0xff, 0xff, 0xff, 0xff},
	}},
}

func (c *Canvas) Draw(call render.DrawCall) (render.Artist, error) {
	switch call.Kind + "/" + call.Component {
	case "scatter/main", "line/main", "bar/main", "errorbar/main", "errorbar/error-bars", "fill/main":
	default:
		return nil, fmt.Errorf("raster: cannot draw %s/%s", call.Kind, call.Component)
	}
	if cm, ok := call.Attrs.String("cmap"); ok {
		if _, ok := colormaps[cm]; !ok {
			return nil, fmt.Errorf("raster: unknown colormap %q", cm)
		}
	}
	m := &mark{call: call, post: make(style.Attrs)}
	p := c.panel(call.Cell)
	p.marks = append(p.marks, m)
	return m, nil
}

func (c *Canvas) ConfigureAxis(cell render.Cell, ops ...render.AxisOp) error {
	p := c.panel(cell)
	for _, op := range ops {
		switch op.Kind {
		case render.SetTitle:
			p.title = op.Text
		case render.SetXLabel:
			p.xlabel = op.Text
		case render.SetYLabel:
			p.ylabel = op.Text
		case render.SetXLimits:
			p.xlim = &[2]float64{op.Min, op.Max}
		case render.SetYLimits:
			p.ylim = &[2]float64{op.Min, op.Max}
		case render.SetStyle:
			if p.style == nil {
				p.style = make(style.Attrs)
			}
			for k, v := range op.Attrs {
				p.style[k] = v
			}
		default:
			return fmt.Errorf("raster: unknown axis operation %v", op.Kind)
		}
	}
	return nil
}

func (c *Canvas) extent() (rows, cols int) {
	rows, cols = c.rows, c.cols
	for cell := range c.panels {
		if cell.Row >= rows {
			rows = cell.Row + 1
		}
		if cell.Col >= cols {
			cols = cell.Col + 1
		}
	}
	if rows == 0 || cols == 0 {
		return 1, 1
	}
	return rows, cols
}

// Image paints the grid.
func (c *Canvas) Image() *image.RGBA {
	rows, cols := c.extent()
	cw, ch, ss := c.opts.CellWidth, c.opts.CellHeight, c.opts.Supersample
	w, h := cols*cw, rows*ch

	cells := make([]render.Cell, 0, len(c.panels))
	for cell := range c.panels {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	layouts := make([]*layout, len(cells))
	for i, cell := range cells {
		origin := image.Pt(cell.Col*cw, cell.Row*ch)
		layouts[i] = c.panels[cell].layout(image.Rectangle{Min: origin, Max: origin.Add(image.Pt(cw, ch))})
	}

	big := image.NewRGBA(image.Rect(0, 0, w*ss, h*ss))
	draw.Draw(big, big.Bounds(), image.White, image.Point{}, draw.Src)
	p := newPainter(big)
	for i, cell := range cells {
		c.panels[cell].paintShapes(p, layouts[i], float64(ss))
	}

	out := big
	if ss > 1 {
		out = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(out, out.Bounds(), big, big.Bounds(), draw.Over, nil)
	}
	for i, cell := range cells {
		c.panels[cell].paintText(out, layouts[i])
	}
	return out
}

// WritePNG paints the grid and encodes it to w as a PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}
