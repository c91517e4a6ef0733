// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/drothermel/dr-plotter-sub000/facet"
	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/plots"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// config is the plot described by the command line.
type config struct {
	kind               string
	layers             listFlag
	kwargs             listFlag
	x, y, y2, err      string
	rows, cols, lines  string
	channels           string
	wrapCols, wrapRows int
	rowOrder, colOrder string
	xlim, ylim         string
	empty              facet.EmptyPolicy
}

// plot draws every layer of cfg into fig.
func plot(fig *facet.Figure, data frame.Frame, cfg *config) error {
	spec, err := cfg.spec(data)
	if err != nil {
		return err
	}
	layers, err := cfg.layerList()
	if err != nil {
		return err
	}
	for _, l := range layers {
		if _, err := fig.Plot(data, l, spec); err != nil {
			return fmt.Errorf("%s layer: %w", l.Kind, err)
		}
	}
	return nil
}

func (cfg *config) spec(data frame.Frame) (facet.Spec, error) {
	spec := facet.Spec{
		RowDimension:   cfg.rows,
		ColDimension:   cfg.cols,
		LinesDimension: cfg.lines,
		LinesChannels:  splitList(cfg.channels),
		WrapCols:       cfg.wrapCols,
		WrapRows:       cfg.wrapRows,
		RowOrder:       values(splitList(cfg.rowOrder)),
		ColOrder:       values(splitList(cfg.colOrder)),
		EmptyPolicy:    cfg.empty,
	}
	if cfg.xlim == "" && cfg.ylim == "" {
		return spec, nil
	}

	// Limits apply to every subplot, so they need the grid shape.
	g, err := facet.ComputeGrid(data, &spec)
	if err != nil {
		return spec, err
	}
	if spec.XLimits, err = everyCell(cfg.xlim, "-xlim", g); err != nil {
		return spec, err
	}
	if spec.YLimits, err = everyCell(cfg.ylim, "-ylim", g); err != nil {
		return spec, err
	}
	return spec, nil
}

// everyCell parses "min,max" and repeats it for each cell of g.
func everyCell(s, flag string, g *facet.Grid) ([][]*facet.Limits, error) {
	if s == "" {
		return nil, nil
	}
	lim, err := parseLimits(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flag, err)
	}
	out := make([][]*facet.Limits, g.Rows)
	for r := range out {
		out[r] = make([]*facet.Limits, g.Cols)
		for c := range out[r] {
			out[r][c] = lim
		}
	}
	return out, nil
}

func parseLimits(s string) (*facet.Limits, error) {
	parts := splitList(s)
	if len(parts) != 2 {
		return nil, fmt.Errorf("want min,max, got %q", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}
	return &facet.Limits{Min: lo, Max: hi}, nil
}

var registry = plots.Default()

// layerList returns the layers to draw, pairing the i'th -kw with
// the i'th layer.
func (cfg *config) layerList() ([]facet.Layer, error) {
	kinds := append([]string{cfg.kind}, cfg.layers...)
	if len(cfg.kwargs) > len(kinds) {
		return nil, fmt.Errorf("%d -kw flags for %d layers", len(cfg.kwargs), len(kinds))
	}
	layers := make([]facet.Layer, len(kinds))
	for i, kind := range kinds {
		layers[i] = facet.Layer{Kind: kind, X: cfg.x, Y: cfg.y, Y2: cfg.y2, Err: cfg.err}
		// Layers share -y2 and -err, but each kind takes only
		// the roles it draws.
		if k, err := registry.Lookup(kind); err == nil {
			if !k.Needs(plots.RoleY2) {
				layers[i].Y2 = ""
			}
			if !k.Needs(plots.RoleErr) {
				layers[i].Err = ""
			}
		}
		if len(kinds) > 1 {
			layers[i].Label = kind
		}
		if i < len(cfg.kwargs) {
			kw, err := parseKwargs(cfg.kwargs[i])
			if err != nil {
				return nil, fmt.Errorf("-kw %q: %w", cfg.kwargs[i], err)
			}
			layers[i].Kwargs = kw
		}
	}
	return layers, nil
}

// parseKwargs parses a shell-quoted list of key=value pairs. Values
// that look like numbers or booleans become those types.
func parseKwargs(s string) (style.Attrs, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, err
	}
	kw := make(style.Attrs, len(words))
	for _, w := range words {
		k, v, ok := strings.Cut(w, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%q is not key=value", w)
		}
		kw[k] = parseValue(v)
	}
	return kw, nil
}

func parseValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func values(ss []string) []interface{} {
	if ss == nil {
		return nil
	}
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
