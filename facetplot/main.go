// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command facetplot draws a faceted grid of plots from a CSV file.
//
// The first CSV record names the columns. -rows and -cols split the
// data into a grid of subplots by the distinct values of those columns
// (or one of them, wrapped with -wrap-cols or -wrap-rows), and -lines
// splits each subplot into one series per value, each with its own
// color, marker, or line style. A value keeps its style in every
// subplot and every layer.
//
// For example,
//
//	facetplot -x step -y value -rows metric -cols lr -lines seed -o runs.png runs.csv
//
// -kind gives the first layer's plot type and each -layer adds
// another plot type drawn over the same grid. The i'th -kw applies to
// the i'th layer and holds shell-quoted key=value style settings:
//
//	facetplot -x step -y value -cols metric -kind line -layer scatter \
//	    -kw 'linewidth=2' -kw 'marker=s size=3' -o runs.html runs.csv
//
// With -format bench, the input is Go benchmark results instead of
// CSV. Each result line and unit is a row with columns "name", one
// per configuration key, "run", "unit", and "value", so
//
//	go test -bench . -count 5 | facetplot -format bench -x run -y value -rows unit -lines name -o bench.png
//
// plots every benchmark's runs, one subplot per unit.
//
// The output format follows the -o extension: .png paints an image
// and .html writes an interactive page. -n prints the draw calls that
// would be made instead.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/drothermel/dr-plotter-sub000/facet"
	"github.com/drothermel/dr-plotter-sub000/frame"
	"github.com/drothermel/dr-plotter-sub000/render"
	"github.com/drothermel/dr-plotter-sub000/render/echarts"
	"github.com/drothermel/dr-plotter-sub000/render/raster"
	"github.com/drothermel/dr-plotter-sub000/render/record"
	"github.com/drothermel/dr-plotter-sub000/style"
)

// listFlag is a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, " ")
}

func (l *listFlag) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func main() {
	log.SetPrefix("facetplot: ")
	log.SetFlags(0)

	var (
		cfg       config
		flagTheme = flag.String("theme", "", "read a YAML theme overlay from `file`")
		flagOut   = flag.String("o", "", "write output to `file` (.png or .html)")
		flagDry   = flag.Bool("n", false, "print the draw calls instead of writing output")
		flagEmpty = flag.String("empty", "warn", "empty subplot `policy`: warn, error, or silent")
		flagTitle = flag.String("title", "", "page `title` for HTML output")
		flagFmt   = flag.String("format", "csv", "input `format`: csv or bench (Go benchmark results)")
	)
	flag.StringVar(&cfg.kind, "kind", "line", "plot `type` of the first layer")
	flag.Var(&cfg.layers, "layer", "add a layer of plot `type` (repeatable)")
	flag.Var(&cfg.kwargs, "kw", "shell-quoted key=value `settings` for the next layer (repeatable)")
	flag.StringVar(&cfg.x, "x", "", "x `column`")
	flag.StringVar(&cfg.y, "y", "", "y `column`")
	flag.StringVar(&cfg.y2, "y2", "", "lower bound `column` for fill")
	flag.StringVar(&cfg.err, "err", "", "error `column` for errorbar")
	flag.StringVar(&cfg.rows, "rows", "", "facet subplot rows by `column`")
	flag.StringVar(&cfg.cols, "cols", "", "facet subplot columns by `column`")
	flag.StringVar(&cfg.lines, "lines", "", "split each subplot into series by `column`")
	flag.StringVar(&cfg.channels, "channels", "", "comma-separated style `channels` for -lines")
	flag.IntVar(&cfg.wrapCols, "wrap-cols", 0, "wrap the facet values into `n` columns")
	flag.IntVar(&cfg.wrapRows, "wrap-rows", 0, "wrap the facet values into `n` rows")
	flag.StringVar(&cfg.rowOrder, "row-order", "", "comma-separated row `values` to place first")
	flag.StringVar(&cfg.colOrder, "col-order", "", "comma-separated column `values` to place first")
	flag.StringVar(&cfg.xlim, "xlim", "", "x axis `min,max` for every subplot")
	flag.StringVar(&cfg.ylim, "ylim", "", "y axis `min,max` for every subplot")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	policy, err := facet.ParseEmptyPolicy(*flagEmpty)
	if err != nil {
		log.Fatal(err)
	}
	cfg.empty = policy

	ext := strings.ToLower(filepath.Ext(*flagOut))
	if !*flagDry && ext != ".png" && ext != ".html" {
		log.Fatal("-o must name a .png or .html file")
	}

	// Read input.
	in := os.Stdin
	if flag.NArg() == 1 && flag.Arg(0) != "-" {
		in, err = os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	}
	data, err := readInput(in, *flagFmt)
	in.Close()
	if err != nil {
		log.Fatal(err)
	}

	opts := []facet.Option{
		facet.WithLogger(warnLogger(color.Error)),
		facet.WithRegistry(registry),
	}
	if *flagTheme != "" {
		f, err := os.Open(*flagTheme)
		if err != nil {
			log.Fatal(err)
		}
		theme, err := style.LoadTheme(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, facet.WithTheme(theme))
	}

	// Plot.
	var (
		backend render.Backend
		canvas  *raster.Canvas
		page    *echarts.Page
		rec     *record.Recorder
	)
	switch {
	case *flagDry:
		rec = record.New()
		backend = rec
	case ext == ".png":
		canvas = raster.New(raster.Options{})
		backend = canvas
	default:
		page = echarts.New(echarts.Options{Title: *flagTitle})
		backend = page
	}
	fig := facet.NewFigure(backend, opts...)
	defer fig.Close()
	if err := plot(fig, data, &cfg); err != nil {
		log.Fatal(err)
	}

	// Output.
	if rec != nil {
		if err := rec.Fprint(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	f, err := os.Create(*flagOut)
	if err != nil {
		log.Fatal(err)
	}
	if canvas != nil {
		shape := fig.Grid().Shape()
		canvas.SetShape(shape.Rows, shape.Cols)
		err = canvas.WritePNG(f)
	} else {
		err = page.Render(f)
	}
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err != nil {
		log.Fatal(err)
	}
}

func readInput(r io.Reader, format string) (frame.Frame, error) {
	switch format {
	case "csv":
		return frame.FromCSV(r)
	case "bench":
		return frame.FromBenchmarks(r)
	}
	return frame.Frame{}, fmt.Errorf("unknown input format %q", format)
}

// warnLogger returns a logger that writes records to w as text,
// tinted yellow.
func warnLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(tintWriter{w, color.New(color.FgYellow)}, nil))
}

type tintWriter struct {
	w io.Writer
	c *color.Color
}

func (t tintWriter) Write(p []byte) (int, error) {
	if _, err := t.c.Fprint(t.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
