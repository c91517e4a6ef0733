// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aclements/go-gg/table"

	"github.com/drothermel/dr-plotter-sub000/diag"
)

// benchResult is one result line of a benchmark file.
type benchResult struct {
	name   string
	config map[string]string
	values map[string]float64 // unit -> value
}

var benchConfigRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// FromBenchmarks reads results in the Go benchmark format [1] from r.
//
// The frame is in long form, with one row per result line and unit.
// Its columns are "name" (without the "Benchmark" prefix), one column
// per configuration key, "run" (the result line's index among lines
// with the same name), "unit", and "value". Configuration keys come
// from "key: value" block lines, "/key:value" name parts, and the
// trailing "-N" GOMAXPROCS suffix, which becomes "gomaxprocs". A
// configuration column whose values all parse as numbers is numeric.
//
// [1] https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
func FromBenchmarks(r io.Reader) (Frame, error) {
	var results []*benchResult
	block := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := benchConfigRe.FindStringSubmatch(line); m != nil {
			block[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if res := parseBenchLine(line, block); res != nil {
				results = append(results, res)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Frame{}, fmt.Errorf("reading benchmarks: %w", err)
	}
	if len(results) == 0 {
		return Frame{}, &diag.DataError{Msg: "input has no benchmark results"}
	}
	return benchFrame(results), nil
}

func parseBenchLine(line string, block map[string]string) *benchResult {
	f := strings.Fields(line)
	if len(f) < 4 {
		return nil
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return nil
		}
	}
	if n, err := strconv.Atoi(f[1]); err != nil || n <= 0 {
		return nil
	}

	res := &benchResult{config: make(map[string]string), values: make(map[string]float64)}
	for k, v := range block {
		res.config[k] = v
	}
	name := strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			res.config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	parts := strings.Split(name, "/")
	res.name = parts[0]
	for _, part := range parts[1:] {
		if k, v, ok := strings.Cut(part, ":"); ok {
			res.config[k] = v
		}
	}
	if _, ok := res.config["gomaxprocs"]; !ok {
		res.config["gomaxprocs"] = "1"
	}

	for i := 2; i+2 <= len(f); i += 2 {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		res.values[f[i+1]] = v
	}
	if len(res.values) == 0 {
		return nil
	}
	return res
}

func benchFrame(results []*benchResult) Frame {
	keySet := make(map[string]bool)
	for _, res := range results {
		for k := range res.config {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		if k == "name" || k == "run" || k == "unit" || k == "value" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		names, units []string
		runs         []int
		values       []float64
	)
	raw := make(map[string][]string)
	nruns := make(map[string]int)
	for _, res := range results {
		order := make([]string, 0, len(res.values))
		for u := range res.values {
			order = append(order, u)
		}
		sort.Strings(order)
		run := nruns[res.name]
		nruns[res.name]++
		for _, u := range order {
			names = append(names, res.name)
			runs = append(runs, run)
			units = append(units, u)
			values = append(values, res.values[u])
			for _, k := range keys {
				raw[k] = append(raw[k], res.config[k])
			}
		}
	}

	b := new(table.Builder).Add("name", names)
	for _, k := range keys {
		b.Add(k, configColumn(raw[k]))
	}
	b.Add("run", runs).Add("unit", units).Add("value", values)
	return New(b.Done())
}

// configColumn returns vals as []float64 if every non-empty value is
// a number, with NaN for empty values. Otherwise it returns vals.
func configColumn(vals []string) interface{} {
	nums := make([]float64, len(vals))
	for i, s := range vals {
		if s == "" {
			nums[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return vals
		}
		nums[i] = v
	}
	return nums
}
