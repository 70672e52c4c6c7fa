// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runchart turns averaged benchmark series into Markdown and
// HTML tables and stacked bar charts.
package runchart

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fzfbench/fzfbench/runlog"
	"github.com/fzfbench/fzfbench/runstat"
)

// A LegendPlacement is one of "upper left", "upper right", "lower left"
// and "lower right". The empty placement is "upper left".
type LegendPlacement string

func (l LegendPlacement) top() bool  { return !strings.HasPrefix(string(l), "lower") }
func (l LegendPlacement) left() bool { return !strings.HasSuffix(string(l), "right") }

func (l LegendPlacement) valid() bool {
	switch l {
	case "", "upper left", "upper right", "lower left", "lower right":
		return true
	}
	return false
}

// A Report describes one chart and its table.
type Report struct {
	// Name is the base name of the files written for the report.
	Name string `toml:"name"`

	Title  string `toml:"title"`
	XLabel string `toml:"xlabel"`
	YLabel string `toml:"ylabel"`

	// MinExp and MaxExp bound the haystack sizes shown, as powers of
	// two. Both are inclusive.
	MinExp int `toml:"min_exp"`
	MaxExp int `toml:"max_exp"`

	// Metric names an entry of runstat.Metrics.
	Metric string `toml:"metric"`

	// Show lists configuration labels in bar order. An empty string
	// leaves a gap of half a bar.
	Show []string `toml:"show"`

	// ColorGroups gives the palette shade of each metric slot. Its
	// length is the length of the metric vectors.
	ColorGroups []int `toml:"color_groups"`

	YMin float64 `toml:"ymin"`
	YMax float64 `toml:"ymax"`

	// Multiplier converts a value divided by the haystack size into the
	// per-straw unit of the y axis.
	Multiplier float64 `toml:"multiplier"`

	Legend LegendPlacement `toml:"legend"`

	// LegendBrowser, if set, keeps only the legend entries of that
	// browser's bars and names them after the configuration alone.
	LegendBrowser string `toml:"legend_browser"`
}

// Exponents returns MinExp through MaxExp.
func (r *Report) Exponents() []int {
	var exps []int
	for e := r.MinExp; e <= r.MaxExp; e++ {
		exps = append(exps, e)
	}
	return exps
}

func (r *Report) setDefaults() {
	if r.Title == "" {
		r.Title = "Runtime use divided by size of the haystack"
	}
	if r.XLabel == "" {
		r.XLabel = "Haystack size"
	}
	if r.YLabel == "" {
		r.YLabel = "Time per straw (µs)"
	}
	if r.Multiplier == 0 {
		r.Multiplier = 1e6
	}
}

func (r *Report) validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("report has no name")
	case strings.ContainsAny(r.Name, `/\`):
		return fmt.Errorf("report %q: name must not contain a path separator", r.Name)
	case r.MinExp < 0 || r.MaxExp >= 63 || r.MinExp > r.MaxExp:
		return fmt.Errorf("report %q: bad exponent range [%d, %d]", r.Name, r.MinExp, r.MaxExp)
	case len(r.ColorGroups) == 0:
		return fmt.Errorf("report %q: no colour groups", r.Name)
	case !(r.YMax > r.YMin):
		return fmt.Errorf("report %q: y limits [%v, %v] are empty", r.Name, r.YMin, r.YMax)
	case !r.Legend.valid():
		return fmt.Errorf("report %q: unknown legend placement %q", r.Name, r.Legend)
	}
	if _, err := runstat.LookupMetric(r.Metric); err != nil {
		return fmt.Errorf("report %q: %w", r.Name, err)
	}
	for _, label := range r.Show {
		if label != "" {
			return nil
		}
	}
	return fmt.Errorf("report %q: no configurations to show", r.Name)
}

// Series aggregates runs as r describes.
func (r *Report) Series(runs []*runlog.Run) (*runstat.Series, error) {
	m, err := runstat.LookupMetric(r.Metric)
	if err != nil {
		return nil, err
	}
	return runstat.Aggregate(runs, runstat.Options{
		Show:      r.Show,
		Exponents: r.Exponents(),
		Metric:    m,
		Width:     len(r.ColorGroups),
	})
}

// Bars lays out s as r describes.
func (r *Report) Bars(s *runstat.Series, palette Palette) (*BarChart, error) {
	chart, err := Bars(s, BarOptions{
		ColorGroups: r.ColorGroups,
		YMin:        r.YMin,
		YMax:        r.YMax,
		Multiplier:  r.Multiplier,
		Palette:     palette,
	})
	if err != nil || r.LegendBrowser == "" {
		return chart, err
	}
	suffix := runlog.BrowserLabel("", r.LegendBrowser)
	var legend []LegendEntry
	for _, e := range chart.Legend {
		if strings.HasSuffix(e.Label, suffix) {
			legend = append(legend, LegendEntry{strings.TrimSuffix(e.Label, suffix), e.Color})
		}
	}
	chart.Legend = legend
	return chart, nil
}

// Output says where Generate writes a report.
type Output struct {
	// Dir is the directory files are written to.
	Dir string

	// Formats lists the chart formats to write, from Formats.
	Formats []string

	// Markdown and HTML select writing the table to <name>.md and
	// <name>.html.
	Markdown bool
	HTML     bool

	// Table, if not nil, also receives the Markdown table.
	Table io.Writer

	// Palette colours the bars. If nil, DefaultPalette is used.
	Palette Palette
}

// Generate aggregates runs for report r and writes its table and
// charts to out.
func Generate(runs []*runlog.Run, r *Report, out Output) error {
	s, err := r.Series(runs)
	if err != nil {
		return fmt.Errorf("report %s: %w", r.Name, err)
	}

	var md bytes.Buffer
	if err := Markdown(&md, s, r.Multiplier); err != nil {
		return err
	}
	if out.Table != nil {
		if _, err := out.Table.Write(md.Bytes()); err != nil {
			return err
		}
	}
	if out.Markdown {
		if err := os.WriteFile(out.path(r, "md"), md.Bytes(), 0666); err != nil {
			return err
		}
	}
	if out.HTML {
		var buf bytes.Buffer
		if err := HTML(&buf, s, r.Multiplier); err != nil {
			return err
		}
		if err := os.WriteFile(out.path(r, "html"), buf.Bytes(), 0666); err != nil {
			return err
		}
	}

	if len(out.Formats) == 0 {
		return nil
	}
	bars, err := r.Bars(s, out.Palette)
	if err != nil {
		return fmt.Errorf("report %s: %w", r.Name, err)
	}
	for _, format := range out.Formats {
		if err := Render(out.path(r, format), r, bars); err != nil {
			return err
		}
	}
	return nil
}

func (o Output) path(r *Report, ext string) string {
	return filepath.Join(o.Dir, r.Name+"."+ext)
}
