// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"fmt"
	"image/color"
	"math"
	"math/bits"
	"strings"

	"github.com/fzfbench/fzfbench/runstat"
)

// BarOptions controls how a series is laid out as stacked bars.
type BarOptions struct {
	// ColorGroups gives, per vector slot, the palette shade to fill
	// that slot's segment with.
	ColorGroups []int

	// YMin and YMax are the limits of the value axis. The visual gap
	// left between stacked segments is 1/500 of this range.
	YMin, YMax float64

	// Multiplier scales each value after dividing it by the haystack
	// size.
	Multiplier float64

	Palette Palette
}

// A Bar is one segment of a stacked bar.
type Bar struct {
	Label string
	Slot  int

	// X is the centre of the bar, in units of haystack size steps
	// starting from 0 at the smallest size.
	X, Width float64

	Bottom, Height float64
	Color          color.NRGBA
}

// A LegendEntry names the colour of one configuration.
type LegendEntry struct {
	Label string
	Color color.NRGBA
}

// A BarChart is a series laid out as stacked bars, one group of bars
// per haystack size.
type BarChart struct {
	Exponents []int
	Bars      []Bar
	Legend    []LegendEntry
}

// Bars lays out s as groups of side-by-side stacked bars. Within a
// group there is one bar per configuration in s.Show; spacers take half
// a bar's width. Each vector slot of a configuration is one segment of
// its bar, and segments of missing data are left out.
func Bars(s *runstat.Series, opts BarOptions) (*BarChart, error) {
	if len(opts.ColorGroups) != s.Width {
		return nil, fmt.Errorf("%d colour groups for %d values per run", len(opts.ColorGroups), s.Width)
	}
	if len(s.Sizes) == 0 {
		return nil, fmt.Errorf("no haystack sizes")
	}
	palette := opts.Palette
	if palette == nil {
		palette = DefaultPalette()
	}

	// Leading and trailing spacers do not narrow the bars.
	var layout strings.Builder
	for _, label := range s.Show {
		if label == "" {
			layout.WriteByte(' ')
		} else {
			layout.WriteByte('b')
		}
	}
	inner := strings.TrimSpace(layout.String())
	nbars := strings.Count(inner, "b")
	ngaps := len(inner) - nbars
	if nbars == 0 {
		return nil, fmt.Errorf("no configurations to show")
	}
	width := 0.9 / (float64(nbars) + float64(ngaps)/2)
	gap := (opts.YMax - opts.YMin) / 500
	legendSlot := 1
	if s.Width-1 < legendSlot {
		legendSlot = s.Width - 1
	}

	chart := &BarChart{}
	exp0 := bits.Len(uint(s.Sizes[0])) - 1
	for _, size := range s.Sizes {
		chart.Exponents = append(chart.Exponents, bits.Len(uint(size))-1)
	}

	offset := -0.45
	for _, label := range s.Show {
		if label == "" {
			offset += width / 2
			continue
		}
		bottoms := make([]float64, len(s.Sizes))
		for slot := 0; slot < s.Width; slot++ {
			c, err := palette.Color(label, opts.ColorGroups[slot])
			if err != nil {
				return nil, err
			}
			if slot == legendSlot {
				chart.Legend = append(chart.Legend, LegendEntry{label, c})
			}
			for i, size := range s.Sizes {
				v := s.Vector(label, size)[slot] / float64(size) * opts.Multiplier
				height := v
				if slot < s.Width-1 {
					height -= gap
				}
				bottom := bottoms[i]
				bottoms[i] += v
				if math.IsNaN(height) || math.IsNaN(bottom) {
					continue
				}
				chart.Bars = append(chart.Bars, Bar{
					Label:  label,
					Slot:   slot,
					X:      float64(chart.Exponents[i]-exp0) + offset,
					Width:  width,
					Bottom: bottom,
					Height: height,
					Color:  c,
				})
			}
		}
		offset += width
	}
	return chart, nil
}
