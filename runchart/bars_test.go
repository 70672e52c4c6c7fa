// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/fzfbench/fzfbench/runstat"
)

var (
	black = color.NRGBA{0, 0, 0, 0xff}
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.NRGBA{0xff, 0, 0, 0xff}
	green = color.NRGBA{0, 0xff, 0, 0xff}
)

var testPalette = Palette{
	"Go (native)": {"#000000", "#ffffff"},
	"TinyGo":      {"#ff0000", "#00ff00"},
}

func TestBars(t *testing.T) {
	nan := math.NaN()
	s := &runstat.Series{
		Show:  []string{"Go (native)", "", "TinyGo"},
		Sizes: []int{1024, 2048},
		Width: 2,
		Values: map[string]map[int][]float64{
			"Go (native)": {1024: {1, 2}, 2048: {2, 2}},
			"TinyGo":      {1024: {nan, nan}, 2048: {4, 6}},
		},
	}
	got, err := Bars(s, BarOptions{
		ColorGroups: []int{0, 1},
		YMax:        5,
		Multiplier:  1024,
		Palette:     testPalette,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Two bars and a half-width gap share 0.9 units.
	const w = 0.36
	want := &BarChart{
		Exponents: []int{10, 11},
		Bars: []Bar{
			{"Go (native)", 0, -0.45, w, 0, 0.99, black},
			{"Go (native)", 0, 0.55, w, 0, 0.99, black},
			{"Go (native)", 1, -0.45, w, 1, 2, white},
			{"Go (native)", 1, 0.55, w, 1, 1, white},
			{"TinyGo", 0, 1.09, w, 0, 1.99, red},
			{"TinyGo", 1, 1.09, w, 2, 3, green},
		},
		Legend: []LegendEntry{
			{"Go (native)", white},
			{"TinyGo", green},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("bars differ (-want +got):\n%s", diff)
	}
}

func TestBarsOuterSpacers(t *testing.T) {
	s := &runstat.Series{
		Show:   []string{"", "TinyGo", ""},
		Sizes:  []int{1024},
		Width:  1,
		Values: map[string]map[int][]float64{"TinyGo": {1024: {1}}},
	}
	got, err := Bars(s, BarOptions{ColorGroups: []int{0}, YMax: 1, Multiplier: 1, Palette: testPalette})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Bars) != 1 {
		t.Fatalf("want 1 bar, got %+v", got.Bars)
	}
	// Outer spacers shift the bar but do not narrow it.
	b := got.Bars[0]
	if math.Abs(b.Width-0.9) > 1e-9 || math.Abs(b.X) > 1e-9 {
		t.Errorf("bar at %v with width %v, want 0 and 0.9", b.X, b.Width)
	}
	// A single slot is also the legend slot, and it has no gap.
	if len(got.Legend) != 1 || b.Height != 1.0/1024 {
		t.Errorf("legend %+v, height %v", got.Legend, b.Height)
	}
}

func TestBarsErrors(t *testing.T) {
	s := testSeries()
	if _, err := Bars(s, BarOptions{ColorGroups: []int{0}, YMax: 1, Palette: testPalette}); err == nil {
		t.Error("want error for too few colour groups")
	}
	if _, err := Bars(s, BarOptions{ColorGroups: []int{0, 2}, YMax: 1, Palette: testPalette}); err == nil {
		t.Error("want error for missing shade")
	}
	s.Show = append(s.Show, "GopherJS")
	if _, err := Bars(s, BarOptions{ColorGroups: []int{0, 1}, YMax: 1, Palette: testPalette}); err == nil {
		t.Error("want error for configuration without colours")
	}
}
