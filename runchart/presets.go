// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"sort"
	"strings"

	"github.com/fzfbench/fzfbench/runlog"
)

// typed is the number of searches in a run: one per prefix of
// runlog.FinalTerm.
var typed = len(runlog.FinalTerm)

// repeat returns n copies of v.
func repeat(v, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// groups concatenates colour groups.
func groups(gs ...[]int) []int {
	var all []int
	for _, g := range gs {
		all = append(all, g...)
	}
	return all
}

var mainConfigs = []string{
	"Go (native)",
	"Go (WebAssembly)",
	"TinyGo",
	"fzf-for-js",
	"GopherJS",
}

// browserShow puts each configuration's browser bars next to its Node
// bar, with a gap after every group.
func browserShow(configs ...string) []string {
	var show []string
	for _, c := range configs {
		show = append(show, c)
		for _, b := range runlog.Browsers {
			show = append(show, runlog.BrowserLabel(c, b))
		}
		show = append(show, "")
	}
	return show
}

// Presets are the reports built in to fzfcharts.
var Presets = map[string]*Report{
	// Initialization, then "hello" and " world" in two shades.
	"performance": {
		Name:        "performance",
		MinExp:      10,
		MaxExp:      24,
		Metric:      "init-search",
		Show:        mainConfigs,
		ColorGroups: groups([]int{2}, repeat(0, len("hello")), repeat(1, len(" world"))),
		YMax:        100,
	},
	"performance-no-gc": {
		Name:   "performance-no-gc",
		MinExp: 15,
		MaxExp: 21,
		Metric: "search",
		Show: []string{
			"Go (native)",
			"Go (native; no GC)",
			"Go (WebAssembly)",
			"Go (WebAssembly; no GC)",
			"TinyGo",
			"TinyGo (no GC)",
			"fzf-for-js",
		},
		ColorGroups: repeat(0, typed),
		YMax:        20,
	},
	"performance-per-straw-no-interface": {
		Name:        "performance-per-straw-no-interface",
		MinExp:      10,
		MaxExp:      24,
		Metric:      "search",
		Show:        mainConfigs,
		ColorGroups: groups(repeat(0, len("hello")), repeat(1, len(" world"))),
		YMax:        50,
	},
	"memory-per-straw": {
		Name:        "memory-per-straw",
		Title:       "Memory use divided by size of the haystack",
		YLabel:      "Memory per straw (kiB)",
		MinExp:      10,
		MaxExp:      24,
		Metric:      "memory",
		Show:        mainConfigs,
		ColorGroups: []int{0},
		YMax:        10,
		Multiplier:  1024,
		Legend:      "upper right",
	},
	"performance-browsers": {
		Name:          "performance-browsers",
		XLabel:        "Haystack size (bars for Node, " + strings.Join(runlog.Browsers, ", ") + ")",
		MinExp:        17,
		MaxExp:        21,
		Metric:        "init-search",
		Show:          browserShow("Go (WebAssembly)", "TinyGo", "fzf-for-js", "GopherJS"),
		ColorGroups:   repeat(2, typed+1),
		YMax:          200,
		LegendBrowser: "Safari",
	},
}

func init() {
	for _, r := range Presets {
		r.setDefaults()
	}
}

// PresetNames returns the names of Presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
