// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runlog reads the logs written by the fzf search benchmark
// harness.
//
// A log is a sequence of runs. Each run starts with a banner line of
// asterisks and is followed, possibly interleaved with unrelated
// output, by the variant under test, the haystack size and load time,
// the index initialization time, one block per search term typed
// while searching for "hello world", and finally the peak resident set
// size reported by time(1). Runs executed inside a browser have no
// memory line.
//
// Logs are routinely truncated or interrupted, so a run whose fields
// cannot all be found before the next banner or the end of the file is
// still returned, marked Aborted.
package runlog

import (
	"fmt"
	"math"
	"strings"
)

// FinalTerm is the last term searched for in every run. A run is
// complete once the search for FinalTerm has been recorded.
const FinalTerm = "hello world"

// Labels maps the variant code written on the "fzf-type:" line to the
// display label used in reports.
var Labels = map[string]string{
	"go-native":        "Go (native)",
	"go":               "Go (WebAssembly)",
	"tinygo":           "TinyGo",
	"fzf-for-js":       "fzf-for-js",
	"gopherjs":         "GopherJS",
	"go-debugnogc":     "Go (WebAssembly; no GC)",
	"tinygo-leakinggc": "TinyGo (no GC)",
	"go-native-nogc":   "Go (native; no GC)",
}

// Browsers lists, in display order, the browser qualifiers a variant
// code may carry as a "-<browser>" suffix.
var Browsers = []string{"Firefox", "Chrome", "Safari", "Edge"}

// ParseConfig resolves a raw variant code into its display label. A
// code with a browser suffix, such as "tinygo-safari", resolves to
// "TinyGo - Safari" and browser "Safari". ok is false if the code (or
// its base, for browser codes) is not in Labels.
func ParseConfig(raw string) (label, browser string, ok bool) {
	for _, b := range Browsers {
		suffix := "-" + strings.ToLower(b)
		if !strings.HasSuffix(raw, suffix) {
			continue
		}
		base, ok := Labels[strings.TrimSuffix(raw, suffix)]
		if !ok {
			return "", "", false
		}
		return BrowserLabel(base, b), b, true
	}
	label, ok = Labels[raw]
	return label, "", ok
}

// BrowserLabel returns the label of configuration label run inside
// browser.
func BrowserLabel(label, browser string) string {
	return label + " - " + browser
}

// A Search is the outcome of one search issued during a run.
type Search struct {
	Term string

	// Time is the search time in milliseconds as measured by the
	// caller of the library.
	Time int

	// Secondary is the search time in milliseconds as measured
	// inside the library, if HasSecondary.
	Secondary    int
	HasSecondary bool

	// Hash is the abbreviated hash of the search results, or "" if
	// the run did not report one.
	Hash string

	// Results is the number of matching lines.
	Results int
}

// BestTime returns the most precise search time available: the
// in-library time if there is one, otherwise the caller's time.
func (s Search) BestTime() int {
	if s.HasSecondary {
		return s.Secondary
	}
	return s.Time
}

// A Run is one execution of the benchmark against one haystack.
//
// A Run is never modified once the Reader has returned it.
type Run struct {
	// Config is the display label of the variant, including its
	// browser qualifier if any. RawConfig is the code it was
	// decoded from.
	Config    string
	RawConfig string

	// Browser is the browser the run executed in, or "" for runs
	// outside a browser.
	Browser string

	// HaystackSize is the number of lines searched.
	HaystackSize int

	// LoadTime is the time to load the haystack in milliseconds.
	LoadTime int

	// InitTime is the time to build the search index in
	// milliseconds, not counting LoadTime.
	InitTime int

	// Memory is the peak resident set size in MiB. It is NaN if
	// it was not measured, which is always the case for browser
	// runs.
	Memory float64

	// Searches holds one entry per distinct term, in the order the
	// terms were first searched for.
	Searches []Search

	// Aborted is set if the log ended, or the next run started,
	// before every field of this run was found. Fields found up to
	// that point are filled in.
	Aborted bool

	// FileName and Line locate the banner that started the run.
	FileName string
	Line     int
}

func newRun(fileName string, line int) *Run {
	return &Run{Memory: math.NaN(), FileName: fileName, Line: line}
}

// Search returns the search for term.
func (r *Run) Search(term string) (Search, bool) {
	for _, s := range r.Searches {
		if s.Term == term {
			return s, true
		}
	}
	return Search{}, false
}

// record stores s, replacing an earlier search for the same term in
// place.
func (r *Run) record(s Search) {
	for i := range r.Searches {
		if r.Searches[i].Term == s.Term {
			r.Searches[i] = s
			return
		}
	}
	r.Searches = append(r.Searches, s)
}

// Fingerprint returns the result hashes of r's searches in search
// order. Runs of different variants over the same haystack must have
// equal fingerprints.
func (r *Run) Fingerprint() []string {
	fp := make([]string, len(r.Searches))
	for i, s := range r.Searches {
		fp[i] = s.Hash
	}
	return fp
}

func (r *Run) String() string {
	var b strings.Builder
	b.WriteString("Run")
	if r.Aborted {
		b.WriteString("<aborted>")
	}
	fmt.Fprintf(&b, ": %s(%d). load %d ms; fzf init %d ms; search results: {", r.Config, r.HaystackSize, r.LoadTime, r.InitTime)
	for i, s := range r.Searches {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", s.Term, s.Time)
		if s.HasSecondary {
			fmt.Fprintf(&b, "/%d", s.Secondary)
		}
		if s.Hash != "" {
			fmt.Fprintf(&b, " #%s", s.Hash)
		}
		fmt.Fprintf(&b, " (%d)", s.Results)
	}
	b.WriteString("}; memory used: ")
	if math.IsNaN(r.Memory) {
		b.WriteString("-")
	} else {
		fmt.Fprintf(&b, "%.1f MiB", r.Memory)
	}
	return b.String()
}
