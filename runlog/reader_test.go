// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runlog

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const nativeRun = `******************************
fzf-type: go-native
Loading lines...
lines.txt loaded: 1024 lines in 12
Fzf initialized 57
Searching for 'h' found 700 results
--- ../1024.txt 3 ms: h
hash: 0a1b2c3d4e5f
+++ filename 2 ms
Searching for 'hello world' found 4 results
--- ../1024.txt 1 ms: hello world
hash: 9988776655
	Command being timed: "./fzf-bench"
	Maximum resident set size (kbytes): 20480
	Exit status: 0
`

func nativeWant() *Run {
	return &Run{
		Config:       "Go (native)",
		RawConfig:    "go-native",
		HaystackSize: 1024,
		LoadTime:     12,
		InitTime:     45,
		Memory:       20,
		Searches: []Search{
			{Term: "h", Time: 3, Secondary: 2, HasSecondary: true, Hash: "0a1b2", Results: 700},
			{Term: "hello world", Time: 1, Hash: "99887", Results: 4},
		},
		FileName: "test",
		Line:     1,
	}
}

func parseAll(t *testing.T, data string) ([]*Run, *Reader) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []*Run
	for r.Scan() {
		out = append(out, r.Run())
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out, r
}

func compareRuns(t *testing.T, got, want []*Run) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("runs differ (-want +got):\n%s", diff)
	}
}

func TestReaderSingleRun(t *testing.T) {
	got, r := parseAll(t, nativeRun)
	compareRuns(t, got, []*Run{nativeWant()})
	if n := r.Remaining(); n != 0 {
		t.Errorf("%d lines left unconsumed", n)
	}
}

func TestReaderEmpty(t *testing.T) {
	for _, data := range []string{"", "no banner here\nat all\n"} {
		got, _ := parseAll(t, data)
		if len(got) != 0 {
			t.Errorf("%q: want no runs, got %v", data, got)
		}
	}
}

func TestReaderBackToBack(t *testing.T) {
	second := strings.Replace(nativeRun, "go-native", "go-native-nogc", 1)
	got, r := parseAll(t, nativeRun+second)

	want2 := nativeWant()
	want2.Config, want2.RawConfig = "Go (native; no GC)", "go-native-nogc"
	want2.Line = 16
	compareRuns(t, got, []*Run{nativeWant(), want2})
	if n := r.Remaining(); n != 0 {
		t.Errorf("%d lines left unconsumed", n)
	}
}

func TestReaderTruncatedBeforeMemory(t *testing.T) {
	i := strings.Index(nativeRun, "\tCommand being timed")
	got, _ := parseAll(t, nativeRun[:i])

	want := nativeWant()
	want.Memory = math.NaN()
	want.Aborted = true
	compareRuns(t, got, []*Run{want})
}

func TestReaderTruncatedInSearch(t *testing.T) {
	for _, test := range []struct {
		after    string
		searches []Search
	}{
		// Out of input where the timing line must follow.
		{"Searching for 'h' found 700 results\n", nil},
		// Out of input after a timing line without a hash.
		{"--- ../1024.txt 3 ms: h\n", []Search{{Term: "h", Time: 3, Results: 700}}},
	} {
		i := strings.Index(nativeRun, test.after) + len(test.after)
		got, r := parseAll(t, nativeRun[:i])

		want := nativeWant()
		want.Searches = test.searches
		want.Memory = math.NaN()
		want.Aborted = true
		compareRuns(t, got, []*Run{want})
		if n := r.Remaining(); n != 0 {
			t.Errorf("%q: %d lines left unconsumed", test.after, n)
		}
	}
}

func TestReaderInterruptedRun(t *testing.T) {
	// The first run is cut off by the next banner while searching.
	i := strings.Index(nativeRun, "Searching for 'hello world'")
	got, _ := parseAll(t, nativeRun[:i]+nativeRun)

	partial := nativeWant()
	partial.Searches = partial.Searches[:1]
	partial.Memory = math.NaN()
	partial.Aborted = true
	second := nativeWant()
	second.Line = strings.Count(nativeRun[:i], "\n") + 1
	compareRuns(t, got, []*Run{partial, second})
}

func TestReaderBrowser(t *testing.T) {
	data := `******
fzf-type: gopherjs-safari
lines.txt loaded: 2048 lines in 30
Fzf initialized 230
Searching for 'hello world' found 8 results
--- ../2048.txt 7 ms: hello world
`
	got, _ := parseAll(t, data)
	want := &Run{
		Config:       "GopherJS - Safari",
		RawConfig:    "gopherjs-safari",
		Browser:      "Safari",
		HaystackSize: 2048,
		LoadTime:     30,
		InitTime:     200,
		Memory:       math.NaN(),
		Searches:     []Search{{Term: "hello world", Time: 7, Results: 8}},
		FileName:     "test",
		Line:         1,
	}
	compareRuns(t, got, []*Run{want})
}

func TestReaderRepeatedTerm(t *testing.T) {
	data := `******
fzf-type: go
lines.txt loaded: 1024 lines in 1
Fzf initialized 2
Searching for 'h' found 10 results
--- ../1024.txt 5 ms: h
Searching for 'he' found 9 results
--- ../1024.txt 4 ms: he
Searching for 'h' found 10 results
--- ../1024.txt 3 ms: h
Searching for 'hello world' found 1 results
--- ../1024.txt 2 ms: hello world
	Maximum resident set size (kbytes): 1024
`
	got, _ := parseAll(t, data)
	if len(got) != 1 {
		t.Fatalf("want 1 run, got %d", len(got))
	}
	var terms []string
	for _, s := range got[0].Searches {
		terms = append(terms, s.Term)
	}
	if want := []string{"h", "he", "hello world"}; !cmp.Equal(terms, want) {
		t.Errorf("want terms %q, got %q", want, terms)
	}
	if s, _ := got[0].Search("h"); s.Time != 3 {
		t.Errorf("want repeated term to keep latest time 3, got %d", s.Time)
	}
}

func TestReaderErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		data string
		line int
		msg  string
	}{
		{
			"unknown variant",
			"******\nfzf-type: rust\n",
			2, `unknown variant code "rust"`,
		},
		{
			"unknown browser variant",
			"******\nfzf-type: rust-chrome\n",
			2, `unknown variant code "rust-chrome"`,
		},
		{
			"haystack mismatch",
			"******\nfzf-type: go\nlines.txt loaded: 1024 lines in 1\nFzf initialized 2\nSearching for 'h' found 3 results\n--- ../2048.txt 1 ms: h\n",
			6, `result line "--- ../2048.txt 1 ms: h" does not start with "--- ../1024.txt "`,
		},
		{
			"bad load time",
			"******\nfzf-type: go\nlines.txt loaded: 1024 lines in x\n",
			3, `parsing load time: strconv.Atoi: parsing "x": invalid syntax`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(test.data), "test")
			for r.Scan() {
				t.Errorf("unexpected run %v", r.Run())
			}
			var se *SyntaxError
			if !errors.As(r.Err(), &se) {
				t.Fatalf("want *SyntaxError, got %v", r.Err())
			}
			if se.Line != test.line || se.Msg != test.msg {
				t.Errorf("want %d: %s\ngot  %d: %s", test.line, test.msg, se.Line, se.Msg)
			}
			// The reader stays stopped.
			if r.Scan() {
				t.Error("Scan succeeded after a fatal error")
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	for _, test := range []struct {
		raw, label, browser string
		ok                  bool
	}{
		{"go-native", "Go (native)", "", true},
		{"go", "Go (WebAssembly)", "", true},
		{"tinygo-leakinggc", "TinyGo (no GC)", "", true},
		{"fzf-for-js-edge", "fzf-for-js - Edge", "Edge", true},
		{"go-chrome", "Go (WebAssembly) - Chrome", "Chrome", true},
		{"go-opera", "", "", false},
		{"", "", "", false},
	} {
		label, browser, ok := ParseConfig(test.raw)
		if label != test.label || browser != test.browser || ok != test.ok {
			t.Errorf("ParseConfig(%q) = %q, %q, %v; want %q, %q, %v", test.raw, label, browser, ok, test.label, test.browser, test.ok)
		}
	}
}
