// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fzfbench/fzfbench/internal/diff"
	"github.com/fzfbench/fzfbench/runstat"
)

func testSeries() *runstat.Series {
	nan := math.NaN()
	return &runstat.Series{
		Show:  []string{"Go (native)", "", "TinyGo"},
		Sizes: []int{1024, 2048},
		Width: 2,
		Values: map[string]map[int][]float64{
			"Go (native)": {1024: {0.5, 1}, 2048: {1, 2}},
			"TinyGo":      {1024: {nan, nan}, 2048: {0.25, 0.25}},
		},
	}
}

func TestTables(t *testing.T) {
	for _, test := range []struct {
		golden string
		write  func(io.Writer, *runstat.Series, float64) error
	}{
		{"table.md", Markdown},
		{"table.html", HTML},
	} {
		t.Run(test.golden, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("testdata", test.golden))
			if err != nil {
				t.Fatal(err)
			}
			var got bytes.Buffer
			if err := test.write(&got, testSeries(), 1e6); err != nil {
				t.Fatal(err)
			}
			if d := diff.Diff(test.golden, string(want), got.String()); d != "" {
				t.Error(d)
			}
		})
	}
}
