// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runstat averages repeated benchmark runs into series keyed
// by configuration and haystack size.
package runstat

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/fzfbench/fzfbench/runlog"
)

// Options selects what Aggregate collects.
type Options struct {
	// Show lists the configuration labels to collect, in display
	// order. An empty string is a spacer: it is skipped here but
	// kept in Series.Show so charts can leave a gap for it.
	Show []string

	// Exponents lists the haystack sizes to collect as powers of
	// two, in ascending order.
	Exponents []int

	// Metric extracts the measurement vector of a run.
	Metric Metric

	// Width is the length every metric vector must have. If zero,
	// the length of the first vector is used.
	Width int
}

// A Series holds averaged metric vectors per configuration and
// haystack size.
type Series struct {
	// Show is Options.Show, spacers included.
	Show []string

	// Sizes are the haystack sizes, ascending.
	Sizes []int

	// Width is the length of every vector.
	Width int

	// Values maps configuration label and haystack size to the
	// element-wise mean of the matching runs' metric vectors. A
	// combination without runs maps to a vector of NaNs.
	Values map[string]map[int][]float64
}

// Labels returns the configuration labels of s in display order,
// without spacers.
func (s *Series) Labels() []string {
	var labels []string
	for _, label := range s.Show {
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// Vector returns the averaged vector for label at size.
func (s *Series) Vector(label string, size int) []float64 {
	return s.Values[label][size]
}

// Total returns the sum of the averaged vector for label at size. It
// is NaN if there were no runs.
func (s *Series) Total(label string, size int) float64 {
	vec := s.Values[label][size]
	if len(vec) == 0 {
		return math.NaN()
	}
	var total float64
	for _, v := range vec {
		total += v
	}
	return total
}

// A WidthError reports a metric vector whose length differs from the
// others in the same aggregation. It is a bug in the metric or its
// options, never in the data.
type WidthError struct {
	Run  *runlog.Run
	Want int
	Got  int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("%s:%d: %s: metric vector has %d elements, want %d", e.Run.FileName, e.Run.Line, e.Run.Config, e.Got, e.Want)
}

// Aggregate groups the complete runs in runs by configuration and
// haystack size, keeping those selected by opts, and averages their
// metric vectors element-wise.
//
// Every non-spacer label in opts.Show must be the configuration of at
// least one run, aborted or not; a label that never occurs is
// almost certainly misspelled.
func Aggregate(runs []*runlog.Run, opts Options) (*Series, error) {
	if opts.Metric == nil {
		return nil, fmt.Errorf("no metric")
	}

	seen := make(map[string]bool)
	for _, run := range runs {
		seen[run.Config] = true
	}
	samples := make(map[string]map[int][][]float64)
	for _, label := range opts.Show {
		if label == "" {
			continue
		}
		if !seen[label] {
			return nil, fmt.Errorf("no runs for configuration %q", label)
		}
		bySize := make(map[int][][]float64)
		for _, exp := range opts.Exponents {
			bySize[1<<exp] = nil
		}
		samples[label] = bySize
	}

	width := opts.Width
	for _, run := range runs {
		if run.Aborted {
			continue
		}
		bySize, ok := samples[run.Config]
		if !ok {
			continue
		}
		vecs, ok := bySize[run.HaystackSize]
		if !ok {
			continue
		}
		v := opts.Metric(run)
		if width == 0 {
			width = len(v)
		}
		if len(v) != width {
			return nil, &WidthError{run, width, len(v)}
		}
		bySize[run.HaystackSize] = append(vecs, v)
	}

	s := &Series{
		Show:   opts.Show,
		Width:  width,
		Values: make(map[string]map[int][]float64),
	}
	for _, exp := range opts.Exponents {
		s.Sizes = append(s.Sizes, 1<<exp)
	}
	sort.Ints(s.Sizes)
	for label, bySize := range samples {
		means := make(map[int][]float64)
		for size, vecs := range bySize {
			means[size] = mean(vecs, width)
		}
		s.Values[label] = means
	}
	return s, nil
}

// mean returns the element-wise mean of vecs, or width NaNs if vecs
// is empty.
func mean(vecs [][]float64, width int) []float64 {
	out := make([]float64, width)
	if len(vecs) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	col := make([]float64, len(vecs))
	for i := range out {
		for j, v := range vecs {
			col[j] = v[i]
		}
		out[i] = stats.Mean(col)
	}
	return out
}
