// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import (
	"fmt"
	"sort"

	"github.com/fzfbench/fzfbench/runlog"
)

// A Metric extracts the measurements of interest from a run. Every
// vector returned for one aggregation must have the same length; slot
// i of every vector measures the same thing.
type Metric func(run *runlog.Run) []float64

// Metrics holds the named metrics that reports can refer to.
var Metrics = map[string]Metric{
	// Index initialization followed by every search, in seconds.
	"init-search": func(run *runlog.Run) []float64 {
		v := []float64{float64(run.InitTime) / 1000}
		for _, s := range run.Searches {
			v = append(v, float64(s.Time)/1000)
		}
		return v
	},

	// Every search, timed inside the library where possible, in
	// seconds. This excludes the cost of crossing the language
	// boundary.
	"search": func(run *runlog.Run) []float64 {
		v := make([]float64, len(run.Searches))
		for i, s := range run.Searches {
			v[i] = float64(s.BestTime()) / 1000
		}
		return v
	},

	// Peak memory in MiB. NaN for runs where it was not measured.
	"memory": func(run *runlog.Run) []float64 {
		return []float64{run.Memory}
	},

	// Loading the haystack and initializing the index, in seconds.
	"load-init": func(run *runlog.Run) []float64 {
		return []float64{float64(run.LoadTime) / 1000, float64(run.InitTime) / 1000}
	},
}

// LookupMetric returns the metric called name.
func LookupMetric(name string) (Metric, error) {
	m, ok := Metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q (known: %v)", name, MetricNames())
	}
	return m, nil
}

// MetricNames returns the names in Metrics, sorted.
func MetricNames() []string {
	names := make([]string, 0, len(Metrics))
	for name := range Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
