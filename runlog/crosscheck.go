// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runlog

import "strings"

// CrossCheck verifies that every complete run over a given haystack
// size returned the same search results, as recorded by the result
// hashes. The first complete run for each size sets the expected
// fingerprint; every later run at that size that differs is reported
// through warn, if non-nil. It returns the number of mismatches.
//
// A mismatch means one of the variants has a bug, but the timings are
// still usable, so this is never an error.
func CrossCheck(runs []*Run, warn func(format string, args ...interface{})) int {
	type expected struct {
		fingerprint []string
		config      string
	}
	bySize := make(map[int]expected)
	mismatches := 0
	for _, run := range runs {
		if run.Aborted {
			continue
		}
		fp := run.Fingerprint()
		want, ok := bySize[run.HaystackSize]
		if !ok {
			bySize[run.HaystackSize] = expected{fp, run.Config}
			continue
		}
		if equalStrings(want.fingerprint, fp) {
			continue
		}
		mismatches++
		if warn != nil {
			warn("for %d:\n    %s (%s) !=\n    %s (%s)\n",
				run.HaystackSize,
				formatFingerprint(want.fingerprint), want.config,
				formatFingerprint(fp), run.Config)
		}
	}
	return mismatches
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatFingerprint(fp []string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, h := range fp {
		if i > 0 {
			b.WriteString(", ")
		}
		if h == "" {
			h = "-"
		}
		b.WriteString(h)
	}
	b.WriteByte(')')
	return b.String()
}
