// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runlog

import (
	"fmt"
	"io"
	"os"
)

// A Files reads the runs of a sequence of log files.
type Files struct {
	// Paths is the list of file names to read, in order.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin.
	AllowStdin bool
}

// ReadAll reads every file in f.Paths and returns their runs in file
// order, aborted runs included. It stops at the first I/O or format
// error.
func (f *Files) ReadAll() ([]*Run, error) {
	var runs []*Run
	for _, path := range f.Paths {
		var err error
		if f.AllowStdin && path == "-" {
			runs, err = appendRuns(runs, os.Stdin, "<stdin>")
		} else {
			runs, err = appendFile(runs, path)
		}
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func appendFile(runs []*Run, path string) ([]*Run, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return appendRuns(runs, file, path)
}

func appendRuns(runs []*Run, r io.Reader, fileName string) ([]*Run, error) {
	reader := NewReader(r, fileName)
	for reader.Scan() {
		runs = append(runs, reader.Run())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Summary counts the complete and aborted runs in runs.
type Summary struct {
	Complete, Aborted int
}

// Summarize counts the complete and aborted runs in runs.
func Summarize(runs []*Run) Summary {
	var s Summary
	for _, run := range runs {
		if run.Aborted {
			s.Aborted++
		} else {
			s.Complete++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d runs (%d aborted)", s.Complete+s.Aborted, s.Aborted)
}
