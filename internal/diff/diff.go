// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares golden files in tests.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Diff returns a unified diff from want to got, labelled with name.
// It is empty if the two are equal. Without a diff command it falls
// back to quoting both.
func Diff(name, want, got string) string {
	if want == got {
		return ""
	}
	cmd := "diff"
	if runtime.GOOS == "plan9" {
		cmd = "/bin/ape/diff"
	}
	if _, err := exec.LookPath(cmd); err != nil {
		return fmt.Sprintf("%s differs\nwant: %q\ngot:  %q", name, want, got)
	}

	wantFile, err := writeTemp(want)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(wantFile)
	gotFile, err := writeTemp(got)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(gotFile)

	data, err := exec.Command(cmd, "-u",
		"--label", name+" (want)", "--label", name+" (got)",
		wantFile, gotFile).CombinedOutput()
	if len(data) > 0 {
		// diff exits with status 1 when the files differ.
		err = nil
	}
	if err != nil {
		data = append(data, err.Error()...)
	}
	return string(data)
}

func writeTemp(s string) (string, error) {
	f, err := os.CreateTemp("", "fzfbench_diff")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(s); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), f.Close()
}
