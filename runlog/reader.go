// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line prefixes of the benchmark log format.
const (
	bannerPrefix    = "******"
	configPrefix    = "fzf-type: "
	loadedPrefix    = "lines.txt loaded:"
	initPrefix      = "Fzf initialized "
	searchPrefix    = "Searching for '"
	hashPrefix      = "hash: "
	secondaryPrefix = "+++ filename "
	memoryPrefix    = "\tMaximum resident set size (kbytes):"
)

// hashLen is the number of leading hash characters kept per search.
const hashLen = 5

// A Reader reads the runs of one benchmark log.
//
// Its API is modeled on bufio.Scanner:
//
//	r := runlog.NewReader(f, name)
//	for r.Scan() {
//		run := r.Run()
//		if run.Aborted { ... }
//	}
//	if err := r.Err(); err != nil { ... }
//
// Scan returns true for both complete and aborted runs. It returns
// false once no run banner remains, or after a fatal format error,
// which Err then reports.
type Reader struct {
	lines    []string
	pos      int // index of the next line to consume
	fileName string

	run *Run
	err error
}

// A SyntaxError reports a log that violates the format in a way that
// cannot be recovered from, such as an unknown variant code.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// errIncomplete signals that the current run ended early. It never
// escapes the Reader.
var errIncomplete = errors.New("incomplete run")

// NewReader reads all of r and returns a Reader over its lines.
// fileName is used in errors and in Run.FileName; it is purely
// diagnostic. A read error is reported by the first call to Err.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	reader := &Reader{fileName: fileName}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for s.Scan() {
		reader.lines = append(reader.lines, s.Text())
	}
	if err := s.Err(); err != nil {
		reader.err = fmt.Errorf("%s:%d: %w", fileName, len(reader.lines), err)
	}
	return reader
}

// Scan advances to the next run and reports whether there was one.
func (r *Reader) Scan() bool {
	r.run = nil
	if r.err != nil {
		return false
	}

	// Find the banner that starts the next run.
	for {
		line, ok := r.next()
		if !ok {
			return false
		}
		if strings.HasPrefix(line, bannerPrefix) {
			break
		}
	}

	run := newRun(r.fileName, r.pos)
	switch err := r.parseRun(run); err {
	case nil:
	case errIncomplete:
		run.Aborted = true
	default:
		r.err = err
		return false
	}
	r.run = run
	return true
}

// Run returns the run read by the last call to Scan.
func (r *Reader) Run() *Run {
	return r.run
}

// Err returns the error that stopped Scan, if any. Reaching the end of
// the log is not an error.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the number of lines not yet consumed.
func (r *Reader) Remaining() int {
	return len(r.lines) - r.pos
}

func (r *Reader) next() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	r.pos++
	return r.lines[r.pos-1], true
}

func (r *Reader) peek() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	return r.lines[r.pos], true
}

func (r *Reader) unread() {
	r.pos--
}

// seek consumes lines up to and including the first one that starts
// with prefix. If the banner of another run comes first, seek leaves
// the banner unconsumed and returns errIncomplete, as it does at the
// end of the log.
func (r *Reader) seek(prefix string) (string, error) {
	for {
		line, ok := r.next()
		if !ok {
			return "", errIncomplete
		}
		if strings.HasPrefix(line, prefix) {
			return line, nil
		}
		if strings.HasPrefix(line, bannerPrefix) {
			r.unread()
			return "", errIncomplete
		}
	}
}

// syntaxError returns a *SyntaxError at the last consumed line.
func (r *Reader) syntaxError(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.pos, fmt.Sprintf(format, args...)}
}

func (r *Reader) atoi(field, what string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, r.syntaxError("parsing %s: %v", what, err)
	}
	return n, nil
}

func (r *Reader) parseRun(run *Run) error {
	line, err := r.seek(configPrefix)
	if err != nil {
		return err
	}
	f := strings.Fields(line)
	if len(f) < 2 {
		return r.syntaxError("missing variant code")
	}
	label, browser, ok := ParseConfig(f[1])
	if !ok {
		return r.syntaxError("unknown variant code %q", f[1])
	}
	run.RawConfig, run.Config, run.Browser = f[1], label, browser

	// "lines.txt loaded: <lines> lines in <ms>"
	if line, err = r.seek(loadedPrefix); err != nil {
		return err
	}
	f = strings.Fields(line)
	if len(f) != 6 {
		return r.syntaxError("malformed haystack line %q", line)
	}
	if run.HaystackSize, err = r.atoi(f[2], "haystack size"); err != nil {
		return err
	}
	if run.LoadTime, err = r.atoi(f[5], "load time"); err != nil {
		return err
	}

	// The initialization line carries a timestamp relative to the
	// start of the process, which includes loading.
	if line, err = r.seek(initPrefix); err != nil {
		return err
	}
	f = strings.Fields(line)
	ts, err := r.atoi(f[len(f)-1], "initialization time")
	if err != nil {
		return err
	}
	run.InitTime = ts - run.LoadTime

	resultPrefix := fmt.Sprintf("--- ../%d.txt ", run.HaystackSize)
	for {
		if _, ok := run.Search(FinalTerm); ok {
			break
		}
		s, err := r.parseSearch(resultPrefix)
		if err != nil {
			return err
		}
		run.record(s)
	}

	if run.Browser != "" {
		// time(1) does not see inside the browser.
		return nil
	}
	if line, err = r.seek(memoryPrefix); err != nil {
		return err
	}
	f = strings.Fields(line)
	kb, err := strconv.ParseFloat(f[len(f)-1], 64)
	if err != nil {
		return r.syntaxError("parsing resident set size: %v", err)
	}
	run.Memory = kb / 1024
	return nil
}

// parseSearch parses one search block:
//
//	Searching for 'hel' found 12 results
//	--- ../1024.txt 3 ms: hel
//	hash: 0a1b2c3d4e
//	+++ filename 2 ms
//
// where the hash and "+++" lines are optional.
func (r *Reader) parseSearch(resultPrefix string) (Search, error) {
	var s Search
	line, err := r.seek(searchPrefix)
	if err != nil {
		return s, err
	}
	f := strings.Fields(line)
	if len(f) < 2 {
		return s, r.syntaxError("malformed search line %q", line)
	}
	if s.Results, err = r.atoi(f[len(f)-2], "result count"); err != nil {
		return s, err
	}

	line, ok := r.next()
	if !ok {
		return s, errIncomplete
	}
	if !strings.HasPrefix(line, resultPrefix) {
		return s, r.syntaxError("result line %q does not start with %q", line, resultPrefix)
	}
	f = strings.Fields(line)
	if len(f) < 3 {
		return s, r.syntaxError("malformed result line %q", line)
	}
	if s.Time, err = r.atoi(f[2], "search time"); err != nil {
		return s, err
	}
	// The term may contain spaces, so it is everything after the
	// fourth space rather than a field.
	parts := strings.SplitN(line, " ", 5)
	s.Term = parts[len(parts)-1]

	if line, ok := r.peek(); ok && strings.HasPrefix(line, hashPrefix) {
		r.next()
		if f := strings.Fields(line); len(f) > 1 {
			s.Hash = f[1]
			if len(s.Hash) > hashLen {
				s.Hash = s.Hash[:hashLen]
			}
		}
	}
	if line, ok := r.peek(); ok && strings.HasPrefix(line, secondaryPrefix) {
		r.next()
		f := strings.Fields(line)
		if len(f) < 3 {
			return s, r.syntaxError("malformed library timing line %q", line)
		}
		if s.Secondary, err = r.atoi(f[2], "library search time"); err != nil {
			return s, err
		}
		s.HasSecondary = true
	}
	return s, nil
}
