// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out text tables with aligned columns, such as
// Markdown pipe tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Rule return the Table so callers can chain them.
type Table struct {
	// Sep separates adjacent columns. If empty, a single space is
	// used.
	Sep string

	rows []row
	cols int
}

type row struct {
	cells []cell
	rule  bool
}

type cell struct {
	value string
	right bool
}

// A CellOption modifies a single cell.
type CellOption func(c *cell)

// Right aligns a cell to the right of its column.
var Right CellOption = func(c *cell) { c.right = true }

func (c cell) pad(w int) string {
	n := w - utf8.RuneCountInString(c.value)
	if n <= 0 {
		return c.value
	}
	if c.right {
		return strings.Repeat(" ", n) + c.value
	}
	return c.value + strings.Repeat(" ", n)
}

// Row appends a row of left-aligned cells.
func (t *Table) Row(values ...string) *Table {
	r := row{cells: make([]cell, len(values))}
	for i, v := range values {
		r.cells[i] = cell{value: v}
	}
	t.rows = append(t.rows, r)
	if len(values) > t.cols {
		t.cols = len(values)
	}
	return t
}

// Cell appends a cell to the last row, starting a row if there is
// none.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 || t.rows[len(t.rows)-1].rule {
		t.rows = append(t.rows, row{})
	}
	r := &t.rows[len(t.rows)-1]
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r.cells = append(r.cells, c)
	if len(r.cells) > t.cols {
		t.cols = len(r.cells)
	}
	return t
}

// Rule appends a row that fills every column with dashes, as in the
// header separator of a Markdown table.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, row{rule: true})
	return t
}

// Format lays out table t and writes it to w. Trailing padding is
// omitted, so the last column is never padded.
func (t *Table) Format(w io.Writer) error {
	sep := t.Sep
	if sep == "" {
		sep = " "
	}

	// Rules are at least three dashes wide.
	ws := make([]int, t.cols)
	for i := range ws {
		ws[i] = 3
	}
	for _, r := range t.rows {
		for i, c := range r.cells {
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}

	var b strings.Builder
	for _, r := range t.rows {
		b.Reset()
		for i := 0; i < t.cols; i++ {
			if i > 0 {
				b.WriteString(sep)
			}
			switch {
			case r.rule:
				b.WriteString(strings.Repeat("-", ws[i]))
			case i < len(r.cells):
				b.WriteString(r.cells[i].pad(ws[i]))
			default:
				b.WriteString(strings.Repeat(" ", ws[i]))
			}
		}
		line := strings.TrimRight(b.String(), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
