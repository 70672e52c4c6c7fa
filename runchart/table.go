// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/google/safehtml/template"

	"github.com/fzfbench/fzfbench/internal/texttab"
	"github.com/fzfbench/fzfbench/runstat"
)

// missing marks a table cell without runs.
const missing = "---"

type tableData struct {
	Labels []string
	Rows   []tableRow
}

type tableRow struct {
	Exp   int
	Size  int
	Cells []string
}

// newTableData lays out one row per haystack size and one column per
// configuration. Each cell is the total of the averaged vector
// followed, in parentheses, by that total times multiplier divided by
// the haystack size.
func newTableData(s *runstat.Series, multiplier float64) *tableData {
	t := &tableData{Labels: s.Labels()}
	for _, size := range s.Sizes {
		row := tableRow{Exp: bits.Len(uint(size)) - 1, Size: size}
		for _, label := range t.Labels {
			total := s.Total(label, size)
			if math.IsNaN(total) {
				row.Cells = append(row.Cells, missing)
				continue
			}
			row.Cells = append(row.Cells, fmt.Sprintf("%.2f (%.1f)", total, total*multiplier/float64(size)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Markdown writes the totals of s as a Markdown pipe table, with the
// numbers right-aligned.
func Markdown(w io.Writer, s *runstat.Series, multiplier float64) error {
	data := newTableData(s, multiplier)
	tab := &texttab.Table{Sep: "|"}
	tab.Row(append([]string{"Haystack size"}, data.Labels...)...)
	tab.Rule()
	for _, row := range data.Rows {
		tab.Row(fmt.Sprintf("2<sup>%d</sup> = %d", row.Exp, row.Size))
		for _, c := range row.Cells {
			tab.Cell(c, texttab.Right)
		}
	}
	return tab.Format(w)
}

var htmlTable = template.Must(template.New("table").Parse(`<table class="fzfbench">
<thead>
<tr><th>Haystack size</th>{{range .Labels}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td>2<sup>{{.Exp}}</sup> = {{.Size}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
`))

// HTML writes the same table as Markdown as an HTML fragment.
func HTML(w io.Writer, s *runstat.Series, multiplier float64) error {
	return htmlTable.Execute(w, newTableData(s, multiplier))
}
