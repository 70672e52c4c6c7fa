// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Formats lists the chart file formats Render can write.
var Formats = []string{"svg", "png", "pdf"}

var background = color.NRGBA{0xf3, 0xf3, 0xf3, 0xff}

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 6 * vg.Inch
	chartDPI    = 100
)

// Plot builds the chart of bars for report r.
func Plot(r *Report, bars *BarChart) *plot.Plot {
	pl := plot.New()
	pl.BackgroundColor = background
	pl.Title.Text = r.Title
	pl.X.Label.Text = r.XLabel
	pl.Y.Label.Text = r.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)
	pl.Add(&stackedBars{bars: bars.Bars})

	ticks := make([]plot.Tick, len(bars.Exponents))
	for i, exp := range bars.Exponents {
		ticks[i] = plot.Tick{Value: float64(exp - bars.Exponents[0]), Label: fmt.Sprintf("2^%d", exp)}
	}
	pl.X.Tick.Marker = plot.ConstantTicks(ticks)
	pl.X.Tick.Label.Rotation = math.Pi / 4
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XRight
	pl.X.Min = -0.5
	pl.X.Max = float64(len(bars.Exponents)) - 0.5
	pl.Y.Min = r.YMin
	pl.Y.Max = r.YMax

	for _, e := range bars.Legend {
		pl.Legend.Add(e.Label, swatch(e.Color))
	}
	pl.Legend.Top = r.Legend.top()
	pl.Legend.Left = r.Legend.left()
	return pl
}

// Render draws bars for report r to path. The format is chosen by the
// file name extension, one of Formats.
func Render(path string, r *Report, bars *BarChart) error {
	var can vg.CanvasWriterTo
	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "svg":
		can = vgsvg.New(chartWidth, chartHeight)
	case "png":
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight),
			vgimg.UseDPI(chartDPI), vgimg.UseBackgroundColor(background))}
	case "pdf":
		can = vgpdf.New(chartWidth, chartHeight)
	default:
		return fmt.Errorf("%s: unknown chart format %q (known: %s)", path, ext, strings.Join(Formats, ", "))
	}
	Plot(r, bars).Draw(draw.New(can))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// stackedBars draws Bar segments as filled rectangles.
type stackedBars struct {
	bars []Bar
}

func (b *stackedBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, bar := range b.bars {
		x0, x1 := trX(bar.X-bar.Width/2), trX(bar.X+bar.Width/2)
		y0, y1 := trY(bar.Bottom), trY(bar.Bottom+bar.Height)
		pts := []vg.Point{
			{X: x0, Y: y0},
			{X: x0, Y: y1},
			{X: x1, Y: y1},
			{X: x1, Y: y0},
		}
		c.FillPolygon(bar.Color, c.ClipPolygonXY(pts))
	}
}

func (b *stackedBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.bars) == 0 {
		return 0, 0, 0, 0
	}
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, bar := range b.bars {
		xmin = math.Min(xmin, bar.X-bar.Width/2)
		xmax = math.Max(xmax, bar.X+bar.Width/2)
		ymin = math.Min(ymin, math.Min(bar.Bottom, bar.Bottom+bar.Height))
		ymax = math.Max(ymax, math.Max(bar.Bottom, bar.Bottom+bar.Height))
	}
	return
}

// swatch is the legend thumbnail of one configuration.
type swatch color.NRGBA

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(color.NRGBA(s), pts)
}
