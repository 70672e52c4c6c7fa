// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fzfbench/fzfbench/runlog"
)

// A Palette maps a configuration label to its shades. A report's
// colour groups index into these shades, so a chart can set the
// initialization slot apart from the search slots.
type Palette map[string][]string

// baseShades are the shades of every configuration outside a browser.
var baseShades = Palette{
	"Go (native)":             {"#003f5c", "#668eaa", "#002633"},
	"Go (native; no GC)":      {"#ffa600", "#ffcc33"},
	"Go (WebAssembly)":        {"#58508d", "#9e94c5", "#262145"},
	"Go (WebAssembly; no GC)": {"#9e94ff", "#b7b2ff"},
	"TinyGo":                  {"#bc5090", "#df94be", "#8F2464"},
	"TinyGo (no GC)":          {"#00c786", "#33ffa0"},
	"fzf-for-js":              {"#ff6361", "#ffa097", "#cc2020"},
	"GopherJS":                {"#ffa600", "#ffc171", "#cc5000"},
}

// browserLightening is how much lighter, in percent, the shades of a
// configuration become inside each browser.
var browserLightening = map[string]float64{
	"Firefox": 20,
	"Chrome":  40,
	"Safari":  60,
	"Edge":    80,
}

// DefaultPalette returns the shades of every known configuration,
// including a lightened copy per browser.
func DefaultPalette() Palette {
	p := make(Palette)
	for label, shades := range baseShades {
		p[label] = shades
		for _, b := range runlog.Browsers {
			lighter := make([]string, len(shades))
			for i, s := range shades {
				l, err := Lighter(s, browserLightening[b])
				if err != nil {
					panic(err)
				}
				lighter[i] = l
			}
			p[runlog.BrowserLabel(label, b)] = lighter
		}
	}
	return p
}

// Color returns shade i of label.
func (p Palette) Color(label string, i int) (color.NRGBA, error) {
	shades, ok := p[label]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("no colours for configuration %q", label)
	}
	if i < 0 || i >= len(shades) {
		return color.NRGBA{}, fmt.Errorf("configuration %q has %d shades, no shade %d", label, len(shades), i)
	}
	c, err := parseHex(shades[i])
	if err != nil {
		return color.NRGBA{}, err
	}
	return c.nrgba(), nil
}

// Lighter returns hex colour c with its HSL lightness moved pct percent
// of the way towards white, in the sense l' = 1 - (1-l)/(1+pct/100).
func Lighter(c string, pct float64) (string, error) {
	x, err := parseHex(c)
	if err != nil {
		return "", err
	}
	h, s, l := x.hsl()
	l = 1 - (1-l)/(1+pct/100)
	return fromHSL(h, s, l).hex(), nil
}

// rgb is a colour with channels in [0, 1].
type rgb struct{ r, g, b float64 }

// parseHex accepts "#rgb" and "#rrggbb".
func parseHex(s string) (rgb, error) {
	digits := strings.TrimPrefix(s, "#")
	var n int
	var scale float64
	switch len(digits) {
	case 3:
		n, scale = 1, 15
	case 6:
		n, scale = 2, 255
	default:
		return rgb{}, fmt.Errorf("bad colour %q", s)
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(digits[i*n:(i+1)*n], 16, 8)
		if err != nil {
			return rgb{}, fmt.Errorf("bad colour %q", s)
		}
		ch[i] = float64(v) / scale
	}
	return rgb{ch[0], ch[1], ch[2]}, nil
}

func channel(v float64) uint8 {
	return uint8(math.RoundToEven(v * 255))
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.r), channel(c.g), channel(c.b))
}

func (c rgb) nrgba() color.NRGBA {
	return color.NRGBA{channel(c.r), channel(c.g), channel(c.b), 0xff}
}

func (c rgb) hsl() (h, s, l float64) {
	high := math.Max(c.r, math.Max(c.g, c.b))
	low := math.Min(c.r, math.Min(c.g, c.b))
	l = (high + low) / 2
	if high == low {
		return 0, 0, l
	}
	d := high - low
	if l > 0.5 {
		s = d / (2 - high - low)
	} else {
		s = d / (high + low)
	}
	// Ties go to blue, then green.
	switch high {
	case c.b:
		h = (c.r-c.g)/d + 4
	case c.g:
		h = (c.b-c.r)/d + 2
	default:
		h = (c.g - c.b) / d
		if c.g < c.b {
			h += 6
		}
	}
	return h / 6, s, l
}

func fromHSL(h, s, l float64) rgb {
	if s == 0 {
		return rgb{l, l, l}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return rgb{hue(p, q, h+1.0/3), hue(p, q, h), hue(p, q, h-1.0/3)}
}

func hue(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}
