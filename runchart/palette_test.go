// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"image/color"
	"testing"

	"github.com/fzfbench/fzfbench/runlog"
)

func TestLighter(t *testing.T) {
	for _, test := range []struct {
		in   string
		pct  float64
		want string
	}{
		{"#000000", 100, "#808080"},
		{"#000", 100, "#808080"},
		{"#ffffff", 50, "#ffffff"},
		{"#ff0000", 100, "#ff8080"},
	} {
		got, err := Lighter(test.in, test.pct)
		if err != nil {
			t.Errorf("Lighter(%q, %v): %v", test.in, test.pct, err)
			continue
		}
		if got != test.want {
			t.Errorf("Lighter(%q, %v) = %q, want %q", test.in, test.pct, got, test.want)
		}
	}

	for _, bad := range []string{"red", "#12345", "#gggggg"} {
		if _, err := Lighter(bad, 10); err == nil {
			t.Errorf("Lighter(%q): want error", bad)
		}
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	c, err := p.Color("Go (native)", 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{0x00, 0x3f, 0x5c, 0xff}); c != want {
		t.Errorf("Go (native) shade 0 = %v, want %v", c, want)
	}

	// Every configuration has a lighter shade set per browser.
	for label, shades := range baseShades {
		for _, b := range runlog.Browsers {
			bl := runlog.BrowserLabel(label, b)
			if len(p[bl]) != len(shades) {
				t.Errorf("%s: %d shades, want %d", bl, len(p[bl]), len(shades))
			}
		}
	}
	safari, err := Lighter(baseShades["TinyGo"][1], 60)
	if err != nil {
		t.Fatal(err)
	}
	if got := p["TinyGo - Safari"][1]; got != safari {
		t.Errorf("TinyGo - Safari shade 1 = %s, want %s", got, safari)
	}

	if _, err := p.Color("Go (native)", 3); err == nil {
		t.Error("want error for missing shade")
	}
	if _, err := p.Color("Rust", 0); err == nil {
		t.Error("want error for unknown configuration")
	}
}
