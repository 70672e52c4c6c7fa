// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runchart

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the contents of a report configuration file:
//
//	files = ["results/native.log", "results/wasm.log"]
//	out = "charts"
//	formats = ["svg", "png"]
//	markdown = true
//	presets = ["performance", "memory-per-straw"]
//
//	[palette]
//	"Go (WebAssembly) - Deno" = ["#58508d"]
//
//	[[report]]
//	name = "init"
//	metric = "load-init"
//	min_exp = 15
//	max_exp = 21
//	show = ["Go (native)", "", "TinyGo"]
//	color_groups = [0, 1]
//	ymax = 40
type Config struct {
	// Files are the benchmark logs to read. Command line arguments
	// replace them.
	Files []string `toml:"files"`

	// Out is the output directory, "." if empty.
	Out string `toml:"out"`

	// Formats are the chart formats to write. Defaults to svg.
	Formats []string `toml:"formats"`

	Markdown bool `toml:"markdown"`
	HTML     bool `toml:"html"`

	// Presets names the built-in reports to generate. If both Presets
	// and Reports are empty, every preset is generated.
	Presets []string `toml:"presets"`

	Reports []*Report `toml:"report"`

	// Palette adds or replaces the shades of configurations.
	Palette Palette `toml:"palette"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() *Config {
	return &Config{Out: ".", Formats: []string{"svg"}}
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c, err := ParseConfig(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseConfig parses and validates a TOML configuration.
func ParseConfig(data string) (*Config, error) {
	c := &Config{}
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	c.setDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Out == "" {
		c.Out = "."
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"svg"}
	}
	for _, r := range c.Reports {
		r.setDefaults()
	}
}

func (c *Config) validate() error {
	if err := CheckFormats(c.Formats); err != nil {
		return err
	}
	for _, name := range c.Presets {
		if Presets[name] == nil {
			return fmt.Errorf("unknown preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
		}
	}
	names := make(map[string]bool)
	for _, r := range c.Reports {
		if err := r.validate(); err != nil {
			return err
		}
		if names[r.Name] {
			return fmt.Errorf("duplicate report %q", r.Name)
		}
		names[r.Name] = true
	}
	for label, shades := range c.Palette {
		if len(shades) == 0 {
			return fmt.Errorf("palette: no shades for %q", label)
		}
		for _, s := range shades {
			if _, err := parseHex(s); err != nil {
				return fmt.Errorf("palette: %q: %w", label, err)
			}
		}
	}
	return nil
}

// CheckFormats reports an error if any of formats is not in Formats.
func CheckFormats(formats []string) error {
outer:
	for _, f := range formats {
		for _, known := range Formats {
			if f == known {
				continue outer
			}
		}
		return fmt.Errorf("unknown chart format %q (known: %s)", f, strings.Join(Formats, ", "))
	}
	return nil
}

// SelectedReports returns the reports c asks for: the named presets
// followed by c.Reports, or every preset if c names none. A report
// defined in c.Reports replaces a preset of the same name.
func (c *Config) SelectedReports() []*Report {
	presets := c.Presets
	if len(presets) == 0 && len(c.Reports) == 0 {
		presets = PresetNames()
	}
	own := make(map[string]bool)
	for _, r := range c.Reports {
		own[r.Name] = true
	}
	var reports []*Report
	for _, name := range presets {
		if !own[name] {
			reports = append(reports, Presets[name])
		}
	}
	return append(reports, c.Reports...)
}

// FilterReports returns the reports in rs whose names are in names, in
// the order of rs. An unknown name is an error.
func FilterReports(rs []*Report, names []string) ([]*Report, error) {
	want := make(map[string]bool)
	for _, n := range names {
		want[n] = true
	}
	var out []*Report
	for _, r := range rs {
		if want[r.Name] {
			out = append(out, r)
			delete(want, r.Name)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown reports: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

// ColorPalette returns DefaultPalette with c.Palette applied.
func (c *Config) ColorPalette() Palette {
	p := DefaultPalette()
	for label, shades := range c.Palette {
		p[label] = shades
	}
	return p
}
