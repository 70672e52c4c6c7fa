// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Fzfcharts summarizes fzf search benchmark logs as tables and charts.
//
// Usage:
//
//	fzfcharts [flags] log-files...
//
// Fzfcharts reads every run from the given logs ("-" is stdin) and
// checks that all variants found the same results for the same
// haystack. It then generates each selected report: a Markdown table
// of the averaged totals, printed to stdout and optionally written to
// <report>.md or <report>.html, and a stacked bar chart written in
// each requested format.
//
// Without -config, every built-in report is generated. The
// configuration file, in TOML, can select built-in reports, define
// new ones and set defaults for the flags. See runchart.Config.
//
// A report that cannot be generated is logged and skipped. Fzfcharts
// exits with status 1 if any report failed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/fzfbench/fzfbench/runchart"
	"github.com/fzfbench/fzfbench/runlog"
)

// errFailed reports that some reports were not generated. The failures
// have already been logged.
var errFailed = errors.New("some reports failed")

// A usageError reports bad command line arguments.
type usageError struct{ error }

func main() {
	log.SetPrefix("fzfcharts: ")
	log.SetFlags(0)
	err := fzfcharts(os.Stdout, os.Stderr, os.Args[1:])
	if err != nil && err != flag.ErrHelp && err != errFailed {
		log.Print(err)
	}
	os.Exit(exitCode(err))
}

// exitCode returns 2 for usage errors, whose message has been printed
// by the time fzfcharts returns, and 1 for any other failure.
func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return 0
	case err == flag.ErrHelp, errors.As(err, &ue):
		return 2
	}
	return 1
}

func fzfcharts(stdout, stderr io.Writer, args []string) error {
	logger := log.New(stderr, "fzfcharts: ", 0)

	flags := flag.NewFlagSet("fzfcharts", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: fzfcharts [flags] log-files...\n")
		flags.PrintDefaults()
		fmt.Fprintf(flags.Output(), "\nbuilt-in reports: %s\n", strings.Join(runchart.PresetNames(), ", "))
	}
	var (
		flagConfig = flags.String("config", "", "read reports and defaults from TOML `file`")
		flagOut    = flags.String("o", "", "write output files to `dir`")
		flagFormat = flags.String("format", "", "comma-separated chart `formats`: svg, png, pdf, or none")
		flagMD     = flags.Bool("md", false, "write each table to <report>.md")
		flagHTML   = flags.Bool("html", false, "write each table to <report>.html")
		flagReport = flags.String("report", "", "generate only the comma-separated `reports`")
		flagDump   = flags.Bool("dump", false, "print every parsed run and exit")
	)
	if err := flags.Parse(args); err != nil {
		// flag has already printed the error and the usage.
		return flag.ErrHelp
	}

	cfg := runchart.DefaultConfig()
	if *flagConfig != "" {
		var err error
		if cfg, err = runchart.LoadConfig(*flagConfig); err != nil {
			return err
		}
	}
	if *flagOut != "" {
		cfg.Out = *flagOut
	}
	switch *flagFormat {
	case "":
	case "none":
		cfg.Formats = nil
	default:
		cfg.Formats = strings.Split(*flagFormat, ",")
		if err := runchart.CheckFormats(cfg.Formats); err != nil {
			return usageError{err}
		}
	}
	cfg.Markdown = cfg.Markdown || *flagMD
	cfg.HTML = cfg.HTML || *flagHTML
	if flags.NArg() > 0 {
		cfg.Files = flags.Args()
	}
	if len(cfg.Files) == 0 {
		flags.Usage()
		return flag.ErrHelp
	}

	reports := cfg.SelectedReports()
	if *flagReport != "" {
		var err error
		reports, err = runchart.FilterReports(reports, strings.Split(*flagReport, ","))
		if err != nil {
			return usageError{err}
		}
	}

	files := runlog.Files{Paths: cfg.Files, AllowStdin: true}
	runs, err := files.ReadAll()
	if *flagDump {
		if err != nil {
			return err
		}
		return dump(stdout, runs)
	}
	if err != nil {
		// Every report needs the runs.
		for _, r := range reports {
			logger.Printf("report %s: %v", r.Name, err)
		}
		logger.Printf("done, handled 0 / %d reports successfully", len(reports))
		return errFailed
	}
	logger.Printf("read %s from %d files", runlog.Summarize(runs), len(cfg.Files))
	runlog.CrossCheck(runs, logger.Printf)

	if err := os.MkdirAll(cfg.Out, 0777); err != nil {
		return err
	}
	out := runchart.Output{
		Dir:      cfg.Out,
		Formats:  cfg.Formats,
		Markdown: cfg.Markdown,
		HTML:     cfg.HTML,
		Table:    stdout,
		Palette:  cfg.ColorPalette(),
	}
	handled := 0
	for _, r := range reports {
		fmt.Fprintf(stdout, "# %s\n\n", r.Name)
		if err := runchart.Generate(runs, r, out); err != nil {
			logger.Print(err)
		} else {
			handled++
		}
		fmt.Fprintln(stdout)
	}
	logger.Printf("done, handled %d / %d reports successfully", handled, len(reports))
	if handled < len(reports) {
		return errFailed
	}
	return nil
}

type dumpRow struct {
	File    string
	Line    int
	Config  string
	Size    int
	Load    int
	Init    int
	Terms   int
	Memory  float64
	Aborted bool
}

// dump prints runs as an aligned table, one row per run.
func dump(w io.Writer, runs []*runlog.Run) error {
	rows := make([]dumpRow, len(runs))
	for i, r := range runs {
		rows[i] = dumpRow{
			File:    r.FileName,
			Line:    r.Line,
			Config:  r.Config,
			Size:    r.HaystackSize,
			Load:    r.LoadTime,
			Init:    r.InitTime,
			Terms:   len(r.Searches),
			Memory:  r.Memory,
			Aborted: r.Aborted,
		}
	}
	return table.Fprint(w, table.TableFromStructs(rows), "%s", "%d", "%s", "%d", "%d", "%d", "%d", "%.1f", "%v")
}
