// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/ManuGH/m3urenew/internal/renew"
	"github.com/ManuGH/m3urenew/internal/textio"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// printer writes the user facing outcome of each run to stdout.
type printer struct {
	out      io.Writer
	colorize bool
}

func (p *printer) success(r *renew.Report) {
	fmt.Fprintf(p.out, "%s Saved to %s\n", p.paint("Processing complete.", text.FgGreen), r.Output)
	fmt.Fprintln(p.out, renderStats(r, p.colorize))
}

func (p *printer) failure(input string, err error) {
	switch {
	case errors.Is(err, textio.ErrNotFound):
		fmt.Fprintf(p.out, "%s input file not found: %s\n", p.paint("Error:", text.FgRed), input)
		fmt.Fprintln(p.out, "Make sure the file exists, or point --input / M3URENEW_INPUT at it.")
	default:
		fmt.Fprintf(p.out, "%s processing failed: %v\n", p.paint("Error:", text.FgRed), err)
	}
}

func (p *printer) watching(path string) {
	fmt.Fprintf(p.out, "Watching %s for changes (Ctrl+C to stop)\n", path)
}

func (p *printer) paint(s string, c text.Color) string {
	if !p.colorize {
		return s
	}
	return c.Sprint(s)
}

// renderStats renders the run statistics as a two column table.
func renderStats(r *renew.Report, colorize bool) string {
	tw := table.NewWriter()
	if colorize {
		tw.SetStyle(table.StyleRounded)
		tw.Style().Color.Header = text.Colors{text.Bold}
	} else {
		tw.SetStyle(table.StyleLight)
	}

	s := r.Stats
	tw.AppendHeader(table.Row{"Statistic", "Value"})
	tw.AppendRows([]table.Row{
		{"Input file", r.Input},
		{"Output file", r.Output},
		{"Encoding", r.Encoding},
		{"Original lines", s.OriginalLines},
		{"Processed lines", s.ProcessedLines},
		{"Removed lines", s.RemovedLines},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Timestamp lines", s.TimestampLines},
		{"Stray links", s.StrayLinks},
		{"Group titles (quoted)", s.QuotedGroupTitles},
		{"Group titles (unquoted)", s.UnquotedGroupTitles},
		{"Blank runs collapsed", s.CollapsedBlankRuns},
	})

	names := make([]string, 0, len(s.ByClassifier))
	for name := range s.ByClassifier {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		tw.AppendSeparator()
		for _, name := range names {
			tw.AppendRow(table.Row{"  matched " + name, strconv.Itoa(s.ByClassifier[name])})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
