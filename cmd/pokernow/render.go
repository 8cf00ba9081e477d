package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/luksz/PokerNow-Absolute-Cinema/internal/analyzer"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/export"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("14"))

// printStats renders the full stats table sorted by hands played.
func printStats(w io.Writer, stats []analyzer.PlayerStats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("=== Full stats (preflop + flop + showdown + aggression) ==="))

	// Styling inside tab cells would skew tabwriter's padding, so rows stay
	// plain.
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(export.Columns, "\t"))
	for _, s := range stats {
		fmt.Fprintln(tw, strings.Join(export.Record(s), "\t"))
	}
	tw.Flush()
}
