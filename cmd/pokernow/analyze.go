package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/luksz/PokerNow-Absolute-Cinema/cmd/pokernow/shared"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/analyzer"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/config"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/export"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/gamelog"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/parser"
)

// AnalyzeCmd runs the batch analyzer over one or more CSV logs.
type AnalyzeCmd struct {
	Files        []string `arg:"" name:"file" help:"PokerNow CSV log files, in chronological session order" type:"existingfile"`
	BigBlind     float64  `help:"Big blind size; overrides auto-detection"`
	DebugPreflop bool     `help:"Dump per-hand preflop roles (open raiser / 3-bettor / 4-bettor)"`
	CSVOut       string   `help:"CSV output path (empty = config default)"`
	JSONOut      string   `help:"JSON output path (empty = config default)"`
	NoExport     bool     `help:"Skip writing CSV/JSON result files"`
	Config       string   `help:"HCL config file" type:"path"`
	Debug        bool     `help:"Enable debug logging"`
}

func (c *AnalyzeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	entries, err := gamelog.ReadFiles(c.Files)
	if err != nil {
		return err
	}

	hands, err := parser.SkipPreamble(parser.SplitHands(gamelog.Texts(entries)))
	if err != nil {
		if errors.Is(err, parser.ErrNoHands) {
			return fmt.Errorf("no hands found in file(s)")
		}
		return err
	}

	bigBlind := c.BigBlind
	if bigBlind <= 0 {
		bigBlind = cfg.Analysis.BigBlind
	}
	if bigBlind <= 0 {
		bigBlind = gamelog.DetectBigBlind(entries)
	}

	logger.Info().
		Int("files", len(c.Files)).
		Int("lines", len(entries)).
		Int("hands", len(hands)).
		Float64("big_blind", bigBlind).
		Msg("Analyzing hands")

	result := analyzer.Analyze(hands, analyzer.Options{
		BigBlind:      bigBlind,
		CollectTraces: c.DebugPreflop,
	})

	printStats(os.Stdout, result.Stats)

	if !c.NoExport {
		csvOut := c.CSVOut
		if csvOut == "" {
			csvOut = cfg.Analysis.CSVOut
		}
		jsonOut := c.JSONOut
		if jsonOut == "" {
			jsonOut = cfg.Analysis.JSONOut
		}
		if err := export.WriteCSVFile(csvOut, result.Stats); err != nil {
			return err
		}
		if err := export.WriteJSONFile(jsonOut, result.Stats); err != nil {
			return err
		}
		fmt.Println("\nSaved:")
		fmt.Printf("  %s\n", csvOut)
		fmt.Printf("  %s\n", jsonOut)
	}

	if c.DebugPreflop {
		printPreflopTraces(os.Stdout, result.Traces)
	}
	return nil
}

func printPreflopTraces(w *os.File, traces []analyzer.PreflopTrace) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Preflop 3-bet / 4-bet debug ===")
	for _, tr := range traces {
		fmt.Fprintf(w, "Hand %3d: open=%-10s 3bet=%-10s 4bet=%-10s\n",
			tr.HandIndex, orDash(tr.OpenRaiser), orDash(tr.ThreeBettor), orDash(tr.FourBettor))
	}
}

func orDash(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
