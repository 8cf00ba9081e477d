// Package export writes the per-player statistics table as CSV and JSON.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/luksz/PokerNow-Absolute-Cinema/internal/analyzer"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/fileutil"
)

// Columns is the exported column order. It matches the JSON keys on
// analyzer.PlayerStats.
var Columns = []string{
	"player", "hands",
	"BB/100", "SD BB/100", "NonSD BB/100",
	"VPIP%", "PFR%", "Limp%", "Call Open%", "Squeeze%",
	"3BET%", "4BET%", "Fold to 3BET%", "Fold to 4BET%",
	"AF", "AFq%",
	"SawFlop", "WTSD%", "W$SD%", "WWSF%",
	"Flop Cbet%", "Fold to Flop Cbet%",
	"Turn Cbet%", "Fold to Turn Cbet%",
	"River Cbet%", "Fold to River Cbet%",
	"CR Flop%", "CR Turn%", "CR River%",
	"Donk Flop%", "Donk Turn%", "Donk River%",
}

func f1(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// Record flattens one stats row in Columns order.
func Record(s analyzer.PlayerStats) []string {
	return []string{
		s.Player, strconv.Itoa(s.Hands),
		f1(s.BB100), f1(s.ShowdownBB100), f1(s.NonShowdownBB100),
		f1(s.VPIP), f1(s.PFR), f1(s.Limp), f1(s.CallOpen), f1(s.Squeeze),
		f1(s.ThreeBet), f1(s.FourBet), f1(s.FoldTo3Bet), f1(s.FoldTo4Bet),
		f2(s.AF), f1(s.AFq),
		strconv.Itoa(s.SawFlop), f1(s.WTSD), f1(s.WonSD), f1(s.WWSF),
		f1(s.FlopCbet), f1(s.FoldToFlopCbet),
		f1(s.TurnCbet), f1(s.FoldToTurnCbet),
		f1(s.RiverCbet), f1(s.FoldToRiverCbet),
		f1(s.CheckRaiseFlop), f1(s.CheckRaiseTurn), f1(s.CheckRaiseRiver),
		f1(s.DonkFlop), f1(s.DonkTurn), f1(s.DonkRiver),
	}
}

// WriteCSV streams the stats table, header first, to w.
func WriteCSV(w io.Writer, stats []analyzer.PlayerStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, s := range stats {
		if err := cw.Write(Record(s)); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", s.Player, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the stats table to path atomically.
func WriteCSVFile(path string, stats []analyzer.PlayerStats) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, stats); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// WriteJSONFile writes the stats table to path atomically as a JSON array
// of records.
func WriteJSONFile(path string, stats []analyzer.PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding stats JSON: %w", err)
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
