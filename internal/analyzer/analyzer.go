package analyzer

import (
	"github.com/charmbracelet/log"

	"github.com/luksz/PokerNow-Absolute-Cinema/internal/parser"
)

// Options configures a batch analysis run.
type Options struct {
	// BigBlind normalizes the win-rate columns; use the detected table
	// stake. Values <= 0 zero those columns.
	BigBlind float64

	// CollectTraces records the per-hand preflop role trace.
	CollectTraces bool

	// Logger, when set, emits a debug line per hand with the resolved
	// preflop roles.
	Logger *log.Logger
}

// Result is the outcome of analyzing one ordered sequence of hands.
type Result struct {
	Stats  []PlayerStats
	Traces []PreflopTrace
	Hands  int
}

// Analyze runs every hand through the betting state machine and folds the
// per-hand flags into a fresh aggregator. Hands are processed strictly
// sequentially; re-running over the same hand sequence yields identical
// statistics.
func Analyze(hands []parser.Hand, opts Options) Result {
	agg := NewAggregator()
	var traces []PreflopTrace

	for i, hand := range hands {
		res := analyzeHand(hand)
		res.Trace.HandIndex = i + 1
		agg.AddHand(res)

		if opts.CollectTraces {
			traces = append(traces, res.Trace)
		}
		if opts.Logger != nil {
			opts.Logger.Debug("hand analyzed",
				"hand", i+1,
				"open_raiser", res.Trace.OpenRaiser,
				"three_bettor", res.Trace.ThreeBettor,
				"four_bettor", res.Trace.FourBettor,
				"players", len(res.Players))
		}
	}

	return Result{
		Stats:  agg.Compute(opts.BigBlind),
		Traces: traces,
		Hands:  agg.Hands(),
	}
}
