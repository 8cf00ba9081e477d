package analyzer

import (
	"sort"

	"github.com/luksz/PokerNow-Absolute-Cinema/internal/parser"
)

// playerTotals accumulates one player's numerators and denominators across
// hands. Players are identified by display name only, so the same name in
// different logs is deliberately treated as one player.
type playerTotals struct {
	hands int

	vpip      int
	pfr       int
	openRaise int
	limps     int
	callOpens int
	squeezes  int

	threeBet      int
	fourBet       int
	threeBetOpp   int
	fourBetOpp    int
	threeBetFaced int
	fourBetFaced  int
	foldTo3Bet    int
	foldTo4Bet    int

	sawFlop  int
	sawTurn  int
	sawRiver int

	wtsd  int
	wonSD int
	wwsf  int

	cbetOpp    [parser.NumStreets]int
	cbetMade   [parser.NumStreets]int
	cbetFaced  [parser.NumStreets]int
	cbetFolded [parser.NumStreets]int

	checkRaises [parser.NumStreets]int
	donks       [parser.NumStreets]int

	aggr  int
	calls int
	folds int

	net            float64
	showdownNet    float64
	nonShowdownNet float64
}

// Aggregator folds per-hand flag records into running per-player totals.
// It is single-writer by design: hands are processed strictly sequentially.
type Aggregator struct {
	players map[string]*playerTotals
	hands   int
}

func NewAggregator() *Aggregator {
	return &Aggregator{players: make(map[string]*playerTotals)}
}

// Hands returns the number of hands folded in so far.
func (a *Aggregator) Hands() int { return a.hands }

func (a *Aggregator) totals(name string) *playerTotals {
	t, ok := a.players[name]
	if !ok {
		t = &playerTotals{}
		a.players[name] = t
	}
	return t
}

func incIf(counter *int, flag bool) {
	if flag {
		*counter++
	}
}

// AddHand folds one hand's output into the running totals. Denominators
// increment exactly when the corresponding opportunity existed in the hand.
func (a *Aggregator) AddHand(res HandResult) {
	a.hands++
	for name, f := range res.Players {
		t := a.totals(name)

		incIf(&t.hands, f.Played)
		incIf(&t.vpip, f.VPIP)
		incIf(&t.pfr, f.PFR)
		incIf(&t.openRaise, f.OpenRaise)
		t.limps += f.Limps
		t.callOpens += f.CallOpens
		t.squeezes += f.Squeezes

		incIf(&t.threeBet, f.ThreeBet)
		incIf(&t.fourBet, f.FourBet)
		incIf(&t.threeBetOpp, f.ThreeBetOpp)
		incIf(&t.fourBetOpp, f.FourBetOpp)
		incIf(&t.threeBetFaced, f.ThreeBetFaced)
		incIf(&t.fourBetFaced, f.FourBetFaced)
		incIf(&t.foldTo3Bet, f.FoldTo3Bet)
		incIf(&t.foldTo4Bet, f.FoldTo4Bet)

		incIf(&t.sawFlop, f.SawFlop)
		incIf(&t.sawTurn, f.SawTurn)
		incIf(&t.sawRiver, f.SawRiver)

		incIf(&t.wtsd, f.WentToShowdown)
		incIf(&t.wonSD, f.WonAtShowdown)
		incIf(&t.wwsf, f.WonWhenSawFlop)

		for s := parser.StreetFlop; s <= parser.StreetRiver; s++ {
			incIf(&t.cbetOpp[s], f.CbetOpp[s])
			incIf(&t.cbetMade[s], f.CbetMade[s])
			incIf(&t.cbetFaced[s], f.CbetFaced[s])
			incIf(&t.cbetFolded[s], f.CbetFolded[s])
			t.checkRaises[s] += f.CheckRaises[s]
			t.donks[s] += f.Donks[s]
		}

		t.aggr += f.AggressiveActions
		t.calls += f.PostflopCalls
		t.folds += f.PostflopFolds

		t.net += f.Net
		t.showdownNet += f.ShowdownNet
		t.nonShowdownNet += f.NonShowdownNet
	}
}

// Compute derives the final statistics table for every player with at least
// one hand played, sorted by hands played descending (name ascending on
// ties, for deterministic output). bigBlind only normalizes the win-rate
// columns.
func (a *Aggregator) Compute(bigBlind float64) []PlayerStats {
	stats := make([]PlayerStats, 0, len(a.players))
	for name, t := range a.players {
		if t.hands == 0 {
			continue
		}
		stats = append(stats, t.compute(name, bigBlind))
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Hands != stats[j].Hands {
			return stats[i].Hands > stats[j].Hands
		}
		return stats[i].Player < stats[j].Player
	})
	return stats
}
