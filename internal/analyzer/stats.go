package analyzer

import (
	"math"

	"github.com/luksz/PokerNow-Absolute-Cinema/internal/parser"
)

// PlayerStats is one player's final statistics row. JSON keys match the
// column labels of the exported table so the HTTP response and the CSV/JSON
// exports agree.
type PlayerStats struct {
	Player string `json:"player"`
	Hands  int    `json:"hands"`

	BB100            float64 `json:"BB/100"`
	ShowdownBB100    float64 `json:"SD BB/100"`
	NonShowdownBB100 float64 `json:"NonSD BB/100"`

	VPIP     float64 `json:"VPIP%"`
	PFR      float64 `json:"PFR%"`
	Limp     float64 `json:"Limp%"`
	CallOpen float64 `json:"Call Open%"`
	Squeeze  float64 `json:"Squeeze%"`

	ThreeBet   float64 `json:"3BET%"`
	FourBet    float64 `json:"4BET%"`
	FoldTo3Bet float64 `json:"Fold to 3BET%"`
	FoldTo4Bet float64 `json:"Fold to 4BET%"`

	AF  float64 `json:"AF"`
	AFq float64 `json:"AFq%"`

	SawFlop int     `json:"SawFlop"`
	WTSD    float64 `json:"WTSD%"`
	WonSD   float64 `json:"W$SD%"`
	WWSF    float64 `json:"WWSF%"`

	FlopCbet        float64 `json:"Flop Cbet%"`
	FoldToFlopCbet  float64 `json:"Fold to Flop Cbet%"`
	TurnCbet        float64 `json:"Turn Cbet%"`
	FoldToTurnCbet  float64 `json:"Fold to Turn Cbet%"`
	RiverCbet       float64 `json:"River Cbet%"`
	FoldToRiverCbet float64 `json:"Fold to River Cbet%"`

	CheckRaiseFlop  float64 `json:"CR Flop%"`
	CheckRaiseTurn  float64 `json:"CR Turn%"`
	CheckRaiseRiver float64 `json:"CR River%"`

	DonkFlop  float64 `json:"Donk Flop%"`
	DonkTurn  float64 `json:"Donk Turn%"`
	DonkRiver float64 `json:"Donk River%"`
}

// round1 rounds to one decimal place, round2 to two. All percentage-like
// outputs use round1; AF uses round2.
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// pct is 100*num/den rounded to one decimal, 0 when the denominator is 0.
func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return round1(100 * float64(num) / float64(den))
}

// bb100 is profit normalized to big blinds per 100 hands.
func bb100(profit, bigBlind float64, hands int) float64 {
	if bigBlind <= 0 || hands == 0 {
		return 0
	}
	return round1(profit / bigBlind / float64(hands) * 100)
}

func (t *playerTotals) compute(name string, bigBlind float64) PlayerStats {
	s := PlayerStats{
		Player: name,
		Hands:  t.hands,

		BB100:            bb100(t.net, bigBlind, t.hands),
		ShowdownBB100:    bb100(t.showdownNet, bigBlind, t.hands),
		NonShowdownBB100: bb100(t.nonShowdownNet, bigBlind, t.hands),

		VPIP:     pct(t.vpip, t.hands),
		PFR:      pct(t.pfr, t.hands),
		Limp:     pct(t.limps, t.hands),
		CallOpen: pct(t.callOpens, t.hands),
		Squeeze:  pct(t.squeezes, t.hands),

		ThreeBet:   pct(t.threeBet, t.threeBetOpp),
		FourBet:    pct(t.fourBet, t.fourBetOpp),
		FoldTo3Bet: pct(t.foldTo3Bet, t.threeBetFaced),
		FoldTo4Bet: pct(t.foldTo4Bet, t.fourBetFaced),

		SawFlop: t.sawFlop,
		WTSD:    pct(t.wtsd, t.sawFlop),
		WonSD:   pct(t.wonSD, t.wtsd),
		WWSF:    pct(t.wwsf, t.sawFlop),

		FlopCbet:        pct(t.cbetMade[parser.StreetFlop], t.cbetOpp[parser.StreetFlop]),
		FoldToFlopCbet:  pct(t.cbetFolded[parser.StreetFlop], t.cbetFaced[parser.StreetFlop]),
		TurnCbet:        pct(t.cbetMade[parser.StreetTurn], t.cbetOpp[parser.StreetTurn]),
		FoldToTurnCbet:  pct(t.cbetFolded[parser.StreetTurn], t.cbetFaced[parser.StreetTurn]),
		RiverCbet:       pct(t.cbetMade[parser.StreetRiver], t.cbetOpp[parser.StreetRiver]),
		FoldToRiverCbet: pct(t.cbetFolded[parser.StreetRiver], t.cbetFaced[parser.StreetRiver]),

		CheckRaiseFlop:  pct(t.checkRaises[parser.StreetFlop], t.sawFlop),
		CheckRaiseTurn:  pct(t.checkRaises[parser.StreetTurn], t.sawTurn),
		CheckRaiseRiver: pct(t.checkRaises[parser.StreetRiver], t.sawRiver),

		DonkFlop:  pct(t.donks[parser.StreetFlop], t.sawFlop),
		DonkTurn:  pct(t.donks[parser.StreetTurn], t.sawTurn),
		DonkRiver: pct(t.donks[parser.StreetRiver], t.sawRiver),
	}

	if t.calls > 0 {
		s.AF = round2(float64(t.aggr) / float64(t.calls))
	}
	if total := t.aggr + t.calls + t.folds; total > 0 {
		s.AFq = round1(100 * float64(t.aggr) / float64(total))
	}
	return s
}
