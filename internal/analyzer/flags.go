// Package analyzer reconstructs betting-round structure from PokerNow hand
// logs and derives per-player behavioral statistics across hands.
package analyzer

import "github.com/luksz/PokerNow-Absolute-Cinema/internal/parser"

// HandFlags is everything the state machine derives for one player from one
// closed hand. Per-street arrays are indexed by parser.Street; only the
// flop, turn and river slots are used.
type HandFlags struct {
	// Played means the player was dealt in (acted or posted preflop).
	Played bool

	// Preflop behavior.
	VPIP      bool
	PFR       bool
	OpenRaise bool
	Limps     int
	CallOpens int
	Squeezes  int
	ThreeBet  bool
	FourBet   bool

	// Opportunity flags feed the rate denominators: ThreeBetOpp/FourBetOpp
	// are chances to make the re-raise, ThreeBetFaced/FourBetFaced are
	// chances to respond to one and gate the fold-to rates.
	ThreeBetOpp   bool
	FourBetOpp    bool
	ThreeBetFaced bool
	FourBetFaced  bool
	FoldTo3Bet    bool
	FoldTo4Bet    bool

	// Streets reached while still active.
	SawFlop  bool
	SawTurn  bool
	SawRiver bool

	// Showdown outcomes.
	WentToShowdown bool
	WonAtShowdown  bool
	WonWhenSawFlop bool

	// Continuation-bet accounting, resolved in end-of-hand post-processing.
	CbetOpp    [parser.NumStreets]bool
	CbetMade   [parser.NumStreets]bool
	CbetFaced  [parser.NumStreets]bool
	CbetFolded [parser.NumStreets]bool

	CheckRaises [parser.NumStreets]int
	Donks       [parser.NumStreets]int

	// Postflop action counts feeding AF/AFq.
	AggressiveActions int
	PostflopCalls     int
	PostflopFolds     int

	// Money. Net is collected minus invested with uncalled returns already
	// subtracted from invested. Exactly one of the split fields equals Net.
	Net            float64
	ShowdownNet    float64
	NonShowdownNet float64
}

// PreflopTrace is the observational per-hand debug record of who held each
// preflop role. Empty strings mean the role was never filled.
type PreflopTrace struct {
	HandIndex   int    `json:"hand_index"`
	OpenRaiser  string `json:"open_raiser"`
	ThreeBettor string `json:"three_bettor"`
	FourBettor  string `json:"four_bettor"`
}

// HandResult is the state machine's output for one hand, keyed by player
// display name.
type HandResult struct {
	Players map[string]*HandFlags
	Trace   PreflopTrace
}
