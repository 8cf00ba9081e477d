package analyzer

import "github.com/luksz/PokerNow-Absolute-Cinema/internal/parser"

// playerHand is the ephemeral per-player record for a single hand. A player
// absent from the hand's map is equivalent to a zero-valued record; handState
// creates records lazily on first touch.
type playerHand struct {
	contrib   float64 // cumulative chips put in, base for raise-to deltas
	invested  float64
	collected float64

	dealtIn bool
	vpip    bool
	pfr     bool

	openRaise bool
	threeBet  bool
	fourBet   bool

	threeBetOpp   bool
	fourBetOpp    bool
	threeBetFaced bool
	fourBetFaced  bool
	foldTo3Bet    bool
	foldTo4Bet    bool

	saw        [parser.NumStreets]bool
	checked    [parser.NumStreets]bool
	facedBet   [parser.NumStreets]bool
	foldToCbet [parser.NumStreets]bool

	limps     int
	callOpens int
	squeezes  int

	checkRaise [parser.NumStreets]int
	donk       [parser.NumStreets]int

	aggrPostflop  int
	callsPostflop int
	foldsPostflop int

	shown bool
}

// handState is the per-hand betting state machine. It consumes one hand's
// lines in order and emits HandFlags per player via finish.
type handState struct {
	players map[string]*playerHand
	active  map[string]bool

	street   parser.Street
	showdown bool

	// Preflop role slots. At most one player holds each, and they fill
	// monotonically: opener, then threeBettor, then fourBettor. The model
	// stops at a 4-bet by the original opener; 5-bet chains and 4-bets by
	// other players do not fill slots.
	opener      string
	threeBettor string
	fourBettor  string

	// lastPreflopRaiser is snapshotted into preflopAggressor when the flop
	// marker arrives; it is the reference for flop c-bet attribution.
	lastPreflopRaiser string
	preflopAggressor  string

	// streetAggressor holds the last aggressor on the flop and turn; each is
	// the c-bet reference for the following street.
	streetAggressor [parser.NumStreets]string

	reached  [parser.NumStreets]bool // street marker seen
	betSeen  [parser.NumStreets]bool // any bet/raise placed this street
	cbetDone [parser.NumStreets]bool
	cbetBy   [parser.NumStreets]string

	// callerAfterOpen marks that somebody called the open before a 3-bet,
	// which upgrades that 3-bet to a squeeze.
	callerAfterOpen bool
}

func newHandState() *handState {
	return &handState{
		players: make(map[string]*playerHand),
		active:  make(map[string]bool),
		street:  parser.StreetPreflop,
	}
}

func (h *handState) player(name string) *playerHand {
	p, ok := h.players[name]
	if !ok {
		p = &playerHand{}
		h.players[name] = p
	}
	return p
}

// analyzeHand runs one hand through the state machine. It never fails:
// unrecognized lines and unparsable amounts degrade per the classifier
// contract.
func analyzeHand(hand parser.Hand) HandResult {
	h := newHandState()
	for _, line := range hand.Lines {
		h.apply(parser.Classify(line))
	}
	return h.finish()
}

func (h *handState) apply(ev parser.Event) {
	// Any attributable action while still preflop marks the player as dealt
	// in and records the 3-bet/4-bet opportunity standing at that moment.
	// Uncalled returns are settlements, not actions, and do not count.
	if ev.Actor != "" && ev.Kind != parser.KindUncalledReturn && h.street == parser.StreetPreflop {
		p := h.player(ev.Actor)
		p.dealtIn = true
		h.active[ev.Actor] = true
		if h.opener != "" && h.threeBettor == "" && ev.Actor != h.opener {
			p.threeBetOpp = true
		}
		if h.opener != "" && h.threeBettor != "" && h.fourBettor == "" && ev.Actor == h.opener {
			p.fourBetOpp = true
		}
		if h.threeBettor != "" && h.fourBettor == "" && ev.Actor != h.threeBettor {
			p.threeBetFaced = true
		}
		if h.fourBettor != "" && ev.Actor != h.fourBettor {
			p.fourBetFaced = true
		}
	}

	switch ev.Kind {
	case parser.KindStreet:
		h.enterStreet(ev.Street)

	case parser.KindUncalledReturn:
		if ev.Actor != "" && ev.HasAmount {
			p := h.player(ev.Actor)
			p.invested -= ev.Amount
			p.contrib -= ev.Amount
		}

	case parser.KindSmallBlind, parser.KindBigBlind:
		// Blinds are forced: they add money but set neither VPIP nor roles.
		if ev.HasAmount {
			p := h.player(ev.Actor)
			p.invested += ev.Amount
			p.contrib += ev.Amount
		}

	case parser.KindFold:
		h.fold(ev.Actor)

	case parser.KindCall:
		h.call(ev.Actor, ev.Amount, ev.HasAmount)

	case parser.KindCheck:
		if h.street != parser.StreetPreflop {
			h.player(ev.Actor).checked[h.street] = true
		}

	case parser.KindBet:
		h.aggressive(ev.Actor, ev.Amount, ev.HasAmount, false)

	case parser.KindRaiseTo:
		h.aggressive(ev.Actor, ev.Amount, ev.HasAmount, true)

	case parser.KindShow:
		h.showdown = true
		h.player(ev.Actor).shown = true

	case parser.KindCollected:
		if ev.HasAmount {
			h.player(ev.Actor).collected += ev.Amount
		}
	}
}

// enterStreet advances the street, marks everyone still active as having
// seen it, and on the flop snapshots the last preflop raiser as the
// preflop aggressor for c-bet attribution.
func (h *handState) enterStreet(street parser.Street) {
	h.street = street
	h.reached[street] = true
	if street == parser.StreetFlop {
		h.preflopAggressor = h.lastPreflopRaiser
	}
	for name := range h.active {
		h.player(name).saw[street] = true
	}
}

func (h *handState) fold(name string) {
	p := h.player(name)
	if h.street == parser.StreetPreflop {
		// A fold while facing a live, unanswered 3-bet or 4-bet is a fold to
		// it. The 4-bet case wins when both apply (a cold caller who called
		// the 3-bet and now faces a 4-bet folded to the 4-bet).
		switch {
		case p.fourBetFaced:
			p.foldTo4Bet = true
		case p.threeBetFaced && !p.fourBet:
			p.foldTo3Bet = true
		}
	} else {
		p.foldsPostflop++
		if h.cbetDone[h.street] {
			p.foldToCbet[h.street] = true
		}
	}
	delete(h.active, name)
}

func (h *handState) call(name string, amount float64, hasAmount bool) {
	p := h.player(name)
	if hasAmount {
		p.invested += amount
		p.contrib += amount
	}
	if h.street == parser.StreetPreflop {
		p.vpip = true
		if h.opener == "" {
			p.limps++
		} else if h.threeBettor == "" && name != h.opener {
			p.callOpens++
			h.callerAfterOpen = true
		}
	} else {
		p.callsPostflop++
		p.facedBet[h.street] = true
	}
}

// aggressive handles bets and raise-tos. For raise-to lines the incremental
// amount is the positive difference between the raise target and the
// player's prior contribution this hand.
func (h *handState) aggressive(name string, amount float64, hasAmount bool, isRaise bool) {
	p := h.player(name)
	if hasAmount {
		delta := amount
		if isRaise {
			delta = amount - p.contrib
			if delta < 0 {
				delta = 0
			}
		}
		p.invested += delta
		p.contrib += delta
	}

	if h.street == parser.StreetPreflop {
		p.vpip = true
		p.pfr = true
		switch {
		case h.opener == "":
			h.opener = name
			p.openRaise = true
		case h.threeBettor == "":
			h.threeBettor = name
			p.threeBet = true
			if h.callerAfterOpen && name != h.opener {
				p.squeezes++
			}
		case h.fourBettor == "" && name == h.opener:
			h.fourBettor = name
			p.fourBet = true
		}
		h.lastPreflopRaiser = name
		return
	}

	// Check-raise: checked this street, somebody bet, now raising over it.
	if isRaise && p.checked[h.street] && p.facedBet[h.street] {
		p.checkRaise[h.street]++
	}

	p.aggrPostflop++

	// Everyone else still in the hand is now facing a bet on this street.
	for other := range h.active {
		if other != name {
			h.player(other).facedBet[h.street] = true
		}
	}

	// Only the first bet or raise on a street is classified as a c-bet or
	// donk, and only when a previous-street aggressor reference exists.
	if !h.betSeen[h.street] {
		h.betSeen[h.street] = true
		if prev := h.prevStreetAggressor(h.street); prev != "" {
			if name == prev {
				if !h.cbetDone[h.street] {
					h.cbetDone[h.street] = true
					h.cbetBy[h.street] = name
				}
			} else {
				p.donk[h.street]++
			}
		}
	}

	if h.street == parser.StreetFlop || h.street == parser.StreetTurn {
		h.streetAggressor[h.street] = name
	}
}

// prevStreetAggressor returns the aggressor reference carried into the given
// street: the snapshotted preflop raiser for the flop, the last flop
// aggressor for the turn, the last turn aggressor for the river.
func (h *handState) prevStreetAggressor(street parser.Street) string {
	switch street {
	case parser.StreetFlop:
		return h.preflopAggressor
	case parser.StreetTurn:
		return h.streetAggressor[parser.StreetFlop]
	case parser.StreetRiver:
		return h.streetAggressor[parser.StreetTurn]
	}
	return ""
}

// finish closes the hand: derives per-player flags, settles money, and
// resolves c-bet made/opportunity/faced attribution for each street.
func (h *handState) finish() HandResult {
	res := HandResult{
		Players: make(map[string]*HandFlags, len(h.players)),
		Trace: PreflopTrace{
			OpenRaiser:  h.opener,
			ThreeBettor: h.threeBettor,
			FourBettor:  h.fourBettor,
		},
	}

	for name, p := range h.players {
		wtsd := h.showdown && p.shown
		net := p.collected - p.invested
		f := &HandFlags{
			Played:            p.dealtIn,
			VPIP:              p.vpip,
			PFR:               p.pfr,
			OpenRaise:         p.openRaise,
			Limps:             p.limps,
			CallOpens:         p.callOpens,
			Squeezes:          p.squeezes,
			ThreeBet:          p.threeBet,
			FourBet:           p.fourBet,
			ThreeBetOpp:       p.threeBetOpp,
			FourBetOpp:        p.fourBetOpp,
			ThreeBetFaced:     p.threeBetFaced,
			FourBetFaced:      p.fourBetFaced,
			FoldTo3Bet:        p.foldTo3Bet,
			FoldTo4Bet:        p.foldTo4Bet,
			SawFlop:           p.saw[parser.StreetFlop],
			SawTurn:           p.saw[parser.StreetTurn],
			SawRiver:          p.saw[parser.StreetRiver],
			WentToShowdown:    wtsd,
			WonAtShowdown:     wtsd && p.collected > 0,
			WonWhenSawFlop:    p.collected > 0 && p.saw[parser.StreetFlop],
			CheckRaises:       p.checkRaise,
			Donks:             p.donk,
			AggressiveActions: p.aggrPostflop,
			PostflopCalls:     p.callsPostflop,
			PostflopFolds:     p.foldsPostflop,
			Net:               net,
		}
		if wtsd {
			f.ShowdownNet = net
		} else {
			f.NonShowdownNet = net
		}
		res.Players[name] = f
	}

	for _, street := range []parser.Street{parser.StreetFlop, parser.StreetTurn, parser.StreetRiver} {
		prev := h.prevStreetAggressor(street)

		// The prior aggressor had a c-bet opportunity only when the street
		// was actually dealt and they were still in to see it.
		if h.reached[street] && prev != "" {
			if p, ok := h.players[prev]; ok && p.saw[street] {
				res.Players[prev].CbetOpp[street] = true
				if h.cbetDone[street] && h.cbetBy[street] == prev {
					res.Players[prev].CbetMade[street] = true
				}
			}
		}

		if h.cbetDone[street] {
			for name, p := range h.players {
				if name == h.cbetBy[street] || !p.saw[street] {
					continue
				}
				f := res.Players[name]
				f.CbetFaced[street] = true
				if p.foldToCbet[street] {
					f.CbetFolded[street] = true
				}
			}
		}
	}

	return res
}
