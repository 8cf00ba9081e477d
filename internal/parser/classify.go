package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// PokerNow writes each street marker in one of two textual variants depending
// on export vintage.
var (
	flopMarkers  = []string{"*** FLOP ***", "Flop:"}
	turnMarkers  = []string{"*** TURN ***", "Turn:"}
	riverMarkers = []string{"*** RIVER ***", "River:"}
)

// handStartMarker opens every hand in the log.
const handStartMarker = "-- starting hand #"

var (
	playerNameRe     = regexp.MustCompile(`"([^"]+?) @ [^"]+"`)
	smallBlindRe     = regexp.MustCompile(`small blind of (\d+(?:\.\d+)?)`)
	bigBlindRe       = regexp.MustCompile(`big blind of (\d+(?:\.\d+)?)`)
	callRe           = regexp.MustCompile(` calls (\d+(?:\.\d+)?)`)
	betRe            = regexp.MustCompile(` bets (\d+(?:\.\d+)?)`)
	raiseRe          = regexp.MustCompile(` raises to (\d+(?:\.\d+)?)`)
	collectedRe      = regexp.MustCompile(` collected (\d+(?:\.\d+)?) from pot`)
	uncalledReturnRe = regexp.MustCompile(`Uncalled bet of (\d+(?:\.\d+)?) returned to "([^"]+?)(?: @ [^"]+)?"`)
)

// PlayerName extracts the display name from a quoted "name @ id" token,
// discarding the id suffix. Returns "" when the line has no such token.
func PlayerName(line string) string {
	m := playerNameRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Classify maps one raw log line to exactly one Event. It never fails:
// unrecognized lines become KindOther and lines whose amount text does not
// parse keep their kind with HasAmount unset.
//
// Rules are checked in a fixed order: hand start, street markers, uncalled
// return, then actor lines (blinds, fold, call, check, bet, raise-to, show,
// collected). No two rules match the same line today, but the precedence is
// explicit regardless.
func Classify(line string) Event {
	switch {
	case strings.Contains(line, handStartMarker):
		return Event{Kind: KindHandStart}

	case containsAny(line, flopMarkers):
		return Event{Kind: KindStreet, Street: StreetFlop}
	case containsAny(line, turnMarkers):
		return Event{Kind: KindStreet, Street: StreetTurn}
	case containsAny(line, riverMarkers):
		return Event{Kind: KindStreet, Street: StreetRiver}

	case strings.HasPrefix(line, "Uncalled bet"):
		ev := Event{Kind: KindUncalledReturn}
		if m := uncalledReturnRe.FindStringSubmatch(line); m != nil {
			ev.Actor = m[2]
			ev.Amount, ev.HasAmount = parseAmount(m[1])
		}
		return ev
	}

	actor := PlayerName(line)
	if actor == "" {
		return Event{Kind: KindOther}
	}

	switch {
	case strings.Contains(line, "posts a small blind"):
		// Anchored on the blind phrase so digit runs in the player's
		// display name are never read as the amount.
		ev := Event{Kind: KindSmallBlind, Actor: actor}
		if m := smallBlindRe.FindStringSubmatch(line); m != nil {
			ev.Amount, ev.HasAmount = parseAmount(m[1])
		}
		return ev

	case strings.Contains(line, "posts a big blind"):
		ev := Event{Kind: KindBigBlind, Actor: actor}
		if m := bigBlindRe.FindStringSubmatch(line); m != nil {
			ev.Amount, ev.HasAmount = parseAmount(m[1])
		}
		return ev

	case strings.Contains(line, " folds"):
		return Event{Kind: KindFold, Actor: actor}

	case strings.Contains(line, " calls "):
		ev := Event{Kind: KindCall, Actor: actor}
		if m := callRe.FindStringSubmatch(line); m != nil {
			ev.Amount, ev.HasAmount = parseAmount(m[1])
		}
		return ev

	case strings.Contains(line, " checks"):
		return Event{Kind: KindCheck, Actor: actor}

	case strings.Contains(line, " bets "):
		ev := Event{Kind: KindBet, Actor: actor}
		if m := betRe.FindStringSubmatch(line); m != nil {
			ev.Amount, ev.HasAmount = parseAmount(m[1])
		}
		return ev

	case strings.Contains(line, " raises to "):
		ev := Event{Kind: KindRaiseTo, Actor: actor}
		if m := raiseRe.FindStringSubmatch(line); m != nil {
			ev.Amount, ev.HasAmount = parseAmount(m[1])
		}
		return ev

	case strings.Contains(line, "shows a "):
		return Event{Kind: KindShow, Actor: actor}

	case strings.Contains(line, " collected ") && strings.Contains(line, "from pot"):
		ev := Event{Kind: KindCollected, Actor: actor}
		if m := collectedRe.FindStringSubmatch(line); m != nil {
			ev.Amount, ev.HasAmount = parseAmount(m[1])
		}
		return ev
	}

	return Event{Kind: KindOther}
}

func parseAmount(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
