package parser

import (
	"errors"
	"strings"
)

// ErrNoHands reports that the input contained no hand-start marker anywhere.
var ErrNoHands = errors.New("no hands found in log")

// Hand is a contiguous slice of raw log lines bounded by a hand-start marker
// (inclusive) and the next one (exclusive), or end of input for the final
// hand.
type Hand struct {
	Lines []string
}

// HasStart reports whether the hand actually begins with a hand-start
// marker. Lines preceding the first marker in a log form a chunk without
// one; see SkipPreamble.
func (h Hand) HasStart() bool {
	for _, line := range h.Lines {
		if strings.Contains(line, handStartMarker) {
			return true
		}
	}
	return false
}

// SplitHands partitions ordered log lines into hands, splitting at each
// hand-start marker. Any lines before the first marker become a leading
// chunk that does not satisfy HasStart; discarding it is the caller's
// responsibility (SkipPreamble does exactly that).
func SplitHands(lines []string) []Hand {
	var hands []Hand
	var current []string
	for _, line := range lines {
		if strings.Contains(line, handStartMarker) {
			if len(current) > 0 {
				hands = append(hands, Hand{Lines: current})
			}
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		hands = append(hands, Hand{Lines: current})
	}
	return hands
}

// SkipPreamble drops leading chunks that carry no hand-start marker (lobby
// noise before the first real hand). Returns ErrNoHands when no chunk has
// one.
func SkipPreamble(hands []Hand) ([]Hand, error) {
	for i, h := range hands {
		if h.HasStart() {
			return hands[i:], nil
		}
	}
	return nil, ErrNoHands
}
