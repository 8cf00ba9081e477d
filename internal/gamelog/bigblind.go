package gamelog

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultBigBlind is assumed when no big-blind posting appears in the log.
const DefaultBigBlind = 1.0

var bigBlindRe = regexp.MustCompile(`big blind of (\d+(?:\.\d+)?)`)

// DetectBigBlind finds the table's big blind from the first "posts a big
// blind of X" entry. Falls back to DefaultBigBlind when no such entry
// exists. Assumes uniform stakes across the supplied entries.
func DetectBigBlind(entries []Entry) float64 {
	for _, e := range entries {
		if !strings.Contains(e.Text, "posts a big blind of") {
			continue
		}
		m := bigBlindRe.FindStringSubmatch(e.Text)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return DefaultBigBlind
}
