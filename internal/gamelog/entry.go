// Package gamelog loads PokerNow CSV log exports into ordered action entries.
package gamelog

// Entry is one row of a PokerNow log: a free-text action line plus the
// monotonic ordering key the export carries in its "order" column.
type Entry struct {
	Text  string
	Order int64
}

// Texts returns just the action lines, preserving entry order.
func Texts(entries []Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Text
	}
	return lines
}
