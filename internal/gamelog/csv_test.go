package gamelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLogSortsByOrder(t *testing.T) {
	// PokerNow exports are often newest-first; the order column restores
	// chronology.
	input := strings.Join([]string{
		"entry,at,order",
		`"""maya @ y"" posts a big blind of 0.20",2026-01-01T00:00:02,3`,
		`"""loki @ x"" posts a small blind of 0.10",2026-01-01T00:00:01,2`,
		`"-- starting hand #1 (id: a) --",2026-01-01T00:00:00,1`,
	}, "\n")

	entries, err := ReadLog(strings.NewReader(input), "test.csv")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Contains(t, entries[0].Text, "starting hand #1")
	require.Contains(t, entries[1].Text, "small blind")
	require.Contains(t, entries[2].Text, "big blind")
}

func TestReadLogMissingEntryColumn(t *testing.T) {
	input := "at,order\n2026-01-01T00:00:00,1\n"
	_, err := ReadLog(strings.NewReader(input), "bad.csv")
	require.Error(t, err)
	require.Contains(t, err.Error(), `missing required "entry" column`)
}

func TestReadLogEmptyFile(t *testing.T) {
	_, err := ReadLog(strings.NewReader(""), "empty.csv")
	require.Error(t, err)
}

func TestReadLogUnparsableOrderKeyKeepsFilePosition(t *testing.T) {
	// A corrupt order key must not sort its row to the front.
	input := strings.Join([]string{
		"entry,at,order",
		`"first",t1,5`,
		`"second",t2,bogus`,
		`"third",t3,6`,
	}, "\n")

	entries, err := ReadLog(strings.NewReader(input), "test.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, Texts(entries))
}

func TestReadLogWithoutOrderColumnKeepsFileOrder(t *testing.T) {
	input := strings.Join([]string{
		"entry",
		`"first"`,
		`"second"`,
	}, "\n")

	entries, err := ReadLog(strings.NewReader(input), "test.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, Texts(entries))
}

func TestReadFilesConcatenatesInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	a := write("a.csv", "entry,order\nsession-one,1\n")
	b := write("b.csv", "entry,order\nsession-two,1\n")

	entries, err := ReadFiles([]string{a, b})
	require.NoError(t, err)
	require.Equal(t, []string{"session-one", "session-two"}, Texts(entries))
}

func TestReadFilesMissingFile(t *testing.T) {
	_, err := ReadFiles([]string{"does-not-exist.csv"})
	require.Error(t, err)
}

func TestDetectBigBlind(t *testing.T) {
	entries := []Entry{
		{Text: `-- starting hand #1 (id: a) --`},
		{Text: `"loki @ x" posts a small blind of 0.10`},
		{Text: `"maya @ y" posts a big blind of 0.20`},
		{Text: `"maya @ y" posts a big blind of 0.50`},
	}
	// First posting wins.
	require.Equal(t, 0.20, DetectBigBlind(entries))
}

func TestDetectBigBlindDefault(t *testing.T) {
	require.Equal(t, DefaultBigBlind, DetectBigBlind(nil))
	require.Equal(t, DefaultBigBlind, DetectBigBlind([]Entry{{Text: "no blinds here"}}))
}
