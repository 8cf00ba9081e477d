package gamelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// ReadLog parses one PokerNow CSV export. The "entry" column is required;
// when an "order" column is present rows are sorted ascending by it so the
// hands replay chronologically. The name is only used in error messages.
func ReadLog(r io.Reader, name string) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading CSV header: %w", name, err)
	}

	entryCol := -1
	orderCol := -1
	for i, col := range header {
		switch col {
		case "entry":
			entryCol = i
		case "order":
			orderCol = i
		}
	}
	if entryCol == -1 {
		return nil, fmt.Errorf("%s: missing required %q column", name, "entry")
	}

	var entries []Entry
	var lastOrder int64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: reading CSV row: %w", name, err)
		}
		if entryCol >= len(record) {
			continue
		}
		e := Entry{Text: record[entryCol]}
		if orderCol >= 0 && orderCol < len(record) {
			// An unparsable order key inherits the previous row's key, so
			// the stable sort keeps the row in its file position.
			if v, err := strconv.ParseInt(record[orderCol], 10, 64); err == nil {
				lastOrder = v
			}
			e.Order = lastOrder
		}
		entries = append(entries, e)
	}

	if orderCol >= 0 {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Order < entries[j].Order
		})
	}
	return entries, nil
}

// ReadFile reads a single log file from disk.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	return ReadLog(f, path)
}

// ReadFiles loads several logs concurrently and concatenates them in argument
// order. Each file is ordered internally by its own "order" column; the
// caller is expected to pass files in chronological session order.
func ReadFiles(paths []string) ([]Entry, error) {
	results := make([][]Entry, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			entries, err := ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Entry
	for _, entries := range results {
		merged = append(merged, entries...)
	}
	return merged, nil
}
