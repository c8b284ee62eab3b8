// Package deck loads a line-oriented deck list into an ordered card list.
//
// The format is one entry per line: a positive count followed by the card
// name (which may contain spaces). Blank lines and lines starting with "#"
// are ignored. Sideboard lines are prefixed with "SB:" and otherwise follow
// the same count/name shape. Repeated names accumulate their counts.
package deck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is one unique card in the deck with its accumulated copy count.
type Entry struct {
	Name  string
	Count int
}

// Deck is an immutable card list in first-appearance order.
type Deck struct {
	entries []Entry
	index   map[string]int
	total   int
}

// Parse reads a deck file from disk.
func Parse(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck file: %w", err)
	}
	defer f.Close()

	d, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// ParseReader parses deck list content directly from memory.
func ParseReader(r io.Reader) (*Deck, error) {
	d := &Deck{index: make(map[string]int)}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Sideboard entries carry an extra leading token.
		if rest, ok := strings.CutPrefix(line, "SB:"); ok {
			line = strings.TrimSpace(rest)
		}

		sep := strings.IndexAny(line, " \t")
		if sep < 0 {
			return nil, fmt.Errorf("line %d: missing card name", lineNo)
		}
		countStr, name := line[:sep], line[sep+1:]
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad count %q: %w", lineNo, countStr, err)
		}
		if count < 1 {
			return nil, fmt.Errorf("line %d: count must be positive, got %d", lineNo, count)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: missing card name", lineNo)
		}

		d.add(name, count)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return d, nil
}

func (d *Deck) add(name string, count int) {
	if i, ok := d.index[name]; ok {
		d.entries[i].Count += count
	} else {
		d.index[name] = len(d.entries)
		d.entries = append(d.entries, Entry{Name: name, Count: count})
	}
	d.total += count
}

// Entries returns the unique cards in first-appearance order.
func (d *Deck) Entries() []Entry {
	return d.entries
}

// Count returns the count for a single card, zero if absent.
func (d *Deck) Count(name string) int {
	if i, ok := d.index[name]; ok {
		return d.entries[i].Count
	}
	return 0
}

// Size is the total number of physical cards (sum of counts).
func (d *Deck) Size() int {
	return d.total
}
