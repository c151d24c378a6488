// Package patterns holds the read-only phrase dictionaries used by the
// analyzers and the matching routines that scan a transcript against them.
package patterns

import (
	"sort"
	"strings"
)

// Dictionary is an immutable phrase → weight table. Phrases are kept in scan
// order: longest first, then alphabetical, so that multi-word phrases claim
// their text before any shorter phrase they contain.
type Dictionary struct {
	name    string
	weights map[string]int
	ordered []string
}

// NewDictionary lowercases and orders the phrases once.
func NewDictionary(name string, weights map[string]int) *Dictionary {
	d := &Dictionary{name: name, weights: make(map[string]int, len(weights))}
	for p, w := range weights {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		d.weights[p] = w
		d.ordered = append(d.ordered, p)
	}
	sort.Slice(d.ordered, func(i, j int) bool {
		a, b := d.ordered[i], d.ordered[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return d
}

// NewList builds a dictionary where every phrase weighs 1.
func NewList(name string, phrases ...string) *Dictionary {
	m := make(map[string]int, len(phrases))
	for _, p := range phrases {
		m[p] = 1
	}
	return NewDictionary(name, m)
}

func (d *Dictionary) Name() string { return d.name }

// Phrases returns the phrases in scan order.
func (d *Dictionary) Phrases() []string {
	out := make([]string, len(d.ordered))
	copy(out, d.ordered)
	return out
}

func (d *Dictionary) Weight(phrase string) int { return d.weights[phrase] }

func (d *Dictionary) Len() int { return len(d.ordered) }

// Hit is the outcome of scanning one phrase. First is the byte offset of the
// first counted occurrence in the scanned text, or -1.
type Hit struct {
	Phrase string
	Count  int
	First  int
}

// Matches holds one Hit per dictionary phrase, in scan order.
type Matches []Hit

// Scan counts non-overlapping occurrences of every phrase in lower, which must
// already be lowercased (see Normalize). Text counted for a longer phrase is
// not available to shorter ones.
func (d *Dictionary) Scan(lower string) Matches {
	used := make([]bool, len(lower))
	out := make(Matches, 0, len(d.ordered))
	for _, p := range d.ordered {
		h := Hit{Phrase: p, First: -1}
		for from := 0; from < len(lower); {
			i := strings.Index(lower[from:], p)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(p)
			if claimed(used, start, end) {
				from = start + 1
				continue
			}
			for k := start; k < end; k++ {
				used[k] = true
			}
			h.Count++
			if h.First < 0 {
				h.First = start
			}
			from = end
		}
		out = append(out, h)
	}
	return out
}

func claimed(used []bool, start, end int) bool {
	for k := start; k < end; k++ {
		if used[k] {
			return true
		}
	}
	return false
}

// Total is the number of occurrences across all phrases.
func (m Matches) Total() int {
	n := 0
	for _, h := range m {
		n += h.Count
	}
	return n
}

// Counts returns phrase → count for phrases that occurred at least once.
func (m Matches) Counts() map[string]int {
	out := make(map[string]int)
	for _, h := range m {
		if h.Count > 0 {
			out[h.Phrase] = h.Count
		}
	}
	return out
}

// Top returns the most frequent phrase. Ties go to the phrase scanned first.
func (m Matches) Top() (Hit, bool) {
	var best Hit
	found := false
	for _, h := range m {
		if h.Count > 0 && (!found || h.Count > best.Count) {
			best = h
			found = true
		}
	}
	return best, found
}

// Earliest returns the hit whose first occurrence comes first in the text.
func (m Matches) Earliest() (Hit, bool) {
	var best Hit
	found := false
	for _, h := range m {
		if h.Count > 0 && (!found || h.First < best.First) {
			best = h
			found = true
		}
	}
	return best, found
}
