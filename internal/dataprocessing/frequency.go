package dataprocessing

import (
	"regexp"
	"sort"
	"strings"

	"kwlens/pkg/contracts/domain"
)

// wordPattern matches runs of letters, digits and underscores in any script.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// tally counts keys and remembers the order each key was first seen in.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// top returns at most n keys by descending count. Equal counts keep
// first-seen order.
func (t *tally) top(n int) []string {
	if n <= 0 {
		return nil
	}
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// MostCommonWords tallies the words of column across rows and returns the
// n most frequent. Values are joined with single spaces and lowercased
// before tokenizing.
func MostCommonWords(rows []domain.KeywordRow, column string, n int) []domain.WordCount {
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Value(column)
	}
	return topWords(strings.Join(values, " "), n)
}

// MostCommonWordsCombined tallies words over distinct (columnA, columnB)
// pairs. The first row of each pair is kept and its two values are joined
// with a space.
func MostCommonWordsCombined(rows []domain.KeywordRow, columnA, columnB string, n int) []domain.WordCount {
	type pair struct{ a, b string }

	seen := make(map[pair]struct{})
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		p := pair{row.Value(columnA), row.Value(columnB)}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		values = append(values, p.a+" "+p.b)
	}
	return topWords(strings.Join(values, " "), n)
}

func topWords(text string, n int) []domain.WordCount {
	words := newTally()
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		words.add(w)
	}

	result := make([]domain.WordCount, 0)
	for _, w := range words.top(n) {
		result = append(result, domain.WordCount{Word: w, Count: words.counts[w]})
	}
	return result
}
