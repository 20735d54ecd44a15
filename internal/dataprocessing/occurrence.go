package dataprocessing

import (
	"kwlens/pkg/contracts/domain"
)

// CountOccurrences counts exact keyword values across rows.
func CountOccurrences(rows []domain.KeywordRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Keyword]++
	}
	return counts
}

// AnnotateOccurrence sets Occurrence on every row whose keyword appears in
// counts and clears it on the rest.
func AnnotateOccurrence(t domain.Table, counts map[string]int) domain.Table {
	rows := t.CloneRows()
	for i := range rows {
		rows[i].Occurrence = nil
		if c, ok := counts[rows[i].Keyword]; ok {
			c := c
			rows[i].Occurrence = &c
		}
	}
	return t.WithRows(rows)
}
