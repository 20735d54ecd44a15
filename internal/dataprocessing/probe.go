package dataprocessing

import (
	"strings"

	"kwlens/pkg/contracts/domain"
)

// TextInKeyword returns 1 when probe occurs in keyword ignoring case, else 0.
// An empty probe matches every keyword.
func TextInKeyword(keyword, probe string) int {
	if strings.Contains(strings.ToLower(keyword), strings.ToLower(probe)) {
		return 1
	}
	return 0
}

// AnnotateProbe sets TextInKeyword on every row.
func AnnotateProbe(t domain.Table, probe string) domain.Table {
	rows := t.CloneRows()
	for i := range rows {
		rows[i].TextInKeyword = TextInKeyword(rows[i].Keyword, probe)
	}
	return t.WithRows(rows)
}
