package dataprocessing

import (
	"sort"

	"kwlens/pkg/contracts/domain"
)

// SortRows orders rows by Volume descending, then Keyword ascending.
// Rows without a volume go last. The sort is stable, so rows tied on both
// keys keep their input order.
func SortRows(t domain.Table) domain.Table {
	rows := t.CloneRows()
	sort.SliceStable(rows, func(i, j int) bool {
		return rowLess(rows[i], rows[j])
	})
	return t.WithRows(rows)
}

func rowLess(a, b domain.KeywordRow) bool {
	if a.HasVolume != b.HasVolume {
		return a.HasVolume
	}
	if a.HasVolume && a.Volume != b.Volume {
		return a.Volume > b.Volume
	}
	return a.Keyword < b.Keyword
}

// PartitionRanked splits rows into the ranked view and its complement,
// both in table order.
func PartitionRanked(t domain.Table) (ranked, unranked []domain.KeywordRow) {
	ranked = make([]domain.KeywordRow, 0, len(t.Rows))
	unranked = make([]domain.KeywordRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.IsRanked() {
			ranked = append(ranked, row)
		} else {
			unranked = append(unranked, row)
		}
	}
	return ranked, unranked
}
