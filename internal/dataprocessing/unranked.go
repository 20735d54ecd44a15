package dataprocessing

import (
	"kwlens/pkg/contracts/domain"
)

// TopUnrankedKeywords counts exact keywords among unranked rows and returns
// the k most frequent. Equal counts keep first-seen order in the table.
func TopUnrankedKeywords(t domain.Table, k int) []domain.KeywordCount {
	keywords := newTally()
	for _, row := range t.Rows {
		if !row.IsRanked() {
			keywords.add(row.Keyword)
		}
	}

	result := make([]domain.KeywordCount, 0)
	for _, kw := range keywords.top(k) {
		result = append(result, domain.KeywordCount{Keyword: kw, Count: keywords.counts[kw]})
	}
	return result
}
