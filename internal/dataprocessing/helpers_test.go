package dataprocessing

import (
	"kwlens/pkg/contracts/domain"
)

func kwRow(keyword, app, subtitle string, volume float64, status string) domain.KeywordRow {
	return domain.KeywordRow{
		Keyword:    keyword,
		AppName:    app,
		Subtitle:   subtitle,
		Volume:     volume,
		HasVolume:  true,
		RankStatus: status,
	}
}

func noVolume(r domain.KeywordRow) domain.KeywordRow {
	r.Volume, r.HasVolume = 0, false
	return r
}

func keywordTable(rows ...domain.KeywordRow) domain.Table {
	return domain.Table{Columns: RequiredColumns(), Rows: rows}
}

func keywords(rows []domain.KeywordRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Keyword
	}
	return out
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
