package api

import (
	"kwlens/pkg/contracts/domain"
)

// AnalysisResponse is the JSON body returned by POST /api/analysis
type AnalysisResponse struct {
	Source        string              `json:"source"`
	RequestID     string              `json:"request_id,omitempty"`
	Counts        AnalysisCounts      `json:"counts"`
	ReferenceText string              `json:"reference_text"`
	Probe         string              `json:"probe"`
	Summaries     AnalysisSummaries   `json:"summaries"`
	Preview       []domain.KeywordRow `json:"preview"`
	Table         domain.Table        `json:"table"`
}

// AnalysisCounts holds the ranked/unranked partition sizes
type AnalysisCounts struct {
	Rows     int `json:"rows"`
	Ranked   int `json:"ranked"`
	Unranked int `json:"unranked"`
}

// AnalysisSummaries holds the three frequency summaries
type AnalysisSummaries struct {
	TopKeywordWords     []domain.WordCount    `json:"top_keyword_words"`
	TopAppSubtitleWords []domain.WordCount    `json:"top_app_subtitle_words"`
	TopUnrankedKeywords []domain.KeywordCount `json:"top_unranked_keywords"`
}

// NewAnalysisResponse builds the response body for a result
func NewAnalysisResponse(result *domain.AnalysisResult, requestID string) *AnalysisResponse {
	return &AnalysisResponse{
		Source:    result.Source,
		RequestID: requestID,
		Counts: AnalysisCounts{
			Rows:     result.Table.Len(),
			Ranked:   result.RankedCount,
			Unranked: result.UnrankedCount,
		},
		ReferenceText: result.ReferenceText,
		Probe:         result.Probe,
		Summaries: AnalysisSummaries{
			TopKeywordWords:     nonNilWords(result.TopKeywordWords),
			TopAppSubtitleWords: nonNilWords(result.TopAppSubtitleWords),
			TopUnrankedKeywords: nonNilKeywords(result.TopUnrankedKeywords),
		},
		Preview: result.Preview,
		Table:   result.Table,
	}
}

// Empty summaries encode as [] rather than null
func nonNilWords(w []domain.WordCount) []domain.WordCount {
	if w == nil {
		return []domain.WordCount{}
	}
	return w
}

func nonNilKeywords(k []domain.KeywordCount) []domain.KeywordCount {
	if k == nil {
		return []domain.KeywordCount{}
	}
	return k
}
