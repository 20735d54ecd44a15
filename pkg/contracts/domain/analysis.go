package domain

import "strings"

// Default summary sizes used by the keyword dashboard
const (
	DefaultTopKeywordWords     = 10
	DefaultTopAppSubtitleWords = 5
	DefaultTopUnranked         = 10
	DefaultPreviewRows         = 5
)

// ReferenceInput holds the user-editable text fields that make up the
// reference text for missing-word detection.
type ReferenceInput struct {
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	KeywordField  string `json:"keyword_field"`
	KeywordField2 string `json:"keyword_field_2"`
}

// Text concatenates the four fields separated by single spaces.
func (ri ReferenceInput) Text() string {
	return strings.Join([]string{ri.Title, ri.Subtitle, ri.KeywordField, ri.KeywordField2}, " ")
}

// AnalysisOptions configures one processing pass.
type AnalysisOptions struct {
	Reference           ReferenceInput `json:"reference"`
	Probe               string         `json:"probe"`
	TopKeywordWords     int            `json:"top_keyword_words"`
	TopAppSubtitleWords int            `json:"top_app_subtitle_words"`
	TopUnranked         int            `json:"top_unranked"`
}

// DefaultAnalysisOptions returns options with the dashboard's summary sizes
// and empty text fields.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		TopKeywordWords:     DefaultTopKeywordWords,
		TopAppSubtitleWords: DefaultTopAppSubtitleWords,
		TopUnranked:         DefaultTopUnranked,
	}
}

// AnalysisResult is the annotated table plus its summaries.
type AnalysisResult struct {
	Source              string         `json:"source,omitempty"`
	Table               Table          `json:"table"`
	Preview             []KeywordRow   `json:"preview"`
	RankedCount         int            `json:"ranked_count"`
	UnrankedCount       int            `json:"unranked_count"`
	ReferenceText       string         `json:"reference_text"`
	Probe               string         `json:"probe"`
	TopKeywordWords     []WordCount    `json:"top_keyword_words"`
	TopAppSubtitleWords []WordCount    `json:"top_app_subtitle_words"`
	TopUnrankedKeywords []KeywordCount `json:"top_unranked_keywords"`
}
