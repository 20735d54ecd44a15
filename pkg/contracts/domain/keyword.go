package domain

// Source column names of a keyword ranking sheet
const (
	ColumnKeyword    = "Keyword"
	ColumnAppName    = "App Name"
	ColumnSubtitle   = "Subtitle"
	ColumnVolume     = "Volume"
	ColumnRankStatus = "Rank Status"
)

// Derived column names appended by the analysis pipeline
const (
	ColumnOccurrence           = "Occurrence"
	ColumnMissingTitleSubtitle = "Missing Words (Not Title or Subtitle)"
	ColumnMissingFromInput     = "Missing Words from My Input"
	ColumnTextInKeyword        = "Text in Keyword"
)

// RankStatusRanked is the only Rank Status value treated as ranked.
const RankStatusRanked = "ranked"

// AllMissing is reported when no keyword word appears in the reference text.
const AllMissing = "all missing"

// DerivedColumns lists the derived columns in export order.
var DerivedColumns = []string{
	ColumnOccurrence,
	ColumnMissingTitleSubtitle,
	ColumnMissingFromInput,
	ColumnTextInKeyword,
}

// IsDerivedColumn reports whether name is one of the derived columns.
func IsDerivedColumn(name string) bool {
	for _, c := range DerivedColumns {
		if c == name {
			return true
		}
	}
	return false
}

// OutputColumns returns the source columns without any derived column,
// followed by every derived column.
func OutputColumns(source []string) []string {
	out := make([]string, 0, len(source)+len(DerivedColumns))
	for _, c := range source {
		if !IsDerivedColumn(c) {
			out = append(out, c)
		}
	}
	return append(out, DerivedColumns...)
}

// KeywordRow represents one ranking entry of the source sheet.
// Rows are values; transforms copy them and never modify Cells.
type KeywordRow struct {
	Keyword    string  `json:"keyword"`
	AppName    string  `json:"app_name"`
	Subtitle   string  `json:"subtitle"`
	Volume     float64 `json:"volume"`
	HasVolume  bool    `json:"has_volume"`
	RankStatus string  `json:"rank_status"`

	// Cells holds the raw text of every source column keyed by header.
	Cells map[string]string `json:"cells,omitempty"`

	// Derived values. A nil pointer means the value is absent.
	Occurrence               *int    `json:"occurrence"`
	MissingFromTitleSubtitle *string `json:"missing_from_title_subtitle"`
	MissingFromInput         *string `json:"missing_from_input"`
	TextInKeyword            int     `json:"text_in_keyword"`
}

// IsRanked reports whether the row's Rank Status is exactly "ranked".
func (r KeywordRow) IsRanked() bool {
	return r.RankStatus == RankStatusRanked
}

// Value returns the text of the named column for this row.
// Core columns resolve to the typed fields, anything else to Cells.
func (r KeywordRow) Value(column string) string {
	switch column {
	case ColumnKeyword:
		return r.Keyword
	case ColumnAppName:
		return r.AppName
	case ColumnSubtitle:
		return r.Subtitle
	case ColumnRankStatus:
		return r.RankStatus
	}
	return r.Cells[column]
}

// Table is an ordered sequence of keyword rows. Row identity is positional;
// the same keyword may appear on many rows.
type Table struct {
	Columns []string     `json:"columns"`
	Rows    []KeywordRow `json:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// WithRows returns a table sharing t's columns with the given rows.
func (t Table) WithRows(rows []KeywordRow) Table {
	return Table{Columns: t.Columns, Rows: rows}
}

// CloneRows returns a fresh copy of the row slice.
func (t Table) CloneRows() []KeywordRow {
	rows := make([]KeywordRow, len(t.Rows))
	copy(rows, t.Rows)
	return rows
}

// WordCount is a word frequency entry.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// KeywordCount is a keyword frequency entry.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}
