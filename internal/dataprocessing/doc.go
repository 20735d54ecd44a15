// Package dataprocessing implements the keyword analysis: loading a ranking
// sheet, validating its columns, sorting it, annotating every row and
// computing the frequency summaries.
//
// # Usage
//
//	table, err := dataprocessing.ParseFile("keywords.xlsx", dataprocessing.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	result, err := dataprocessing.Process(table, domain.DefaultAnalysisOptions())
//
// # Data Flow
//
//	Workbook/CSV → Loader → Table → Sort → Occurrence → Missing words → Probe → Summaries
//
// Every transform returns a new table with a fresh row slice; the input is
// never modified and no transform drops rows. The ranked and unranked views
// are only used for counting.
//
// # Error Handling
//
// Loading fails with *ParseError when the input cannot be read and with
// *SchemaError when required columns are missing. Per-row text operations
// never fail; blank cells are treated as empty strings.
package dataprocessing
