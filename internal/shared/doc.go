// Package shared provides common utilities and test helpers used across the
// kwlens codebase.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on structured logs
//   - SheetFixture for building keyword ranking workbooks and CSV files
//
// Example usage:
//
//	func TestParse(t *testing.T) {
//	    path := testutil.KeywordSheet().WriteWorkbook(t, "keywords.xlsx")
//	    table, err := dataprocessing.ParseFile(path, dataprocessing.LoadOptions{})
//	    ...
//	}
//
// This package should not contain business logic.
package shared
