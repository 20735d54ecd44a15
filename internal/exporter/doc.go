// Package exporter writes analysis results as spreadsheet files.
//
// Both formats share the same column layout: every source column that is
// not a derived column, in source order, followed by Occurrence, the two
// missing-word columns and Text in Keyword. Absent values are empty cells.
//
// XLSXExporter writes a workbook with a Keywords sheet and a Summary sheet.
// CSVWriter writes the table alone, prefixed with a UTF-8 BOM for Excel.
//
// Example usage:
//
//	exp, err := exporter.New(exporter.FormatXLSX)
//	if err != nil {
//	    return err
//	}
//	err = exp.Export(w, result)
package exporter
