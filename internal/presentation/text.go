package presentation

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"kwlens/pkg/contracts/domain"
)

// TextRenderer writes a plain-text report: the source preview, the ranked
// and unranked counts, the three summaries and optionally the full table.
type TextRenderer struct {
	// ShowTable adds the processed table after the summaries.
	ShowTable bool
}

// NewTextRenderer creates a text renderer.
func NewTextRenderer(showTable bool) *TextRenderer {
	return &TextRenderer{ShowTable: showTable}
}

// Render implements Renderer.
func (r *TextRenderer) Render(w io.Writer, result *domain.AnalysisResult) error {
	p := &printer{w: w}

	if result.Source != "" {
		p.printf("== %s ==\n\n", result.Source)
	}

	p.printf("### Original Data\n")
	p.table(sourceColumns(result.Table.Columns), result.Preview)

	p.printf("\nRanked rows: %d\nUnranked rows: %d\n", result.RankedCount, result.UnrankedCount)

	p.printf("\n### Most Common Words in 'Keyword' Column\n")
	for _, wc := range result.TopKeywordWords {
		p.printf("%s: %d\n", wc.Word, wc.Count)
	}

	p.printf("\n### Most Common Words in Unique 'App Name' and 'Subtitle' Combinations\n")
	for _, wc := range result.TopAppSubtitleWords {
		p.printf("%s: %d\n", wc.Word, wc.Count)
	}

	p.printf("\n### Top %d Most Common Unranked Keywords\n", len(result.TopUnrankedKeywords))
	for _, kc := range result.TopUnrankedKeywords {
		p.printf("%s: %d\n", kc.Keyword, kc.Count)
	}

	if r.ShowTable {
		p.printf("\n### Final Processed Data\n")
		p.table(domain.OutputColumns(result.Table.Columns), result.Table.Rows)
	}

	return p.err
}

func sourceColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !domain.IsDerivedColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// printer keeps the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) table(columns []string, rows []domain.KeywordRow) {
	if p.err != nil {
		return
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = displayValue(row, c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	p.err = tw.Flush()
}

func displayValue(row domain.KeywordRow, column string) string {
	switch column {
	case domain.ColumnVolume:
		if row.HasVolume {
			return fmt.Sprintf("%g", row.Volume)
		}
	case domain.ColumnOccurrence:
		if row.Occurrence != nil {
			return fmt.Sprintf("%d", *row.Occurrence)
		}
		return "-"
	case domain.ColumnMissingTitleSubtitle:
		return optional(row.MissingFromTitleSubtitle)
	case domain.ColumnMissingFromInput:
		return optional(row.MissingFromInput)
	case domain.ColumnTextInKeyword:
		return fmt.Sprintf("%d", row.TextInKeyword)
	}
	return row.Value(column)
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
