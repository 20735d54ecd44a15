package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kwlens/internal/dataprocessing"
	"kwlens/internal/shared/testutil"
	"kwlens/pkg/contracts/domain"
)

func analyzeFixture(t *testing.T) *domain.AnalysisResult {
	t.Helper()

	table, err := dataprocessing.ParseWorkbook(bytes.NewReader(testutil.KeywordSheet().WorkbookBytes(t)), dataprocessing.LoadOptions{})
	require.NoError(t, err)

	opts := domain.DefaultAnalysisOptions()
	opts.Reference = domain.ReferenceInput{Title: "Snap Photo Editor", Subtitle: "Edit pictures fast", KeywordField: "collage,grid"}
	opts.Probe = "photo"

	result, err := dataprocessing.Process(table, opts)
	require.NoError(t, err)
	result.Source = "keywords.xlsx"
	return result
}

// derivedView keeps the fields an export must preserve.
type derivedView struct {
	Keyword       string
	Volume        float64
	HasVolume     bool
	Occurrence    *int
	MissingTitle  *string
	MissingInput  *string
	TextInKeyword int
	Difficulty    string
}

func project(rows []domain.KeywordRow) []derivedView {
	out := make([]derivedView, len(rows))
	for i, r := range rows {
		out[i] = derivedView{
			Keyword:       r.Keyword,
			Volume:        r.Volume,
			HasVolume:     r.HasVolume,
			Occurrence:    r.Occurrence,
			MissingTitle:  r.MissingFromTitleSubtitle,
			MissingInput:  r.MissingFromInput,
			TextInKeyword: r.TextInKeyword,
			Difficulty:    r.Cells["Difficulty"],
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	result := analyzeFixture(t)

	tests := []struct {
		name  string
		write func(*bytes.Buffer) error
		load  func(*bytes.Buffer) (domain.Table, error)
	}{
		{
			name:  "xlsx",
			write: func(b *bytes.Buffer) error { return NewXLSXExporter().Export(b, result) },
			load: func(b *bytes.Buffer) (domain.Table, error) {
				return dataprocessing.ParseWorkbook(b, dataprocessing.LoadOptions{Sheet: SheetKeywords})
			},
		},
		{
			name:  "csv",
			write: func(b *bytes.Buffer) error { return NewCSVWriter().Export(b, result) },
			load: func(b *bytes.Buffer) (domain.Table, error) {
				return dataprocessing.ParseCSV(b, dataprocessing.LoadOptions{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.write(&buf))

			reloaded, err := tt.load(&buf)
			require.NoError(t, err)

			assert.Equal(t, result.Table.Columns, reloaded.Columns)
			if diff := cmp.Diff(project(result.Table.Rows), project(reloaded.Rows)); diff != "" {
				t.Errorf("derived values changed on reload (-exported +reloaded):\n%s", diff)
			}
		})
	}
}

func TestCSVWriter_WriteTable(t *testing.T) {
	occ := 2
	table := domain.Table{
		Columns: []string{"Keyword", "Occurrence", "Extra"},
		Rows: []domain.KeywordRow{
			{Keyword: "a", Cells: map[string]string{"Keyword": "a", "Extra": "x"}, Occurrence: &occ},
			{Keyword: "b", Cells: map[string]string{"Keyword": "b"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().WriteTable(&buf, table))

	require.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Keyword", "Extra", "Occurrence", "Missing Words (Not Title or Subtitle)", "Missing Words from My Input", "Text in Keyword"},
		{"a", "x", "2", "", "", "0"},
		{"b", "", "", "", "", "0"},
	}, records)
}

func TestCSVWriter_NoBOM(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.WriteTable(&buf, domain.Table{Columns: []string{"Keyword"}}))

	assert.True(t, strings.HasPrefix(buf.String(), "Keyword,"))
}

func TestXLSXExporter_Summary(t *testing.T) {
	result := analyzeFixture(t)

	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Export(&buf, result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetKeywords, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Most Common Words in Keyword", "Count"}, rows[0])
	require.NotEmpty(t, result.TopKeywordWords)
	assert.Equal(t, result.TopKeywordWords[0].Word, rows[1][0])

	var labels []string
	for _, r := range rows {
		if len(r) > 0 {
			labels = append(labels, r[0])
		}
	}
	assert.Contains(t, labels, "Top Unranked Keywords")
	assert.Contains(t, labels, "Ranked Rows")
}

func TestWriteFile(t *testing.T) {
	result := analyzeFixture(t)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteFile(dir, FormatCSV, result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keywords_analysis.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
}

func TestWriteFile_ConcurrentWritersLeaveReadableFile(t *testing.T) {
	result := analyzeFixture(t)
	dir := t.TempDir()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = WriteFile(dir, FormatXLSX, result)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, "keywords_analysis.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Keywords")
	require.NoError(t, err)
	assert.Len(t, rows, result.Table.Len()+1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}
