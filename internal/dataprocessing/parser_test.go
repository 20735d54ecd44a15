package dataprocessing

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kwlens/internal/shared/testutil"
	"kwlens/pkg/contracts/domain"
)

func TestParseFile(t *testing.T) {
	fx := testutil.KeywordSheet()

	tests := []struct {
		name string
		path string
	}{
		{"xlsx", fx.WriteWorkbook(t, "keywords.xlsx")},
		{"csv", fx.WriteCSV(t, "keywords.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseFile(tt.path, LoadOptions{})
			require.NoError(t, err)

			assert.Equal(t, fx.Columns, table.Columns)
			require.Len(t, table.Rows, len(fx.Rows))

			first := table.Rows[0]
			assert.Equal(t, "photo editor", first.Keyword)
			assert.Equal(t, "Snap Photo Editor", first.AppName)
			assert.Equal(t, "Edit pictures fast", first.Subtitle)
			assert.Equal(t, "ranked", first.RankStatus)
			assert.True(t, first.HasVolume)
			assert.Equal(t, 50.0, first.Volume)
			assert.Equal(t, "41", first.Cells["Difficulty"])
			assert.Nil(t, first.Occurrence)

			assert.False(t, table.Rows[2].HasVolume, "blank volume")
		})
	}
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.txt")
	require.NoError(t, os.WriteFile(path, []byte("Keyword"), 0o644))

	_, err := ParseFile(path, LoadOptions{})

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Source)
}

func TestParseReader(t *testing.T) {
	fx := testutil.KeywordSheet()

	tests := []struct {
		name    string
		file    string
		data    []byte
		wantErr bool
	}{
		{"workbook", "upload.XLSX", fx.WorkbookBytes(t), false},
		{"macro workbook", "upload.xlsm", fx.WorkbookBytes(t), false},
		{"csv", "upload.csv", fx.CSVBytes(t), false},
		{"unknown extension", "upload.ods", fx.WorkbookBytes(t), true},
		{"csv bytes named xlsx", "upload.xlsx", fx.CSVBytes(t), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseReader(tt.file, bytes.NewReader(tt.data), LoadOptions{})
			if tt.wantErr {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, tt.file, parseErr.Source)
				return
			}
			require.NoError(t, err)
			assert.Len(t, table.Rows, len(fx.Rows))
		})
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"), LoadOptions{})

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseWorkbook_MissingColumns(t *testing.T) {
	data := testutil.KeywordSheet().WithoutColumn("Volume").WithoutColumn("Subtitle").WorkbookBytes(t)

	_, err := ParseWorkbook(bytes.NewReader(data), LoadOptions{})

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"Subtitle", "Volume"}, schemaErr.Missing)
}

func TestParseWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ParseWorkbook(strings.NewReader("definitely not a zip"), LoadOptions{})

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseWorkbook_NamedSheet(t *testing.T) {
	fx := testutil.KeywordSheet()
	fx.Sheet = "Rankings"
	data := fx.WorkbookBytes(t)

	table, err := ParseWorkbook(bytes.NewReader(data), LoadOptions{Sheet: "Rankings"})
	require.NoError(t, err)
	assert.Len(t, table.Rows, len(fx.Rows))

	_, err = ParseWorkbook(bytes.NewReader(data), LoadOptions{Sheet: "Nope"})
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseCSV(t *testing.T) {
	input := "\ufeff Keyword ,App Name,Subtitle,Volume,Rank Status\n" +
		"pdf scanner,Scan It,,\"1,200\",ranked\n" +
		",,,,\n" +
		"invoice,Bill Pro,Invoices,n/a\n"

	table, err := ParseCSV(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, RequiredColumns(), table.Columns)
	require.Len(t, table.Rows, 2, "blank rows are skipped")

	assert.Equal(t, 1200.0, table.Rows[0].Volume)
	assert.True(t, table.Rows[0].HasVolume)
	assert.Equal(t, "", table.Rows[0].Subtitle)

	assert.False(t, table.Rows[1].HasVolume, "non numeric volume")
	assert.Equal(t, "", table.Rows[1].RankStatus, "short rows are padded")
}

func TestParseCSV_ReadsDerivedColumns(t *testing.T) {
	input := "Keyword,App Name,Subtitle,Volume,Rank Status," + strings.Join(domain.DerivedColumns, ",") + "\n" +
		"pdf,A,B,3,ranked,2,missing: pdf,all missing,1\n" +
		"scan,A,B,3,ranked,,,,0\n"

	table, err := ParseCSV(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, intPtr(2), table.Rows[0].Occurrence)
	assert.Equal(t, strPtr("missing: pdf"), table.Rows[0].MissingFromTitleSubtitle)
	assert.Equal(t, strPtr(domain.AllMissing), table.Rows[0].MissingFromInput)
	assert.Equal(t, 1, table.Rows[0].TextInKeyword)

	assert.Nil(t, table.Rows[1].Occurrence)
	assert.Nil(t, table.Rows[1].MissingFromTitleSubtitle)
	assert.Nil(t, table.Rows[1].MissingFromInput)
	assert.NotContains(t, table.Rows[0].Cells, domain.ColumnOccurrence)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), LoadOptions{})

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, RequiredColumns(), schemaErr.Missing)
}
