package dataprocessing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"kwlens/pkg/contracts/domain"
)

func TestSortRows(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.KeywordRow
		want []string
	}{
		{
			name: "volume descending then keyword ascending",
			rows: []domain.KeywordRow{
				kwRow("b", "", "", 10, "ranked"),
				kwRow("a", "", "", 10, "ranked"),
				kwRow("c", "", "", 90, "ranked"),
			},
			want: []string{"c", "a", "b"},
		},
		{
			name: "keyword order is case sensitive",
			rows: []domain.KeywordRow{
				kwRow("apple", "", "", 5, ""),
				kwRow("Zebra", "", "", 5, ""),
			},
			want: []string{"Zebra", "apple"},
		},
		{
			name: "rows without volume go last",
			rows: []domain.KeywordRow{
				noVolume(kwRow("a", "", "", 0, "")),
				kwRow("z", "", "", 1, ""),
				noVolume(kwRow("b", "", "", 0, "")),
			},
			want: []string{"z", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortRows(keywordTable(tt.rows...))
			assert.Equal(t, tt.want, keywords(got.Rows))
		})
	}
}

func TestSortRows_StableOnFullTies(t *testing.T) {
	first := kwRow("dup", "First App", "", 7, "ranked")
	second := kwRow("dup", "Second App", "", 7, "unranked")

	got := SortRows(keywordTable(first, second))

	assert.Equal(t, "First App", got.Rows[0].AppName)
	assert.Equal(t, "Second App", got.Rows[1].AppName)
}

func TestSortRows_Idempotent(t *testing.T) {
	table := keywordTable(
		kwRow("photo", "", "", 30, "ranked"),
		noVolume(kwRow("edit", "", "", 0, "ranked")),
		kwRow("collage", "", "", 30, "unranked"),
		kwRow("photo", "x", "", 30, "unranked"),
		kwRow("video", "", "", 80, "ranked"),
	)

	once := SortRows(table)
	twice := SortRows(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("sorting a sorted table changed it (-once +twice):\n%s", diff)
	}
}

func TestSortRows_DoesNotModifyInput(t *testing.T) {
	table := keywordTable(kwRow("b", "", "", 1, ""), kwRow("a", "", "", 2, ""))

	SortRows(table)

	assert.Equal(t, []string{"b", "a"}, keywords(table.Rows))
}

func TestPartitionRanked(t *testing.T) {
	table := keywordTable(
		kwRow("a", "", "", 1, "ranked"),
		kwRow("b", "", "", 1, "Ranked"),
		kwRow("c", "", "", 1, " ranked"),
		kwRow("d", "", "", 1, ""),
		kwRow("e", "", "", 1, "ranked"),
	)

	ranked, unranked := PartitionRanked(table)

	assert.Equal(t, []string{"a", "e"}, keywords(ranked))
	assert.Equal(t, []string{"b", "c", "d"}, keywords(unranked))
}
