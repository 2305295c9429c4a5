package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbafetch/pkg/logger"
)

func makeTable(t *testing.T, columns []string, rows ...[]string) *Table {
	t.Helper()
	tbl := New(columns...)
	mustAppend(t, tbl, rows...)
	return tbl
}

func TestMergeFirstSourceWinsColumns(t *testing.T) {
	a := makeTable(t, []string{"K", "X"},
		[]string{"1", "ax1"},
		[]string{"2", "ax2"},
	)
	b := makeTable(t, []string{"K", "X", "Y"},
		[]string{"2", "bx2", "by2"},
		[]string{"3", "bx3", "by3"},
	)
	sources := []Keyed{{"A", a}, {"B", b}}

	t.Run("inner", func(t *testing.T) {
		got := MergeOn(sources, "K", JoinInner, logger.NewTestLogger())
		assert.Equal(t, []string{"K", "X", "Y"}, got.Columns())
		require.Equal(t, 1, got.NumRows())
		// X comes from A, the first-declared source.
		assert.Equal(t, []string{"2", "ax2", "by2"}, got.Row(0))
	})

	t.Run("outer", func(t *testing.T) {
		got := MergeOn(sources, "K", JoinOuter, logger.NewTestLogger())
		assert.Equal(t, []string{"K", "X", "Y"}, got.Columns())
		require.Equal(t, 3, got.NumRows())
		assert.Equal(t, []string{"1", "ax1", ""}, got.Row(0))
		assert.Equal(t, []string{"2", "ax2", "by2"}, got.Row(1))
		assert.Equal(t, []string{"3", "", "by3"}, got.Row(2))
	})
}

func TestMergeInnerKeepsKeyIntersection(t *testing.T) {
	base := makeTable(t, []string{"GROUP_ID", "MIN"},
		[]string{"1", "10"},
		[]string{"2", "20"},
		[]string{"3", "30"},
	)
	advanced := makeTable(t, []string{"GROUP_ID", "OFF_RATING"},
		[]string{"2", "110"},
		[]string{"3", "115"},
		[]string{"4", "120"},
	)

	got := MergeOn([]Keyed{{"Base", base}, {"Advanced", advanced}}, "GROUP_ID", JoinInner, logger.NewTestLogger())

	require.Equal(t, 2, got.NumRows())
	assert.Equal(t, []string{"2", "3"}, got.Column("GROUP_ID"))
}

func TestMergeEmptyInput(t *testing.T) {
	got := MergeOn(nil, "K", JoinOuter, logger.NewTestLogger())
	assert.Equal(t, 0, got.NumRows())
	assert.Equal(t, 0, got.NumCols())
}

func TestMergeSkipsEmptySources(t *testing.T) {
	log := logger.NewTestLogger()
	a := makeTable(t, []string{"K", "X"}, []string{"1", "x"})

	got := MergeOn([]Keyed{{"empty", New("K", "Z")}, {"A", a}}, "K", JoinOuter, log)

	assert.Equal(t, []string{"K", "X"}, got.Columns())
	assert.Equal(t, 1, got.NumRows())
	assert.True(t, log.HasMessage("skipping empty table"))
}

func TestMergeDropsSourceWithoutKey(t *testing.T) {
	log := logger.NewTestLogger()
	a := makeTable(t, []string{"K", "X"}, []string{"1", "x"})
	noKey := makeTable(t, []string{"OTHER", "Y"}, []string{"1", "y"})

	got := MergeOn([]Keyed{{"A", a}, {"NoKey", noKey}}, "K", JoinOuter, log)

	assert.Equal(t, []string{"K", "X"}, got.Columns())
	assert.Equal(t, 1, got.NumRows())
	assert.True(t, log.HasMessage("skipping table without merge key"))
}

func TestMergeAllSourcesUnusable(t *testing.T) {
	noKey := makeTable(t, []string{"OTHER"}, []string{"1"})
	got := MergeOn([]Keyed{{"NoKey", noKey}, {"Nil", nil}}, "K", JoinInner, logger.NewTestLogger())
	assert.Equal(t, 0, got.NumRows())
	assert.Equal(t, 0, got.NumCols())
}

func TestMergeThreeSources(t *testing.T) {
	a := makeTable(t, []string{"K", "A1"}, []string{"1", "a"}, []string{"2", "a"})
	b := makeTable(t, []string{"K", "B1"}, []string{"1", "b"}, []string{"2", "b"})
	c := makeTable(t, []string{"K", "A1", "C1"}, []string{"1", "zzz", "c"}, []string{"2", "zzz", "c"})

	got := MergeOn([]Keyed{{"A", a}, {"B", b}, {"C", c}}, "K", JoinInner, logger.NewTestLogger())

	assert.Equal(t, []string{"K", "A1", "B1", "C1"}, got.Columns())
	require.Equal(t, 2, got.NumRows())
	assert.Equal(t, "a", got.Cell(0, "A1"), "A1 must come from the first source")
	assert.Equal(t, "c", got.Cell(0, "C1"))
}

// Merged row count never exceeds the minimum input size for inner joins.
func TestMergeInnerRowBound(t *testing.T) {
	small := makeTable(t, []string{"K", "S"}, []string{"1", "s"})
	big := makeTable(t, []string{"K", "B"},
		[]string{"1", "b"}, []string{"2", "b"}, []string{"3", "b"},
	)

	got := MergeOn([]Keyed{{"big", big}, {"small", small}}, "K", JoinInner, logger.NewTestLogger())
	assert.LessOrEqual(t, got.NumRows(), small.NumRows())
}
