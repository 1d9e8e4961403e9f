package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstEmptyColumn(t *testing.T) {
	testCases := []struct {
		name     string
		header   []interface{}
		expected int
	}{
		{name: "first of several empty cells", header: []interface{}{"Code", "Latest", "01/01/2024", "", ""}, expected: 3},
		{name: "no empty cell appends past the end", header: []interface{}{"Code", "Latest", "01/01/2024"}, expected: 3},
		{name: "nil counts as empty", header: []interface{}{"Code", nil, "Latest"}, expected: 1},
		{name: "empty header", header: []interface{}{}, expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FirstEmptyColumn(tc.header))
		})
	}
}

func TestColumnLetter(t *testing.T) {
	testCases := map[int]string{0: "A", 2: "C", 3: "D", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA", -1: ""}
	for index, expected := range testCases {
		assert.Equal(t, expected, ColumnLetter(index), "index %d", index)
	}
}

func TestDeltaFormula(t *testing.T) {
	assert.Equal(t, "=Raw!D5 - Raw!C5", DeltaFormula("Raw", 3, 5))
	assert.Equal(t, "=Raw!AA2 - Raw!Z2", DeltaFormula("Raw", 26, 2))
}

func TestGrid_AppendRawColumn(t *testing.T) {
	grid := Grid{
		{"Code", "Latest", "01/01/2024"},
		{"eos-a", "5", "5"},
		{"eos-b"},
		{"eos-unknown", "7", "7"},
		{},
	}

	col, err := grid.AppendRawColumn("Raw", "02/01/2024", map[string]int{"eos-a": 10, "eos-b": 20})
	require.NoError(t, err)

	assert.Equal(t, 3, col)
	assert.Equal(t, Grid{
		{"Code", "Latest", "01/01/2024", "02/01/2024"},
		{"eos-a", 10, "5", 10},
		{"eos-b", 20, "", 20},
		{"eos-unknown", "7", "7"},
		{},
	}, grid)
}

func TestGrid_AppendRawColumn_FillsFirstEmptyHeaderCell(t *testing.T) {
	grid := Grid{
		{"Code", "Latest", "01/01/2024", "", ""},
		{"eos-a", "5", "5"},
	}

	col, err := grid.AppendRawColumn("Raw", "02/01/2024", map[string]int{"eos-a": 8})
	require.NoError(t, err)

	assert.Equal(t, 3, col)
	assert.Equal(t, []interface{}{"Code", "Latest", "01/01/2024", "02/01/2024", ""}, grid[0])
	assert.Equal(t, []interface{}{"eos-a", 8, "5", 8}, grid[1])
}

func TestGrid_AppendRawColumn_MissingLatest(t *testing.T) {
	testCases := []struct {
		name string
		grid Grid
	}{
		{name: "no Latest header", grid: Grid{{"Code", "01/01/2024"}, {"eos-a", "1"}}},
		{name: "empty grid", grid: Grid{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.grid.AppendRawColumn("Raw", "02/01/2024", map[string]int{"eos-a": 1})
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "Raw")
		})
	}
}

func TestGrid_AppendDeltaColumn(t *testing.T) {
	grid := Grid{
		{"Code", "Latest", "01/01/2024"},
		{"eos-a", "=Raw!C2 - Raw!B2", "=Raw!C2 - Raw!B2"},
		{"eos-b"},
	}

	col, err := grid.AppendDeltaColumn("Pre-processed", "Raw", "02/01/2024", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, col)
	assert.Equal(t, Grid{
		{"Code", "Latest", "01/01/2024", "02/01/2024"},
		{"eos-a", "=Raw!D2 - Raw!C2", "=Raw!C2 - Raw!B2", "=Raw!D2 - Raw!C2"},
		{"eos-b", "=Raw!D3 - Raw!C3", "", "=Raw!D3 - Raw!C3"},
	}, grid)
}

func TestGrid_AppendDeltaColumn_Errors(t *testing.T) {
	grid := Grid{{"Code", "Latest"}}
	_, err := grid.AppendDeltaColumn("Pre-processed", "Raw", "02/01/2024", 0)
	assert.Error(t, err)

	grid = Grid{{"Code"}}
	_, err = grid.AppendDeltaColumn("Pre-processed", "Raw", "02/01/2024", 2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Pre-processed")
}
