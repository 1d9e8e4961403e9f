// Package sheet holds the in-memory grid edits applied to the shared spreadsheet.
// The grid is the 2D value range returned by the Sheets API: row 0 is the header
// and column 0 is the repository identifier.
package sheet

import (
	"fmt"
)

// LatestHeader is the header of the column that mirrors the most recent snapshot.
const LatestHeader = "Latest"

// DateLayout is the layout used for dated column headers (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// Grid is a spreadsheet value range.
type Grid [][]interface{}

// CellString renders a cell value as the text the spreadsheet would display.
func CellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// FindColumn returns the index of the first header cell equal to name.
func FindColumn(header []interface{}, name string) (int, bool) {
	for i, cell := range header {
		if CellString(cell) == name {
			return i, true
		}
	}
	return -1, false
}

// FirstEmptyColumn returns the index of the first empty header cell scanning left to
// right, or len(header) when every cell is filled.
func FirstEmptyColumn(header []interface{}) int {
	for i, cell := range header {
		if CellString(cell) == "" {
			return i
		}
	}
	return len(header)
}

// ColumnLetter converts a 0-based column index to its spreadsheet letters
// (0 -> A, 25 -> Z, 26 -> AA).
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}
	var letters []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		letters = append([]byte{byte('A' + (n-1)%26)}, letters...)
	}
	return string(letters)
}

// DeltaFormula builds the formula subtracting column col-1 from column col of the
// given tab on 1-based sheet row.
func DeltaFormula(tab string, col, row int) string {
	return fmt.Sprintf("=%s!%s%d - %s!%s%d", tab, ColumnLetter(col), row, tab, ColumnLetter(col-1), row)
}

// pad widens row with empty strings until index is addressable.
func pad(row []interface{}, index int) []interface{} {
	for len(row) <= index {
		row = append(row, "")
	}
	return row
}

// header returns the header row and the index of its Latest column.
func (g Grid) header(tab string) ([]interface{}, int, error) {
	if len(g) == 0 {
		return nil, 0, fmt.Errorf("%s tab is empty: header row not found", tab)
	}
	latest, ok := FindColumn(g[0], LatestHeader)
	if !ok {
		return nil, 0, fmt.Errorf("%s tab has no %q header column", tab, LatestHeader)
	}
	return g[0], latest, nil
}

// AppendRawColumn adds a dated column to a Raw grid and writes the pull count of every
// known repository into it and into the Latest column. Rows whose identifier is not in
// counts are left untouched. It returns the index of the new column.
func (g Grid) AppendRawColumn(tab, date string, counts map[string]int) (int, error) {
	header, latest, err := g.header(tab)
	if err != nil {
		return 0, err
	}
	col := FirstEmptyColumn(header)
	header = pad(header, col)
	header[col] = date
	g[0] = header

	width := max(latest, col)
	for i := 1; i < len(g); i++ {
		row := g[i]
		if len(row) == 0 {
			continue
		}
		count, ok := counts[CellString(row[0])]
		if !ok {
			continue
		}
		row = pad(row, width)
		row[latest] = count
		row[col] = count
		g[i] = row
	}
	return col, nil
}

// AppendDeltaColumn adds a dated column to a Pre-processed grid whose cells compute the
// difference between column rawCol and the column before it on rawTab. The formula text
// is copied into Latest as well. It returns the index of the new column.
func (g Grid) AppendDeltaColumn(tab, rawTab, date string, rawCol int) (int, error) {
	if rawCol < 1 {
		return 0, fmt.Errorf("%s column %d has no previous column to compare against", rawTab, rawCol)
	}
	header, latest, err := g.header(tab)
	if err != nil {
		return 0, err
	}
	col := FirstEmptyColumn(header)
	header = pad(header, col)
	header[col] = date
	g[0] = header

	width := max(latest, col)
	for i := 1; i < len(g); i++ {
		formula := DeltaFormula(rawTab, rawCol, i+1)
		row := pad(g[i], width)
		row[col] = formula
		row[latest] = formula
		g[i] = row
	}
	return col, nil
}
