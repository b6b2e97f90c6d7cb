package dataset

import (
	"strings"

	"gridsage/internal/errors"
)

// Dataset is a normalized, immutable view over one selected spreadsheet range.
// It is built fresh per analysis request and never persisted.
type Dataset struct {
	Address     string
	Cells       [][]Cell
	RowCount    int
	ColumnCount int
}

// RangeInput is the wire-level selected-range contract (spec'd by the host
// spreadsheet integration). All four fields must be present.
type RangeInput struct {
	Address     string          `json:"address"`
	Values      [][]interface{} `json:"values"`
	RowCount    int             `json:"rowCount"`
	ColumnCount int             `json:"columnCount"`
}

// New validates a selected range and classifies every cell once.
// A missing grid fails with SELECTED_DATA_REQUIRED; ragged rows fail with
// INVALID_INPUT. No other structural failure modes exist.
func New(input *RangeInput) (*Dataset, error) {
	if input == nil || len(input.Values) == 0 {
		return nil, errors.SelectedDataRequired()
	}

	width := len(input.Values[0])
	cells := make([][]Cell, len(input.Values))
	for i, row := range input.Values {
		if len(row) != width {
			return nil, errors.InvalidInput("all rows must have the same column count")
		}
		cells[i] = make([]Cell, width)
		for j, raw := range row {
			cells[i][j] = ParseCell(raw)
		}
	}

	return &Dataset{
		Address:     input.Address,
		Cells:       cells,
		RowCount:    len(cells),
		ColumnCount: width,
	}, nil
}

// HasHeader detects (not declares) a header row: every cell in row 0 is text
// and at least one cell in row 1 is numeric.
func (d *Dataset) HasHeader() bool {
	if d.RowCount < 2 {
		return false
	}
	for _, c := range d.Cells[0] {
		if c.Kind != KindText {
			return false
		}
	}
	for _, c := range d.Cells[1] {
		if c.Kind == KindNumber {
			return true
		}
	}
	return false
}

// Header returns the textual header labels, or positional "column N" labels
// when no header row is present.
func (d *Dataset) Header() []string {
	labels := make([]string, d.ColumnCount)
	hasHeader := d.HasHeader()
	for j := 0; j < d.ColumnCount; j++ {
		if hasHeader {
			labels[j] = strings.TrimSpace(d.Cells[0][j].Text)
		}
		if labels[j] == "" {
			labels[j] = columnLabel(j)
		}
	}
	return labels
}

func columnLabel(j int) string {
	// Spreadsheet-style letters: A..Z, AA, AB, ...
	result := ""
	j++
	for j > 0 {
		j--
		result = string(rune('A'+(j%26))) + result
		j /= 26
	}
	return "column " + result
}

// DataRows returns the analyzable rows. The first row is skipped by default;
// pass skipFirst=false to analyze headerless ranges in full.
func (d *Dataset) DataRows(skipFirst bool) [][]Cell {
	if skipFirst && d.RowCount > 0 {
		return d.Cells[1:]
	}
	return d.Cells
}

// NumericColumn filters one column of the data rows to numeric cells,
// preserving row order. Row order determines floating-point accumulation
// order downstream, so it must never be reordered here.
func (d *Dataset) NumericColumn(col int, skipFirst bool) []float64 {
	rows := d.DataRows(skipFirst)
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if col < len(row) && row[col].IsNumeric() {
			values = append(values, row[col].Number)
		}
	}
	return values
}

// NumericColumns returns the indexes of columns whose first data-row cell is
// numeric. The single probe row is a known limitation carried over from the
// original design: a column blank in its first data row is not analyzed.
func (d *Dataset) NumericColumns(skipFirst bool) []int {
	rows := d.DataRows(skipFirst)
	if len(rows) == 0 {
		return nil
	}
	probe := rows[0]
	cols := make([]int, 0, len(probe))
	for j, c := range probe {
		if c.IsNumeric() {
			cols = append(cols, j)
		}
	}
	return cols
}

// RowKey serializes a full row for duplicate detection (full-row equality).
func (d *Dataset) RowKey(i int) string {
	parts := make([]string, len(d.Cells[i]))
	for j, c := range d.Cells[i] {
		parts[j] = c.Display()
	}
	return strings.Join(parts, "\x1f")
}
