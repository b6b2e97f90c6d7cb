package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind tags the variant held by a Cell. Every cell is classified exactly
// once when the dataset is built; downstream engines never re-probe raw values.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindNumber
	KindText
	KindDate
)

func (k CellKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a tagged-variant spreadsheet value: number, text, date or empty.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Date   time.Time
}

// dateLayouts are tried in order when classifying string cells.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseCell classifies a raw cell value from the selected-range payload.
// JSON numbers arrive as float64, dates and text as strings, blanks as nil.
// Numeric-looking strings are coerced to numbers so CSV-sourced ranges behave
// like native spreadsheet ranges.
func ParseCell(raw interface{}) Cell {
	switch v := raw.(type) {
	case nil:
		return Cell{Kind: KindEmpty}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Cell{Kind: KindEmpty}
		}
		return Cell{Kind: KindNumber, Number: v}
	case float32:
		return ParseCell(float64(v))
	case int:
		return Cell{Kind: KindNumber, Number: float64(v)}
	case int64:
		return Cell{Kind: KindNumber, Number: float64(v)}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return Cell{Kind: KindNumber, Number: f}
		}
		return Cell{Kind: KindText, Text: v.String()}
	case bool:
		if v {
			return Cell{Kind: KindNumber, Number: 1}
		}
		return Cell{Kind: KindNumber, Number: 0}
	case time.Time:
		return Cell{Kind: KindDate, Date: v}
	case string:
		return parseStringCell(v)
	default:
		return Cell{Kind: KindEmpty}
	}
}

func parseStringCell(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Cell{Kind: KindEmpty}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Cell{Kind: KindNumber, Number: f}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return Cell{Kind: KindDate, Date: t}
		}
	}
	return Cell{Kind: KindText, Text: s}
}

// IsNumeric reports whether the cell carries a usable numeric value.
func (c Cell) IsNumeric() bool {
	return c.Kind == KindNumber
}

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// Display renders the cell for row serialization (duplicate detection) and
// diagnostics. Numbers use the shortest round-trip representation.
func (c Cell) Display() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	case KindText:
		return c.Text
	case KindDate:
		return c.Date.Format(time.RFC3339)
	default:
		return ""
	}
}
