// Package ref resolves textual cell and range addresses into 1-based coordinates.
package ref

import (
	"fmt"
	"strings"
)

// MalformedRangeError indicates a cell or range address that does not match
// the address grammar, or has an invalid row or column component.
type MalformedRangeError struct {
	Text   string
	Reason string
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("malformed range %q: %s", e.Text, e.Reason)
}

// Cell is a single cell coordinate. Row and Col are 1-based; zero is invalid.
type Cell struct {
	Row int
	Col int
}

// String renders the cell in A1 notation.
func (c Cell) String() string {
	return ColumnName(c.Col) + fmt.Sprintf("%d", c.Row)
}

// Range is a resolved rectangular region with inclusive, 1-based bounds.
// MinRow <= MaxRow and MinCol <= MaxCol always hold for ranges produced by
// this package; a single cell is the degenerate case min == max.
type Range struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// String renders the range in A1:B2 notation, collapsing single cells to A1.
func (r Range) String() string {
	min := Cell{Row: r.MinRow, Col: r.MinCol}
	if r.Single() {
		return min.String()
	}
	max := Cell{Row: r.MaxRow, Col: r.MaxCol}
	return min.String() + ":" + max.String()
}

// Single reports whether the range covers exactly one cell.
func (r Range) Single() bool {
	return r.MinRow == r.MaxRow && r.MinCol == r.MaxCol
}

// Width returns the number of columns spanned.
func (r Range) Width() int {
	return r.MaxCol - r.MinCol + 1
}

// Height returns the number of rows spanned.
func (r Range) Height() int {
	return r.MaxRow - r.MinRow + 1
}

// Contains reports whether the 1-based coordinate lies within the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// Of builds a normalized Range from two corner cells given in any order.
func Of(a, b Cell) Range {
	r := Range{MinRow: a.Row, MinCol: a.Col, MaxRow: b.Row, MaxCol: b.Col}
	if r.MinRow > r.MaxRow {
		r.MinRow, r.MaxRow = r.MaxRow, r.MinRow
	}
	if r.MinCol > r.MaxCol {
		r.MinCol, r.MaxCol = r.MaxCol, r.MinCol
	}
	return r
}

// ParseCell parses a single-cell address like "A1" or "AB12".
func ParseCell(text string) (Cell, error) {
	c, err := parseCellPart(text, text)
	if err != nil {
		return Cell{}, err
	}
	return c, nil
}

// ParseRange parses "A1" or "A1:C10" into a normalized Range. Corners given
// out of order ("C10:A1") are normalized rather than rejected.
func ParseRange(text string) (Range, error) {
	if text == "" {
		return Range{}, &MalformedRangeError{Text: text, Reason: "empty address"}
	}
	first, rest, found := strings.Cut(text, ":")
	a, err := parseCellPart(first, text)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return Of(a, a), nil
	}
	b, err := parseCellPart(rest, text)
	if err != nil {
		return Range{}, err
	}
	return Of(a, b), nil
}

// parseCellPart parses one corner of an address. full is the original text,
// kept for error messages.
func parseCellPart(part, full string) (Cell, error) {
	if part == "" {
		return Cell{}, &MalformedRangeError{Text: full, Reason: "missing cell address"}
	}
	i := 0
	for i < len(part) && part[i] >= 'A' && part[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return Cell{}, &MalformedRangeError{Text: full, Reason: fmt.Sprintf("missing column letters in %q", part)}
	}
	if i == len(part) {
		return Cell{}, &MalformedRangeError{Text: full, Reason: fmt.Sprintf("missing row number in %q", part)}
	}
	row := 0
	for _, ch := range part[i:] {
		if ch < '0' || ch > '9' {
			return Cell{}, &MalformedRangeError{Text: full, Reason: fmt.Sprintf("invalid row digits in %q", part)}
		}
		row = row*10 + int(ch-'0')
	}
	if row < 1 {
		return Cell{}, &MalformedRangeError{Text: full, Reason: "row numbers start at 1"}
	}
	col, err := ColumnNumber(part[:i])
	if err != nil {
		return Cell{}, &MalformedRangeError{Text: full, Reason: err.Error()}
	}
	return Cell{Row: row, Col: col}, nil
}

// ColumnName converts a 1-based column number to its letter name.
// 1 -> "A", 26 -> "Z", 27 -> "AA".
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

// ColumnNumber converts a column letter name to its 1-based number.
// "A" -> 1, "Z" -> 26, "AA" -> 27.
func ColumnNumber(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column letter %q", string(ch))
		}
		col = col*26 + int(ch-'A'+1)
	}
	return col, nil
}
