package doc

import "github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"

// PivotID identifies a pivot table within its sheet.
type PivotID int

// PivotTable is an aggregation view over a source range: rows grouped by
// RowFields, columns by ColFields, and ValueFields summarized by sum.
type PivotTable struct {
	ID     PivotID
	Source ref.Range
	// RowFields, ColFields and ValueFields name columns of the source
	// range's header row (its first row).
	RowFields   []string
	ColFields   []string
	ValueFields []string
	// Anchor is the top-left placement cell of the rendered table.
	Anchor ref.Cell
}

// AddPivotTable registers a pivot table over source. Every field name must
// appear as a text cell in the source's header row (UnknownFieldError names
// the first that does not), and valueFields must be non-empty
// (EmptyAggregationError). Row and column field lists may be empty.
func (s *Sheet) AddPivotTable(source ref.Range, rowFields, colFields, valueFields []string, anchor ref.Cell) (PivotID, error) {
	if len(valueFields) == 0 {
		return 0, &EmptyAggregationError{}
	}
	headers := make(map[string]bool, source.Width())
	for col := source.MinCol; col <= source.MaxCol; col++ {
		if v := s.CellAt(source.MinRow, col).Value; !v.IsEmpty() {
			headers[v.Display()] = true
		}
	}
	for _, group := range [][]string{rowFields, colFields, valueFields} {
		for _, field := range group {
			if !headers[field] {
				return 0, &UnknownFieldError{Field: field}
			}
		}
	}
	id := PivotID(len(s.pivots) + 1)
	s.pivots = append(s.pivots, PivotTable{
		ID:          id,
		Source:      source,
		RowFields:   copyStrings(rowFields),
		ColFields:   copyStrings(colFields),
		ValueFields: copyStrings(valueFields),
		Anchor:      anchor,
	})
	return id, nil
}

// PivotTables returns the registered pivot tables in registration order.
func (s *Sheet) PivotTables() []PivotTable {
	out := make([]PivotTable, len(s.pivots))
	copy(out, s.pivots)
	return out
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
