package doc

import (
	"unicode/utf8"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

// MaxTitleLength is the sheet title length cap of the persisted layout.
const MaxTitleLength = 31

type coord struct {
	Row int
	Col int
}

// Cell is a written cell: a value plus its assigned style.
type Cell struct {
	Value Value
	Style style.Style
}

// Row is a view of one grid row within a queried range.
type Row struct {
	// Index is the 1-based row number.
	Index int
	// Cells holds one entry per column of the queried range, in column
	// order; unwritten cells appear as empty values.
	Cells []Cell
}

// PageSetup carries print layout settings for a sheet.
type PageSetup struct {
	// Orientation is "portrait" or "landscape"; empty means format default.
	Orientation string
	// FitToPage scales the sheet to one page when printing.
	FitToPage bool
}

// Sheet is a single sparse grid of cells plus everything attached to it:
// column widths, freeze anchor, merges, protection, formatting rules,
// validations, charts and pivot tables. Sheets are created through a
// Workbook and owned exclusively by it.
type Sheet struct {
	book  *Workbook
	title string

	cells  map[coord]*Cell
	maxRow int
	maxCol int

	colWidths  map[int]float64
	freeze     *ref.Cell
	merges     []ref.Range
	protection string
	pageSetup  PageSetup

	colorScales  []ColorScaleRule
	formulaRules []FormulaRule
	validations  []ValidationRule
	charts       []Chart
	pivots       []PivotTable
}

func newSheet(book *Workbook, title string) *Sheet {
	return &Sheet{
		book:      book,
		title:     title,
		cells:     make(map[coord]*Cell),
		colWidths: make(map[int]float64),
	}
}

// Title returns the sheet title.
func (s *Sheet) Title() string { return s.title }

// SetTitle renames the sheet. The title must be non-empty, at most 31
// characters, and unique within the owning workbook; violations fail rather
// than silently truncating.
func (s *Sheet) SetTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if title == s.title {
		return nil
	}
	if s.book != nil && s.book.hasSheet(title) {
		return &DuplicateTitleError{Title: title}
	}
	s.title = title
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return &InvalidTitleError{Title: title, Reason: "title must not be empty"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &InvalidTitleError{Title: title, Reason: "title exceeds 31 characters"}
	}
	return nil
}

// MaxRow returns the highest row ever written, or 0 for an empty sheet.
func (s *Sheet) MaxRow() int { return s.maxRow }

// MaxCol returns the highest column ever written, or 0 for an empty sheet.
func (s *Sheet) MaxCol() int { return s.maxCol }

// SetCell writes a value at the 1-based coordinate, creating the cell on
// first write and extending the tracked extent. A nil styleOverride keeps the
// cell's existing style; a non-nil one is cloned before assignment so later
// mutation of the argument never reaches the cell.
func (s *Sheet) SetCell(row, col int, v Value, styleOverride *style.Style) error {
	if row < 1 || col < 1 {
		return &CoordinateError{Row: row, Col: col}
	}
	key := coord{Row: row, Col: col}
	cell, ok := s.cells[key]
	if !ok {
		cell = &Cell{}
		s.cells[key] = cell
	}
	cell.Value = v
	if styleOverride != nil {
		cell.Style = styleOverride.Clone()
	}
	if row > s.maxRow {
		s.maxRow = row
	}
	if col > s.maxCol {
		s.maxCol = col
	}
	return nil
}

// SetCellStyle assigns a style without touching the cell value, creating the
// cell if needed. The style is cloned on apply.
func (s *Sheet) SetCellStyle(row, col int, st style.Style) error {
	if row < 1 || col < 1 {
		return &CoordinateError{Row: row, Col: col}
	}
	key := coord{Row: row, Col: col}
	cell, ok := s.cells[key]
	if !ok {
		cell = &Cell{}
		s.cells[key] = cell
		if row > s.maxRow {
			s.maxRow = row
		}
		if col > s.maxCol {
			s.maxCol = col
		}
	}
	cell.Style = st.Clone()
	return nil
}

// CellAt reads the cell at the 1-based coordinate. Unwritten cells read as
// an empty value with a zero style; reading never creates cells.
func (s *Sheet) CellAt(row, col int) Cell {
	if cell, ok := s.cells[coord{Row: row, Col: col}]; ok {
		return Cell{Value: cell.Value, Style: cell.Style.Clone()}
	}
	return Cell{}
}

// SetRow writes values into consecutive columns of the given row starting at
// column 1. A nil rowStyle leaves cell styles untouched.
func (s *Sheet) SetRow(row int, values []Value, rowStyle *style.Style) error {
	for i, v := range values {
		if err := s.SetCell(row, i+1, v, rowStyle); err != nil {
			return err
		}
	}
	return nil
}

// AppendRow writes values into the row after the current extent. It relies
// solely on the tracked extent, so it stays cheap during streaming imports.
func (s *Sheet) AppendRow(values []Value, rowStyle *style.Style) error {
	return s.SetRow(s.maxRow+1, values, rowStyle)
}

// RowsInRange returns one Row view per row of the range, each holding the
// range's columns in order. Unwritten cells appear as empty values.
func (s *Sheet) RowsInRange(r ref.Range) []Row {
	rows := make([]Row, 0, r.Height())
	for rowNum := r.MinRow; rowNum <= r.MaxRow; rowNum++ {
		row := Row{Index: rowNum, Cells: make([]Cell, 0, r.Width())}
		for colNum := r.MinCol; colNum <= r.MaxCol; colNum++ {
			row.Cells = append(row.Cells, s.CellAt(rowNum, colNum))
		}
		rows = append(rows, row)
	}
	return rows
}

// Renumber overwrites the given column for every row from startRow through
// the current extent with a 1-based sequence relative to startRow. It reads
// the extent at call time, so rows appended afterwards are only numbered by a
// later call.
func (s *Sheet) Renumber(startRow, col int) error {
	if startRow < 1 || col < 1 {
		return &CoordinateError{Row: startRow, Col: col}
	}
	for row := startRow; row <= s.maxRow; row++ {
		if err := s.SetCell(row, col, Number(float64(row-startRow+1)), nil); err != nil {
			return err
		}
	}
	return nil
}

// AutoSizeColumns sets every occupied column's width to the length of its
// longest displayed value plus two. Cells whose value has no measurable text
// (empty, formulas) are skipped rather than aborting the pass.
func (s *Sheet) AutoSizeColumns() {
	longest := make(map[int]int)
	for key, cell := range s.cells {
		n := utf8.RuneCountInString(cell.Value.Display())
		if n > longest[key.Col] {
			longest[key.Col] = n
		}
	}
	for col, n := range longest {
		if n == 0 {
			continue
		}
		s.colWidths[col] = float64(n + 2)
	}
}

// SetColumnWidths assigns explicit widths positionally, zipped with columns
// starting at 1. Non-positive entries are skipped.
func (s *Sheet) SetColumnWidths(widths []float64) {
	for i, w := range widths {
		if w <= 0 {
			continue
		}
		s.colWidths[i+1] = w
	}
}

// ColumnWidth returns the width set for a column, or 0 when unset.
func (s *Sheet) ColumnWidth(col int) float64 { return s.colWidths[col] }

// ApplyZebraStriping fills rows startRow..endRow with alternating solid
// background colors, strictly by row-number parity: odd rows get oddColor,
// even rows get evenColor, regardless of content. The fill is layered over
// each cell's existing style across columns 1..MaxCol.
func (s *Sheet) ApplyZebraStriping(startRow, endRow int, oddColor, evenColor string) error {
	if startRow < 1 {
		return &CoordinateError{Row: startRow, Col: 1}
	}
	for row := startRow; row <= endRow; row++ {
		color := evenColor
		if row%2 != 0 {
			color = oddColor
		}
		fill := style.Style{Fill: &style.Fill{Color: color}}
		for col := 1; col <= s.maxCol; col++ {
			existing := s.CellAt(row, col).Style
			if err := s.SetCellStyle(row, col, style.Compose(existing, fill)); err != nil {
				return err
			}
		}
	}
	return nil
}

// MergeCells records a merged region. Overlap with existing merges is the
// serializer's concern.
func (s *Sheet) MergeCells(r ref.Range) {
	s.merges = append(s.merges, r)
}

// Merges returns the recorded merged regions in registration order.
func (s *Sheet) Merges() []ref.Range {
	out := make([]ref.Range, len(s.merges))
	copy(out, s.merges)
	return out
}

// Freeze sets the freeze-pane anchor: rows above and columns left of the
// anchor stay visible while scrolling.
func (s *Sheet) Freeze(anchor ref.Cell) {
	s.freeze = &anchor
}

// FreezeAnchor returns the freeze-pane anchor, or nil when panes are not frozen.
func (s *Sheet) FreezeAnchor() *ref.Cell {
	if s.freeze == nil {
		return nil
	}
	anchor := *s.freeze
	return &anchor
}

// Protect records a protection password for the sheet.
func (s *Sheet) Protect(password string) { s.protection = password }

// Protection returns the protection password, empty when unprotected.
func (s *Sheet) Protection() string { return s.protection }

// SetPageSetup replaces the sheet's print layout settings.
func (s *Sheet) SetPageSetup(p PageSetup) { s.pageSetup = p }

// PageSetupSettings returns the sheet's print layout settings.
func (s *Sheet) PageSetupSettings() PageSetup { return s.pageSetup }
