package doc

import (
	"sort"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

// CellSnapshot is one written cell in a snapshot.
type CellSnapshot struct {
	Row   int
	Col   int
	Value Value
	Style style.Style
}

// SheetSnapshot is the flat, format-agnostic capture of one sheet.
type SheetSnapshot struct {
	Title        string
	Cells        []CellSnapshot
	ColumnWidths map[int]float64
	Freeze       *ref.Cell
	Merges       []ref.Range
	Protection   string
	PageSetup    PageSetup
	ColorScales  []ColorScaleRule
	FormulaRules []FormulaRule
	Validations  []ValidationRule
	Charts       []Chart
	Pivots       []PivotTable
}

// Snapshot is the serializable form of a workbook: the sole boundary the
// model exposes toward persistence. It carries everything the document
// model holds and nothing about any container format.
type Snapshot struct {
	Sheets      []SheetSnapshot
	ActiveSheet int
	NamedRanges []NamedRange
}

// Snapshot captures the workbook as a Snapshot. Cells are emitted in
// row-major order so equal workbooks yield equal snapshots.
func (w *Workbook) Snapshot() *Snapshot {
	snap := &Snapshot{
		ActiveSheet: w.active,
		NamedRanges: w.NamedRanges(),
	}
	for _, s := range w.sheets {
		snap.Sheets = append(snap.Sheets, s.snapshot())
	}
	return snap
}

func (s *Sheet) snapshot() SheetSnapshot {
	cells := make([]CellSnapshot, 0, len(s.cells))
	for key, cell := range s.cells {
		cells = append(cells, CellSnapshot{
			Row:   key.Row,
			Col:   key.Col,
			Value: cell.Value,
			Style: cell.Style.Clone(),
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})

	widths := make(map[int]float64, len(s.colWidths))
	for col, w := range s.colWidths {
		widths[col] = w
	}

	return SheetSnapshot{
		Title:        s.title,
		Cells:        cells,
		ColumnWidths: widths,
		Freeze:       s.FreezeAnchor(),
		Merges:       s.Merges(),
		Protection:   s.protection,
		PageSetup:    s.pageSetup,
		ColorScales:  s.ColorScales(),
		FormulaRules: s.FormulaRules(),
		Validations:  s.Validations(),
		Charts:       s.Charts(),
		Pivots:       s.PivotTables(),
	}
}

// FromSnapshot hydrates a workbook from a snapshot, e.g. one decoded from
// persisted bytes. Structural failures in the snapshot (duplicate titles,
// invalid coordinates) propagate.
func FromSnapshot(snap *Snapshot, defaults style.Defaults) (*Workbook, error) {
	w := New(defaults)
	for _, ss := range snap.Sheets {
		sheet, err := w.AddSheet(ss.Title, false)
		if err != nil {
			return nil, err
		}
		for _, c := range ss.Cells {
			if err := sheet.SetCell(c.Row, c.Col, c.Value, nil); err != nil {
				return nil, err
			}
			if !c.Style.IsZero() {
				if err := sheet.SetCellStyle(c.Row, c.Col, c.Style); err != nil {
					return nil, err
				}
			}
		}
		for col, width := range ss.ColumnWidths {
			sheet.colWidths[col] = width
		}
		if ss.Freeze != nil {
			sheet.Freeze(*ss.Freeze)
		}
		for _, m := range ss.Merges {
			sheet.MergeCells(m)
		}
		sheet.protection = ss.Protection
		sheet.pageSetup = ss.PageSetup
		sheet.colorScales = append(sheet.colorScales, ss.ColorScales...)
		sheet.formulaRules = append(sheet.formulaRules, ss.FormulaRules...)
		sheet.validations = append(sheet.validations, ss.Validations...)
		sheet.charts = append(sheet.charts, ss.Charts...)
		sheet.pivots = append(sheet.pivots, ss.Pivots...)
	}
	if snap.ActiveSheet >= 0 && snap.ActiveSheet < len(w.sheets) {
		w.active = snap.ActiveSheet
	}
	for _, nr := range snap.NamedRanges {
		if err := w.DefineNamedRange(nr.Name, nr.Sheet, nr.Range); err != nil {
			return nil, err
		}
	}
	return w, nil
}
