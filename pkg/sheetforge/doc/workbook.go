package doc

import (
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
	"github.com/tiendc/go-deepcopy"
)

// NamedRange binds a workbook-unique identifier to a range on one sheet.
type NamedRange struct {
	Name  string
	Sheet string
	Range ref.Range
}

// Workbook is the top-level document: an ordered sequence of sheets (the
// first is default-active), an active-sheet pointer, and a named-range table.
// Every sheet reachable from a workbook is owned exclusively by it.
type Workbook struct {
	defaults style.Defaults
	sheets   []*Sheet
	active   int
	names    map[string]NamedRange
	// nameOrder preserves definition order for the snapshot.
	nameOrder []string
}

// New creates an empty workbook carrying the given style defaults.
func New(defaults style.Defaults) *Workbook {
	return &Workbook{
		defaults: defaults,
		names:    make(map[string]NamedRange),
	}
}

// StyleDefaults returns the defaults the workbook was constructed with.
func (w *Workbook) StyleDefaults() style.Defaults { return w.defaults }

// Sheets returns the workbook's sheets in order.
func (w *Workbook) Sheets() []*Sheet {
	out := make([]*Sheet, len(w.sheets))
	copy(out, w.sheets)
	return out
}

func (w *Workbook) hasSheet(title string) bool {
	for _, s := range w.sheets {
		if s.title == title {
			return true
		}
	}
	return false
}

// SheetByTitle returns the sheet with the given title.
func (w *Workbook) SheetByTitle(title string) (*Sheet, error) {
	for _, s := range w.sheets {
		if s.title == title {
			return s, nil
		}
	}
	return nil, &SheetNotFoundError{Title: title}
}

// AddSheet appends a new empty sheet. The first sheet added becomes active
// regardless of activate; otherwise the new sheet becomes active only when
// activate is true.
func (w *Workbook) AddSheet(title string, activate bool) (*Sheet, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if w.hasSheet(title) {
		return nil, &DuplicateTitleError{Title: title}
	}
	s := newSheet(w, title)
	w.sheets = append(w.sheets, s)
	if activate || len(w.sheets) == 1 {
		w.active = len(w.sheets) - 1
	}
	return s, nil
}

// ActiveSheet returns the currently active sheet, or nil for an empty workbook.
func (w *Workbook) ActiveSheet() *Sheet {
	if len(w.sheets) == 0 {
		return nil
	}
	return w.sheets[w.active]
}

// ActiveIndex returns the position of the active sheet in the sheet order.
func (w *Workbook) ActiveIndex() int { return w.active }

// SetActiveSheet makes the named sheet active.
func (w *Workbook) SetActiveSheet(title string) error {
	for i, s := range w.sheets {
		if s.title == title {
			w.active = i
			return nil
		}
	}
	return &SheetNotFoundError{Title: title}
}

// RenameActiveSheet retitles the active sheet, subject to the usual title
// validation and uniqueness rules.
func (w *Workbook) RenameActiveSheet(title string) error {
	s := w.ActiveSheet()
	if s == nil {
		return &SheetNotFoundError{Title: title}
	}
	return s.SetTitle(title)
}

// CopySheet deep-copies the named sheet's cells, styles and layout (column
// widths, freeze anchor, merges, page setup) into a new sheet appended to the
// order. Rules, charts and pivot tables are attachments of the source and are
// not copied.
func (w *Workbook) CopySheet(sourceTitle, newTitle string) (*Sheet, error) {
	src, err := w.SheetByTitle(sourceTitle)
	if err != nil {
		return nil, err
	}
	dst, err := w.AddSheet(newTitle, false)
	if err != nil {
		return nil, err
	}

	for key, cell := range src.cells {
		dst.cells[key] = &Cell{Value: cell.Value, Style: cell.Style.Clone()}
	}
	dst.maxRow = src.maxRow
	dst.maxCol = src.maxCol

	if err := deepcopy.Copy(&dst.colWidths, src.colWidths); err != nil {
		return nil, err
	}
	if err := deepcopy.Copy(&dst.merges, src.merges); err != nil {
		return nil, err
	}
	if src.freeze != nil {
		anchor := *src.freeze
		dst.freeze = &anchor
	}
	dst.protection = src.protection
	dst.pageSetup = src.pageSetup
	return dst, nil
}

// DefineNamedRange binds name to a range on the named sheet. Redefining an
// existing name replaces its binding.
func (w *Workbook) DefineNamedRange(name, sheetTitle string, r ref.Range) error {
	if _, err := w.SheetByTitle(sheetTitle); err != nil {
		return err
	}
	if _, exists := w.names[name]; !exists {
		w.nameOrder = append(w.nameOrder, name)
	}
	w.names[name] = NamedRange{Name: name, Sheet: sheetTitle, Range: r}
	return nil
}

// NamedRangeByName resolves a named range.
func (w *Workbook) NamedRangeByName(name string) (NamedRange, bool) {
	nr, ok := w.names[name]
	return nr, ok
}

// NamedRanges returns all named ranges in definition order.
func (w *Workbook) NamedRanges() []NamedRange {
	out := make([]NamedRange, 0, len(w.nameOrder))
	for _, name := range w.nameOrder {
		out = append(out, w.names[name])
	}
	return out
}
