package sheetforge

import (
	"io"
	"os"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/doc"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/source"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/xlsxio"
)

// DefaultSheetTitle is the title of the sheet a fresh builder starts with.
const DefaultSheetTitle = "Sheet1"

// Builder assembles a workbook through high-level mutation calls. All calls
// operate on the workbook's active sheet; CreateSheet with switchTo moves the
// cursor. Structural failures propagate as typed errors; the builder never
// logs and never silently drops requested structure.
type Builder struct {
	opts Options
	book *doc.Workbook
}

// New creates a builder over a fresh workbook holding one empty active sheet.
func New(opts Options) *Builder {
	book := doc.New(opts.StyleDefaults())
	// A fresh workbook always carries one sheet; the stock title cannot
	// collide or be invalid.
	if _, err := book.AddSheet(DefaultSheetTitle, true); err != nil {
		panic(err)
	}
	return &Builder{opts: opts, book: book}
}

// Load creates a builder over a workbook decoded from persisted bytes, the
// append path: subsequent mutations extend the loaded document.
func Load(data []byte, opts Options) (*Builder, error) {
	snap, err := xlsxio.Decode(data)
	if err != nil {
		return nil, err
	}
	book, err := doc.FromSnapshot(snap, opts.StyleDefaults())
	if err != nil {
		return nil, err
	}
	return &Builder{opts: opts, book: book}, nil
}

// Workbook exposes the underlying document model.
func (b *Builder) Workbook() *doc.Workbook { return b.book }

// Sheet returns the active sheet the builder currently mutates.
func (b *Builder) Sheet() *doc.Sheet { return b.book.ActiveSheet() }

// SetSheetName renames the active sheet.
func (b *Builder) SetSheetName(name string) error {
	return b.book.RenameActiveSheet(name)
}

// CreateSheet adds a new sheet, optionally switching the builder to it.
func (b *Builder) CreateSheet(name string, switchTo bool) error {
	_, err := b.book.AddSheet(name, switchTo)
	return err
}

// CopySheet duplicates a sheet's cells, styles and layout under a new title.
func (b *Builder) CopySheet(sourceTitle, newTitle string) error {
	_, err := b.book.CopySheet(sourceTitle, newTitle)
	return err
}

// AddHeaders writes the header row at startRow with the composed header
// style: the workbook's default header style layered under the per-call
// override. When the builder was configured without headers the call is a
// complete no-op, leaving the grid and its extent untouched.
func (b *Builder) AddHeaders(headers []string, startRow int, override *style.Style) error {
	if !b.opts.ShouldIncludeHeader() {
		return nil
	}
	headerStyle := b.opts.StyleDefaults().Header
	if override != nil {
		headerStyle = style.Compose(headerStyle, *override)
	}
	sheet := b.Sheet()
	for i, h := range headers {
		if err := sheet.SetCell(startRow, i+1, doc.Text(h), &headerStyle); err != nil {
			return err
		}
	}
	return nil
}

// AddRow appends a row of scalar values after the current extent.
func (b *Builder) AddRow(values []interface{}, rowStyle *style.Style) error {
	return b.Sheet().AppendRow(coerce(values), rowStyle)
}

// AddRowAt writes a row of scalar values at an explicit row number.
func (b *Builder) AddRowAt(row int, values []interface{}, rowStyle *style.Style) error {
	return b.Sheet().SetRow(row, coerce(values), rowStyle)
}

func coerce(values []interface{}) []doc.Value {
	out := make([]doc.Value, len(values))
	for i, v := range values {
		out[i] = doc.FromAny(v)
	}
	return out
}

// AutoNumberRows overwrites the given column from startRow through the
// current extent with a 1-based sequence.
func (b *Builder) AutoNumberRows(startRow, column int) error {
	return b.Sheet().Renumber(startRow, column)
}

// SetColumnWidths sizes columns either automatically from content or from an
// explicit width list, positionally zipped with columns starting at 1.
// Requesting both modes at once fails with ErrConflictingWidths; requesting
// neither fails with ErrNoWidthMode.
func (b *Builder) SetColumnWidths(autoSize bool, widths []float64) error {
	switch {
	case autoSize && len(widths) > 0:
		return ErrConflictingWidths
	case autoSize:
		b.Sheet().AutoSizeColumns()
	case len(widths) > 0:
		b.Sheet().SetColumnWidths(widths)
	default:
		return ErrNoWidthMode
	}
	return nil
}

// ApplyColorScale registers a two-stop color-scale rule over the range text.
func (b *Builder) ApplyColorScale(rangeText, minColor, maxColor string) error {
	r, err := ref.ParseRange(rangeText)
	if err != nil {
		return err
	}
	b.Sheet().AddColorScale(r, minColor, maxColor)
	return nil
}

// ApplyFormulaRule registers a conditional style over the range text, applied
// wherever the opaque formula is truthy.
func (b *Builder) ApplyFormulaRule(rangeText, formula string, st style.Style) error {
	r, err := ref.ParseRange(rangeText)
	if err != nil {
		return err
	}
	b.Sheet().AddFormulaRule(r, formula, st)
	return nil
}

// AddDataValidation registers an input constraint over the range text.
func (b *Builder) AddDataValidation(rangeText string, kind doc.ValidationKind, values []string, allowBlank bool) error {
	r, err := ref.ParseRange(rangeText)
	if err != nil {
		return err
	}
	return b.Sheet().AddValidation(r, kind, values, allowBlank)
}

// MergeCells merges the cells covered by the range text.
func (b *Builder) MergeCells(rangeText string) error {
	r, err := ref.ParseRange(rangeText)
	if err != nil {
		return err
	}
	b.Sheet().MergeCells(r)
	return nil
}

// FreezePanes freezes rows above and columns left of the anchor cell.
func (b *Builder) FreezePanes(cellText string) error {
	anchor, err := ref.ParseCell(cellText)
	if err != nil {
		return err
	}
	b.Sheet().Freeze(anchor)
	return nil
}

// ApplyZebraStriping alternates row background colors between startRow and
// endRow by row-number parity.
func (b *Builder) ApplyZebraStriping(startRow, endRow int, oddColor, evenColor string) error {
	return b.Sheet().ApplyZebraStriping(startRow, endRow, oddColor, evenColor)
}

// ChartConfig carries the optional chart settings at the builder surface,
// with the anchor as cell text.
type ChartConfig struct {
	TitlesFromData bool
	Title          string
	XAxisTitle     string
	YAxisTitle     string
	Legend         bool
	DataLabels     bool
	// Anchor is the placement cell like "E15"; empty uses the default.
	Anchor string
}

// AddChart registers a chart of the given kind over the data range text.
func (b *Builder) AddChart(kind doc.ChartKind, rangeText string, cfg ChartConfig) (doc.ChartID, error) {
	r, err := ref.ParseRange(rangeText)
	if err != nil {
		return 0, err
	}
	opts := doc.ChartOptions{
		TitlesFromData: cfg.TitlesFromData,
		Title:          cfg.Title,
		XAxisTitle:     cfg.XAxisTitle,
		YAxisTitle:     cfg.YAxisTitle,
		Legend:         cfg.Legend,
		DataLabels:     cfg.DataLabels,
	}
	if cfg.Anchor != "" {
		anchor, err := ref.ParseCell(cfg.Anchor)
		if err != nil {
			return 0, err
		}
		opts.Anchor = anchor
	}
	return b.Sheet().AddChart(kind, r, opts)
}

// AddPivotTable registers a pivot table over the source range text, anchored
// at the given cell text.
func (b *Builder) AddPivotTable(sourceRange string, rowFields, colFields, valueFields []string, anchorText string) (doc.PivotID, error) {
	src, err := ref.ParseRange(sourceRange)
	if err != nil {
		return 0, err
	}
	anchor, err := ref.ParseCell(anchorText)
	if err != nil {
		return 0, err
	}
	return b.Sheet().AddPivotTable(src, rowFields, colFields, valueFields, anchor)
}

// ProtectSheet records a protection password on the active sheet.
func (b *Builder) ProtectSheet(password string) {
	b.Sheet().Protect(password)
}

// AddHyperlink writes a hyperlink cell at the given cell text.
func (b *Builder) AddHyperlink(cellText, url, display string) error {
	c, err := ref.ParseCell(cellText)
	if err != nil {
		return err
	}
	return b.Sheet().SetCell(c.Row, c.Col, doc.Hyperlink(url, display), nil)
}

// DefineNamedRange binds a workbook-unique name to a range on the active sheet.
func (b *Builder) DefineNamedRange(name, rangeText string) error {
	r, err := ref.ParseRange(rangeText)
	if err != nil {
		return err
	}
	return b.book.DefineNamedRange(name, b.Sheet().Title(), r)
}

// ImportRows consumes rows from src and writes them at consecutive rows
// starting at startRow. The import caches nothing; a failure partway leaves
// previously written rows in place.
func (b *Builder) ImportRows(src source.RowSource, startRow int) error {
	sheet := b.Sheet()
	row := startRow
	for {
		values, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sheet.SetRow(row, values, nil); err != nil {
			return err
		}
		row++
	}
}

// Bytes encodes the workbook to xlsx bytes through the persistence adapter.
func (b *Builder) Bytes() ([]byte, error) {
	return xlsxio.EncodeBytes(b.book.Snapshot())
}

// Save encodes the workbook and writes it to path.
func (b *Builder) Save(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
