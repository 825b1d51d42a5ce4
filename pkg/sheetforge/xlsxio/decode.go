package xlsxio

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/doc"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

// defaultColWidth is what excelize reports for columns with no explicit width.
const defaultColWidth = 9.140625

// Decode reads xlsx bytes back into a document snapshot: sheet titles, cell
// values, styles, column widths, merges, freeze anchors, named ranges and
// the active sheet. Rules, charts, pivot tables and protection passwords are
// write-only through this boundary; reading them back is extraction work the
// document model does not take on.
func Decode(data []byte) (*doc.Snapshot, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snap := &doc.Snapshot{ActiveSheet: f.GetActiveSheetIndex()}
	for _, title := range f.GetSheetList() {
		ss, err := decodeSheet(f, title)
		if err != nil {
			return nil, err
		}
		snap.Sheets = append(snap.Sheets, ss)
	}

	for _, dn := range f.GetDefinedName() {
		sheet, rng, ok := parseRefersTo(dn.RefersTo)
		if !ok {
			continue
		}
		snap.NamedRanges = append(snap.NamedRanges, doc.NamedRange{
			Name:  dn.Name,
			Sheet: sheet,
			Range: rng,
		})
	}
	return snap, nil
}

func decodeSheet(f *excelize.File, title string) (doc.SheetSnapshot, error) {
	ss := doc.SheetSnapshot{Title: title, ColumnWidths: make(map[int]float64)}

	rows, err := f.GetRows(title)
	if err != nil {
		return ss, err
	}
	maxCol := 0
	for rowIdx, row := range rows {
		for colIdx, raw := range row {
			rowNum, colNum := rowIdx+1, colIdx+1
			if colNum > maxCol {
				maxCol = colNum
			}
			c, err := decodeCell(f, title, rowNum, colNum, raw)
			if err != nil {
				return ss, err
			}
			if c.Value.IsEmpty() && c.Style.IsZero() {
				continue
			}
			ss.Cells = append(ss.Cells, c)
		}
	}

	for col := 1; col <= maxCol; col++ {
		width, err := f.GetColWidth(title, ref.ColumnName(col))
		if err != nil {
			return ss, err
		}
		if width != defaultColWidth {
			ss.ColumnWidths[col] = width
		}
	}

	merges, err := f.GetMergeCells(title)
	if err != nil {
		return ss, err
	}
	for _, m := range merges {
		r, err := ref.ParseRange(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err != nil {
			continue
		}
		ss.Merges = append(ss.Merges, r)
	}

	panes, err := f.GetPanes(title)
	if err != nil {
		return ss, err
	}
	if panes.Freeze && panes.TopLeftCell != "" {
		if anchor, err := ref.ParseCell(panes.TopLeftCell); err == nil {
			ss.Freeze = &anchor
		}
	}
	return ss, nil
}

func decodeCell(f *excelize.File, sheet string, row, col int, raw string) (doc.CellSnapshot, error) {
	c := doc.CellSnapshot{Row: row, Col: col}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return c, err
	}

	formula, err := f.GetCellFormula(sheet, cell)
	if err != nil {
		return c, err
	}
	hasLink, target, err := f.GetCellHyperLink(sheet, cell)
	if err != nil {
		return c, err
	}
	switch {
	case formula != "":
		c.Value = doc.Formula(formula)
	case hasLink && target != "":
		c.Value = doc.Hyperlink(target, raw)
	default:
		cellType, err := f.GetCellType(sheet, cell)
		if err != nil {
			return c, err
		}
		c.Value = decodeValue(cellType, raw)
	}

	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return c, err
	}
	if styleID != 0 {
		st, err := f.GetStyle(styleID)
		if err != nil {
			return c, err
		}
		c.Style = decodeStyle(st)
	}
	return c, nil
}

// decodeValue maps a cell back into the value variant using the container's
// stored cell type, so a text cell that merely looks numeric or boolean stays
// text. Dates come back in the container's display form and therefore decode
// as text or number, matching how the format itself stores them.
func decodeValue(cellType excelize.CellType, raw string) doc.Value {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return doc.Text(raw)
	case excelize.CellTypeBool:
		return doc.Bool(raw == "TRUE")
	case excelize.CellTypeNumber, excelize.CellTypeDate:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return doc.Number(f)
		}
		// Number-formatted display text, e.g. a formatted date.
		return doc.Text(raw)
	default:
		return doc.FromAny(raw)
	}
}

func decodeStyle(raw *excelize.Style) style.Style {
	out := style.Style{}
	if raw == nil {
		return out
	}
	if raw.Font != nil {
		out.Font = &style.Font{
			Bold:   raw.Font.Bold,
			Italic: raw.Font.Italic,
			Size:   raw.Font.Size,
			Color:  normalizeColor(raw.Font.Color),
		}
	}
	if raw.Fill.Type == "pattern" && raw.Fill.Pattern == 1 && len(raw.Fill.Color) > 0 {
		out.Fill = &style.Fill{Color: normalizeColor(raw.Fill.Color[0])}
	}
	if raw.Alignment != nil && (raw.Alignment.Horizontal != "" || raw.Alignment.Vertical != "") {
		out.Alignment = &style.Alignment{
			Horizontal: raw.Alignment.Horizontal,
			Vertical:   raw.Alignment.Vertical,
		}
	}
	if len(raw.Border) > 0 {
		border := style.Border{}
		set := false
		for _, b := range raw.Border {
			name, ok := decodeBorderStyles[b.Style]
			if !ok {
				continue
			}
			edge := style.Edge{Style: name, Color: normalizeColor(b.Color)}
			switch b.Type {
			case "left":
				border.Left, set = edge, true
			case "right":
				border.Right, set = edge, true
			case "top":
				border.Top, set = edge, true
			case "bottom":
				border.Bottom, set = edge, true
			}
		}
		if set {
			out.Border = &border
		}
	}
	if out.Font == nil && out.Fill == nil && out.Alignment == nil && out.Border == nil {
		return style.Style{}
	}
	return out
}

// normalizeColor strips the "#" prefix and an ARGB alpha channel so colors
// compare equal to the 6-digit RRGGBB form the model uses.
func normalizeColor(c string) string {
	c = strings.TrimPrefix(c, "#")
	if len(c) == 8 {
		c = c[2:]
	}
	return strings.ToUpper(c)
}

// parseRefersTo splits a defined-name target like Data!$B$2:$B$10 into its
// sheet and range.
func parseRefersTo(refersTo string) (string, ref.Range, bool) {
	idx := strings.LastIndex(refersTo, "!")
	if idx < 0 {
		return "", ref.Range{}, false
	}
	sheet := strings.Trim(refersTo[:idx], "'")
	rangeText := strings.ReplaceAll(refersTo[idx+1:], "$", "")
	r, err := ref.ParseRange(rangeText)
	if err != nil {
		return "", ref.Range{}, false
	}
	return sheet, r, true
}
