// Package xlsxio is the persistence boundary: it encodes document snapshots
// to xlsx bytes and decodes xlsx bytes back into snapshots, delegating the
// container format entirely to excelize.
package xlsxio

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/doc"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

// borderStyles maps the model's edge style names to excelize line style codes.
// decodeBorderStyles is its inverse.
var borderStyles = map[string]int{
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
	"hair":   7,
}

var decodeBorderStyles = func() map[int]string {
	m := make(map[int]string, len(borderStyles))
	for name, code := range borderStyles {
		m[code] = name
	}
	return m
}()

// Encode renders a snapshot into an excelize file.
func Encode(snap *doc.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	styles := newStyleCache(f)

	for i, ss := range snap.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", ss.Title); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(ss.Title); err != nil {
			return nil, err
		}
		if err := encodeSheet(f, styles, ss); err != nil {
			return nil, fmt.Errorf("encode sheet %q: %w", ss.Title, err)
		}
	}

	for _, nr := range snap.NamedRanges {
		err := f.SetDefinedName(&excelize.DefinedName{
			Name:     nr.Name,
			RefersTo: absRef(nr.Sheet, nr.Range),
			Scope:    "Workbook",
		})
		if err != nil {
			return nil, err
		}
	}

	if snap.ActiveSheet >= 0 && snap.ActiveSheet < len(snap.Sheets) {
		idx, err := f.GetSheetIndex(snap.Sheets[snap.ActiveSheet].Title)
		if err != nil {
			return nil, err
		}
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// EncodeBytes renders a snapshot into xlsx bytes.
func EncodeBytes(snap *doc.Snapshot) ([]byte, error) {
	f, err := Encode(snap)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeSheet(f *excelize.File, styles *styleCache, ss doc.SheetSnapshot) error {
	for _, c := range ss.Cells {
		if err := encodeCell(f, styles, ss.Title, c); err != nil {
			return err
		}
	}
	for col, width := range ss.ColumnWidths {
		name := ref.ColumnName(col)
		if err := f.SetColWidth(ss.Title, name, name, width); err != nil {
			return err
		}
	}
	for _, m := range ss.Merges {
		top, _ := excelize.CoordinatesToCellName(m.MinCol, m.MinRow)
		bottom, _ := excelize.CoordinatesToCellName(m.MaxCol, m.MaxRow)
		if err := f.MergeCell(ss.Title, top, bottom); err != nil {
			return err
		}
	}
	if ss.Freeze != nil {
		if err := encodeFreeze(f, ss.Title, *ss.Freeze); err != nil {
			return err
		}
	}
	if ss.Protection != "" {
		err := f.ProtectSheet(ss.Title, &excelize.SheetProtectionOptions{
			Password:            ss.Protection,
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
		})
		if err != nil {
			return err
		}
	}
	if err := encodePageSetup(f, ss.Title, ss.PageSetup); err != nil {
		return err
	}
	for _, rule := range ss.ColorScales {
		opts := []excelize.ConditionalFormatOptions{{
			Type:     "2_color_scale",
			Criteria: "=",
			MinType:  "min",
			MaxType:  "max",
			MinColor: "#" + rule.MinColor,
			MaxColor: "#" + rule.MaxColor,
		}}
		if err := f.SetConditionalFormat(ss.Title, rule.Range.String(), opts); err != nil {
			return err
		}
	}
	for _, rule := range ss.FormulaRules {
		styleID, err := f.NewConditionalStyle(excelizeStyle(rule.Style))
		if err != nil {
			return err
		}
		opts := []excelize.ConditionalFormatOptions{{
			Type:     "formula",
			Criteria: rule.Formula,
			Format:   &styleID,
		}}
		if err := f.SetConditionalFormat(ss.Title, rule.Range.String(), opts); err != nil {
			return err
		}
	}
	for _, rule := range ss.Validations {
		dv := excelize.NewDataValidation(rule.AllowBlank)
		dv.Sqref = rule.Range.String()
		if err := dv.SetDropList(rule.Values); err != nil {
			return err
		}
		if err := f.AddDataValidation(ss.Title, dv); err != nil {
			return err
		}
	}
	for _, chart := range ss.Charts {
		if err := encodeChart(f, ss.Title, chart); err != nil {
			return err
		}
	}
	for _, pivot := range ss.Pivots {
		if err := encodePivot(f, ss.Title, pivot); err != nil {
			return err
		}
	}
	return nil
}

func encodeCell(f *excelize.File, styles *styleCache, sheet string, c doc.CellSnapshot) error {
	cell, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return err
	}
	switch c.Value.Kind {
	case doc.KindEmpty:
		// Style-only cell; nothing to write for the value.
	case doc.KindNumber:
		err = f.SetCellValue(sheet, cell, c.Value.Number)
	case doc.KindText:
		err = f.SetCellValue(sheet, cell, c.Value.Text)
	case doc.KindBool:
		err = f.SetCellValue(sheet, cell, c.Value.Bool)
	case doc.KindDate:
		err = f.SetCellValue(sheet, cell, c.Value.Date)
	case doc.KindFormula:
		err = f.SetCellFormula(sheet, cell, c.Value.Formula)
	case doc.KindHyperlink:
		if err = f.SetCellHyperLink(sheet, cell, c.Value.Target, "External"); err != nil {
			return err
		}
		err = f.SetCellValue(sheet, cell, c.Value.Text)
	}
	if err != nil {
		return err
	}
	if c.Style.IsZero() {
		return nil
	}
	styleID, err := styles.id(c.Style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, styleID)
}

func encodeFreeze(f *excelize.File, sheet string, anchor ref.Cell) error {
	topLeft, err := excelize.CoordinatesToCellName(anchor.Col, anchor.Row)
	if err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      anchor.Col - 1,
		YSplit:      anchor.Row - 1,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	})
}

func encodePageSetup(f *excelize.File, sheet string, p doc.PageSetup) error {
	opts := excelize.PageLayoutOptions{}
	set := false
	if p.Orientation != "" {
		orientation := p.Orientation
		opts.Orientation = &orientation
		set = true
	}
	if p.FitToPage {
		one := 1
		opts.FitToWidth = &one
		opts.FitToHeight = &one
		set = true
	}
	if !set {
		return nil
	}
	return f.SetPageLayout(sheet, &opts)
}

func encodeChart(f *excelize.File, sheet string, chart doc.Chart) error {
	kinds := map[doc.ChartKind]excelize.ChartType{
		doc.ChartBar:     excelize.Col,
		doc.ChartLine:    excelize.Line,
		doc.ChartPie:     excelize.Pie,
		doc.ChartScatter: excelize.Scatter,
	}
	kind, ok := kinds[chart.Kind]
	if !ok {
		return fmt.Errorf("chart kind %q has no container mapping", chart.Kind)
	}

	anchor, err := excelize.CoordinatesToCellName(chart.Options.Anchor.Col, chart.Options.Anchor.Row)
	if err != nil {
		return err
	}

	legend := excelize.ChartLegend{Position: "right"}
	if !chart.Options.Legend {
		legend.Position = "none"
	}

	spec := &excelize.Chart{
		Type:     kind,
		Series:   chartSeries(sheet, chart),
		Legend:   legend,
		PlotArea: excelize.ChartPlotArea{ShowVal: chart.Options.DataLabels},
	}
	if chart.Options.Title != "" {
		spec.Title = []excelize.RichTextRun{{Text: chart.Options.Title}}
	}
	if chart.Options.XAxisTitle != "" {
		spec.XAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: chart.Options.XAxisTitle}}}
	}
	if chart.Options.YAxisTitle != "" {
		spec.YAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: chart.Options.YAxisTitle}}}
	}
	return f.AddChart(sheet, anchor, spec)
}

// chartSeries builds one series per column of the data range. With
// TitlesFromData the first row supplies series names and the remaining rows
// the values; otherwise every row is data.
func chartSeries(sheet string, chart doc.Chart) []excelize.ChartSeries {
	data := chart.Data
	firstDataRow := data.MinRow
	if chart.Options.TitlesFromData {
		firstDataRow++
	}
	if firstDataRow > data.MaxRow {
		firstDataRow = data.MaxRow
	}
	var series []excelize.ChartSeries
	for col := data.MinCol; col <= data.MaxCol; col++ {
		colRange := ref.Range{MinRow: firstDataRow, MinCol: col, MaxRow: data.MaxRow, MaxCol: col}
		s := excelize.ChartSeries{Values: absRef(sheet, colRange)}
		if chart.Options.TitlesFromData {
			name := ref.Range{MinRow: data.MinRow, MinCol: col, MaxRow: data.MinRow, MaxCol: col}
			s.Name = absRef(sheet, name)
		}
		series = append(series, s)
	}
	return series
}

func encodePivot(f *excelize.File, sheet string, pivot doc.PivotTable) error {
	toFields := func(names []string, subtotal string) []excelize.PivotTableField {
		fields := make([]excelize.PivotTableField, 0, len(names))
		for _, name := range names {
			fields = append(fields, excelize.PivotTableField{Data: name, Subtotal: subtotal})
		}
		return fields
	}

	// Placement window below-right of the anchor; the consumer recomputes
	// the final size when refreshing the pivot cache.
	window := ref.Range{
		MinRow: pivot.Anchor.Row,
		MinCol: pivot.Anchor.Col,
		MaxRow: pivot.Anchor.Row + len(pivot.RowFields) + 8,
		MaxCol: pivot.Anchor.Col + len(pivot.ColFields) + len(pivot.ValueFields) + 1,
	}
	return f.AddPivotTable(&excelize.PivotTableOptions{
		DataRange:       quoteSheet(sheet) + "!" + pivot.Source.String(),
		PivotTableRange: quoteSheet(sheet) + "!" + window.String(),
		Rows:            toFields(pivot.RowFields, ""),
		Columns:         toFields(pivot.ColFields, ""),
		Data:            toFields(pivot.ValueFields, "Sum"),
	})
}

// absRef renders a sheet-qualified absolute reference like Data!$B$2:$B$10.
// Titles that are not plain identifiers get single-quoted, as in 'My Data'!$B$2.
func absRef(sheet string, r ref.Range) string {
	min := fmt.Sprintf("$%s$%d", ref.ColumnName(r.MinCol), r.MinRow)
	if r.Single() {
		return quoteSheet(sheet) + "!" + min
	}
	max := fmt.Sprintf("$%s$%d", ref.ColumnName(r.MaxCol), r.MaxRow)
	return quoteSheet(sheet) + "!" + min + ":" + max
}

// quoteSheet wraps a sheet title in single quotes when a reference requires
// it, doubling any embedded quote.
func quoteSheet(title string) string {
	plain := title != ""
	for _, c := range title {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_') {
			plain = false
			break
		}
	}
	if plain {
		return title
	}
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// styleCache deduplicates excelize style registrations: equal composed styles
// map to one style ID.
type styleCache struct {
	f   *excelize.File
	ids map[styleKey]int
}

type styleKey struct {
	font      style.Font
	hasFont   bool
	fill      style.Fill
	hasFill   bool
	border    style.Border
	hasBorder bool
	align     style.Alignment
	hasAlign  bool
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[styleKey]int)}
}

func (c *styleCache) id(st style.Style) (int, error) {
	key := styleKey{}
	if st.Font != nil {
		key.font, key.hasFont = *st.Font, true
	}
	if st.Fill != nil {
		key.fill, key.hasFill = *st.Fill, true
	}
	if st.Border != nil {
		key.border, key.hasBorder = *st.Border, true
	}
	if st.Alignment != nil {
		key.align, key.hasAlign = *st.Alignment, true
	}
	if id, ok := c.ids[key]; ok {
		return id, nil
	}
	id, err := c.f.NewStyle(excelizeStyle(st))
	if err != nil {
		return 0, err
	}
	c.ids[key] = id
	return id, nil
}

func excelizeStyle(st style.Style) *excelize.Style {
	out := &excelize.Style{}
	if st.Font != nil {
		out.Font = &excelize.Font{
			Bold:   st.Font.Bold,
			Italic: st.Font.Italic,
			Size:   st.Font.Size,
			Color:  st.Font.Color,
		}
	}
	if st.Fill != nil {
		out.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{st.Fill.Color}}
	}
	if st.Border != nil {
		edges := []struct {
			side string
			edge style.Edge
		}{
			{"left", st.Border.Left},
			{"right", st.Border.Right},
			{"top", st.Border.Top},
			{"bottom", st.Border.Bottom},
		}
		for _, e := range edges {
			if e.edge.Style == "" {
				continue
			}
			out.Border = append(out.Border, excelize.Border{
				Type:  e.side,
				Style: borderStyles[e.edge.Style],
				Color: e.edge.Color,
			})
		}
	}
	if st.Alignment != nil {
		out.Alignment = &excelize.Alignment{
			Horizontal: st.Alignment.Horizontal,
			Vertical:   st.Alignment.Vertical,
		}
	}
	return out
}
