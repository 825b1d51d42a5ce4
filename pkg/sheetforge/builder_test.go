package sheetforge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/doc"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/source"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

func boolPtr(b bool) *bool { return &b }

func TestAddHeadersAppliesComposedStyle(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.AddHeaders([]string{"ID", "AMOUNT"}, 1, nil))

	cell := b.Sheet().CellAt(1, 1)
	assert.Equal(t, "ID", cell.Value.Text)
	require.NotNil(t, cell.Style.Font)
	assert.True(t, cell.Style.Font.Bold)
	assert.Equal(t, style.DefaultHeaderColor, cell.Style.Fill.Color)
}

func TestAddHeadersOverrideWins(t *testing.T) {
	b := New(DefaultOptions())
	override := style.Style{
		Font: &style.Font{Bold: true, Color: "000000"},
		Fill: &style.Fill{Color: "FFFF00"},
	}
	require.NoError(t, b.AddHeaders([]string{"H"}, 1, &override))

	st := b.Sheet().CellAt(1, 1).Style
	assert.Equal(t, "000000", st.Font.Color)
	assert.Equal(t, "FFFF00", st.Fill.Color)
	// Alignment inherits from the default header style.
	require.NotNil(t, st.Alignment)
	assert.Equal(t, "center", st.Alignment.Horizontal)
}

func TestAddHeadersDisabledIsNoOp(t *testing.T) {
	b := New(Options{IncludeHeader: boolPtr(false)})
	require.NoError(t, b.AddRow([]interface{}{"seed"}, nil))
	before := b.Sheet().MaxRow()

	require.NoError(t, b.AddHeaders([]string{"ID", "AMOUNT"}, 5, nil))
	assert.Equal(t, before, b.Sheet().MaxRow())
	assert.True(t, b.Sheet().CellAt(5, 1).Value.IsEmpty())
}

func TestInjectedStyleDefaults(t *testing.T) {
	defaults := style.Defaults{Header: style.Style{Fill: &style.Fill{Color: "123456"}}}
	b := New(Options{Defaults: &defaults})
	require.NoError(t, b.AddHeaders([]string{"H"}, 1, nil))
	assert.Equal(t, "123456", b.Sheet().CellAt(1, 1).Style.Fill.Color)
}

func TestSetColumnWidthsModes(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.AddRow([]interface{}{"wide value here"}, nil))

	assert.ErrorIs(t, b.SetColumnWidths(true, []float64{10}), ErrConflictingWidths)
	assert.ErrorIs(t, b.SetColumnWidths(false, nil), ErrNoWidthMode)

	require.NoError(t, b.SetColumnWidths(true, nil))
	assert.Equal(t, float64(len("wide value here")+2), b.Sheet().ColumnWidth(1))

	require.NoError(t, b.SetColumnWidths(false, []float64{33}))
	assert.Equal(t, float64(33), b.Sheet().ColumnWidth(1))
}

func TestAutoNumberRowsAfterAppends(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.AddHeaders([]string{"N", "V"}, 1, nil))
	for i := 0; i < 4; i++ {
		require.NoError(t, b.AddRow([]interface{}{nil, i * 10}, nil))
	}
	require.NoError(t, b.AutoNumberRows(2, 1))

	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(i+1), b.Sheet().CellAt(2+i, 1).Value.Number)
	}
}

func TestChartErrorsPropagate(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.AddHeaders([]string{"ID", "AMOUNT"}, 1, nil))
	require.NoError(t, b.AddRow([]interface{}{1, 100.0}, nil))

	_, err := b.AddChart(doc.ChartBar, "B1:B10", ChartConfig{})
	var oob *doc.OutOfBoundsReferenceError
	require.ErrorAs(t, err, &oob)
	assert.Empty(t, b.Sheet().Charts())

	_, err = b.AddChart(doc.ChartKind("donut"), "B1:B2", ChartConfig{})
	var unsupported *doc.UnsupportedChartKindError
	require.ErrorAs(t, err, &unsupported)

	_, err = b.AddChart(doc.ChartBar, "not a range", ChartConfig{})
	var malformed *ref.MalformedRangeError
	require.ErrorAs(t, err, &malformed)
}

func TestImportRowsFromCSV(t *testing.T) {
	b := New(DefaultOptions())
	csv := "ID,AMOUNT\n1,100.0\n2,200.0\n"
	require.NoError(t, b.ImportRows(source.CSV(strings.NewReader(csv)), 1))

	s := b.Sheet()
	assert.Equal(t, 3, s.MaxRow())
	assert.Equal(t, "ID", s.CellAt(1, 1).Value.Text)
	assert.Equal(t, doc.Number(100), s.CellAt(2, 2).Value)
	assert.Equal(t, doc.Number(200), s.CellAt(3, 2).Value)
}

func TestImportRowsAtOffsetKeepsExisting(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.AddHeaders([]string{"A", "B"}, 1, nil))
	rows := source.Slice([][]interface{}{{1, 2}, {3, 4}})
	require.NoError(t, b.ImportRows(rows, 2))

	assert.Equal(t, "A", b.Sheet().CellAt(1, 1).Value.Text)
	assert.Equal(t, doc.Number(4), b.Sheet().CellAt(3, 2).Value)
}

// Scenario: one sheet "Payments", headers at row 1, two data rows, a color
// scale over B2:B3, then export. The persisted document must carry exactly
// one conditional-format rule bound to B2:B3.
func TestPaymentsScenarioExport(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.SetSheetName("Payments"))
	require.NoError(t, b.AddHeaders([]string{"ID", "AMOUNT"}, 1, nil))
	require.NoError(t, b.AddRow([]interface{}{1, 100.0}, nil))
	require.NoError(t, b.AddRow([]interface{}{2, 200.0}, nil))
	require.NoError(t, b.ApplyColorScale("B2:B3", "FF0000", "00FF00"))

	scales := b.Sheet().ColorScales()
	require.Len(t, scales, 1)
	assert.Equal(t, ref.Range{MinRow: 2, MinCol: 2, MaxRow: 3, MaxCol: 2}, scales[0].Range)

	data, err := b.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	formats, err := f.GetConditionalFormats("Payments")
	require.NoError(t, err)
	require.Len(t, formats, 1)
	assert.Contains(t, formats, "B2:B3")
}

func TestLoadAppendsToExisting(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.SetSheetName("Payments"))
	require.NoError(t, b.AddHeaders([]string{"ID"}, 1, nil))
	require.NoError(t, b.AddRow([]interface{}{1}, nil))
	data, err := b.Bytes()
	require.NoError(t, err)

	loaded, err := Load(data, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Payments", loaded.Sheet().Title())
	assert.Equal(t, 2, loaded.Sheet().MaxRow())

	// The append path continues after the loaded extent.
	require.NoError(t, loaded.AddRow([]interface{}{2}, nil))
	assert.Equal(t, doc.Number(2), loaded.Sheet().CellAt(3, 1).Value)
}

func TestBuilderSheetLifecycle(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.AddRow([]interface{}{"x"}, nil))
	require.NoError(t, b.CreateSheet("Second", true))
	assert.Equal(t, "Second", b.Sheet().Title())
	assert.Equal(t, 0, b.Sheet().MaxRow())

	require.NoError(t, b.CopySheet("Sheet1", "Copy"))
	copied, err := b.Workbook().SheetByTitle("Copy")
	require.NoError(t, err)
	assert.Equal(t, "x", copied.CellAt(1, 1).Value.Text)

	err = b.CreateSheet("Second", false)
	var dup *doc.DuplicateTitleError
	require.ErrorAs(t, err, &dup)
}

func TestBuilderRangeHelpers(t *testing.T) {
	b := New(DefaultOptions())
	require.NoError(t, b.AddRow([]interface{}{"a", "b"}, nil))

	require.NoError(t, b.MergeCells("A1:B1"))
	assert.Len(t, b.Sheet().Merges(), 1)

	require.NoError(t, b.FreezePanes("B2"))
	require.NotNil(t, b.Sheet().FreezeAnchor())

	require.NoError(t, b.AddHyperlink("C1", "https://example.com", "docs"))
	assert.Equal(t, doc.KindHyperlink, b.Sheet().CellAt(1, 3).Value.Kind)

	require.NoError(t, b.DefineNamedRange("top", "A1:B1"))
	nr, ok := b.Workbook().NamedRangeByName("top")
	require.True(t, ok)
	assert.Equal(t, "Sheet1", nr.Sheet)

	assert.Error(t, b.MergeCells("bogus"))
	assert.Error(t, b.FreezePanes(""))
}
