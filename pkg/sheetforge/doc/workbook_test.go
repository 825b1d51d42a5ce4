package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

func TestFirstSheetIsActive(t *testing.T) {
	w := New(style.NewDefaults())
	first, err := w.AddSheet("First", false)
	require.NoError(t, err)
	assert.Same(t, first, w.ActiveSheet())

	_, err = w.AddSheet("Second", false)
	require.NoError(t, err)
	assert.Same(t, first, w.ActiveSheet())

	third, err := w.AddSheet("Third", true)
	require.NoError(t, err)
	assert.Same(t, third, w.ActiveSheet())
}

func TestAddSheetDuplicateTitle(t *testing.T) {
	w := New(style.NewDefaults())
	_, err := w.AddSheet("Data", false)
	require.NoError(t, err)

	_, err = w.AddSheet("Data", false)
	var dup *DuplicateTitleError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Data", dup.Title)
	assert.Len(t, w.Sheets(), 1)
}

func TestSetActiveSheet(t *testing.T) {
	w := New(style.NewDefaults())
	_, err := w.AddSheet("A", false)
	require.NoError(t, err)
	b, err := w.AddSheet("B", false)
	require.NoError(t, err)

	require.NoError(t, w.SetActiveSheet("B"))
	assert.Same(t, b, w.ActiveSheet())

	err = w.SetActiveSheet("Missing")
	var notFound *SheetNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRenameActiveSheet(t *testing.T) {
	w := New(style.NewDefaults())
	_, err := w.AddSheet("Sheet1", true)
	require.NoError(t, err)
	_, err = w.AddSheet("Other", false)
	require.NoError(t, err)

	require.NoError(t, w.RenameActiveSheet("Payments"))
	assert.Equal(t, "Payments", w.ActiveSheet().Title())

	// Renaming onto an existing title fails.
	err = w.RenameActiveSheet("Other")
	var dup *DuplicateTitleError
	require.ErrorAs(t, err, &dup)
}

func TestCopySheetDeepCopiesCellsAndLayout(t *testing.T) {
	w := New(style.NewDefaults())
	src, err := w.AddSheet("Source", true)
	require.NoError(t, err)

	bold := style.Style{Font: &style.Font{Bold: true}}
	require.NoError(t, src.SetCell(1, 1, Text("header"), &bold))
	require.NoError(t, src.SetCell(2, 1, Number(42), nil))
	src.SetColumnWidths([]float64{18})
	src.Freeze(ref.Cell{Row: 2, Col: 2})
	src.MergeCells(ref.Range{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 3})
	src.Protect("secret")
	src.AddColorScale(ref.Range{MinRow: 2, MinCol: 1, MaxRow: 2, MaxCol: 1}, "FF0000", "00FF00")
	_, err = src.AddChart(ChartBar, ref.Range{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 1}, ChartOptions{})
	require.NoError(t, err)

	dst, err := w.CopySheet("Source", "Copy")
	require.NoError(t, err)

	assert.Equal(t, "header", dst.CellAt(1, 1).Value.Text)
	assert.True(t, dst.CellAt(1, 1).Style.Font.Bold)
	assert.Equal(t, 2, dst.MaxRow())
	assert.Equal(t, float64(18), dst.ColumnWidth(1))
	require.NotNil(t, dst.FreezeAnchor())
	assert.Equal(t, ref.Cell{Row: 2, Col: 2}, *dst.FreezeAnchor())
	assert.Len(t, dst.Merges(), 1)
	assert.Equal(t, "secret", dst.Protection())

	// Attachments stay with the source.
	assert.Empty(t, dst.ColorScales())
	assert.Empty(t, dst.Charts())

	// The copy is independent of the source.
	require.NoError(t, dst.SetCell(1, 1, Text("changed"), nil))
	assert.Equal(t, "header", src.CellAt(1, 1).Value.Text)
}

func TestCopySheetErrors(t *testing.T) {
	w := New(style.NewDefaults())
	_, err := w.AddSheet("Source", true)
	require.NoError(t, err)

	_, err = w.CopySheet("Missing", "Copy")
	var notFound *SheetNotFoundError
	require.ErrorAs(t, err, &notFound)

	_, err = w.CopySheet("Source", "Source")
	var dup *DuplicateTitleError
	require.ErrorAs(t, err, &dup)
}

func TestDefineNamedRange(t *testing.T) {
	w := New(style.NewDefaults())
	_, err := w.AddSheet("Data", true)
	require.NoError(t, err)

	r := ref.Range{MinRow: 1, MinCol: 1, MaxRow: 10, MaxCol: 2}
	require.NoError(t, w.DefineNamedRange("payments", "Data", r))

	nr, ok := w.NamedRangeByName("payments")
	require.True(t, ok)
	assert.Equal(t, "Data", nr.Sheet)
	assert.Equal(t, r, nr.Range)

	// Redefinition replaces the binding in place.
	r2 := ref.Range{MinRow: 1, MinCol: 1, MaxRow: 20, MaxCol: 2}
	require.NoError(t, w.DefineNamedRange("payments", "Data", r2))
	nr, _ = w.NamedRangeByName("payments")
	assert.Equal(t, r2, nr.Range)
	assert.Len(t, w.NamedRanges(), 1)

	err = w.DefineNamedRange("bad", "Missing", r)
	var notFound *SheetNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSnapshotRoundTrip(t *testing.T) {
	w := New(style.NewDefaults())
	s, err := w.AddSheet("Payments", true)
	require.NoError(t, err)
	header := style.DefaultHeader()
	require.NoError(t, s.SetRow(1, []Value{Text("ID"), Text("AMOUNT")}, &header))
	require.NoError(t, s.AppendRow([]Value{Number(1), Number(100)}, nil))
	require.NoError(t, s.AppendRow([]Value{Number(2), Number(200)}, nil))
	s.AddColorScale(ref.Range{MinRow: 2, MinCol: 2, MaxRow: 3, MaxCol: 2}, "FF0000", "00FF00")
	require.NoError(t, w.DefineNamedRange("amounts", "Payments", ref.Range{MinRow: 2, MinCol: 2, MaxRow: 3, MaxCol: 2}))

	snap := w.Snapshot()
	restored, err := FromSnapshot(snap, style.NewDefaults())
	require.NoError(t, err)

	rs, err := restored.SheetByTitle("Payments")
	require.NoError(t, err)
	assert.Equal(t, 3, rs.MaxRow())
	assert.Equal(t, "ID", rs.CellAt(1, 1).Value.Text)
	assert.True(t, rs.CellAt(1, 1).Style.Font.Bold)
	assert.Equal(t, float64(200), rs.CellAt(3, 2).Value.Number)
	require.Len(t, rs.ColorScales(), 1)
	assert.Equal(t, snap, restored.Snapshot())
}

func TestSnapshotCellsAreOrdered(t *testing.T) {
	w := New(style.NewDefaults())
	s, err := w.AddSheet("Data", true)
	require.NoError(t, err)
	require.NoError(t, s.SetCell(2, 2, Number(4), nil))
	require.NoError(t, s.SetCell(1, 2, Number(2), nil))
	require.NoError(t, s.SetCell(2, 1, Number(3), nil))
	require.NoError(t, s.SetCell(1, 1, Number(1), nil))

	snap := w.Snapshot()
	require.Len(t, snap.Sheets, 1)
	var got []float64
	for _, c := range snap.Sheets[0].Cells {
		got = append(got, c.Value.Number)
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, got)
}
