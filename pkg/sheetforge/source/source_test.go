package source

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/doc"
)

func drain(t *testing.T, s RowSource) [][]doc.Value {
	t.Helper()
	var rows [][]doc.Value
	for {
		row, err := s.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestCSVSource(t *testing.T) {
	in := "ID,AMOUNT\n1,100.0\n2,200.0\n"
	rows := drain(t, CSV(strings.NewReader(in)))

	require.Len(t, rows, 3)
	assert.Equal(t, doc.Text("ID"), rows[0][0])
	assert.Equal(t, doc.Number(1), rows[1][0])
	assert.Equal(t, doc.Number(100), rows[1][1])
	assert.Equal(t, doc.Number(200), rows[2][1])
}

func TestCSVSourceRaggedRecords(t *testing.T) {
	in := "a,b,c\nd\n"
	rows := drain(t, CSV(strings.NewReader(in)))
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 1)
}

func TestJSONSourcePreservesKeyOrder(t *testing.T) {
	in := `[
		{"id": 1, "name": "first", "paid": true},
		{"name": "second", "id": 2, "paid": null}
	]`
	rows := drain(t, JSON(strings.NewReader(in)))

	require.Len(t, rows, 2)
	// Values come out in each object's own key order.
	assert.Equal(t, []doc.Value{doc.Number(1), doc.Text("first"), doc.Bool(true)}, rows[0])
	assert.Equal(t, []doc.Value{doc.Text("second"), doc.Number(2), doc.Empty()}, rows[1])
}

func TestJSONSourceEmptyArray(t *testing.T) {
	rows := drain(t, JSON(strings.NewReader("[]")))
	assert.Empty(t, rows)
}

func TestJSONSourceRejectsNestedValues(t *testing.T) {
	s := JSON(strings.NewReader(`[{"a": [1, 2]}]`))
	_, err := s.Next()
	assert.Error(t, err)
}

func TestJSONSourceRejectsNonArray(t *testing.T) {
	s := JSON(strings.NewReader(`{"a": 1}`))
	_, err := s.Next()
	assert.Error(t, err)
}

func TestJSONSourceEOFIsSticky(t *testing.T) {
	s := JSON(strings.NewReader(`[{"a": 1}]`))
	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
}

func TestSliceSource(t *testing.T) {
	rows := drain(t, Slice([][]interface{}{
		{"x", 1},
		{nil, "2.5"},
	}))
	require.Len(t, rows, 2)
	assert.Equal(t, doc.Text("x"), rows[0][0])
	assert.Equal(t, doc.Number(1), rows[0][1])
	assert.Equal(t, doc.Empty(), rows[1][0])
	assert.Equal(t, doc.Number(2.5), rows[1][1])
}
