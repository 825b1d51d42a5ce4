package ref

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	c, err := ParseCell("A1")
	require.NoError(t, err)
	assert.Equal(t, Cell{Row: 1, Col: 1}, c)

	c, err = ParseCell("AB12")
	require.NoError(t, err)
	assert.Equal(t, Cell{Row: 12, Col: 28}, c)
}

func TestParseCellInvalid(t *testing.T) {
	for _, text := range []string{"", "A", "1", "A0", "1A", "a1", "A-1", "A1B"} {
		_, err := ParseCell(text)
		assert.Error(t, err, "input %q", text)

		var malformed *MalformedRangeError
		assert.True(t, errors.As(err, &malformed), "input %q", text)
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("A1:C10")
	require.NoError(t, err)
	assert.Equal(t, Range{MinRow: 1, MinCol: 1, MaxRow: 10, MaxCol: 3}, r)
}

func TestParseRangeSingleCell(t *testing.T) {
	r, err := ParseRange("B2")
	require.NoError(t, err)
	assert.Equal(t, Range{MinRow: 2, MinCol: 2, MaxRow: 2, MaxCol: 2}, r)
	assert.True(t, r.Single())
}

func TestParseRangeNormalizesCorners(t *testing.T) {
	forward, err := ParseRange("A1:C10")
	require.NoError(t, err)
	backward, err := ParseRange("C10:A1")
	require.NoError(t, err)
	assert.Equal(t, forward, backward)

	// Mixed: min row from one corner, min col from the other.
	mixed, err := ParseRange("A10:C1")
	require.NoError(t, err)
	assert.Equal(t, forward, mixed)
}

func TestParseRangeInvalid(t *testing.T) {
	for _, text := range []string{"", ":", "A1:", ":C10", "A1:C", "A1:C10:E20", "A1;C10"} {
		_, err := ParseRange(text)
		assert.Error(t, err, "input %q", text)
	}
}

func TestRangeString(t *testing.T) {
	r, err := ParseRange("C10:A1")
	require.NoError(t, err)
	assert.Equal(t, "A1:C10", r.String())

	single, err := ParseRange("B2:B2")
	require.NoError(t, err)
	assert.Equal(t, "B2", single.String())
}

func TestRangeGeometry(t *testing.T) {
	r := Range{MinRow: 2, MinCol: 2, MaxRow: 3, MaxCol: 2}
	assert.Equal(t, 1, r.Width())
	assert.Equal(t, 2, r.Height())
	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(3, 2))
	assert.False(t, r.Contains(1, 2))
	assert.False(t, r.Contains(2, 3))
}

func TestColumnNames(t *testing.T) {
	tests := []struct {
		num  int
		name string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, ColumnName(tt.num))
		num, err := ColumnNumber(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.num, num)
	}
}

func TestColumnNumberInvalid(t *testing.T) {
	for _, name := range []string{"", "a", "A1", "-"} {
		_, err := ColumnNumber(name)
		assert.Error(t, err, "input %q", name)
	}
}
