// Package doc holds the in-memory spreadsheet document model: workbooks,
// sheets, cells, formatting rules, charts and pivot tables. The model is
// format-agnostic; persistence goes through the Snapshot type.
package doc

import (
	"fmt"
	"strconv"
	"time"
)

// ValueKind tags the closed set of cell value variants.
type ValueKind uint8

const (
	// KindEmpty is an unwritten or cleared cell.
	KindEmpty ValueKind = iota
	// KindNumber is a float64 numeric value.
	KindNumber
	// KindText is a plain string value.
	KindText
	// KindBool is a boolean value.
	KindBool
	// KindDate is a calendar date-time value.
	KindDate
	// KindFormula is an opaque formula string; the model never evaluates it.
	KindFormula
	// KindHyperlink is a link target with optional display text.
	KindHyperlink
)

// Value is a cell value as a closed tagged variant. The zero Value is empty.
type Value struct {
	Kind ValueKind

	Number float64
	Text   string
	Bool   bool
	Date   time.Time
	// Formula is the formula body without a leading "=".
	Formula string
	// Target is the hyperlink URL; Text carries the display text.
	Target string
}

// Empty returns the empty value.
func Empty() Value { return Value{} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// Text returns a text value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// Formula returns a formula value. A leading "=" is not expected.
func Formula(expr string) Value { return Value{Kind: KindFormula, Formula: expr} }

// Hyperlink returns a hyperlink value. If display is empty the target is
// shown instead.
func Hyperlink(target, display string) Value {
	if display == "" {
		display = target
	}
	return Value{Kind: KindHyperlink, Target: target, Text: display}
}

// IsEmpty reports whether the value is the empty variant.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// FromAny coerces an arbitrary scalar into a Value. Strings are parsed as
// integers or decimals when they look numeric, matching how tabular sources
// deliver untyped fields; everything unrecognized becomes text.
func FromAny(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Empty()
	case Value:
		return x
	case string:
		return parseScalar(x)
	case bool:
		return Bool(x)
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case time.Time:
		return Date(x)
	default:
		return Text(fmt.Sprint(raw))
	}
}

// parseScalar attempts to read a string as a number before falling back to
// text.
func parseScalar(s string) Value {
	if s == "" {
		return Empty()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Text(s)
}

// Display returns the value as the text a cell would show, used for column
// width measurement. Empty and formula values measure as empty: a formula's
// rendered width depends on evaluation, which the model does not perform.
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText, KindHyperlink:
		return v.Text
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindDate:
		return v.Date.Format("2006-01-02")
	default:
		return ""
	}
}
