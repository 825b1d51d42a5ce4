// Package style defines immutable cell style value objects and their
// composition rules. Styles are applied to cells by value: mutating a Style
// after it has been assigned never changes already-styled cells.
package style

// Font describes text rendering for a cell.
type Font struct {
	// Bold renders the text in bold.
	Bold bool
	// Italic renders the text in italics.
	Italic bool
	// Size is the font size in points. Zero means the format default.
	Size float64
	// Color is the text color as a 6-digit RRGGBB hex string.
	Color string
}

// Fill describes a solid background color.
type Fill struct {
	// Color is the fill color as a 6-digit RRGGBB hex string.
	Color string
}

// Edge describes one side of a cell border.
type Edge struct {
	// Style is the border line style name (e.g. "thin", "medium").
	Style string
	// Color is the border color as a 6-digit RRGGBB hex string.
	Color string
}

// Border describes the four sides of a cell border independently.
type Border struct {
	Left   Edge
	Right  Edge
	Top    Edge
	Bottom Edge
}

// Alignment describes cell content placement.
type Alignment struct {
	// Horizontal is the horizontal alignment ("left", "center", "right").
	Horizontal string
	// Vertical is the vertical alignment ("top", "center", "bottom").
	Vertical string
}

// Style is a composed cell style. Nil fields mean "unset" and inherit from
// whatever the style is composed over.
type Style struct {
	Font      *Font
	Fill      *Fill
	Border    *Border
	Alignment *Alignment
}

// IsZero reports whether no field of the style is set.
func (s Style) IsZero() bool {
	return s.Font == nil && s.Fill == nil && s.Border == nil && s.Alignment == nil
}

// Clone returns a deep copy of the style. Assigning the clone to a cell
// keeps the cell independent of later mutation of the original.
func (s Style) Clone() Style {
	out := Style{}
	if s.Font != nil {
		f := *s.Font
		out.Font = &f
	}
	if s.Fill != nil {
		f := *s.Fill
		out.Fill = &f
	}
	if s.Border != nil {
		b := *s.Border
		out.Border = &b
	}
	if s.Alignment != nil {
		a := *s.Alignment
		out.Alignment = &a
	}
	return out
}

// Compose layers override on top of base. Each field of the override that is
// set wins; unset fields inherit the base's value. Compose is pure: neither
// input is modified and the result shares no pointers with either.
func Compose(base, override Style) Style {
	out := base.Clone()
	if override.Font != nil {
		f := *override.Font
		out.Font = &f
	}
	if override.Fill != nil {
		f := *override.Fill
		out.Fill = &f
	}
	if override.Border != nil {
		b := *override.Border
		out.Border = &b
	}
	if override.Alignment != nil {
		a := *override.Alignment
		out.Alignment = &a
	}
	return out
}

// Defaults carries the process-wide style configuration, injected at workbook
// construction so tests can override it deterministically.
type Defaults struct {
	// Header is the style applied to header rows when the caller supplies
	// no override.
	Header Style
}

// DefaultHeaderColor is the fill color of the stock header style.
const DefaultHeaderColor = "4F81BD"

// DefaultHeader returns the stock header style: bold white text on a solid
// accent-blue fill, centered on both axes.
func DefaultHeader() Style {
	return Style{
		Font:      &Font{Bold: true, Color: "FFFFFF"},
		Fill:      &Fill{Color: DefaultHeaderColor},
		Alignment: &Alignment{Horizontal: "center", Vertical: "center"},
	}
}

// NewDefaults returns the stock defaults.
func NewDefaults() Defaults {
	return Defaults{Header: DefaultHeader()}
}
