package doc

import "github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"

// ChartKind tags the supported chart kinds.
type ChartKind string

const (
	// ChartBar is a vertical bar (column) chart.
	ChartBar ChartKind = "bar"
	// ChartLine is a line chart.
	ChartLine ChartKind = "line"
	// ChartPie is a pie chart.
	ChartPie ChartKind = "pie"
	// ChartScatter is an XY scatter chart.
	ChartScatter ChartKind = "scatter"
)

// ChartID identifies a chart within its sheet.
type ChartID int

// DefaultChartAnchor is where a chart lands when the caller gives no anchor.
var DefaultChartAnchor = ref.Cell{Row: 15, Col: 5} // E15

// ChartOptions carries the optional chart settings.
type ChartOptions struct {
	// TitlesFromData takes series titles from the first row or column of
	// the data range.
	TitlesFromData bool
	Title          string
	XAxisTitle     string
	YAxisTitle     string
	// Legend shows the chart legend.
	Legend bool
	// DataLabels shows per-point value labels.
	DataLabels bool
	// Anchor is the placement cell; zero means DefaultChartAnchor.
	Anchor ref.Cell
}

// Chart is a typed chart definition bound to a data range of its sheet.
type Chart struct {
	ID   ChartID
	Kind ChartKind
	// Data is the bound data reference, validated against the sheet extent
	// at registration time.
	Data    ref.Range
	Options ChartOptions
}

// AddChart registers a chart bound to dataRange. The kind must be one of the
// supported kinds and the range must lie within the sheet's current extent;
// both failures propagate and leave the chart list unchanged.
func (s *Sheet) AddChart(kind ChartKind, dataRange ref.Range, opts ChartOptions) (ChartID, error) {
	switch kind {
	case ChartBar, ChartLine, ChartPie, ChartScatter:
	default:
		return 0, &UnsupportedChartKindError{Kind: string(kind)}
	}
	if dataRange.MaxRow > s.maxRow || dataRange.MaxCol > s.maxCol {
		return 0, &OutOfBoundsReferenceError{
			Sheet:     s.title,
			Reference: dataRange.String(),
			MaxRow:    s.maxRow,
			MaxCol:    s.maxCol,
		}
	}
	if opts.Anchor == (ref.Cell{}) {
		opts.Anchor = DefaultChartAnchor
	}
	id := ChartID(len(s.charts) + 1)
	s.charts = append(s.charts, Chart{ID: id, Kind: kind, Data: dataRange, Options: opts})
	return id, nil
}

// Charts returns the registered charts in registration order.
func (s *Sheet) Charts() []Chart {
	out := make([]Chart, len(s.charts))
	copy(out, s.charts)
	return out
}
