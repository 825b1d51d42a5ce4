package doc

import "fmt"

// CoordinateError indicates a cell coordinate outside the 1-based grid.
type CoordinateError struct {
	Row int
	Col int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("invalid cell coordinate (%d, %d): rows and columns start at 1", e.Row, e.Col)
}

// SheetNotFoundError indicates a sheet title that no sheet in the workbook carries.
type SheetNotFoundError struct {
	Title string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found", e.Title)
}

// DuplicateTitleError indicates a sheet title already in use within the workbook.
type DuplicateTitleError struct {
	Title string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("sheet title %q already in use", e.Title)
}

// InvalidTitleError indicates a sheet title that is empty or exceeds the
// 31-character limit of the persisted layout.
type InvalidTitleError struct {
	Title  string
	Reason string
}

func (e *InvalidTitleError) Error() string {
	return fmt.Sprintf("invalid sheet title %q: %s", e.Title, e.Reason)
}

// OutOfBoundsReferenceError indicates a data reference extending beyond the
// sheet's written extent.
type OutOfBoundsReferenceError struct {
	Sheet     string
	Reference string
	MaxRow    int
	MaxCol    int
}

func (e *OutOfBoundsReferenceError) Error() string {
	return fmt.Sprintf("reference %s exceeds extent of sheet %q (max row %d, max col %d)",
		e.Reference, e.Sheet, e.MaxRow, e.MaxCol)
}

// UnsupportedChartKindError indicates a chart kind outside the supported set.
type UnsupportedChartKindError struct {
	Kind string
}

func (e *UnsupportedChartKindError) Error() string {
	return fmt.Sprintf("unsupported chart kind %q", e.Kind)
}

// UnsupportedValidationKindError indicates a data-validation kind outside the
// supported set.
type UnsupportedValidationKindError struct {
	Kind string
}

func (e *UnsupportedValidationKindError) Error() string {
	return fmt.Sprintf("unsupported validation kind %q", e.Kind)
}

// UnknownFieldError indicates a pivot field name absent from the source
// range's header row.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("pivot field %q not found in source header row", e.Field)
}

// EmptyAggregationError indicates a pivot table requested with no value fields.
type EmptyAggregationError struct{}

func (e *EmptyAggregationError) Error() string {
	return "pivot table requires at least one value field"
}
