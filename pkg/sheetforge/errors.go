package sheetforge

import "errors"

// ErrConflictingWidths indicates a single call requested both auto-sized and
// fixed column widths; the two modes are mutually exclusive.
var ErrConflictingWidths = errors.New("auto-size and fixed column widths are mutually exclusive")

// ErrNoWidthMode indicates a column width call that selected neither mode.
var ErrNoWidthMode = errors.New("column width call selected neither auto-size nor fixed widths")
