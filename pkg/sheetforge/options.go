// Package sheetforge provides a builder API for assembling spreadsheet
// documents in memory before persisting them through the xlsxio adapter.
package sheetforge

import "github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"

// Options configures builder behavior.
type Options struct {
	// IncludeHeader specifies whether AddHeaders writes anything.
	// If nil, defaults to true.
	IncludeHeader *bool
	// Defaults carries the style defaults injected into the workbook.
	// If nil, the stock defaults (bold white on accent blue) are used.
	Defaults *style.Defaults
}

// DefaultOptions returns default builder options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeHeader returns whether AddHeaders writes the header row.
func (o Options) ShouldIncludeHeader() bool {
	if o.IncludeHeader != nil {
		return *o.IncludeHeader
	}
	return true
}

// StyleDefaults returns the effective style defaults.
func (o Options) StyleDefaults() style.Defaults {
	if o.Defaults != nil {
		return *o.Defaults
	}
	return style.NewDefaults()
}
