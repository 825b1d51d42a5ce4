package doc

import (
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/ref"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

// ValidationKind tags the supported data-validation kinds.
type ValidationKind string

// ValidationList restricts input to membership in an explicit literal list.
const ValidationList ValidationKind = "list"

// ColorScaleRule is a two-stop linear color scale over a range. The model
// only stores the rule; interpolation is performed by the serializer, whose
// target format supports color scales natively.
type ColorScaleRule struct {
	Range ref.Range
	// MinColor is the fill for the range's smallest numeric value, RRGGBB hex.
	MinColor string
	// MaxColor is the fill for the range's largest numeric value, RRGGBB hex.
	MaxColor string
}

// FormulaRule applies a style to every cell of a range for which the formula,
// evaluated 1-relative against that cell, is truthy. The formula is opaque to
// the model and forwarded verbatim.
type FormulaRule struct {
	Range   ref.Range
	Formula string
	Style   style.Style
}

// ValidationRule is a per-cell input constraint over a range.
type ValidationRule struct {
	Range ref.Range
	Kind  ValidationKind
	// Values is the allowed-value list for ValidationList.
	Values []string
	// AllowBlank permits empty input alongside the constraint.
	AllowBlank bool
}

// AddColorScale registers a two-stop color-scale rule on the range. Rules are
// kept in registration order; overlapping rules are stored independently with
// no conflict resolution.
func (s *Sheet) AddColorScale(r ref.Range, minColor, maxColor string) {
	s.colorScales = append(s.colorScales, ColorScaleRule{Range: r, MinColor: minColor, MaxColor: maxColor})
}

// ColorScales returns the registered color-scale rules in registration order.
func (s *Sheet) ColorScales() []ColorScaleRule {
	out := make([]ColorScaleRule, len(s.colorScales))
	copy(out, s.colorScales)
	return out
}

// AddFormulaRule registers a conditional style driven by an opaque formula.
// The style is cloned on registration.
func (s *Sheet) AddFormulaRule(r ref.Range, formula string, st style.Style) {
	s.formulaRules = append(s.formulaRules, FormulaRule{Range: r, Formula: formula, Style: st.Clone()})
}

// FormulaRules returns the registered formula rules in registration order.
func (s *Sheet) FormulaRules() []FormulaRule {
	out := make([]FormulaRule, len(s.formulaRules))
	copy(out, s.formulaRules)
	return out
}

// AddValidation registers a per-cell input constraint on the range. Only the
// list kind is supported; any other kind fails with
// UnsupportedValidationKindError.
func (s *Sheet) AddValidation(r ref.Range, kind ValidationKind, values []string, allowBlank bool) error {
	if kind != ValidationList {
		return &UnsupportedValidationKindError{Kind: string(kind)}
	}
	vals := make([]string, len(values))
	copy(vals, values)
	s.validations = append(s.validations, ValidationRule{
		Range:      r,
		Kind:       kind,
		Values:     vals,
		AllowBlank: allowBlank,
	})
	return nil
}

// Validations returns the registered validation rules in registration order.
func (s *Sheet) Validations() []ValidationRule {
	out := make([]ValidationRule, len(s.validations))
	copy(out, s.validations)
	return out
}
