package importer

import "strings"

// Kind is the coercion applied to a cell before it lands in a Fields value.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindInt
	KindList
	KindEnum
)

// FieldSpec declares how one spreadsheet column maps onto a draft field.
// A domain schema is a flat list of these; the normalizer is otherwise
// domain-agnostic.
type FieldSpec struct {
	Column     string              // Header label as it appears in the template
	Field      string              // Target field name (defaults to lower-cased Column)
	Kind       Kind                // Coercion applied to the raw cell
	Required   bool                // Identity fields; enforced at validation, not here
	EnumValues []string            // Canonical values for KindEnum
	Normalizer func(string) string // Optional transformation before coercion
}

func (s FieldSpec) name() string {
	if s.Field != "" {
		return s.Field
	}
	return lower(s.Column)
}

// ColumnLabels returns the header labels of a schema, in declaration order.
// Used for template downloads and header detection.
func ColumnLabels(specs []FieldSpec) []string {
	labels := make([]string, len(specs))
	for i, s := range specs {
		labels[i] = s.Column
	}
	return labels
}

// Value is one normalized cell. Only the member matching Kind is meaningful.
type Value struct {
	Kind Kind
	Text string
	Num  float64
	Int  int
	List []string
}

// Fields holds the normalized values of one row, keyed by field name.
// A field that was empty or could not be coerced is simply absent.
type Fields map[string]Value

// Has reports whether the field was populated in the source row.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Text returns the field's text value, or "" when absent.
func (f Fields) Text(name string) string {
	return f[name].Text
}

// Num returns the field's numeric value and whether it was present.
func (f Fields) Num(name string) (float64, bool) {
	v, ok := f[name]
	return v.Num, ok
}

// NumPtr returns the numeric value as a pointer, nil when absent.
// Optional scalar entity fields use pointer-absence to drive merge rules.
func (f Fields) NumPtr(name string) *float64 {
	v, ok := f[name]
	if !ok {
		return nil
	}
	n := v.Num
	return &n
}

// Int returns the field's integer value and whether it was present.
func (f Fields) Int(name string) (int, bool) {
	v, ok := f[name]
	return v.Int, ok
}

// List returns the field's list value, nil when absent.
func (f Fields) List(name string) []string {
	return f[name].List
}

func lower(s string) string { return strings.ToLower(s) }
