package record

import (
	"github.com/cockroachdb/errors"

	presenter "github.com/goliatone/go-presenter"
)

// Field describes one attribute of a Definition: its name, loose type hints
// and the default applied when instantiation omits it.
type Field struct {
	Name    string
	Type    string
	Format  string
	Default any
}

// Definition is a named record shape, typically extracted from an OpenAPI
// component schema. Field order is the attribute order of every record built
// from it. Hidden and Case carry presenter hints declared alongside the
// schema.
type Definition struct {
	Name   string
	Fields []Field
	Hidden []string
	Case   string
}

// FieldNames returns the field names in definition order.
func (d *Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}
	return names
}

// New instantiates a record from the definition. Values not named by the
// definition are rejected; fields missing from values fall back to the field
// default.
func (d *Definition) New(values map[string]any, options ...Option) (*Record, error) {
	known := make(map[string]struct{}, len(d.Fields))
	attrs := make([]presenter.Attr, 0, len(d.Fields))
	for _, field := range d.Fields {
		known[field.Name] = struct{}{}
		value, ok := values[field.Name]
		if !ok {
			value = field.Default
		}
		attrs = append(attrs, presenter.Attr{Name: field.Name, Value: value})
	}

	for name := range values {
		if _, ok := known[name]; !ok {
			return nil, errors.Wrapf(presenter.ErrAttributeNotFound, "record: definition %q has no field %q", d.Name, name)
		}
	}

	return New(attrs, options...), nil
}

// Variant builds a presenter variant from the definition's hints: the hidden
// list and case style. Returns an error when the case hint is not a known
// style.
func (d *Definition) Variant() (*presenter.Variant, error) {
	style, err := presenter.ParseCaseStyle(d.Case)
	if err != nil {
		return nil, errors.Wrapf(err, "record: definition %q", d.Name)
	}
	options := []presenter.VariantOption{presenter.WithCase(style)}
	if len(d.Hidden) > 0 {
		options = append(options, presenter.WithHidden(d.Hidden...))
	}
	return presenter.NewVariant(d.Name, options...), nil
}
