// Package record provides an ordered-attribute model implementation of the
// presenter.Model contract. It stands in for whatever persistence layer an
// application uses, and backs the schema-driven definitions produced by
// pkg/openapi.
package record

import (
	"github.com/cockroachdb/errors"

	presenter "github.com/goliatone/go-presenter"
)

// MethodFunc is a named behavior attached to a record, callable by name
// through the record itself or any presenter wrapping it.
type MethodFunc func(r *Record, args ...any) (any, error)

// Option configures a Record under construction.
type Option func(*Record)

// WithMethod attaches a callable method to the record.
func WithMethod(name string, fn MethodFunc) Option {
	return func(r *Record) {
		if r.methods == nil {
			r.methods = make(map[string]MethodFunc)
		}
		r.methods[name] = fn
	}
}

// WithPresenter designates the variant used when the record is presented
// without an explicit one.
func WithPresenter(spec presenter.Spec) Option {
	return func(r *Record) {
		r.presentUsing = spec
	}
}

// Record is a mutable, insertion-ordered attribute bag.
type Record struct {
	attrs        *presenter.AttributeMap
	methods      map[string]MethodFunc
	presentUsing presenter.Spec
}

var (
	_ presenter.Model            = (*Record)(nil)
	_ presenter.DefaultPresenter = (*Record)(nil)
)

// New builds a record from ordered attribute pairs.
func New(attrs []presenter.Attr, options ...Option) *Record {
	r := &Record{attrs: presenter.NewAttributeMap(attrs...)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Attribute returns the stored value for name.
func (r *Record) Attribute(name string) (any, error) {
	value, ok := r.attrs.Get(name)
	if !ok {
		return nil, errors.Wrapf(presenter.ErrAttributeNotFound, "record: attribute %q", name)
	}
	return value, nil
}

// SetAttribute stores value under name. Unlike presenters, records accept
// writes; new names append to the attribute order.
func (r *Record) SetAttribute(name string, value any) error {
	r.attrs.Set(name, value)
	return nil
}

// Call invokes a method registered with WithMethod.
func (r *Record) Call(name string, args ...any) (any, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, errors.Wrapf(presenter.ErrMethodNotFound, "record: method %q", name)
	}
	return fn(r, args...)
}

// ToArray returns a snapshot of the attributes; mutating the result does not
// affect the record.
func (r *Record) ToArray() (*presenter.AttributeMap, error) {
	return r.attrs.Clone(), nil
}

// ToJSON serialises the attributes preserving their order.
func (r *Record) ToJSON() ([]byte, error) {
	return r.attrs.MarshalJSON()
}

// String renders the record as JSON.
func (r *Record) String() string {
	data, err := r.ToJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// PresentUsing returns the default presenter designation, nil when the
// record has none.
func (r *Record) PresentUsing() presenter.Spec {
	return r.presentUsing
}
