package presenter

import (
	"github.com/cockroachdb/errors"
)

// Spec selects the variant Present applies. It is satisfied by *Variant and
// by Closure; models implementing DefaultPresenter return one from
// PresentUsing.
type Spec interface {
	variantFor(m Model) (*Variant, error)
}

func (v *Variant) variantFor(Model) (*Variant, error) {
	return v, nil
}

// Closure is an ad hoc presenter variant: invoked with the model being
// presented, it returns the computed attributes as ordered pairs. A pair
// value of type func() any, func(*Presenter) any, or
// func(*Presenter) (any, error) is evaluated lazily on every read; any other
// value is served as-is.
type Closure func(m Model) []Attr

func (c Closure) variantFor(m Model) (*Variant, error) {
	if c == nil {
		return nil, errors.New("presenter: closure is required")
	}
	options := make([]VariantOption, 0, 4)
	for _, attr := range c(m) {
		options = append(options, WithMutator(attr.Name, computeFor(attr.Value)))
	}
	return NewVariant("closure", options...), nil
}

func computeFor(value any) ComputeFunc {
	switch fn := value.(type) {
	case ComputeFunc:
		return fn
	case func(*Presenter) (any, error):
		return fn
	case func(*Presenter) any:
		return func(p *Presenter) (any, error) { return fn(p), nil }
	case func() any:
		return func(*Presenter) (any, error) { return fn(), nil }
	default:
		return func(*Presenter) (any, error) { return value, nil }
	}
}

// Present wraps model in a presenter. With a nil spec the model's own
// default designation is consulted; models without one fail with
// ErrNoDefaultPresenter. An already-presented model is wrapped again, so
// repeated presentation grows the chain by one each time.
func Present(model Model, spec Spec) (*Presenter, error) {
	if model == nil {
		return nil, errors.New("presenter: model is required")
	}
	if spec == nil {
		declared, ok := model.(DefaultPresenter)
		if !ok {
			return nil, errors.Wrapf(ErrNoDefaultPresenter, "model %T", model)
		}
		spec = declared.PresentUsing()
		if spec == nil {
			return nil, errors.Wrapf(ErrNoDefaultPresenter, "model %T", model)
		}
	}
	v, err := spec.variantFor(model)
	if err != nil {
		return nil, err
	}
	return New(model, v)
}

// MustPresent panics on failure. Useful in tests and package wiring.
func MustPresent(model Model, spec Spec) *Presenter {
	p, err := Present(model, spec)
	if err != nil {
		panic(err)
	}
	return p
}
