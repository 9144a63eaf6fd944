package presenter

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-presenter/internal/attrname"
)

// Presenter decorates a Model with the behavior described by a Variant.
// The wrapped reference is fixed at construction; wrapping an existing
// presenter builds a chain with exactly one terminal model at the end.
//
// Presenter implements Model, so anything that accepts a model accepts a
// presented one.
type Presenter struct {
	wrapped Model
	variant *Variant
	cfg     *config

	// instances holds one bound prototype copy per reflected variant in the
	// chain. Populated eagerly so reads never mutate shared state.
	instances map[*Variant]reflect.Value
}

var _ Model = (*Presenter)(nil)

// New wraps a model (or another presenter) with the given variant. A nil
// variant produces a transparent decorator that adds nothing.
func New(wrapped Model, variant *Variant) (*Presenter, error) {
	if wrapped == nil {
		return nil, errors.New("presenter: wrapped model is required")
	}
	cfg, err := variant.resolve()
	if err != nil {
		return nil, err
	}

	p := &Presenter{wrapped: wrapped, variant: variant, cfg: cfg}
	if len(cfg.protoVariants) > 0 {
		p.instances = make(map[*Variant]reflect.Value, len(cfg.protoVariants))
		for _, owner := range cfg.protoVariants {
			inst := reflect.New(owner.proto)
			if owner.protoTemplate.IsValid() {
				inst.Elem().Set(owner.protoTemplate)
			}
			if b, ok := inst.Interface().(binder); ok {
				b.bindPresenter(p)
			}
			p.instances[owner] = inst
		}
	}
	return p, nil
}

// Model returns the directly wrapped object, which may itself be a
// Presenter.
func (p *Presenter) Model() Model {
	return p.wrapped
}

// OriginalModel walks the presenter chain and returns the terminal
// non-presenter model.
func (p *Presenter) OriginalModel() Model {
	wrapped := p.wrapped
	for {
		inner, ok := wrapped.(*Presenter)
		if !ok {
			return wrapped
		}
		wrapped = inner.wrapped
	}
}

// Variant returns the variant this presenter was constructed with.
func (p *Presenter) Variant() *Variant {
	return p.variant
}

// Attribute resolves name against the presenter: a mutator of the same
// (case-normalised) name wins over the wrapped object's attribute. Names the
// chain cannot resolve fail with ErrAttributeNotFound.
func (p *Presenter) Attribute(name string) (any, error) {
	if m, ok := p.mutator(name); ok {
		return m.Compute(p)
	}
	return p.wrapped.Attribute(name)
}

// SetAttribute always fails with ErrWriteNotSupported. Presenters are
// read-only views; the wrapped model is left untouched.
func (p *Presenter) SetAttribute(name string, _ any) error {
	return writeNotSupported(name)
}

// Call invokes a variant method when one is declared under name, otherwise
// forwards the call to the wrapped object.
func (p *Presenter) Call(name string, args ...any) (any, error) {
	if fn, ok := p.cfg.methods[name]; ok {
		return fn(p, args...)
	}
	return p.wrapped.Call(name, args...)
}

func (p *Presenter) mutator(name string) (Mutator, bool) {
	idx, ok := p.cfg.mutatorIdx[attrname.Snake(name)]
	if !ok {
		return Mutator{}, false
	}
	return p.cfg.mutators[idx], true
}

// MutatorsToMap computes every mutator and returns name-to-value in
// declaration order, keys cased per the variant's style.
func (p *Presenter) MutatorsToMap() (*AttributeMap, error) {
	out := NewAttributeMap()
	for _, m := range p.cfg.mutators {
		value, err := m.Compute(p)
		if err != nil {
			return nil, errors.Wrapf(err, "presenter: compute %q", m.Name)
		}
		out.Set(p.cfg.caseStyle.Apply(m.Name), value)
	}
	return out, nil
}

// MutatedAttributes returns the computed attribute names in declaration
// order, cased per the variant's style.
func (p *Presenter) MutatedAttributes() []string {
	names := make([]string, 0, len(p.cfg.mutators))
	for _, m := range p.cfg.mutators {
		names = append(names, p.cfg.caseStyle.Apply(m.Name))
	}
	return names
}

// HiddenAttributes returns the variant's hidden list verbatim, unaffected by
// any visible allow-list.
func (p *Presenter) HiddenAttributes() []string {
	return append([]string(nil), p.cfg.hiddenList...)
}

// ToArray merges the wrapped object's attributes with the mutator outputs
// (mutators win on collision, keeping the model's key position), applies the
// visibility rules and finally the case transform.
//
// Visibility: a non-empty visible list is an allow-list and hidden is
// ignored; otherwise hidden names are dropped; otherwise everything passes.
func (p *Presenter) ToArray() (*AttributeMap, error) {
	base, err := p.wrapped.ToArray()
	if err != nil {
		return nil, err
	}

	merged := base.Clone()
	// Mutators override by normalised name: a computed "full_name" replaces
	// a stored "fullName" under the model's own spelling and key position.
	stored := make(map[string]string, merged.Len())
	for _, key := range merged.Keys() {
		stored[attrname.Snake(key)] = key
	}
	for _, m := range p.cfg.mutators {
		value, err := m.Compute(p)
		if err != nil {
			return nil, errors.Wrapf(err, "presenter: compute %q", m.Name)
		}
		key := m.Name
		if existing, ok := stored[m.Name]; ok {
			key = existing
		}
		merged.Set(key, value)
	}

	out := NewAttributeMap()
	for _, pair := range merged.Pairs() {
		name := attrname.Snake(pair.Name)
		if p.cfg.visible.Len() > 0 {
			if !p.cfg.visible.Contain(name) {
				continue
			}
		} else if p.cfg.hidden.Contain(name) {
			continue
		}
		out.Set(p.cfg.caseStyle.Apply(pair.Name), pair.Value)
	}
	return out, nil
}

// ToJSON serialises ToArray, preserving its key order.
func (p *Presenter) ToJSON() ([]byte, error) {
	attrs, err := p.ToArray()
	if err != nil {
		return nil, err
	}
	return attrs.MarshalJSON()
}

// String renders the presenter as its JSON form. Serialization failures
// collapse to the empty string; callers that need the error use ToJSON.
func (p *Presenter) String() string {
	data, err := p.ToJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

func (p *Presenter) protoInstance(owner *Variant) (reflect.Value, error) {
	inst, ok := p.instances[owner]
	if !ok {
		return reflect.Value{}, errors.Newf("presenter: variant %q has no bound prototype", owner.Name())
	}
	return inst, nil
}
