package presenter

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-presenter/internal/attrname"
	"github.com/goliatone/go-presenter/internal/typeutil"
)

// HiddenProvider lets a prototype struct declare its hidden attribute list.
type HiddenProvider interface {
	HiddenAttributes() []string
}

// VisibleProvider lets a prototype struct declare its visible allow-list.
type VisibleProvider interface {
	VisibleAttributes() []string
}

// CaseProvider lets a prototype struct declare its output key casing.
type CaseProvider interface {
	PresenterCase() CaseStyle
}

type binder interface {
	bindPresenter(p *Presenter)
}

// Base is embedded into prototype structs passed to Reflect. It gives
// mutator methods access to the presenter they run under, so a computed
// attribute can read sibling attributes with the usual mutator-first
// precedence.
type Base struct {
	p *Presenter
}

func (b *Base) bindPresenter(p *Presenter) { b.p = p }

// Presenter returns the presenter this instance is bound to.
func (b *Base) Presenter() *Presenter { return b.p }

// Get resolves an attribute through the bound presenter.
func (b *Base) Get(name string) (any, error) {
	if b.p == nil {
		return nil, errors.New("presenter: prototype is not bound to a presenter")
	}
	return b.p.Attribute(name)
}

// Attr resolves an attribute, returning nil when it cannot be resolved.
// Convenient inside mutators that know the attribute exists.
func (b *Base) Attr(name string) any {
	value, err := b.Get(name)
	if err != nil {
		return nil
	}
	return value
}

// AttrString resolves an attribute and renders it as a string. Unresolvable
// attributes come back empty.
func (b *Base) AttrString(name string) string {
	value, err := b.Get(name)
	if err != nil || value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// baseMethodNames are the exported methods Base promotes into prototypes;
// they are infrastructure, not presenter methods, and are skipped when the
// prototype's method set is scanned.
var baseMethodNames = typeutil.NewSet(
	"Presenter", "Get", "Attr", "AttrString",
	"HiddenAttributes", "VisibleAttributes", "PresenterCase",
)

// Reflect builds a Variant from a prototype struct. Every method named
// Get<Name>Attribute becomes a mutator for the snake_case form of <Name>;
// every other exported method becomes a presenter method reachable through
// Call. Promoted methods count, so embedding one prototype in another
// inherits its mutators the way variant hierarchies are expected to.
//
// The prototype must be a pointer to a struct. Each presenter constructed
// with the returned variant gets its own copy of the prototype value, bound
// through Base when it is embedded. Options run last and may override
// anything the prototype declares.
func Reflect(prototype any, options ...VariantOption) (*Variant, error) {
	if prototype == nil {
		return nil, errors.New("presenter: prototype is required")
	}
	t := reflect.TypeOf(prototype)
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, errors.Newf("presenter: prototype must be a pointer to struct, got %T", prototype)
	}

	v := &Variant{
		name:  t.Elem().Name(),
		proto: t.Elem(),
	}
	v.protoTemplate = reflect.ValueOf(prototype).Elem()

	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if baseMethodNames.Contain(method.Name) {
			continue
		}
		if attr, ok := attrname.FromMutator(method.Name); ok {
			fn, err := mutatorFunc(v, method)
			if err != nil {
				return nil, err
			}
			v.addMutator(attr, fn)
			continue
		}
		name := method.Name
		idx := method.Index
		owner := v
		if v.methods == nil {
			v.methods = make(map[string]MethodFunc)
		}
		v.methods[name] = func(p *Presenter, args ...any) (any, error) {
			inst, err := p.protoInstance(owner)
			if err != nil {
				return nil, err
			}
			return callReflected(inst.Method(idx), name, args)
		}
	}

	if provider, ok := prototype.(HiddenProvider); ok {
		v.hidden = append([]string(nil), provider.HiddenAttributes()...)
		v.hiddenSet = true
	}
	if provider, ok := prototype.(VisibleProvider); ok {
		v.visible = append([]string(nil), provider.VisibleAttributes()...)
		v.visibleSet = true
	}
	if provider, ok := prototype.(CaseProvider); ok {
		v.caseStyle = provider.PresenterCase()
		v.caseSet = true
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v, nil
}

// MustReflect panics on failure. Useful for package-level variant wiring.
func MustReflect(prototype any, options ...VariantOption) *Variant {
	v, err := Reflect(prototype, options...)
	if err != nil {
		panic(err)
	}
	return v
}

func mutatorFunc(owner *Variant, method reflect.Method) (ComputeFunc, error) {
	mt := method.Func.Type()
	// Receiver only; one result, or a result plus error.
	if mt.NumIn() != 1 {
		return nil, errors.Newf("presenter: mutator %s must not take arguments", method.Name)
	}
	switch mt.NumOut() {
	case 1:
	case 2:
		if !mt.Out(1).Implements(errorInterface) {
			return nil, errors.Newf("presenter: mutator %s second result must be error", method.Name)
		}
	default:
		return nil, errors.Newf("presenter: mutator %s must return one value, or a value and an error", method.Name)
	}

	idx := method.Index
	return func(p *Presenter) (any, error) {
		inst, err := p.protoInstance(owner)
		if err != nil {
			return nil, err
		}
		results := inst.Method(idx).Call(nil)
		if len(results) == 2 {
			if errVal := results[1]; !errVal.IsNil() {
				return nil, errVal.Interface().(error)
			}
		}
		return results[0].Interface(), nil
	}, nil
}

var errorInterface = reflect.TypeOf((*error)(nil)).Elem()

func callReflected(method reflect.Value, name string, args []any) (any, error) {
	mt := method.Type()
	if mt.IsVariadic() {
		if len(args) < mt.NumIn()-1 {
			return nil, errors.Newf("presenter: method %s expects at least %d arguments, got %d", name, mt.NumIn()-1, len(args))
		}
	} else if len(args) != mt.NumIn() {
		return nil, errors.Newf("presenter: method %s expects %d arguments, got %d", name, mt.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var paramType reflect.Type
		if mt.IsVariadic() && i >= mt.NumIn()-1 {
			paramType = mt.In(mt.NumIn() - 1).Elem()
		} else {
			paramType = mt.In(i)
		}
		if arg == nil {
			in[i] = reflect.Zero(paramType)
			continue
		}
		value := reflect.ValueOf(arg)
		if !value.Type().AssignableTo(paramType) {
			return nil, errors.Newf("presenter: method %s argument %d must be %s, got %T", name, i, paramType, arg)
		}
		in[i] = value
	}

	results := method.Call(in)
	if n := len(results); n > 0 && mt.Out(n-1).Implements(errorInterface) {
		if errVal := results[n-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
		results = results[:n-1]
	}
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0].Interface(), nil
	default:
		out := make([]any, 0, len(results))
		for _, r := range results {
			out = append(out, r.Interface())
		}
		return out, nil
	}
}
