package presenter

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-presenter/internal/attrname"
	"github.com/goliatone/go-presenter/internal/typeutil"
)

// CaseStyle selects how attribute keys are rendered on output. The default,
// CaseSnake, leaves keys untouched.
type CaseStyle int

const (
	CaseSnake CaseStyle = iota
	CaseCamel
)

func (s CaseStyle) String() string {
	if s == CaseCamel {
		return "camel"
	}
	return "snake"
}

// Apply rewrites a single output key according to the style.
func (s CaseStyle) Apply(key string) string {
	if s == CaseCamel {
		return attrname.Camel(key)
	}
	return key
}

// ParseCaseStyle maps the configuration spellings "snake" and "camel" onto a
// CaseStyle. Anything else is an error.
func ParseCaseStyle(raw string) (CaseStyle, error) {
	switch raw {
	case "", "snake":
		return CaseSnake, nil
	case "camel":
		return CaseCamel, nil
	default:
		return CaseSnake, errors.Newf("presenter: unknown case style %q", raw)
	}
}

// ComputeFunc produces the value of a computed attribute. It receives the
// presenter so it can read sibling attributes through the usual precedence
// rules.
type ComputeFunc func(p *Presenter) (any, error)

// MethodFunc is a presenter-level method invokable through Call. Variant
// methods shadow same-named methods on the wrapped object.
type MethodFunc func(p *Presenter, args ...any) (any, error)

// Mutator binds a computed attribute's public (snake_case) name to the
// function producing its value.
type Mutator struct {
	Name    string
	Compute ComputeFunc
}

// Variant is a presenter configuration: an ordered mutator registry, named
// methods, hidden/visible lists and the output case style. Variants compose
// through Extends; the effective configuration is resolved when a Presenter
// is constructed, not at call time.
type Variant struct {
	name     string
	parent   *Variant
	mutators []Mutator
	methods  map[string]MethodFunc

	hidden     []string
	hiddenSet  bool
	visible    []string
	visibleSet bool

	caseStyle CaseStyle
	caseSet   bool

	// proto is non-nil for variants built by Reflect; each presenter gets a
	// fresh prototype instance so Base-bound state never leaks between
	// presenters. protoTemplate holds the caller's prototype value, copied
	// into every instance before binding.
	proto         reflect.Type
	protoTemplate reflect.Value
}

// VariantOption configures a Variant under construction.
type VariantOption func(*Variant)

// NewVariant builds a variant from options. The name is informational and
// shows up in error messages.
func NewVariant(name string, options ...VariantOption) *Variant {
	v := &Variant{name: name}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Extends declares a parent variant whose mutators, methods and lists the
// child inherits unless it overrides them.
func Extends(parent *Variant) VariantOption {
	return func(v *Variant) {
		v.parent = parent
	}
}

// WithMutator registers a computed attribute. The name may be given in any
// casing; it is stored in snake_case. Registering an existing name replaces
// the function but keeps the original position.
func WithMutator(name string, fn ComputeFunc) VariantOption {
	return func(v *Variant) {
		v.addMutator(attrname.Snake(name), fn)
	}
}

// WithMethod registers a presenter method reachable through Call.
func WithMethod(name string, fn MethodFunc) VariantOption {
	return func(v *Variant) {
		if v.methods == nil {
			v.methods = make(map[string]MethodFunc)
		}
		v.methods[name] = fn
	}
}

// WithHidden sets the attribute names excluded from serialised output.
func WithHidden(names ...string) VariantOption {
	return func(v *Variant) {
		v.hidden = append([]string(nil), names...)
		v.hiddenSet = true
	}
}

// WithVisible sets the allow-list of attribute names for serialised output.
// A non-empty visible list takes precedence over hidden.
func WithVisible(names ...string) VariantOption {
	return func(v *Variant) {
		v.visible = append([]string(nil), names...)
		v.visibleSet = true
	}
}

// WithCase sets the output key casing.
func WithCase(style CaseStyle) VariantOption {
	return func(v *Variant) {
		v.caseStyle = style
		v.caseSet = true
	}
}

// Name returns the variant's informational name.
func (v *Variant) Name() string {
	if v == nil {
		return ""
	}
	return v.name
}

func (v *Variant) addMutator(name string, fn ComputeFunc) {
	for i := range v.mutators {
		if v.mutators[i].Name == name {
			v.mutators[i].Compute = fn
			return
		}
	}
	v.mutators = append(v.mutators, Mutator{Name: name, Compute: fn})
}

// config is the flattened result of walking a variant's Extends chain.
// Parents contribute first so children override in place.
type config struct {
	mutators   []Mutator
	mutatorIdx map[string]int
	methods    map[string]MethodFunc
	hidden     typeutil.Set[string]
	hiddenList []string
	visible    typeutil.Set[string]
	caseStyle  CaseStyle

	// protoVariants are the chain members built by Reflect, in root-first
	// order; each needs a prototype instance bound per presenter.
	protoVariants []*Variant
}

var emptyConfig = &config{}

// resolve flattens the chain into a single configuration. Cycles in Extends
// are caller bugs and reported as errors rather than looping forever.
func (v *Variant) resolve() (*config, error) {
	if v == nil {
		return emptyConfig, nil
	}

	chain := make([]*Variant, 0, 2)
	seen := typeutil.NewSet[*Variant]()
	for cur := v; cur != nil; cur = cur.parent {
		if seen.Contain(cur) {
			return nil, errors.Newf("presenter: variant %q extends itself", v.name)
		}
		seen.Insert(cur)
		chain = append(chain, cur)
	}

	cfg := &config{
		mutatorIdx: make(map[string]int),
		methods:    make(map[string]MethodFunc),
	}

	// Walk root-first so parent declarations keep their position and
	// children override.
	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i]
		for _, m := range cur.mutators {
			if at, ok := cfg.mutatorIdx[m.Name]; ok {
				cfg.mutators[at] = m
				continue
			}
			cfg.mutatorIdx[m.Name] = len(cfg.mutators)
			cfg.mutators = append(cfg.mutators, m)
		}
		for name, fn := range cur.methods {
			cfg.methods[name] = fn
		}
		if cur.hiddenSet {
			cfg.hiddenList = append([]string(nil), cur.hidden...)
		}
		if cur.visibleSet {
			cfg.visible = typeutil.NewSet(normalizeNames(cur.visible)...)
		}
		if cur.caseSet {
			cfg.caseStyle = cur.caseStyle
		}
		if cur.proto != nil {
			cfg.protoVariants = append(cfg.protoVariants, cur)
		}
	}

	cfg.hidden = typeutil.NewSet(normalizeNames(cfg.hiddenList)...)
	return cfg, nil
}

// normalizeNames maps visibility list entries onto the canonical snake_case
// lookup keys, so WithHidden("firstName") hides a stored "first_name".
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, attrname.Snake(name))
	}
	return out
}
