// Package template wraps a pongo2 template set behind the small surface the
// presenter library needs: compiling attribute templates from strings and
// rendering them against a model's attribute context.
package template

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	globalData map[string]any
	filters    map[string]pongo2.FilterFunction
}

// WithGlobalData seeds context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithFilter registers a pongo2 filter under the given name. Registration is
// process-wide; duplicate names are ignored.
func WithFilter(name string, fn pongo2.FilterFunction) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction)
		}
		cfg.filters[strings.TrimSpace(name)] = fn
	}
}

// WithGoTemplateOptions exists for parity with go-template configured
// callers and is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Engine compiles and caches string templates on a dedicated pongo2 set.
type Engine struct {
	mu      sync.RWMutex
	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
	globals map[string]any
}

// New constructs an Engine from the provided options.
func New(options ...Option) *Engine {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	for name, fn := range cfg.filters {
		// RegisterFilter errors on duplicates; a second engine registering
		// the same filter is fine.
		_ = pongo2.RegisterFilter(name, fn)
	}

	return &Engine{
		set:     pongo2.NewSet("presenter", pongo2.MustNewLocalFileSystemLoader("")),
		cache:   make(map[string]*pongo2.Template),
		globals: cfg.globalData,
	}
}

// RenderString compiles src (cached by source text) and executes it with the
// given data merged over the engine's global context.
func (e *Engine) RenderString(src string, data map[string]any) (string, error) {
	tpl, err := e.compile(src)
	if err != nil {
		return "", err
	}

	ctx := make(pongo2.Context, len(e.globals)+len(data))
	for key, value := range e.globals {
		ctx[key] = value
	}
	for key, value := range data {
		ctx[key] = value
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", errors.Wrap(err, "template: execute")
	}
	return out, nil
}

func (e *Engine) compile(src string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.cache[src]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.cache[src]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromString(src)
	if err != nil {
		return nil, errors.Wrapf(err, "template: compile %q", src)
	}
	e.cache[src] = tpl
	return tpl, nil
}
