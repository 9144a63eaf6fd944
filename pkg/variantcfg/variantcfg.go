// Package variantcfg loads presenter variants declared in YAML or JSON
// files. Declared variants configure hidden/visible lists and key casing,
// and may define computed attributes as template strings rendered against
// the wrapped model's attributes.
package variantcfg

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	presenter "github.com/goliatone/go-presenter"
	"github.com/goliatone/go-presenter/internal/template"
)

// Store holds the variants declared across the loaded files.
type Store struct {
	variants map[string]*presenter.Variant
}

// Option configures loading.
type Option func(*loader)

// WithEngine supplies the template engine used for computed attributes. A
// default engine is created when none is given.
func WithEngine(engine *template.Engine) Option {
	return func(l *loader) {
		l.engine = engine
	}
}

type loader struct {
	engine *template.Engine
	files  map[string]variantFile
	order  map[string]string // variant name -> declaring file, for errors
}

type documentFile struct {
	Variants map[string]variantFile `json:"variants" yaml:"variants"`
}

type variantFile struct {
	Extends    string    `json:"extends" yaml:"extends"`
	Case       string    `json:"case" yaml:"case"`
	Hidden     []string  `json:"hidden" yaml:"hidden"`
	Visible    []string  `json:"visible" yaml:"visible"`
	Attributes yaml.Node `json:"attributes" yaml:"attributes"`
}

// LoadFS walks the provided filesystem and parses every variant file. When
// fsys is nil or holds no variant files the returned store is empty.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	store := &Store{variants: make(map[string]*presenter.Variant)}
	if fsys == nil {
		return store, nil
	}

	l := &loader{
		files: make(map[string]variantFile),
		order: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	if l.engine == nil {
		l.engine = template.New()
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isVariantFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return errors.Wrapf(err, "variantcfg: read %s", path)
		}

		var doc documentFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.Wrapf(err, "variantcfg: parse %s", path)
		}

		for rawName, file := range doc.Variants {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return errors.Newf("variantcfg: file %s declares a variant without a name", path)
			}
			if existing, ok := l.order[name]; ok {
				return errors.Newf("variantcfg: duplicate variant %q (files %s and %s)", name, existing, path)
			}
			l.files[name] = file
			l.order[name] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for name := range l.files {
		if _, err := l.build(store, name, nil); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func isVariantFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func (l *loader) build(store *Store, name string, visiting []string) (*presenter.Variant, error) {
	if v, ok := store.variants[name]; ok {
		return v, nil
	}
	for _, seen := range visiting {
		if seen == name {
			return nil, errors.Newf("variantcfg: variant %q participates in an extends cycle (%s)", name, strings.Join(append(visiting, name), " -> "))
		}
	}

	file, ok := l.files[name]
	if !ok {
		return nil, errors.Newf("variantcfg: variant %q extends unknown variant (file %s)", visiting[len(visiting)-1], l.order[visiting[len(visiting)-1]])
	}

	options := make([]presenter.VariantOption, 0, 6)
	if parent := strings.TrimSpace(file.Extends); parent != "" {
		base, err := l.build(store, parent, append(visiting, name))
		if err != nil {
			return nil, err
		}
		options = append(options, presenter.Extends(base))
	}

	if file.Case != "" {
		style, err := presenter.ParseCaseStyle(file.Case)
		if err != nil {
			return nil, errors.Wrapf(err, "variantcfg: variant %q", name)
		}
		options = append(options, presenter.WithCase(style))
	}
	if len(file.Hidden) > 0 {
		options = append(options, presenter.WithHidden(file.Hidden...))
	}
	if len(file.Visible) > 0 {
		options = append(options, presenter.WithVisible(file.Visible...))
	}

	attrs, err := attributeTemplates(name, file.Attributes)
	if err != nil {
		return nil, err
	}
	for _, attr := range attrs {
		options = append(options, presenter.WithMutator(attr.name, l.templateMutator(attr.source)))
	}

	v := presenter.NewVariant(name, options...)
	store.variants[name] = v
	return v, nil
}

type attributeTemplate struct {
	name   string
	source string
}

// attributeTemplates decodes the attributes mapping from its yaml.Node form,
// which is the only way to keep the declaration order a plain map loses.
func attributeTemplates(variant string, node yaml.Node) ([]attributeTemplate, error) {
	if node.Kind == 0 || node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Newf("variantcfg: variant %q attributes must be a mapping", variant)
	}

	out := make([]attributeTemplate, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, errors.Newf("variantcfg: variant %q attribute %q must be a template string", variant, key.Value)
		}
		out = append(out, attributeTemplate{name: key.Value, source: value.Value})
	}
	return out, nil
}

func (l *loader) templateMutator(source string) presenter.ComputeFunc {
	engine := l.engine
	return func(p *presenter.Presenter) (any, error) {
		attrs, err := p.Model().ToArray()
		if err != nil {
			return nil, err
		}
		data := make(map[string]any, attrs.Len())
		for _, pair := range attrs.Pairs() {
			data[pair.Name] = pair.Value
		}
		return engine.RenderString(source, data)
	}
}

// Variant returns the named variant.
func (s *Store) Variant(name string) (*presenter.Variant, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.variants[name]
	return v, ok
}

// Names returns the declared variant names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.variants))
	for name := range s.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether any variants were loaded.
func (s *Store) Empty() bool {
	return s == nil || len(s.variants) == 0
}
