// Package htmlcard renders a presented model as a standalone HTML detail
// card. Attribute values pass through an HTML sanitizer so models may carry
// limited inline markup; theme tokens surface as CSS custom properties.
package htmlcard

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	presenter "github.com/goliatone/go-presenter"
	"github.com/goliatone/go-presenter/internal/template"
	"github.com/goliatone/go-presenter/pkg/render"
)

const templateName = "templates/card.html"

type Option func(*config)

type config struct {
	templateFS fs.FS
	engine     *template.Engine
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithEngine injects a shared template engine.
func WithEngine(engine *template.Engine) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// Renderer emits the HTML card.
type Renderer struct {
	engine   *template.Engine
	template string
}

// Check the renderer contract at compile time.
var _ render.Renderer = (*Renderer)(nil)

// New constructs the card renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.engine == nil {
		cfg.engine = template.New()
	}

	source, err := fs.ReadFile(cfg.templateFS, templateName)
	if err != nil {
		return nil, errors.Wrap(err, "htmlcard: read card template")
	}

	return &Renderer{engine: cfg.engine, template: string(source)}, nil
}

func (r *Renderer) Name() string {
	return "htmlcard"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render presents the model's attributes as definition-list rows.
func (r *Renderer) Render(ctx context.Context, p *presenter.Presenter, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("htmlcard: presenter is required")
	}

	attrs, err := p.ToArray()
	if err != nil {
		return nil, errors.Wrap(err, "htmlcard: collect attributes")
	}

	rows := make([]map[string]any, 0, attrs.Len())
	for _, pair := range attrs.Pairs() {
		rows = append(rows, map[string]any{
			"name":  pair.Name,
			"label": labelFor(pair.Name),
			"value": sanitizeValue(pair.Value),
		})
	}

	data := map[string]any{
		"title": cardTitle(options.Title, attrs),
		"rows":  rows,
	}
	if theme := options.Theme; theme != nil {
		data["theme_name"] = theme.Theme
		data["theme_variant"] = theme.Variant
		data["css_vars_style"] = cssVarsStyle(theme.CSSVars)
		if theme.AssetURL != nil {
			data["stylesheet_url"] = theme.AssetURL("stylesheet")
		}
	}

	out, err := r.engine.RenderString(r.template, data)
	if err != nil {
		return nil, errors.Wrap(err, "htmlcard: render card")
	}
	return []byte(out), nil
}

// cardTitle prefers the explicit option, then common naming attributes, then
// a generic fallback.
func cardTitle(explicit string, attrs *presenter.AttributeMap) string {
	if explicit != "" {
		return explicit
	}
	for _, key := range []string{"title", "name", "full_name", "fullName"} {
		if value, ok := attrs.Get(key); ok {
			if s, ok := value.(string); ok && s != "" {
				return s
			}
		}
	}
	return "Record"
}

func labelFor(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeValue(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return sanitizeMarkup(v)
	case fmt.Stringer:
		return sanitizeMarkup(v.String())
	default:
		return sanitizeMarkup(fmt.Sprintf("%v", v))
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
