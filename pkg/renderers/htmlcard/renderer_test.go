package htmlcard_test

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	presenter "github.com/goliatone/go-presenter"
	"github.com/goliatone/go-presenter/pkg/record"
	"github.com/goliatone/go-presenter/pkg/render"
	"github.com/goliatone/go-presenter/pkg/renderers/htmlcard"
)

func presentUser(t *testing.T) *presenter.Presenter {
	t.Helper()

	user := record.New([]presenter.Attr{
		{Name: "id", Value: 1},
		{Name: "first_name", Value: "David"},
		{Name: "last_name", Value: "Hemphill"},
		{Name: "password", Value: "secret"},
	})
	variant := presenter.NewVariant("card",
		presenter.WithHidden("password"),
		presenter.WithMutator("full_name", func(p *presenter.Presenter) (any, error) {
			first, _ := p.Model().Attribute("first_name")
			last, _ := p.Model().Attribute("last_name")
			return first.(string) + " " + last.(string), nil
		}),
	)
	p, err := presenter.New(user, variant)
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	return p
}

func TestRenderer_Render(t *testing.T) {
	renderer, err := htmlcard.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "htmlcard" {
		t.Fatalf("unexpected name: %s", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type: %s", renderer.ContentType())
	}

	out, err := renderer.Render(context.Background(), presentUser(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, `data-attribute="full_name"`) {
		t.Fatalf("mutated attribute row missing:\n%s", html)
	}
	if !strings.Contains(html, "David Hemphill") {
		t.Fatalf("mutated value missing:\n%s", html)
	}
	if strings.Contains(html, "secret") {
		t.Fatalf("hidden attribute leaked:\n%s", html)
	}
	if !strings.Contains(html, "<dt class=\"presenter-card__label\">First Name</dt>") {
		t.Fatalf("label not humanised:\n%s", html)
	}
	if !strings.Contains(html, "<h1>David Hemphill</h1>") {
		t.Fatalf("title should fall back to full_name:\n%s", html)
	}
}

func TestRenderer_SanitizesValues(t *testing.T) {
	renderer, err := htmlcard.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rec := record.New([]presenter.Attr{
		{Name: "bio", Value: `<strong>bold</strong><script>alert("x")</script>`},
	})
	p, err := presenter.New(rec, presenter.NewVariant("raw"))
	if err != nil {
		t.Fatalf("present: %v", err)
	}

	out, err := renderer.Render(context.Background(), p, render.RenderOptions{Title: "Bio"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("inline markup should survive:\n%s", html)
	}
	if strings.Contains(html, "<script>") || strings.Contains(html, "alert(") {
		t.Fatalf("script should be stripped:\n%s", html)
	}
	if !strings.Contains(html, "<h1>Bio</h1>") {
		t.Fatalf("explicit title should win:\n%s", html)
	}
}

func TestRenderer_ThemeContext(t *testing.T) {
	renderer, err := htmlcard.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	options := render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--brand": "#654321"},
			AssetURL: func(key string) string {
				if key == "stylesheet" {
					return "/assets/acme/theme.css"
				}
				return ""
			},
		},
	}

	out, err := renderer.Render(context.Background(), presentUser(t), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "theme-acme--dark") {
		t.Fatalf("variant class missing:\n%s", html)
	}
	if !strings.Contains(html, "--brand: #654321;") {
		t.Fatalf("css vars missing:\n%s", html)
	}
	if !strings.Contains(html, `href="/assets/acme/theme.css"`) {
		t.Fatalf("stylesheet link missing:\n%s", html)
	}
}

func TestRenderer_NilPresenter(t *testing.T) {
	renderer, err := htmlcard.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected nil presenter error")
	}
}
