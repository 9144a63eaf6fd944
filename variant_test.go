package presenter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	presenter "github.com/goliatone/go-presenter"
)

func TestVariant_ExtendsInheritsAndOverrides(t *testing.T) {
	base := presenter.NewVariant("base",
		presenter.WithMutator("full_name", func(p *presenter.Presenter) (any, error) {
			return "base full name", nil
		}),
		presenter.WithMutator("label", func(p *presenter.Presenter) (any, error) {
			return "base label", nil
		}),
		presenter.WithHidden("first_name"),
		presenter.WithCase(presenter.CaseCamel),
	)
	child := presenter.NewVariant("child",
		presenter.Extends(base),
		presenter.WithMutator("label", func(p *presenter.Presenter) (any, error) {
			return "child label", nil
		}),
		presenter.WithHidden("last_name"),
	)

	p, err := presenter.New(newUser(), child)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}

	attrs, err := p.ToArray()
	if err != nil {
		t.Fatalf("to array: %v", err)
	}

	// Inherited mutator, overridden mutator, replaced hidden list and
	// inherited camel case.
	if value, _ := attrs.Get("fullName"); value != "base full name" {
		t.Fatalf("inherited mutator = %v", value)
	}
	if value, _ := attrs.Get("label"); value != "child label" {
		t.Fatalf("overridden mutator = %v", value)
	}
	if !attrs.Has("firstName") {
		t.Fatalf("child hidden list should replace the parent's, first_name was dropped")
	}
	if attrs.Has("lastName") {
		t.Fatalf("child hidden list not applied")
	}

	// Overriding keeps the parent's declaration position.
	if diff := cmp.Diff([]string{"fullName", "label"}, p.MutatedAttributes()); diff != "" {
		t.Fatalf("mutator order (-want +got):\n%s", diff)
	}
}

func TestVariant_ExtendsCycleRejected(t *testing.T) {
	a := presenter.NewVariant("a")
	b := presenter.NewVariant("b", presenter.Extends(a))
	presenter.Extends(b)(a)

	if _, err := presenter.New(newUser(), a); err == nil {
		t.Fatalf("expected cycle error")
	}
}

func TestParseCaseStyle(t *testing.T) {
	for raw, want := range map[string]presenter.CaseStyle{
		"":      presenter.CaseSnake,
		"snake": presenter.CaseSnake,
		"camel": presenter.CaseCamel,
	} {
		got, err := presenter.ParseCaseStyle(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q = %v, want %v", raw, got, want)
		}
	}

	if _, err := presenter.ParseCaseStyle("kebab"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}
