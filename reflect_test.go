package presenter_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	presenter "github.com/goliatone/go-presenter"
)

// UserPresenter is the struct-based variant used across the reflection
// tests: one computed attribute plus a hidden list.
type UserPresenter struct {
	presenter.Base
	Separator string
}

func (u *UserPresenter) GetFullNameAttribute() any {
	sep := u.Separator
	if sep == "" {
		sep = " "
	}
	return u.AttrString("first_name") + sep + u.AttrString("last_name")
}

func (u *UserPresenter) HiddenAttributes() []string {
	return []string{"id"}
}

func (u *UserPresenter) Initials() string {
	first := u.AttrString("first_name")
	last := u.AttrString("last_name")
	if first == "" || last == "" {
		return ""
	}
	return strings.ToUpper(first[:1] + last[:1])
}

// AdminPresenter embeds UserPresenter; promoted mutators are inherited, its
// own mutator is added on top.
type AdminPresenter struct {
	UserPresenter
}

func (a *AdminPresenter) GetRoleAttribute() any {
	return "admin"
}

func TestReflect_MutatorsFromMethodNames(t *testing.T) {
	v, err := presenter.Reflect(&UserPresenter{})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}

	p, err := presenter.New(newUser(), v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}

	value, err := p.Attribute("full_name")
	if err != nil {
		t.Fatalf("full_name: %v", err)
	}
	if value != "David Hemphill" {
		t.Fatalf("full_name = %v", value)
	}

	attrs, err := p.ToArray()
	if err != nil {
		t.Fatalf("to array: %v", err)
	}
	if attrs.Has("id") {
		t.Fatalf("hidden attribute leaked: %v", attrs.Keys())
	}
	if diff := cmp.Diff([]string{"first_name", "last_name", "full_name"}, attrs.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
}

func TestReflect_PrototypeStateIsCopied(t *testing.T) {
	v, err := presenter.Reflect(&UserPresenter{Separator: " Lee "})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}

	p, err := presenter.New(newUser(), v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	value, err := p.Attribute("full_name")
	if err != nil {
		t.Fatalf("full_name: %v", err)
	}
	if value != "David Lee Hemphill" {
		t.Fatalf("full_name = %v", value)
	}
}

func TestReflect_ExportedMethodsBecomePresenterMethods(t *testing.T) {
	v, err := presenter.Reflect(&UserPresenter{})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}
	p, err := presenter.New(newUser(), v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}

	out, err := p.Call("Initials")
	if err != nil {
		t.Fatalf("call Initials: %v", err)
	}
	if out != "DH" {
		t.Fatalf("Initials = %v", out)
	}
}

func TestReflect_EmbeddingInheritsMutators(t *testing.T) {
	v, err := presenter.Reflect(&AdminPresenter{})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}
	p, err := presenter.New(newUser(), v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}

	attrs, err := p.ToArray()
	if err != nil {
		t.Fatalf("to array: %v", err)
	}
	if value, _ := attrs.Get("full_name"); value != "David Hemphill" {
		t.Fatalf("inherited mutator = %v", value)
	}
	if value, _ := attrs.Get("role"); value != "admin" {
		t.Fatalf("own mutator = %v", value)
	}
	// The promoted hidden list is inherited too.
	if attrs.Has("id") {
		t.Fatalf("inherited hidden list not applied")
	}
}

func TestReflect_OptionsOverrideProviders(t *testing.T) {
	v, err := presenter.Reflect(&UserPresenter{}, presenter.WithHidden("last_name"))
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}
	p, err := presenter.New(newUser(), v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	attrs, err := p.ToArray()
	if err != nil {
		t.Fatalf("to array: %v", err)
	}
	if !attrs.Has("id") {
		t.Fatalf("option should replace the provider's hidden list")
	}
	if attrs.Has("last_name") {
		t.Fatalf("option hidden list not applied")
	}
}

func TestReflect_RejectsNonStructPrototypes(t *testing.T) {
	if _, err := presenter.Reflect(42); err == nil {
		t.Fatalf("expected error for non-pointer prototype")
	}
	if _, err := presenter.Reflect(nil); err == nil {
		t.Fatalf("expected error for nil prototype")
	}
}

func TestReflect_SeparatePresentersGetSeparateInstances(t *testing.T) {
	v, err := presenter.Reflect(&UserPresenter{})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}

	alice := newUser()
	bob := newUser()
	if err := bob.SetAttribute("first_name", "Bob"); err != nil {
		t.Fatalf("set: %v", err)
	}

	pa, err := presenter.New(alice, v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	pb, err := presenter.New(bob, v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}

	va, _ := pa.Attribute("full_name")
	vb, _ := pb.Attribute("full_name")
	if va != "David Hemphill" || vb != "Bob Hemphill" {
		t.Fatalf("instances shared across presenters: %v / %v", va, vb)
	}
}

// FormalPresenter exercises methods that take arguments.
type FormalPresenter struct {
	presenter.Base
}

func (f *FormalPresenter) Salute(greeting string) string {
	return greeting + ", " + f.AttrString("first_name")
}

func TestReflect_MethodArgumentTypes(t *testing.T) {
	v, err := presenter.Reflect(&FormalPresenter{})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}
	p, err := presenter.New(newUser(), v)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}

	out, err := p.Call("Salute", "Hello")
	if err != nil {
		t.Fatalf("call Salute: %v", err)
	}
	if out != "Hello, David" {
		t.Fatalf("Salute = %v", out)
	}

	// A mismatched argument type is an error, not a reflect panic.
	if _, err := p.Call("Salute", 42); err == nil {
		t.Fatalf("expected error for int argument to string parameter")
	}
	if _, err := p.Call("Salute"); err == nil {
		t.Fatalf("expected arity error")
	}
}
