package record_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	presenter "github.com/goliatone/go-presenter"
	"github.com/goliatone/go-presenter/pkg/record"
)

func userDefinition() *record.Definition {
	return &record.Definition{
		Name: "User",
		Fields: []record.Field{
			{Name: "id", Type: "integer"},
			{Name: "first_name", Type: "string"},
			{Name: "last_name", Type: "string"},
			{Name: "locale", Type: "string", Default: "en"},
		},
		Hidden: []string{"id"},
		Case:   "camel",
	}
}

func TestDefinition_NewAppliesOrderAndDefaults(t *testing.T) {
	def := userDefinition()
	r, err := def.New(map[string]any{
		"first_name": "David",
		"last_name":  "Hemphill",
		"id":         1,
	})
	if err != nil {
		t.Fatalf("new record: %v", err)
	}

	attrs, err := r.ToArray()
	if err != nil {
		t.Fatalf("to array: %v", err)
	}
	if diff := cmp.Diff([]string{"id", "first_name", "last_name", "locale"}, attrs.Keys()); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}
	if value, _ := attrs.Get("locale"); value != "en" {
		t.Fatalf("default not applied: %v", value)
	}
}

func TestDefinition_NewRejectsUnknownFields(t *testing.T) {
	def := userDefinition()
	_, err := def.New(map[string]any{"nickname": "dave"})
	if !errors.Is(err, presenter.ErrAttributeNotFound) {
		t.Fatalf("expected ErrAttributeNotFound, got %v", err)
	}
}

func TestDefinition_VariantUsesHints(t *testing.T) {
	def := userDefinition()
	v, err := def.Variant()
	if err != nil {
		t.Fatalf("variant: %v", err)
	}

	r, err := def.New(map[string]any{"first_name": "David", "last_name": "Hemphill", "id": 7})
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	p, err := presenter.New(r, v)
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	attrs, err := p.ToArray()
	if err != nil {
		t.Fatalf("to array: %v", err)
	}
	if diff := cmp.Diff([]string{"firstName", "lastName", "locale"}, attrs.Keys()); diff != "" {
		t.Fatalf("hinted output (-want +got):\n%s", diff)
	}

	bad := &record.Definition{Name: "X", Case: "kebab"}
	if _, err := bad.Variant(); err == nil {
		t.Fatalf("expected error for unknown case hint")
	}
}
