package presenter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttributeMap_OrderAndOverride(t *testing.T) {
	m := NewAttributeMap(
		Attr{Name: "id", Value: 1},
		Attr{Name: "first_name", Value: "David"},
		Attr{Name: "last_name", Value: "Hemphill"},
	)

	// Overriding an existing key keeps its original position.
	m.Set("first_name", "Dave")
	m.Set("full_name", "Dave Hemphill")

	wantKeys := []string{"id", "first_name", "last_name", "full_name"}
	if diff := cmp.Diff(wantKeys, m.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if value, _ := m.Get("first_name"); value != "Dave" {
		t.Fatalf("expected override to win, got %v", value)
	}
}

func TestAttributeMap_Delete(t *testing.T) {
	m := NewAttributeMap(
		Attr{Name: "a", Value: 1},
		Attr{Name: "b", Value: 2},
		Attr{Name: "c", Value: 3},
	)
	m.Delete("b")
	m.Delete("missing")

	if diff := cmp.Diff([]string{"a", "c"}, m.Keys()); diff != "" {
		t.Fatalf("keys after delete (-want +got):\n%s", diff)
	}
	if m.Has("b") {
		t.Fatalf("deleted key still present")
	}
}

func TestAttributeMap_MarshalJSONPreservesOrder(t *testing.T) {
	m := NewAttributeMap(
		Attr{Name: "z", Value: 26},
		Attr{Name: "a", Value: 1},
		Attr{Name: "name", Value: "x"},
	)

	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"z":26,"a":1,"name":"x"}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}

func TestAttributeMap_CloneIsIndependent(t *testing.T) {
	m := NewAttributeMap(Attr{Name: "a", Value: 1})
	clone := m.Clone()
	clone.Set("a", 2)
	clone.Set("b", 3)

	if value, _ := m.Get("a"); value != 1 {
		t.Fatalf("clone write leaked into original: %v", value)
	}
	if m.Has("b") {
		t.Fatalf("clone append leaked into original")
	}
}

func TestAttributeMap_Empty(t *testing.T) {
	var m *AttributeMap
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal nil map: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("nil map json = %s", data)
	}
	if m.Len() != 0 {
		t.Fatalf("nil map len = %d", m.Len())
	}
}
