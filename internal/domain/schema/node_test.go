package schema

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/searchscope/internal/domain"
)

func TestClassify(t *testing.T) {
	f := false
	dyn := "true"
	tests := []struct {
		name string
		prop string
		node *Node
		want Kind
	}{
		{"i18n by name", "i18n", &Node{Type: TypeString}, KindI18n},
		{"i18n nil node", "i18n", nil, KindI18n},
		{"object", "creators", &Node{Type: TypeObject}, KindObject},
		{"object wins over dynamic", "places", &Node{Type: TypeObject, Dynamic: &dyn}, KindObject},
		{"dynamic", "places", &Node{Dynamic: &dyn}, KindDynamic},
		{"dynamic string", "places", &Node{Type: TypeString, Dynamic: &dyn}, KindDynamic},
		{"text", "title", &Node{Type: TypeString}, KindText},
		{"text excluded", "title", &Node{Type: TypeString, IncludeInAll: &f}, KindOther},
		{"number", "id", &Node{Type: "integer"}, KindOther},
		{"nil node", "x", nil, KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.prop, tt.node); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.prop, got, tt.want)
			}
		})
	}
}

func TestParseNode_Keys(t *testing.T) {
	n := mustParse(t, `
type: object
dynamic: false
include_in_all: "0"
analyzer: default
properties:
  b: {type: string}
  a: {type: string}
`)
	if n.Type != TypeObject {
		t.Errorf("Type = %q, want object", n.Type)
	}
	if !n.HasDynamic() {
		t.Error("dynamic: false must still count as present")
	}
	if n.IncludedInAll() {
		t.Error(`include_in_all "0" should read as false`)
	}
	if len(n.Properties) != 2 || n.Properties[0].Name != "b" || n.Properties[1].Name != "a" {
		t.Errorf("properties out of declaration order: %+v", n.Properties)
	}
	if _, ok := n.Property("a"); !ok {
		t.Error("Property(a) not found")
	}
	if _, ok := n.Property("missing"); ok {
		t.Error("Property(missing) should not be found")
	}
}

func TestParseNode_JSONInput(t *testing.T) {
	n := mustParse(t, `{"properties": {"title": {"type": "string", "include_in_all": true}}}`)
	if got := Collect(n, "", nil); len(got) != 1 || got[0] != "title" {
		t.Errorf("Collect = %v, want [title]", got)
	}
}

func TestParseNode_NonMappingIgnored(t *testing.T) {
	n := mustParse(t, `
properties:
  - not
  - a map
type: [string]
`)
	if n.Type != "" || len(n.Properties) != 0 {
		t.Errorf("unexpected decode of malformed keys: %+v", n)
	}
}

func TestTruthy(t *testing.T) {
	tests := map[string]bool{
		"true": true, "1": true, "yes": true, "on": true,
		"false": false, "0": false, "": false, "no": false, "off": false,
	}
	for in, want := range tests {
		if got := truthy(in); got != want {
			t.Errorf("truthy(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Register("informationObject", NewNode(TypeObject))
	r.Register("actor", NewNode(TypeObject))
	r.Register("informationObject", NewNode(TypeObject, Prop("title", NewNode(TypeString))))

	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	types := r.IndexTypes()
	if len(types) != 2 || types[0] != "informationObject" || types[1] != "actor" {
		t.Errorf("IndexTypes = %v", types)
	}

	n, err := r.Lookup("informationObject")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(n.Properties) != 1 {
		t.Error("Register should replace the earlier mapping")
	}

	_, err = r.Lookup("term")
	if !errors.Is(err, domain.ErrUnknownIndexType) {
		t.Fatalf("err = %v, want ErrUnknownIndexType", err)
	}
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.IndexType != "term" {
		t.Errorf("err = %#v, want ConfigurationError for term", err)
	}
}

func TestRegistry_UnmarshalYAML(t *testing.T) {
	var r Registry
	err := yaml.Unmarshal([]byte(`
informationObject:
  properties:
    identifier: {type: string}
actor:
  properties:
    i18n:
      properties:
        en: {properties: {authorizedFormOfName: {type: string}}}
`), &r)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	types := r.IndexTypes()
	if len(types) != 2 || types[0] != "informationObject" {
		t.Fatalf("IndexTypes = %v", types)
	}
	actor, err := r.Lookup("actor")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	got := Collect(actor, "", []string{"en"})
	if len(got) != 1 || got[0] != "i18n.en.authorizedFormOfName" {
		t.Errorf("Collect = %v", got)
	}
}

func TestRegistry_UnmarshalYAML_NotAMap(t *testing.T) {
	var r Registry
	if err := yaml.Unmarshal([]byte(`- a`), &r); err == nil {
		t.Fatal("expected error for sequence document")
	}
}

func TestRegistry_NilLookup(t *testing.T) {
	var r *Registry
	if _, err := r.Lookup("actor"); !errors.Is(err, domain.ErrUnknownIndexType) {
		t.Errorf("err = %v, want ErrUnknownIndexType", err)
	}
}
