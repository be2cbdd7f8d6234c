package app

import (
	"context"
	"reflect"
	"testing"

	"github.com/kailas-cloud/searchscope/internal/config"
	"github.com/kailas-cloud/searchscope/internal/domain/schema"
	"github.com/kailas-cloud/searchscope/internal/domain/visibility"
	"github.com/kailas-cloud/searchscope/internal/repository/settings"
)

func TestRelations_MergesOverDefaults(t *testing.T) {
	reg := Relations(map[string]map[string][]string{
		"dacs": {"dacs_notes": {"i18n.%s.notes"}},
		"isad": {"isad_notes": {"i18n.%s.notes"}},
	})

	if _, ok := reg["rad"]; !ok {
		t.Error("default rad table must survive the merge")
	}
	if got, ok := reg.Relations("dacs").Patterns("dacs_notes"); !ok || !reflect.DeepEqual(got, []string{"i18n.%s.notes"}) {
		t.Errorf("dacs_notes = %v, %v", got, ok)
	}
	if _, ok := reg.Relations("isad").Patterns("isad_archival_history"); ok {
		t.Error("configured isad table replaces the default one")
	}
	if _, ok := visibility.DefaultRegistry().Relations("isad").Patterns("isad_archival_history"); !ok {
		t.Error("merge must not mutate the defaults")
	}
}

func TestNewFieldService(t *testing.T) {
	cfg := config.Config{}
	cfg.ApplyDefaults()
	cfg.Search.ExemptIndexTypes = []string{"term"}
	cfg.Search.Templates = map[string]map[string][]string{
		"dacs": {"dacs_scope": {"i18n.%s.scopeAndContent"}},
	}

	reg := schema.NewRegistry()
	block := schema.NewNode("", schema.Prop("title", schema.NewNode(schema.TypeString)),
		schema.Prop("scopeAndContent", schema.NewNode(schema.TypeString)))
	root := schema.NewNode(schema.TypeObject,
		schema.Prop("i18n", schema.NewNode(schema.TypeObject, schema.Prop("en", block))))
	reg.Register("informationObject", root)
	reg.Register("term", root)

	static := settings.NewStatic(
		[]string{"en"},
		[]visibility.Flag{{Name: "dacs_scope", Visible: false}},
		map[string]string{"informationobject": "dacs"},
	)

	svc, err := NewFieldService(cfg.Search, reg, static)
	if err != nil {
		t.Fatalf("NewFieldService: %v", err)
	}

	got, err := svc.Fields(context.Background(), "informationObject", false)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"i18n.en.title"}) {
		t.Errorf("informationObject fields = %v", got)
	}

	got, _ = svc.Fields(context.Background(), "term", false)
	if len(got) != 2 {
		t.Errorf("term is exempt, got %v", got)
	}
}

func TestNewStore_UnknownDriver(t *testing.T) {
	if _, err := NewStore(config.DatabaseConfig{Driver: "memcached", Addrs: []string{"x:1"}}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if _, err := NewStore(config.DatabaseConfig{Driver: "redis"}); err == nil {
		t.Fatal("expected error for missing addrs")
	}
}
