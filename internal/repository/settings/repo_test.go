package settings

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/searchscope/internal/db"
	"github.com/kailas-cloud/searchscope/internal/domain/setting"
	"github.com/kailas-cloud/searchscope/internal/domain/visibility"
)

const prefix = "test:"

func seeded() *mockStore {
	return hashStore(map[string]map[string]string{
		prefix + "setting:i18n_languages": {"fr": "fr", "en": "en", "es": " "},
		prefix + "setting:element_visibility": {
			"isad_notes":            "1",
			"isad_archival_history": "0",
			"isad_control_sources":  "",
		},
		prefix + "setting:default_template": {"informationobject": "isad", "actor": "isaar"},
	})
}

func TestSnapshot(t *testing.T) {
	repo := New(seeded(), prefix)

	snap, err := repo.Snapshot(context.Background(), "informationobject")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !reflect.DeepEqual(snap.Cultures, []string{"en", "fr"}) {
		t.Errorf("Cultures = %v, want [en fr]", snap.Cultures)
	}
	wantFlags := []visibility.Flag{
		{Name: "isad_archival_history", Visible: false},
		{Name: "isad_control_sources", Visible: false},
		{Name: "isad_notes", Visible: true},
	}
	if !reflect.DeepEqual(snap.Flags, wantFlags) {
		t.Errorf("Flags = %v, want %v", snap.Flags, wantFlags)
	}
	if snap.Template != "isad" {
		t.Errorf("Template = %q, want isad", snap.Template)
	}
}

func TestSnapshot_FlagTruthiness(t *testing.T) {
	repo := New(hashStore(map[string]map[string]string{
		prefix + "setting:element_visibility": {"a": "false", "b": "0", "c": "off", "d": ""},
	}), prefix)

	snap, err := repo.Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := []visibility.Flag{
		{Name: "a", Visible: true},
		{Name: "b", Visible: false},
		{Name: "c", Visible: true},
		{Name: "d", Visible: false},
	}
	if !reflect.DeepEqual(snap.Flags, want) {
		t.Errorf("Flags = %v, want %v", snap.Flags, want)
	}
}

func TestSnapshot_NoTemplateSetting(t *testing.T) {
	repo := New(seeded(), prefix)
	snap, err := repo.Snapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Template != "" {
		t.Errorf("Template = %q, want empty", snap.Template)
	}
}

func TestSnapshot_Empty(t *testing.T) {
	repo := New(hashStore(nil), prefix)
	snap, err := repo.Snapshot(context.Background(), "informationobject")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Cultures) != 0 || len(snap.Flags) != 0 || snap.Template != "" {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestSnapshot_StoreError(t *testing.T) {
	boom := errors.New("boom")
	repo := New(&mockStore{
		hgetAllMultiFn: func(context.Context, []string) ([]map[string]string, error) {
			return nil, boom
		},
	}, prefix)
	if _, err := repo.Snapshot(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestSnapshot_ShortReply(t *testing.T) {
	repo := New(&mockStore{
		hgetAllMultiFn: func(context.Context, []string) ([]map[string]string, error) {
			return []map[string]string{{}}, nil
		},
	}, prefix)
	if _, err := repo.Snapshot(context.Background(), "x"); err == nil {
		t.Fatal("expected error for short reply")
	}
}

func TestScope(t *testing.T) {
	repo := New(seeded(), prefix)

	got, err := repo.Scope(context.Background(), setting.ScopeTemplate)
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]string{"informationobject": "isad", "actor": "isaar"}) {
		t.Errorf("Scope = %v", got)
	}

	got, err = repo.Scope(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("missing scope should be empty, got %v", got)
	}
}

func TestScope_Error(t *testing.T) {
	boom := errors.New("boom")
	repo := New(&mockStore{
		hgetAllFn: func(context.Context, string) (map[string]string, error) { return nil, boom },
	}, prefix)
	if _, err := repo.Scope(context.Background(), setting.ScopeLanguages); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestPut(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	repo := New(&mockStore{
		hsetFn: func(_ context.Context, key string, fields map[string]string) error {
			gotKey, gotFields = key, fields
			return nil
		},
	}, prefix)

	if err := repo.Put(context.Background(), setting.ScopeVisibility, "isad_notes", "0"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if gotKey != prefix+"setting:element_visibility" {
		t.Errorf("key = %q", gotKey)
	}
	if gotFields["isad_notes"] != "0" {
		t.Errorf("fields = %v", gotFields)
	}

	if err := repo.Put(context.Background(), "", "x", "y"); err == nil {
		t.Error("expected error for empty scope")
	}
}

func TestPutSnapshot(t *testing.T) {
	var items []db.HashSetItem
	repo := New(&mockStore{
		hsetMultiFn: func(_ context.Context, in []db.HashSetItem) error {
			items = in
			return nil
		},
	}, prefix)

	err := repo.PutSnapshot(context.Background(), setting.Snapshot{
		Cultures: []string{"en", "fr"},
		Flags:    []visibility.Flag{{Name: "isad_notes", Visible: true}, {Name: "isad_control_dates"}},
		Template: "rad",
	}, "informationobject")
	if err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 hashes, got %d", len(items))
	}
	if items[0].Fields["fr"] != "fr" {
		t.Errorf("languages = %v", items[0].Fields)
	}
	if items[1].Fields["isad_notes"] != "1" || items[1].Fields["isad_control_dates"] != "0" {
		t.Errorf("visibility = %v", items[1].Fields)
	}
	if items[2].Key != prefix+"setting:default_template" || items[2].Fields["informationobject"] != "rad" {
		t.Errorf("template = %+v", items[2])
	}
}

func TestPutSnapshot_WithoutTemplate(t *testing.T) {
	var items []db.HashSetItem
	repo := New(&mockStore{
		hsetMultiFn: func(_ context.Context, in []db.HashSetItem) error {
			items = in
			return nil
		},
	}, prefix)

	if err := repo.PutSnapshot(context.Background(), setting.Snapshot{Cultures: []string{"en"}}, ""); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 hashes, got %d", len(items))
	}
}

func TestUnsetResetHasScope(t *testing.T) {
	var hdelKey string
	var hdelFields []string
	var delKey string
	repo := New(&mockStore{
		hdelFn: func(_ context.Context, key string, fields ...string) error {
			hdelKey, hdelFields = key, fields
			return nil
		},
		delFn: func(_ context.Context, key string) error {
			delKey = key
			return nil
		},
		existsFn: func(_ context.Context, key string) (bool, error) {
			return key == prefix+"setting:i18n_languages", nil
		},
	}, prefix)
	ctx := context.Background()

	if err := repo.Unset(ctx, setting.ScopeVisibility, "a", "b"); err != nil {
		t.Fatalf("Unset: %v", err)
	}
	if hdelKey != prefix+"setting:element_visibility" || len(hdelFields) != 2 {
		t.Errorf("HDel(%q, %v)", hdelKey, hdelFields)
	}

	if err := repo.Reset(ctx, setting.ScopeTemplate); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if delKey != prefix+"setting:default_template" {
		t.Errorf("Del(%q)", delKey)
	}

	ok, err := repo.HasScope(ctx, setting.ScopeLanguages)
	if err != nil || !ok {
		t.Errorf("HasScope(languages) = %v, %v", ok, err)
	}
	ok, err = repo.HasScope(ctx, setting.ScopeVisibility)
	if err != nil || ok {
		t.Errorf("HasScope(visibility) = %v, %v", ok, err)
	}
}

func TestScopes(t *testing.T) {
	var pattern string
	repo := New(&mockStore{
		scanFn: func(_ context.Context, p string) ([]string, error) {
			pattern = p
			return []string{prefix + "setting:i18n_languages", prefix + "setting:default_template"}, nil
		},
	}, prefix)

	scopes, err := repo.Scopes(context.Background())
	if err != nil {
		t.Fatalf("Scopes: %v", err)
	}
	if pattern != prefix+"setting:*" {
		t.Errorf("pattern = %q", pattern)
	}
	if !reflect.DeepEqual(scopes, []string{"default_template", "i18n_languages"}) {
		t.Errorf("Scopes = %v", scopes)
	}
}

func TestWriteErrorsWrapped(t *testing.T) {
	boom := errors.New("boom")
	repo := New(&mockStore{
		hsetFn:      func(context.Context, string, map[string]string) error { return boom },
		hsetMultiFn: func(context.Context, []db.HashSetItem) error { return boom },
		delFn:       func(context.Context, string) error { return boom },
	}, prefix)
	ctx := context.Background()

	if err := repo.Put(ctx, "s", "n", "v"); !errors.Is(err, boom) || !strings.Contains(err.Error(), "s.n") {
		t.Errorf("Put err = %v", err)
	}
	if err := repo.PutSnapshot(ctx, setting.Snapshot{}, ""); !errors.Is(err, boom) {
		t.Errorf("PutSnapshot err = %v", err)
	}
	if err := repo.Reset(ctx, "s"); !errors.Is(err, boom) {
		t.Errorf("Reset err = %v", err)
	}
}
