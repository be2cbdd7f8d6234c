package fieldpath

import (
	"reflect"
	"testing"
)

func TestExpand_CulturesOuterLoop(t *testing.T) {
	got := Expand(
		[]string{"i18n.%s.title", "i18n.%s.scopeAndContent"},
		[]string{"en", "fr"},
		nil,
	)
	want := []string{
		"i18n.en.title", "i18n.en.scopeAndContent",
		"i18n.fr.title", "i18n.fr.scopeAndContent",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpand_Boost(t *testing.T) {
	got := Expand(
		[]string{"i18n.%s.title", "identifier", "i18n.%s.notes"},
		[]string{"en"},
		Boost{"i18n.%s.title": 10, "identifier": 2.5},
	)
	want := []string{"i18n.en.title^10", "identifier^2.5", "i18n.en.notes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpand_NoPlaceholderRepeatsPerCulture(t *testing.T) {
	got := Expand([]string{"identifier"}, []string{"en", "fr"}, nil)
	want := []string{"identifier", "identifier"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpand_Empty(t *testing.T) {
	if got := Expand(nil, []string{"en"}, nil); len(got) != 0 {
		t.Errorf("Expand(no patterns) = %v", got)
	}
	if got := Expand([]string{"i18n.%s.title"}, nil, nil); len(got) != 0 {
		t.Errorf("Expand(no cultures) = %v", got)
	}
}

func TestShorthands(t *testing.T) {
	if got := One("i18n.%s.title", "en", "fr"); !reflect.DeepEqual(got, []string{"i18n.en.title", "i18n.fr.title"}) {
		t.Errorf("One = %v", got)
	}
	got := ForCulture([]string{"i18n.%s.a", "i18n.%s.b"}, "es", Boost{"i18n.%s.b": 3})
	if !reflect.DeepEqual(got, []string{"i18n.es.a", "i18n.es.b^3"}) {
		t.Errorf("ForCulture = %v", got)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in    string
		field string
		boost float64
		ok    bool
	}{
		{"i18n.en.title^10", "i18n.en.title", 10, true},
		{"identifier^0.5", "identifier", 0.5, true},
		{"identifier", "identifier", 0, false},
		{"odd^name", "odd^name", 0, false},
	}
	for _, tt := range tests {
		field, boost, ok := Split(tt.in)
		if field != tt.field || boost != tt.boost || ok != tt.ok {
			t.Errorf("Split(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tt.in, field, boost, ok, tt.field, tt.boost, tt.ok)
		}
	}
}
