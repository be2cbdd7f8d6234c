// Package settings provides settings sources for field selection: a
// Redis/Valkey-backed repository and a static snapshot read from YAML.
package settings

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/searchscope/internal/domain/setting"
	"github.com/kailas-cloud/searchscope/internal/domain/visibility"
)

// document is the YAML layout of a static settings file.
type document struct {
	Languages  []string          `yaml:"i18n_languages"`
	Visibility map[string]bool   `yaml:"element_visibility"`
	Templates  map[string]string `yaml:"default_template"`
}

// Static serves settings from memory. It is read-only after construction.
type Static struct {
	cultures  []string
	flags     []visibility.Flag
	templates map[string]string
}

// NewStatic builds a static source. templates maps template setting names
// (e.g. "informationobject") to template ids.
func NewStatic(cultures []string, flags []visibility.Flag, templates map[string]string) *Static {
	return &Static{cultures: cultures, flags: flags, templates: templates}
}

// ParseStatic decodes a static settings document.
func ParseStatic(data []byte) (*Static, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	names := make([]string, 0, len(doc.Visibility))
	for name := range doc.Visibility {
		names = append(names, name)
	}
	sort.Strings(names)
	flags := make([]visibility.Flag, 0, len(names))
	for _, name := range names {
		flags = append(flags, visibility.Flag{Name: name, Visible: doc.Visibility[name]})
	}

	return NewStatic(doc.Languages, flags, doc.Templates), nil
}

// LoadStatic reads a static settings file.
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return ParseStatic(data)
}

// Snapshot returns the static settings. It never fails.
func (s *Static) Snapshot(_ context.Context, templateSetting string) (setting.Snapshot, error) {
	snap := setting.Snapshot{Cultures: s.cultures, Flags: s.flags}
	if templateSetting != "" {
		snap.Template = s.templates[templateSetting]
	}
	return snap, nil
}

// TemplateSettings returns a copy of the template setting -> template id map.
func (s *Static) TemplateSettings() map[string]string {
	return maps.Clone(s.templates)
}
