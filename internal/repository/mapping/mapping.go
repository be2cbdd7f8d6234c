// Package mapping loads index schemas from YAML mapping files.
package mapping

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/searchscope/internal/domain/schema"
)

// wrapped is the optional `mappings:` envelope around index types.
type wrapped struct {
	Mappings *schema.Registry `yaml:"mappings"`
}

// LoadFile reads a mapping file into a registry.
func LoadFile(path string) (*schema.Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings %s: %w", path, err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes a mapping document. Top-level keys are index types, each a
// schema node; the whole document may be nested under a `mappings` key.
func Parse(data []byte) (*schema.Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mappings: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("mapping document is empty")
	}
	root := doc.Content[0]

	if isEnvelope(root) {
		var w wrapped
		if err := root.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode mappings: %w", err)
		}
		if w.Mappings == nil || w.Mappings.Len() == 0 {
			return nil, fmt.Errorf("mapping document declares no index types")
		}
		return w.Mappings, nil
	}

	reg := schema.NewRegistry()
	if err := root.Decode(reg); err != nil {
		return nil, fmt.Errorf("failed to decode mappings: %w", err)
	}
	if reg.Len() == 0 {
		return nil, fmt.Errorf("mapping document declares no index types")
	}
	return reg, nil
}

func isEnvelope(n *yaml.Node) bool {
	return n.Kind == yaml.MappingNode && len(n.Content) == 2 && n.Content[0].Value == "mappings"
}
