package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/searchscope/internal/domain"
)

// Registry maps index types to their mapping roots.
// It is built once at load time and read-only afterwards.
type Registry struct {
	roots map[string]*Node
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{roots: make(map[string]*Node)}
}

// Register adds or replaces the mapping for an index type.
func (r *Registry) Register(indexType string, root *Node) {
	if _, ok := r.roots[indexType]; !ok {
		r.order = append(r.order, indexType)
	}
	r.roots[indexType] = root
}

// Lookup returns the mapping root for indexType or a ConfigurationError.
func (r *Registry) Lookup(indexType string) (*Node, error) {
	if r != nil {
		if n, ok := r.roots[indexType]; ok {
			return n, nil
		}
	}
	return nil, domain.NewUnknownIndexType(indexType)
}

// IndexTypes returns registered index types in registration order.
func (r *Registry) IndexTypes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered index types.
func (r *Registry) Len() int { return len(r.roots) }

// UnmarshalYAML decodes a document whose top-level keys are index types.
func (r *Registry) UnmarshalYAML(value *yaml.Node) error {
	if r.roots == nil {
		r.roots = make(map[string]*Node)
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("mapping document must be a map of index types, got %s", kindName(value.Kind))
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		n := &Node{}
		if err := value.Content[i+1].Decode(n); err != nil {
			return fmt.Errorf("index type %q: %w", value.Content[i].Value, err)
		}
		r.Register(value.Content[i].Value, n)
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "map"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}
