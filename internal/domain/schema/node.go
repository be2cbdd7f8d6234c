// Package schema models content-index mappings and walks them to find the
// text fields a full-text query can target.
package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Mapping type values the collector cares about.
const (
	TypeString = "string"
	TypeObject = "object"
)

// I18nProperty is the property name of a localized container.
const I18nProperty = "i18n"

// Property is a named child of a Node, kept in declaration order.
type Property struct {
	Name string
	Node *Node
}

// Node is one level of an index mapping.
// Unknown keys (analyzers, formats, ...) are ignored.
type Node struct {
	Type         string
	IncludeInAll *bool
	// Dynamic holds the raw "dynamic" value. Only its presence matters.
	Dynamic    *string
	Properties []Property
}

// NewNode creates a node of the given type with ordered properties.
func NewNode(typ string, props ...Property) *Node {
	return &Node{Type: typ, Properties: props}
}

// Prop pairs a property name with its node.
func Prop(name string, n *Node) Property {
	return Property{Name: name, Node: n}
}

// HasDynamic reports whether the node declares a "dynamic" key, whatever its value.
func (n *Node) HasDynamic() bool {
	return n != nil && n.Dynamic != nil
}

// IncludedInAll reports whether the node is folded into the _all field.
// Absent means included.
func (n *Node) IncludedInAll() bool {
	if n == nil || n.IncludeInAll == nil {
		return true
	}
	return *n.IncludeInAll
}

// Property returns the child with the given name.
func (n *Node) Property(name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Node, true
		}
	}
	return nil, false
}

// UnmarshalYAML decodes a mapping node, preserving property order.
// Sparse or oddly shaped nodes decode to whatever keys are usable.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "type":
			if val.Kind == yaml.ScalarNode {
				n.Type = val.Value
			}
		case "include_in_all":
			if val.Kind == yaml.ScalarNode {
				b := truthy(val.Value)
				n.IncludeInAll = &b
			}
		case "dynamic":
			raw := val.Value
			n.Dynamic = &raw
		case "properties":
			props, err := decodeProperties(val)
			if err != nil {
				return err
			}
			n.Properties = props
		}
	}
	return nil
}

// ParseNode decodes a single mapping document.
func ParseNode(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}
	return &n, nil
}

func decodeProperties(value *yaml.Node) ([]Property, error) {
	if value.Kind != yaml.MappingNode {
		return nil, nil
	}
	props := make([]Property, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		child := &Node{}
		if err := value.Content[i+1].Decode(child); err != nil {
			return nil, fmt.Errorf("property %q: %w", value.Content[i].Value, err)
		}
		props = append(props, Property{Name: value.Content[i].Value, Node: child})
	}
	return props, nil
}

// truthy follows the loose boolean reading mapping files were written for:
// YAML booleans, numbers, and "" / "0" as false.
func truthy(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	switch s {
	case "", "0", "no", "off", "No", "Off", "NO", "OFF", "~", "null":
		return false
	}
	return true
}
