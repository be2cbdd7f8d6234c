// Package visibility removes fields hidden from public users by the
// element_visibility settings of the active description template.
package visibility

import "github.com/kailas-cloud/searchscope/internal/domain/fieldpath"

// Index types that are never filtered.
const (
	IndexTypeActor      = "actor"
	IndexTypeRepository = "repository"
)

// DefaultExemptIndexTypes lists index types returned unfiltered to everyone.
var DefaultExemptIndexTypes = []string{IndexTypeActor, IndexTypeRepository}

// Flag is one element_visibility setting.
type Flag struct {
	Name    string
	Visible bool
}

// Input is a snapshot of everything a filtering decision depends on.
type Input struct {
	Fields     []string
	IndexType  string
	Template   string
	Privileged bool
	Cultures   []string
	Flags      []Flag
}

// Filter computes the fields visible to a caller.
type Filter struct {
	registry Registry
	exempt   map[string]struct{}
}

// NewFilter creates a filter over the given relation tables,
// exempting DefaultExemptIndexTypes.
func NewFilter(registry Registry) *Filter {
	f := &Filter{registry: registry}
	return f.WithExempt(DefaultExemptIndexTypes)
}

// WithExempt replaces the set of index types that bypass filtering.
func (f *Filter) WithExempt(indexTypes []string) *Filter {
	f.exempt = make(map[string]struct{}, len(indexTypes))
	for _, t := range indexTypes {
		f.exempt[t] = struct{}{}
	}
	return f
}

// Bypass reports whether fields for this caller and index type go unfiltered.
func (f *Filter) Bypass(indexType string, privileged bool) bool {
	if privileged {
		return true
	}
	_, ok := f.exempt[indexType]
	return ok
}

// Hidden returns the expanded paths hidden by the input's flags,
// regardless of whether they occur in in.Fields.
func (f *Filter) Hidden(in Input) []string {
	relations := f.registry.Relations(in.Template)
	if len(relations) == 0 {
		return nil
	}

	var hidden []string
	for _, flag := range in.Flags {
		if flag.Visible {
			continue
		}
		patterns, ok := relations.Patterns(flag.Name)
		if !ok {
			continue
		}
		hidden = append(hidden, fieldpath.Expand(patterns, in.Cultures, nil)...)
	}
	return hidden
}

// Visible returns in.Fields minus the hidden paths, keeping order.
func (f *Filter) Visible(in Input) []string {
	if f.Bypass(in.IndexType, in.Privileged) {
		return in.Fields
	}
	return Exclude(in.Fields, f.Hidden(in))
}

// Exclude is an order-preserving set difference. Paths in exclude that do
// not occur in fields are ignored.
func Exclude(fields, exclude []string) []string {
	if len(exclude) == 0 {
		return fields
	}
	drop := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		drop[p] = struct{}{}
	}
	out := make([]string, 0, len(fields))
	for _, p := range fields {
		if _, ok := drop[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
