// Package fields computes the index fields a full-text query may target for
// a given index type and caller.
package fields

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/blevesearch/bleve/v2/search/query"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchscope/internal/domain"
	"github.com/kailas-cloud/searchscope/internal/domain/fieldpath"
	"github.com/kailas-cloud/searchscope/internal/domain/schema"
	"github.com/kailas-cloud/searchscope/internal/domain/visibility"
	"github.com/kailas-cloud/searchscope/internal/logger"
	"github.com/kailas-cloud/searchscope/internal/metrics"
	bleveq "github.com/kailas-cloud/searchscope/internal/search/bleve"
)

// DefaultTemplateSettings maps index types to the default_template setting
// holding their description template.
var DefaultTemplateSettings = map[string]string{"informationObject": "informationobject"}

// Service ties schema collection and visibility filtering together.
type Service struct {
	schemas          SchemaSource
	settings         SettingsReader
	filter           *visibility.Filter
	templateSettings map[string]string
	cache            *lru.Cache[string, []string]
}

// New creates a field service. filter may be nil for the default relation tables.
func New(schemas SchemaSource, settings SettingsReader, filter *visibility.Filter) *Service {
	if filter == nil {
		filter = visibility.NewFilter(visibility.DefaultRegistry())
	}
	return &Service{
		schemas:          schemas,
		settings:         settings,
		filter:           filter,
		templateSettings: DefaultTemplateSettings,
	}
}

// WithTemplateSettings replaces the index type -> template setting map.
func (s *Service) WithTemplateSettings(m map[string]string) *Service {
	s.templateSettings = m
	return s
}

// WithCache enables an LRU cache of collected fields keyed by index type and
// culture list. size <= 0 disables it.
func (s *Service) WithCache(size int) (*Service, error) {
	if size <= 0 {
		s.cache = nil
		return s, nil
	}
	c, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("create field cache: %w", err)
	}
	s.cache = c
	return s, nil
}

// selection is the outcome of one field request.
type selection struct {
	visible   []string
	collected int
	cultures  []string
}

// Fields returns the searchable fields of indexType visible to the caller,
// in schema order.
func (s *Service) Fields(ctx context.Context, indexType string, privileged bool) ([]string, error) {
	sel, err := s.selectFields(ctx, indexType, privileged)
	if err != nil {
		return nil, err
	}
	return sel.visible, nil
}

func (s *Service) selectFields(ctx context.Context, indexType string, privileged bool) (selection, error) {
	root, err := s.schemas.Lookup(indexType)
	if err != nil {
		return selection{}, fmt.Errorf("lookup schema: %w", err)
	}

	snap, err := s.settings.Snapshot(ctx, s.templateSettings[indexType])
	if err != nil {
		return selection{}, fmt.Errorf("read settings: %w", err)
	}

	collected := s.collect(indexType, root, snap.Cultures)
	metrics.ObserveFieldRequest(indexType, privileged)

	sel := selection{collected: len(collected), cultures: snap.Cultures}
	if s.filter.Bypass(indexType, privileged) {
		sel.visible = slices.Clone(collected)
		return sel, nil
	}

	visible := s.filter.Visible(visibility.Input{
		Fields:     collected,
		IndexType:  indexType,
		Template:   snap.Template,
		Privileged: privileged,
		Cultures:   snap.Cultures,
		Flags:      snap.Flags,
	})
	hidden := len(collected) - len(visible)
	metrics.ObserveHidden(indexType, hidden)

	logger.FromContext(ctx).Debug("Fields computed",
		zap.String("index_type", indexType),
		zap.String("template", snap.Template),
		zap.Strings("cultures", snap.Cultures),
		zap.Int("collected", len(collected)),
		zap.Int("hidden", hidden),
	)

	sel.visible = slices.Clone(visible)
	return sel, nil
}

// Hidden returns the expanded paths public callers lose on indexType.
// Exempt index types hide nothing.
func (s *Service) Hidden(ctx context.Context, indexType string) ([]string, error) {
	if _, err := s.schemas.Lookup(indexType); err != nil {
		return nil, fmt.Errorf("lookup schema: %w", err)
	}
	if s.filter.Bypass(indexType, false) {
		return []string{}, nil
	}

	snap, err := s.settings.Snapshot(ctx, s.templateSettings[indexType])
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	hidden := s.filter.Hidden(visibility.Input{
		IndexType: indexType,
		Template:  snap.Template,
		Cultures:  snap.Cultures,
		Flags:     snap.Flags,
	})
	if hidden == nil {
		hidden = []string{}
	}
	return hidden, nil
}

// Query builds a bleve query matching text against the caller's visible
// fields. boost keys are concrete paths (i18n.en.title) or culture patterns
// (i18n.%s.title); matching fields get a ^N suffix. When visibility hides
// every field the query matches nothing. An index type with no text fields
// at all gets an unrestricted query.
func (s *Service) Query(
	ctx context.Context, indexType, text string, privileged bool, boost fieldpath.Boost,
) (query.Query, []string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("query text is required: %w", domain.ErrInvalidRequest)
	}

	sel, err := s.selectFields(ctx, indexType, privileged)
	if err != nil {
		return nil, nil, err
	}

	if len(sel.visible) == 0 {
		if sel.collected == 0 {
			return bleveq.Unrestricted(text), sel.visible, nil
		}
		logger.FromContext(ctx).Debug("Every field hidden, query matches nothing",
			zap.String("index_type", indexType),
			zap.Int("collected", sel.collected),
		)
		return bleveq.BuildQuery(text, nil), sel.visible, nil
	}

	fields := sel.visible
	paths := concreteBoost(boost, sel.cultures)
	for i, f := range fields {
		if b, ok := paths[f]; ok {
			fields[i] = fieldpath.WithBoost(f, b)
		}
	}
	return bleveq.BuildQuery(text, fields), fields, nil
}

// concreteBoost expands culture patterns in boost across cultures. A
// concrete path wins over a pattern expanding to the same path.
func concreteBoost(boost fieldpath.Boost, cultures []string) map[string]float64 {
	if len(boost) == 0 {
		return nil
	}

	out := make(map[string]float64, len(boost))
	var patterns []string
	for key := range boost {
		if strings.Contains(key, fieldpath.CulturePlaceholder) {
			patterns = append(patterns, key)
		}
	}
	slices.Sort(patterns)
	for _, p := range fieldpath.Expand(patterns, cultures, boost) {
		if field, b, ok := fieldpath.Split(p); ok {
			out[field] = b
		}
	}
	for key, b := range boost {
		if !strings.Contains(key, fieldpath.CulturePlaceholder) {
			out[key] = b
		}
	}
	return out
}

func (s *Service) collect(indexType string, root *schema.Node, cultures []string) []string {
	if s.cache == nil {
		return schema.Collect(root, "", cultures)
	}

	key := indexType + "\x00" + strings.Join(cultures, ",")
	if cached, ok := s.cache.Get(key); ok {
		metrics.ObserveCache(true)
		return cached
	}
	metrics.ObserveCache(false)

	collected := schema.Collect(root, "", cultures)
	s.cache.Add(key, collected)
	return collected
}
