package searchscope

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchscope/internal/app"
	"github.com/kailas-cloud/searchscope/internal/config"
	"github.com/kailas-cloud/searchscope/internal/db"
	"github.com/kailas-cloud/searchscope/internal/domain/date"
	"github.com/kailas-cloud/searchscope/internal/domain/fieldpath"
	"github.com/kailas-cloud/searchscope/internal/domain/schema"
	"github.com/kailas-cloud/searchscope/internal/logger"
	"github.com/kailas-cloud/searchscope/internal/repository/mapping"
	settingsrepo "github.com/kailas-cloud/searchscope/internal/repository/settings"
	fieldsuc "github.com/kailas-cloud/searchscope/internal/usecase/fields"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the searchscope library entry point. It is safe for concurrent use.
type Client struct {
	store   db.Store
	schemas *schema.Registry
	svc     *fieldsuc.Service
	logger  *zap.Logger
}

// New creates a Client. Mappings are required; settings come from a store
// (WithValkey, WithRedis) or from a fixed snapshot (WithSettings, WithSettingsFile).
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	schemas, err := loadMappings(cfg)
	if err != nil {
		return nil, err
	}

	settings, store, err := openSettings(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := app.NewFieldService(searchConfig(cfg), schemas, settings)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("searchscope: %w", err)
	}

	l := cfg.logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Client{store: store, schemas: schemas, svc: svc, logger: l}, nil
}

func loadMappings(cfg *clientConfig) (*schema.Registry, error) {
	switch {
	case cfg.mappingsData != nil:
		reg, err := mapping.Parse(cfg.mappingsData)
		if err != nil {
			return nil, fmt.Errorf("searchscope: %w", err)
		}
		return reg, nil
	case cfg.mappingsPath != "":
		reg, err := mapping.LoadFile(cfg.mappingsPath)
		if err != nil {
			return nil, fmt.Errorf("searchscope: %w", err)
		}
		return reg, nil
	default:
		return nil, errors.New("searchscope: mappings required (use WithMappingsFile or WithMappings)")
	}
}

func openSettings(cfg *clientConfig) (fieldsuc.SettingsReader, db.Store, error) {
	switch {
	case cfg.static != nil:
		return settingsrepo.NewStatic(cfg.static.cultures, cfg.static.flags, cfg.static.templates), nil, nil
	case cfg.settingsPath != "":
		static, err := settingsrepo.LoadStatic(cfg.settingsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("searchscope: %w", err)
		}
		return static, nil, nil
	case len(cfg.addrs) > 0:
		store, err := app.NewStore(config.DatabaseConfig{
			Driver:   cfg.driver,
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("searchscope: %w", err)
		}
		if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("searchscope: database not ready: %w", err)
		}
		prefix := cfg.keyPrefix
		if prefix == "" {
			prefix = defaultConfig().Storage.KeyPrefix
		}
		return settingsrepo.New(store, prefix), store, nil
	default:
		return nil, nil, errors.New("searchscope: settings source required (use WithValkey, WithRedis or WithSettings)")
	}
}

func defaultConfig() config.Config {
	var c config.Config
	c.ApplyDefaults()
	return c
}

// searchConfig maps client options onto the search config defaults.
func searchConfig(cfg *clientConfig) config.SearchConfig {
	sc := defaultConfig().Search
	if cfg.exempt != nil {
		sc.ExemptIndexTypes = cfg.exempt
	}
	for indexType, name := range cfg.templateSettings {
		sc.TemplateSettings[indexType] = name
	}
	sc.Templates = cfg.templates
	switch {
	case cfg.cacheSize < 0:
		sc.CacheSize = 0
	case cfg.cacheSize > 0:
		sc.CacheSize = cfg.cacheSize
	}
	return sc
}

// Close releases the settings store, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks settings store connectivity. It is a no-op for fixed settings.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// IndexTypes lists the index types with a mapping, in declaration order.
func (c *Client) IndexTypes() []string {
	return c.schemas.IndexTypes()
}

// Fields returns the searchable fields of indexType. Privileged callers
// (authenticated users) see every field; public callers lose the fields
// hidden by element visibility.
func (c *Client) Fields(ctx context.Context, indexType string, privileged bool) ([]string, error) {
	fields, err := c.svc.Fields(c.withLogger(ctx), indexType, privileged)
	if err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	return fields, nil
}

// Hidden returns the fields public callers lose on indexType.
func (c *Client) Hidden(ctx context.Context, indexType string) ([]string, error) {
	hidden, err := c.svc.Hidden(c.withLogger(ctx), indexType)
	if err != nil {
		return nil, fmt.Errorf("hidden: %w", err)
	}
	return hidden, nil
}

// Query builds a bleve query matching text against the caller's fields.
// boost maps field paths (e.g. "i18n.en.title") or culture patterns
// (e.g. "i18n.%s.title") to relevance multipliers.
func (c *Client) Query(
	ctx context.Context, indexType, text string, privileged bool, boost map[string]float64,
) (query.Query, []string, error) {
	q, fields, err := c.svc.Query(c.withLogger(ctx), indexType, text, privileged, fieldpath.Boost(boost))
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	return q, fields, nil
}

// NormalizeDate fills zero month and day components of a yyyy-mm-dd date.
// An empty result means no date.
func NormalizeDate(value string, endOfRange bool) (string, error) {
	normalized, err := date.NormalizeIncomplete(value, endOfRange)
	if err != nil {
		return "", fmt.Errorf("normalize date: %w", err)
	}
	return normalized, nil
}

// ConvertDate renders a date or datetime string in the index date form
// (2006-01-02T15:04:05Z, UTC). An empty result means no date.
func ConvertDate(value string) (string, error) {
	converted, err := date.Convert(value)
	if err != nil {
		return "", fmt.Errorf("convert date: %w", err)
	}
	return converted, nil
}

func (c *Client) withLogger(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, c.logger)
}
