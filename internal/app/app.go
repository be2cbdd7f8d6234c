// Package app wires configuration into ready-to-use services. It is the
// composition root shared by the server, the CLI and the library facade.
package app

import (
	"fmt"

	"github.com/kailas-cloud/searchscope/internal/config"
	"github.com/kailas-cloud/searchscope/internal/db"
	dbRedis "github.com/kailas-cloud/searchscope/internal/db/redis"
	"github.com/kailas-cloud/searchscope/internal/domain/visibility"
	fieldsuc "github.com/kailas-cloud/searchscope/internal/usecase/fields"
)

// NewStore opens the settings store for the configured driver.
// Valkey and Redis share the rueidis implementation.
func NewStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "valkey", "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Relations returns the default relation tables with configured templates
// added or replaced.
func Relations(templates map[string]map[string][]string) visibility.Registry {
	extra := make(visibility.Registry, len(templates))
	for tmpl, rel := range templates {
		relations := make(visibility.Relations, len(rel))
		for name, patterns := range rel {
			relations[name] = patterns
		}
		extra[tmpl] = relations
	}
	return visibility.DefaultRegistry().Merge(extra)
}

// NewFieldService builds the field service described by cfg.
func NewFieldService(
	cfg config.SearchConfig, schemas fieldsuc.SchemaSource, settings fieldsuc.SettingsReader,
) (*fieldsuc.Service, error) {
	filter := visibility.NewFilter(Relations(cfg.Templates)).WithExempt(cfg.ExemptIndexTypes)
	svc, err := fieldsuc.New(schemas, settings, filter).
		WithTemplateSettings(cfg.TemplateSettings).
		WithCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("build field service: %w", err)
	}
	return svc, nil
}
