package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchscope/internal/app"
	"github.com/kailas-cloud/searchscope/internal/config"
	logpkg "github.com/kailas-cloud/searchscope/internal/logger"
	"github.com/kailas-cloud/searchscope/internal/repository/mapping"
	settingsrepo "github.com/kailas-cloud/searchscope/internal/repository/settings"
	fieldsuc "github.com/kailas-cloud/searchscope/internal/usecase/fields"
	"github.com/kailas-cloud/searchscope/internal/version"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath   string
	mappingsPath string
	settingsPath string
	logLevel     string
	json         bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "searchscopectl",
		Short: "Inspect searchable fields and seed search settings",
		Long: `searchscopectl computes the fields a full-text query may target for an
index type, the fields hidden from public users, and normalizes incomplete
dates. Settings come from a YAML snapshot (--settings) or from the store
configured in --config.`,
		Version:       version.Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logpkg.NewLogger("cli", opts.logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(logpkg.ContextWithLogger(cmd.Context(), logger))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (database, search settings)")
	flags.StringVarP(&opts.mappingsPath, "mappings", "m", "", "Mapping file (overrides search.mappings_path)")
	flags.StringVarP(&opts.settingsPath, "settings", "s", "", "Static settings snapshot (YAML)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.json, "json", false, "Output JSON")

	root.AddCommand(
		newFieldsCmd(opts),
		newHiddenCmd(opts),
		newNormalizeDateCmd(opts),
		newConvertDateCmd(opts),
		newTemplatesCmd(opts),
		newSeedCmd(opts),
		newScopesCmd(opts),
		newUnsetCmd(opts),
		newGetCmd(opts),
	)
	return root
}

// loadConfig reads --config, or falls back to defaults for offline use.
func (o *options) loadConfig() (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	} else {
		cfg.ApplyDefaults()
	}
	if o.mappingsPath != "" {
		cfg.Search.MappingsPath = o.mappingsPath
	}
	return cfg, nil
}

// settingsSource opens the static snapshot if given, the configured store otherwise.
// The returned func releases the store.
func (o *options) settingsSource(ctx context.Context, cfg config.Config) (fieldsuc.SettingsReader, func(), error) {
	if o.settingsPath != "" {
		static, err := settingsrepo.LoadStatic(o.settingsPath)
		if err != nil {
			return nil, nil, err
		}
		return static, func() {}, nil
	}
	if o.configPath == "" {
		return nil, nil, fmt.Errorf("either --settings or --config is required")
	}

	repo, closeStore, err := o.openRepo(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return repo, closeStore, nil
}

func (o *options) openRepo(ctx context.Context, cfg config.Config) (*settingsrepo.Repo, func(), error) {
	store, err := app.NewStore(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("database not ready: %w", err)
	}
	logpkg.FromContext(ctx).Debug("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))
	return settingsrepo.New(store, cfg.Storage.KeyPrefix), store.Close, nil
}

// storeRepo opens the store named by --config for commands that write or
// inspect stored settings.
func (o *options) storeRepo(cmd *cobra.Command) (*settingsrepo.Repo, func(), error) {
	if o.configPath == "" {
		return nil, nil, fmt.Errorf("%s requires --config", cmd.Name())
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return o.openRepo(cmd.Context(), cfg)
}

// fieldService builds the field service from flags.
func (o *options) fieldService(ctx context.Context) (*fieldsuc.Service, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	schemas, err := mapping.LoadFile(cfg.Search.MappingsPath)
	if err != nil {
		return nil, nil, err
	}
	settings, release, err := o.settingsSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.NewFieldService(cfg.Search, schemas, settings)
	if err != nil {
		release()
		return nil, nil, err
	}
	return svc, release, nil
}

// printList writes one item per line, or a JSON document when --json is set.
func (o *options) printList(w io.Writer, doc any, items []string) error {
	if o.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	for _, it := range items {
		if _, err := fmt.Fprintln(w, it); err != nil {
			return err
		}
	}
	return nil
}
