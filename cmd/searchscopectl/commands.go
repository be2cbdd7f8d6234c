package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchscope/internal/app"
	"github.com/kailas-cloud/searchscope/internal/domain"
	"github.com/kailas-cloud/searchscope/internal/domain/date"
	"github.com/kailas-cloud/searchscope/internal/domain/setting"
	logpkg "github.com/kailas-cloud/searchscope/internal/logger"
	settingsrepo "github.com/kailas-cloud/searchscope/internal/repository/settings"
)

func newFieldsCmd(opts *options) *cobra.Command {
	var privileged bool

	cmd := &cobra.Command{
		Use:   "fields <index-type>",
		Short: "List the searchable fields of an index type",
		Example: `  searchscopectl fields informationObject -m config/mappings.yaml -s config/settings.yaml
  searchscopectl fields informationObject --privileged --json -c config/local.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := opts.fieldService(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			fields, err := svc.Fields(cmd.Context(), args[0], privileged)
			if err != nil {
				return err
			}
			return opts.printList(cmd.OutOrStdout(), map[string]any{
				"index_type": args[0],
				"privileged": privileged,
				"fields":     fields,
			}, fields)
		},
	}
	cmd.Flags().BoolVarP(&privileged, "privileged", "p", false, "Compute fields for an authenticated user")
	return cmd
}

func newHiddenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hidden <index-type>",
		Short: "List the fields hidden from public users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := opts.fieldService(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			hidden, err := svc.Hidden(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.printList(cmd.OutOrStdout(), map[string]any{
				"index_type": args[0],
				"fields":     hidden,
			}, hidden)
		},
	}
}

func newNormalizeDateCmd(opts *options) *cobra.Command {
	var end bool

	cmd := &cobra.Command{
		Use:   "normalize-date <yyyy-mm-dd>",
		Short: "Fill zero month and day components of an incomplete date",
		Example: `  searchscopectl normalize-date 2014-00-00          # 2014-01-01
  searchscopectl normalize-date --end 2000-02-00    # 2000-02-29`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := date.NormalizeIncomplete(args[0], end)
			if err != nil {
				return err
			}
			if opts.json {
				var v any
				if normalized != "" {
					v = normalized
				}
				return opts.printList(cmd.OutOrStdout(), map[string]any{"date": args[0], "normalized": v}, nil)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return err
		},
	}
	cmd.Flags().BoolVarP(&end, "end", "e", false, "Normalize as the end of a range (last month, last day)")
	return cmd
}

func newSeedCmd(opts *options) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:     "seed",
		Short:   "Write a settings snapshot into the configured store",
		Example: `  searchscopectl seed -c config/local.yaml -s config/settings.yaml --reset`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.configPath == "" || opts.settingsPath == "" {
				return fmt.Errorf("seed requires --config and --settings")
			}
			ctx := cmd.Context()
			static, err := settingsrepo.LoadStatic(opts.settingsPath)
			if err != nil {
				return err
			}
			repo, release, err := opts.storeRepo(cmd)
			if err != nil {
				return err
			}
			defer release()

			if reset {
				for _, scope := range []string{setting.ScopeLanguages, setting.ScopeVisibility, setting.ScopeTemplate} {
					if err := repo.Reset(ctx, scope); err != nil {
						return err
					}
				}
			}

			snap, _ := static.Snapshot(ctx, "")
			if err := repo.PutSnapshot(ctx, snap, ""); err != nil {
				return err
			}
			templates := static.TemplateSettings()
			for name, tmpl := range templates {
				if err := repo.Put(ctx, setting.ScopeTemplate, name, tmpl); err != nil {
					return err
				}
			}

			logpkg.FromContext(ctx).Info("Settings seeded",
				zap.Int("cultures", len(snap.Cultures)),
				zap.Int("flags", len(snap.Flags)),
				zap.Int("templates", len(templates)),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d cultures, %d visibility flags, %d templates\n",
				len(snap.Cultures), len(snap.Flags), len(templates))
			return err
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Remove existing scopes before writing")
	return cmd
}

func newScopesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the settings scopes present in the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, release, err := opts.storeRepo(cmd)
			if err != nil {
				return err
			}
			defer release()

			scopes, err := repo.Scopes(cmd.Context())
			if err != nil {
				return err
			}
			return opts.printList(cmd.OutOrStdout(), map[string]any{"scopes": scopes}, scopes)
		},
	}
}

func newUnsetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "unset <scope> <name>...",
		Short:   "Remove settings from a scope in the configured store",
		Example: `  searchscopectl unset element_visibility isad_archival_history -c config/local.yaml`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, release, err := opts.storeRepo(cmd)
			if err != nil {
				return err
			}
			defer release()

			ctx := cmd.Context()
			ok, err := repo.HasScope(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("scope %q: %w", args[0], domain.ErrNotFound)
			}
			if err := repo.Unset(ctx, args[0], args[1:]...); err != nil {
				return err
			}
			logpkg.FromContext(ctx).Info("Settings removed",
				zap.String("scope", args[0]),
				zap.Strings("names", args[1:]),
			)
			return nil
		},
	}
}

func newConvertDateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert-date <date>",
		Short: "Render a date or datetime in the index date form (UTC)",
		Example: `  searchscopectl convert-date 2014-01-01            # 2014-01-01T00:00:00Z
  searchscopectl convert-date 2014-01-01T10:11:12+02:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			converted, err := date.Convert(args[0])
			if err != nil {
				return err
			}
			if opts.json {
				var v any
				if converted != "" {
					v = converted
				}
				return opts.printList(cmd.OutOrStdout(), map[string]any{"date": args[0], "converted": v}, nil)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), converted)
			return err
		},
	}
}

func newTemplatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the description templates with visibility relations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			registry := app.Relations(cfg.Search.Templates)
			return opts.printList(cmd.OutOrStdout(), registry, registry.Templates())
		},
	}
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "get <scope>",
		Short:   "Print the settings stored in a scope",
		Example: `  searchscopectl get element_visibility -c config/local.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, release, err := opts.storeRepo(cmd)
			if err != nil {
				return err
			}
			defer release()

			values, err := repo.Scope(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			names := slices.Sorted(maps.Keys(values))
			lines := make([]string, 0, len(names))
			for _, name := range names {
				lines = append(lines, name+"="+values[name])
			}
			return opts.printList(cmd.OutOrStdout(), values, lines)
		},
	}
}
