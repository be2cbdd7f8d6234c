package settings

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/searchscope/internal/db"
	"github.com/kailas-cloud/searchscope/internal/domain/setting"
	"github.com/kailas-cloud/searchscope/internal/domain/visibility"
)

// store is the consumer interface for settings (ISP).
//
//nolint:interfacebloat // settings repo needs read, seed and cleanup operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads and writes scoped settings stored as one hash per scope:
// field = setting name, value = source-culture value.
type Repo struct {
	store  store
	prefix string
}

// New creates a settings repository. prefix namespaces every key.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) scopeKey(scope string) string {
	return r.prefix + "setting:" + scope
}

// Snapshot reads cultures, visibility flags and the template stored under
// templateSetting in one round-trip. An empty templateSetting reads no template.
func (r *Repo) Snapshot(ctx context.Context, templateSetting string) (setting.Snapshot, error) {
	keys := []string{
		r.scopeKey(setting.ScopeLanguages),
		r.scopeKey(setting.ScopeVisibility),
		r.scopeKey(setting.ScopeTemplate),
	}
	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return setting.Snapshot{}, fmt.Errorf("read settings: %w", err)
	}
	if len(hashes) != len(keys) {
		return setting.Snapshot{}, fmt.Errorf("read settings: expected %d scopes, got %d", len(keys), len(hashes))
	}

	snap := setting.Snapshot{
		Cultures: culturesFromHash(hashes[0]),
		Flags:    flagsFromHash(hashes[1]),
	}
	if templateSetting != "" {
		snap.Template = strings.TrimSpace(hashes[2][templateSetting])
	}
	return snap, nil
}

// Scope returns the raw settings stored in scope, keyed by setting name.
// A missing scope reads as empty.
func (r *Repo) Scope(ctx context.Context, scope string) (map[string]string, error) {
	m, err := r.store.HGetAll(ctx, r.scopeKey(scope))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", scope, err)
	}
	return m, nil
}

// Put writes a single setting.
func (r *Repo) Put(ctx context.Context, scope, name, value string) error {
	if scope == "" || name == "" {
		return fmt.Errorf("scope and name are required")
	}
	if err := r.store.HSet(ctx, r.scopeKey(scope), map[string]string{name: value}); err != nil {
		return fmt.Errorf("write %s.%s: %w", scope, name, err)
	}
	return nil
}

// PutSnapshot writes all scopes of a snapshot. Cultures are stored under
// their own code as name. The template is stored under templateSetting.
func (r *Repo) PutSnapshot(ctx context.Context, snap setting.Snapshot, templateSetting string) error {
	langs := make(map[string]string, len(snap.Cultures))
	for _, c := range snap.Cultures {
		langs[c] = c
	}
	flags := make(map[string]string, len(snap.Flags))
	for _, f := range snap.Flags {
		flags[f.Name] = setting.FormatBool(f.Visible)
	}
	items := []db.HashSetItem{
		{Key: r.scopeKey(setting.ScopeLanguages), Fields: langs},
		{Key: r.scopeKey(setting.ScopeVisibility), Fields: flags},
	}
	if templateSetting != "" && snap.Template != "" {
		items = append(items, db.HashSetItem{
			Key:    r.scopeKey(setting.ScopeTemplate),
			Fields: map[string]string{templateSetting: snap.Template},
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Unset removes settings from a scope.
func (r *Repo) Unset(ctx context.Context, scope string, names ...string) error {
	if err := r.store.HDel(ctx, r.scopeKey(scope), names...); err != nil {
		return fmt.Errorf("unset %s: %w", scope, err)
	}
	return nil
}

// Reset removes a whole scope.
func (r *Repo) Reset(ctx context.Context, scope string) error {
	if err := r.store.Del(ctx, r.scopeKey(scope)); err != nil {
		return fmt.Errorf("reset %s: %w", scope, err)
	}
	return nil
}

// HasScope reports whether any setting exists in scope.
func (r *Repo) HasScope(ctx context.Context, scope string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.scopeKey(scope))
	if err != nil {
		return false, fmt.Errorf("check %s: %w", scope, err)
	}
	return ok, nil
}

// Scopes lists stored scopes, sorted.
func (r *Repo) Scopes(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, r.scopeKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan settings: %w", err)
	}
	base := r.scopeKey("")
	scopes := make([]string, 0, len(keys))
	for _, k := range keys {
		scopes = append(scopes, strings.TrimPrefix(k, base))
	}
	sort.Strings(scopes)
	return scopes, nil
}

func culturesFromHash(m map[string]string) []string {
	names := sortedKeys(m)
	out := make([]string, 0, len(names))
	for _, name := range names {
		if v := strings.TrimSpace(m[name]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func flagsFromHash(m map[string]string) []visibility.Flag {
	names := sortedKeys(m)
	out := make([]visibility.Flag, 0, len(names))
	for _, name := range names {
		out = append(out, visibility.Flag{Name: name, Visible: setting.Bool(m[name])})
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
