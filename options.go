package searchscope

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchscope/internal/domain/visibility"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "valkey" or "redis"
	addrs     []string
	password  string
	keyPrefix string

	mappingsPath string
	mappingsData []byte

	settingsPath string
	static       *staticSettings

	exempt           []string
	templateSettings map[string]string
	templates        map[string]map[string][]string
	cacheSize        int

	logger *zap.Logger
}

type staticSettings struct {
	cultures  []string
	flags     []visibility.Flag
	templates map[string]string
}

// WithValkey reads settings from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis reads settings from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the key namespace of stored settings. Default: "searchscope:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithMappingsFile loads index mappings from a YAML file.
func WithMappingsFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.mappingsPath = path
	})
}

// WithMappings loads index mappings from a YAML (or JSON) document.
func WithMappings(data []byte) Option {
	return optionFunc(func(c *clientConfig) {
		c.mappingsData = data
	})
}

// WithSettingsFile reads settings from a static YAML snapshot instead of a store.
func WithSettingsFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.settingsPath = path
	})
}

// WithSettings uses fixed settings instead of a store. visible maps
// element_visibility setting names to their value; templates maps template
// setting names (e.g. "informationobject") to template ids.
func WithSettings(cultures []string, visible map[string]bool, templates map[string]string) Option {
	return optionFunc(func(c *clientConfig) {
		names := slices.Sorted(maps.Keys(visible))
		flags := make([]visibility.Flag, 0, len(names))
		for _, name := range names {
			flags = append(flags, visibility.Flag{Name: name, Visible: visible[name]})
		}
		c.static = &staticSettings{cultures: cultures, flags: flags, templates: templates}
	})
}

// WithExemptIndexTypes replaces the index types returned unfiltered to
// everyone. Default: actor, repository.
func WithExemptIndexTypes(indexTypes ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.exempt = indexTypes
	})
}

// WithTemplateSetting declares which default_template setting holds the
// description template of indexType.
func WithTemplateSetting(indexType, setting string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.templateSettings == nil {
			c.templateSettings = make(map[string]string)
		}
		c.templateSettings[indexType] = setting
	})
}

// WithTemplate adds or replaces the relation table of a description
// template: element_visibility setting name -> field patterns with %s for
// the culture.
func WithTemplate(template string, relations map[string][]string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.templates == nil {
			c.templates = make(map[string]map[string][]string)
		}
		c.templates[template] = relations
	})
}

// WithCacheSize sets the number of collected field lists kept in memory.
// 0 uses the default (256); a negative size disables caching.
func WithCacheSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheSize = size
	})
}

// WithLogger enables structured logging. Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
