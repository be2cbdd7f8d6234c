package fields

import (
	"context"

	"github.com/kailas-cloud/searchscope/internal/domain/schema"
	"github.com/kailas-cloud/searchscope/internal/domain/setting"
)

// SchemaSource resolves an index type to its mapping root.
type SchemaSource interface {
	Lookup(indexType string) (*schema.Node, error)
}

// SettingsReader reads the settings a field request depends on.
// templateSetting names the default_template entry to resolve; empty reads none.
type SettingsReader interface {
	Snapshot(ctx context.Context, templateSetting string) (setting.Snapshot, error)
}
