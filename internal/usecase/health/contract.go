package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SchemaCounter reports how many index types have a loaded mapping.
type SchemaCounter interface {
	Len() int
}
