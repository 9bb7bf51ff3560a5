package health

import "context"

// DBPinger checks click-store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}
