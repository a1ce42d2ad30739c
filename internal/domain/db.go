package domain

import "context"

// Database is implemented by storage backends that need schema setup before
// their repositories can serve requests. The in-memory adapter has none.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
