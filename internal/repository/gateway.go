package repository

import "context"

// Persistence keys. The value under each collection key is a JSON array of
// tasks; the theme key holds the raw "light"/"dark" string.
const (
	KeyActive  = "opdash_tasks_v3"
	KeyHistory = "opdash_history_v3"
	KeyTheme   = "opdash_theme"
)

// Entry is a single key/value pair written by Save.
type Entry struct {
	Key   string
	Value string
}

// Gateway is the opaque load/save interface over a storage backend.
type Gateway interface {
	// Load returns the stored value and whether the key was present.
	Load(ctx context.Context, key string) (string, bool, error)

	// Save writes all entries atomically: either every key is updated or
	// none is.
	Save(ctx context.Context, entries ...Entry) error

	Close() error
}
