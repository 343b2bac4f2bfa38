// Package metadata is a string key/value repository over the client's
// SQLite database. The session token and its expiry live here.
package metadata

import "context"

type Repository interface {
	// Get returns ("", false, nil) when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
