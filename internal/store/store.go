// Package store provides the daemon's access to the chat database.
package store

import "context"

// Store is the minimal database surface the daemon needs: liveness checks.
// Row data reaches the daemon through notification payloads, never through
// queries; the schema itself is applied by the setup command.
type Store interface {
	Ping(ctx context.Context) error
	Close() error
}
