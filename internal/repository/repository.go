// Package repository defines the local key-value storage boundary and the
// persisted shape of task records.
package repository

import "context"

// KeyValueStore is a durable string-to-string map. Get reports found=false
// for a missing key rather than an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
