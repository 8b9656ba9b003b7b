// Package kv provides the durable key-value store that payoff persists
// debts, payments, the account, and the theme selection into.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been set or was deleted.
	ErrNotFound = errors.New("kv: key not found")
	// ErrUnavailable wraps any failure of the underlying storage.
	ErrUnavailable = errors.New("kv: store unavailable")
)

// Store is a string-keyed blob store. Implementations are safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
