// Package blob defines the opaque key/value byte store the vault is built
// on, plus the backends that implement it. Callers treat every backend the
// same way: keys are flat strings, values are raw bytes, a missing key is
// ErrNotFound.
package blob

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get and Delete when the key is absent.
	ErrNotFound = errors.New("blob not found")

	// ErrUnavailable classifies backend failures and per-operation
	// timeouts. The caller never sees backend topology in it.
	ErrUnavailable = errors.New("blob store unavailable")
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
