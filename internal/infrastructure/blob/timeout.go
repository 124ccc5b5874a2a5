package blob

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// WithTimeout wraps a Store so every operation runs under its own
// deadline. An operation that exceeds it fails with ErrUnavailable
// instead of hanging the request.
func WithTimeout(next Store, timeout time.Duration) Store {
	return &timeoutStore{next: next, timeout: timeout}
}

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

func (s *timeoutStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.next.Get(ctx, key)
	return data, s.classify(err)
}

func (s *timeoutStore) Put(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.classify(s.next.Put(ctx, key, data))
}

func (s *timeoutStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.classify(s.next.Delete(ctx, key))
}

func (s *timeoutStore) classify(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: timed out after %s", ErrUnavailable, s.timeout)
	}
	return err
}
