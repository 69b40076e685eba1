package lockmock

import (
	"context"
	"sync"

	"loan-refinance/internal/domain/lock"
)

var _ lock.Locker = (*Locker)(nil)

// Locker runs fn directly and records the keys it was asked for.
type Locker struct {
	WithLockFn func(ctx context.Context, key string, fn func(ctx context.Context) error) error

	mu   sync.Mutex
	Keys []string
}

func (m *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Keys = append(m.Keys, key)
	m.mu.Unlock()
	if m.WithLockFn != nil {
		return m.WithLockFn(ctx, key, fn)
	}
	return fn(ctx)
}
