package lock

import (
	"context"
	"errors"
)

var ErrNotAcquired = errors.New("could not acquire lock")

// Locker serializes critical sections sharing the same key, possibly across processes.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// CustomerKey is the lock key guarding every state change of one customer's loans, offers and account.
func CustomerKey(customerID string) string { return "lock:customer:" + customerID }
