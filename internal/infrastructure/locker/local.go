package locker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"loan-refinance/internal/domain/lock"
)

// LocalLocker serializes by key within one process. Used when no Redis is configured.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*keyEntry
	wait time.Duration
}

type keyEntry struct {
	sem  chan struct{}
	refs int
}

var _ lock.Locker = (*LocalLocker)(nil)

// NewLocalLocker returns a locker that gives up after wait; zero waits until ctx is done.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{keys: make(map[string]*keyEntry), wait: wait}
}

func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if fn == nil {
		return ErrNilFn
	}

	e := l.acquireEntry(key)
	defer l.releaseEntry(key, e)

	var timeout <-chan time.Time
	if l.wait > 0 {
		t := time.NewTimer(l.wait)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return fmt.Errorf("%w: %s: timed out after %s", lock.ErrNotAcquired, key, l.wait)
	}
	defer func() { <-e.sem }()

	return fn(ctx)
}

func (l *LocalLocker) acquireEntry(key string) *keyEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.keys[key]
	if !ok {
		e = &keyEntry{sem: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	return e
}

func (l *LocalLocker) releaseEntry(key string, e *keyEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
}
