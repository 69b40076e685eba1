package locker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"loan-refinance/internal/domain/lock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, opts Options) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return NewRedisLocker(c, opts, nil), s
}

func TestRedisLocker_RunsFnAndReleases(t *testing.T) {
	l, s := newRedisLocker(t, DefaultOptions())
	key := lock.CustomerKey("C1")

	ran := false
	err := l.WithLock(context.Background(), key, func(ctx context.Context) error {
		ran = true
		assert.True(t, s.Exists(key), "key must be held while fn runs")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, s.Exists(key), "key must be released after fn")
}

func TestRedisLocker_PropagatesFnError(t *testing.T) {
	l, s := newRedisLocker(t, DefaultOptions())
	boom := errors.New("boom")

	err := l.WithLock(context.Background(), "k", func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, s.Exists("k"))
}

func TestRedisLocker_BusyKeyNotAcquired(t *testing.T) {
	l, _ := newRedisLocker(t, Options{Expiry: 5 * time.Second, Tries: 1})
	key := lock.CustomerKey("C1")

	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- l.WithLock(context.Background(), key, func(ctx context.Context) error {
			close(inside)
			<-release
			return nil
		})
	}()
	<-inside

	err := l.WithLock(context.Background(), key, func(ctx context.Context) error {
		t.Fatal("second holder must not run")
		return nil
	})
	require.ErrorIs(t, err, lock.ErrNotAcquired)

	close(release)
	require.NoError(t, <-done)

	// free again
	require.NoError(t, l.WithLock(context.Background(), key, func(ctx context.Context) error { return nil }))
}

func TestRedisLocker_Validation(t *testing.T) {
	l, _ := newRedisLocker(t, DefaultOptions())
	assert.ErrorIs(t, l.WithLock(context.Background(), " ", func(context.Context) error { return nil }), ErrEmptyKey)
	assert.ErrorIs(t, l.WithLock(context.Background(), "k", nil), ErrNilFn)
}

func TestLocalLocker_Serializes(t *testing.T) {
	l := NewLocalLocker(0)
	var active, maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock(context.Background(), "k", func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Empty(t, l.keys, "entries must be dropped once unused")
}

func TestLocalLocker_DistinctKeysDoNotBlock(t *testing.T) {
	l := NewLocalLocker(50 * time.Millisecond)
	err := l.WithLock(context.Background(), "a", func(ctx context.Context) error {
		return l.WithLock(ctx, "b", func(context.Context) error { return nil })
	})
	require.NoError(t, err)
}

func TestLocalLocker_TimeoutAndCancel(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	err := l.WithLock(context.Background(), "k", func(ctx context.Context) error {
		return l.WithLock(ctx, "k", func(context.Context) error { return nil })
	})
	require.ErrorIs(t, err, lock.ErrNotAcquired)

	unbounded := NewLocalLocker(0)
	ctx, cancel := context.WithCancel(context.Background())
	err = unbounded.WithLock(context.Background(), "k", func(context.Context) error {
		cancel()
		return unbounded.WithLock(ctx, "k", func(context.Context) error { return nil })
	})
	require.ErrorIs(t, err, context.Canceled)
}
