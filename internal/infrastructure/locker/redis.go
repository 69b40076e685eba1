package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loan-refinance/internal/domain/lock"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrEmptyKey = errors.New("lock key cannot be empty")
	ErrNilFn    = errors.New("lock function is nil")
)

type Options struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

func DefaultOptions() Options {
	return Options{Expiry: 10 * time.Second, Tries: 3, RetryDelay: 200 * time.Millisecond}
}

// RedisLocker is a lock.Locker backed by redsync (RedLock over a single go-redis client).
type RedisLocker struct {
	rs   *redsync.Redsync
	opts Options
	log  *zap.Logger
}

var _ lock.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client redis.UniversalClient, opts Options, log *zap.Logger) *RedisLocker {
	if opts.Expiry <= 0 {
		opts.Expiry = DefaultOptions().Expiry
	}
	if opts.Tries < 1 {
		opts.Tries = DefaultOptions().Tries
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLocker{
		rs:   redsync.New(goredis.NewPool(client)),
		opts: opts,
		log:  log,
	}
}

func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if fn == nil {
		return ErrNilFn
	}

	m := l.rs.NewMutex(key,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)
	if err := m.LockContext(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		l.log.Warn("lock busy", zap.String("lock_key", key), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", lock.ErrNotAcquired, key, err)
	}
	l.log.Debug("lock acquired", zap.String("lock_key", key))

	defer func() {
		// release even when the request context is already done
		if ok, err := m.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
			l.log.Error("lock release failed", zap.String("lock_key", key), zap.Bool("unlock_ok", ok), zap.Error(err))
		}
	}()

	return fn(ctx)
}
