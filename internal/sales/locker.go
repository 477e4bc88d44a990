package sales

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// Locker serializes work on one aggregate key.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalLocker is an in-process keyed mutex.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: make(map[string]*keyLock)}
}

func (l *LocalLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	k, ok := l.keys[key]
	if !ok {
		k = &keyLock{}
		l.keys[key] = k
	}
	k.refs++
	l.mu.Unlock()

	k.mu.Lock()
	return func() {
		k.mu.Unlock()
		l.mu.Lock()
		k.refs--
		if k.refs == 0 {
			delete(l.keys, key)
		}
		l.mu.Unlock()
	}, nil
}

// RedisLocker shares the serialization point between API instances.
// When the lock cannot be obtained the caller proceeds; the daily_sales unique key still holds.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
	logger *logrus.Logger
}

func NewRedisLocker(client redislock.RedisClient, logger *logrus.Logger) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(client),
		ttl:    10 * time.Second,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
		logger: logger,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := l.client.Obtain(ctx, "lock:sale:"+key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if err != nil {
		entry := l.logger.WithFields(logrus.Fields{"field": "RedisLocker", "key": key})
		if errors.Is(err, redislock.ErrNotObtained) {
			entry.Warn("could not obtain redis lock; proceeding without redis lock")
		} else {
			entry.Warn("error obtaining redis lock; proceeding without redis lock: " + err.Error())
		}
		return func() {}, nil
	}
	return func() {
		// The request context may already be done when the sale finishes.
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.WithFields(logrus.Fields{"field": "RedisLocker", "key": key}).Warn("release redis lock: " + err.Error())
		}
	}, nil
}
