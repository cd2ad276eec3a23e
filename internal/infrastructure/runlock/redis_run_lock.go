// Package runlock provides a Redis-backed lease that keeps overlapping
// sync runs from executing concurrently across processes.
package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	syncapp "github.com/sominastock/ordersync/internal/application/ordersync"
)

// defaultKeyPrefix namespaces the lock keys in a shared Redis instance
const defaultKeyPrefix = "ordersync:runlock:"

// RedisRunLock implements RunLock using a SETNX lease. The lease carries a
// TTL so a crashed run cannot block future runs forever.
type RedisRunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// Config holds Redis connection configuration for the run lock
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisRunLock creates a run lock scoped to one seller account
func NewRedisRunLock(cfg Config, sellerID string, ttl time.Duration) (*RedisRunLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisRunLockWithClient(client, sellerID, ttl), nil
}

// NewRedisRunLockWithClient creates a run lock with an existing Redis client
func NewRedisRunLockWithClient(client *redis.Client, sellerID string, ttl time.Duration) *RedisRunLock {
	return &RedisRunLock{
		client: client,
		key:    defaultKeyPrefix + sellerID,
		ttl:    ttl,
	}
}

// Acquire takes the lease. Returns false when another run holds it.
func (l *RedisRunLock) Acquire(ctx context.Context) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	return acquired, nil
}

// Release drops the lease so the next run can start
func (l *RedisRunLock) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (l *RedisRunLock) Close() error {
	return l.client.Close()
}

// Ensure RedisRunLock implements the RunLock port
var _ syncapp.RunLock = (*RedisRunLock)(nil)
