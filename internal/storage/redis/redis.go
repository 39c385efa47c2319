package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
)

const opTimeout = 3 * time.Second

type RedisRepo struct {
	client *redis.Client
}

func New(ctx context.Context, addr, pass string, db int) (*RedisRepo, error) {
	const op = "storage.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pass,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisRepo{
		client: client,
	}, nil
}

// LimitCounter returns an httprate counter whose keys live under name, so
// every API replica shares the same sliding windows.
func (r *RedisRepo) LimitCounter(name string) httprate.LimitCounter {
	return &limitCounter{
		client: r.client,
		prefix: "ratelimit:" + name,
	}
}

func (r *RedisRepo) Close() {
	r.client.Close()
}

// keyWindows is how many window lengths a counter key is kept for.
const keyWindows = 3

type limitCounter struct {
	client       *redis.Client
	prefix       string
	windowLength time.Duration
}

func (c *limitCounter) Config(_ int, windowLength time.Duration) {
	c.windowLength = windowLength
}

func (c *limitCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *limitCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	const op = "storage.redis.IncrementBy"

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	k := c.key(key, currentWindow)

	// A window's count is read again as the previous window during the next
	// one, so the key must outlive both.
	pipe := c.client.TxPipeline()
	pipe.IncrBy(ctx, k, int64(amount))
	pipe.Expire(ctx, k, keyWindows*c.windowLength)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *limitCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	const op = "storage.redis.Get"

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	vals, err := c.client.MGet(ctx, c.key(key, currentWindow), c.key(key, previousWindow)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	counts := make([]int, 2)
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("%s: %w", op, err)
		}

		counts[i] = n
	}

	return counts[0], counts[1], nil
}

func (c *limitCounter) key(key string, window time.Time) string {
	return fmt.Sprintf("%s:%s:%d", c.prefix, key, window.Unix())
}
