package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"portrait-backend/internal/pkg/logger"
	"strconv"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// Setup dials redis and verifies the connection with a ping. The go-redis
// pool re-dials dropped connections on its own.
func Setup(ctx context.Context, config *Config) (*Client, error) {
	clientCtx, cancel := context.WithCancel(ctx)

	r := &Client{
		Client: _redis.NewClient(&_redis.Options{
			Addr:     net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
			Username: config.Username,
			Password: config.Password,
			PoolSize: config.PoolSize,
		}),
		cancel: cancel,
		ctx:    clientCtx,
		config: config,
	}

	if err := r.Ping(ctx); err != nil {
		cancel()
		_ = r.Client.Close()
		logger.Error.Println(err)
		return nil, err
	}

	return r, nil
}

// Ping reports whether the server answers within ctx.
func (r *Client) Ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Client) Close() error {
	r.cancel()
	return r.Client.Close()
}

// Set stores a key-value pair with an expiration time.
func (r *Client) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err = r.Client.Set(r.ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Get retrieves the value of a key. A missing key yields "".
func (r *Client) Get(key string) (string, error) {
	result, err := r.Client.Get(r.ctx, key).Result()
	if errors.Is(err, NilType) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

// Del deletes a key from IRedis.
func (r *Client) Del(key string) error {
	err := r.Client.Del(r.ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Expire sets a timeout on a key.
func (r *Client) Expire(key string, expiration time.Duration) error {
	err := r.Client.Expire(r.ctx, key, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set expiration on key %s: %w", key, err)
	}
	return nil
}

// Incr increments a counter and returns its new value.
func (r *Client) Incr(key string) (int64, error) {
	n, err := r.Client.Incr(r.ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment key %s: %w", key, err)
	}
	return n, nil
}

// HSet stores value under field of the hash at key, JSON encoded.
func (r *Client) HSet(key, field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err = r.Client.HSet(r.ctx, key, field, data).Err(); err != nil {
		return fmt.Errorf("failed to set field %s on %s: %w", field, key, err)
	}
	return nil
}

// HGetAll returns every field of the hash at key. A missing key yields an
// empty map.
func (r *Client) HGetAll(key string) (map[string]string, error) {
	result, err := r.Client.HGetAll(r.ctx, key).Result()
	if err != nil {
		if errors.Is(err, NilType) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read hash %s: %w", key, err)
	}
	return result, nil
}

// HDel removes fields from the hash at key.
func (r *Client) HDel(key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.Client.HDel(r.ctx, key, fields...).Err(); err != nil {
		return fmt.Errorf("failed to delete fields from %s: %w", key, err)
	}
	return nil
}
