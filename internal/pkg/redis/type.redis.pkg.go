package redis

import (
	"context"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

var NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	PoolSize int
}

type Client struct {
	Client *_redis.Client
	config *Config
	ctx    context.Context
	cancel context.CancelFunc
}

// IRedis is the subset of the client used by services, so tests can swap in
// a fake.
type IRedis interface {
	Set(key string, value any, expiration time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
	Expire(key string, expiration time.Duration) error
	Incr(key string) (int64, error)
	HSet(key, field string, value any) error
	HGetAll(key string) (map[string]string, error)
	HDel(key string, fields ...string) error
	Ping(ctx context.Context) error
	Close() error
}

var _ IRedis = (*Client)(nil)
