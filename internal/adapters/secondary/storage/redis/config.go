package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxRetries   = 3
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
	defaultPoolSize     = 10
	defaultMinIdleConns = 2
)

type Config struct {
	Host         string        `envconfig:"HOST" default:"localhost"`
	Port         string        `envconfig:"PORT" default:"6379"`
	Username     string        `envconfig:"USERNAME"`
	Password     string        `envconfig:"PASSWORD"`
	Database     int           `envconfig:"DATABASE" default:"0"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MIN_IDLE_CONNS" default:"2"`
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Options собирает redis.Options, подставляя дефолты вместо нулевых значений
func (c *Config) Options() *redis.Options {
	maxRetries := c.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	return &redis.Options{
		Addr:         c.Addr(),
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.Database,
		MaxRetries:   maxRetries,
		DialTimeout:  orDefault(c.DialTimeout, defaultDialTimeout),
		ReadTimeout:  orDefault(c.ReadTimeout, defaultReadTimeout),
		WriteTimeout: orDefault(c.WriteTimeout, defaultWriteTimeout),
		PoolSize:     orDefault(c.PoolSize, defaultPoolSize),
		MinIdleConns: orDefault(c.MinIdleConns, defaultMinIdleConns),
	}
}

// NewConnection создаёт новое подключение к Redis и проверяет его пингом
func (c *Config) NewConnection() (*redis.Client, error) {
	opts := c.Options()
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}
