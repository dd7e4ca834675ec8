package store

import (
	"context"
	"time"
)

// Store строковое key-value хранилище.
// Get возвращает domain.ErrKeyNotFound, если ключа нет.
// SetNX возвращает domain.ErrClaimUnsupported, если бэкенд не умеет атомарный set-if-absent.
// ttl == 0 - без срока жизни
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
