package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/admin/games/daily-guess/internal/domain"
	"github.com/admin/games/daily-guess/internal/ports/persistence"
	"github.com/admin/games/daily-guess/internal/ports/store"
)

// KVStore key-value хранилище поверх таблицы kv_store.
// Протухшие строки считаются отсутствующими и перезаписываются при SetNX
type KVStore struct {
	db  persistence.Persistence
	now func() time.Time
}

func NewKVStore(db persistence.Persistence) *KVStore {
	return &KVStore{
		db:  db,
		now: time.Now,
	}
}

var _ store.Store = (*KVStore)(nil)

func (s *KVStore) expiresAt(ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	at := s.now().UTC().Add(ttl)
	return &at
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`
	err := s.db.Get(ctx, &value, query, key, s.now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("pg get failed: %w", err)
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	query := `INSERT INTO kv_store (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`
	if err := s.db.Exec(ctx, query, key, value, s.expiresAt(ttl)); err != nil {
		return fmt.Errorf("pg set failed: %w", err)
	}
	return nil
}

// SetNX вставляет строку или занимает протухшую. Атомарность обеспечивает ON CONFLICT
func (s *KVStore) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	query := `INSERT INTO kv_store (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
		WHERE kv_store.expires_at IS NOT NULL AND kv_store.expires_at <= $4`
	affected, err := s.db.ExecWithResult(ctx, query, key, value, s.expiresAt(ttl), s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("pg setnx failed: %w", err)
	}
	return affected > 0, nil
}

func (s *KVStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	query := `UPDATE kv_store SET expires_at = $2 WHERE key = $1`
	if err := s.db.Exec(ctx, query, key, s.expiresAt(ttl)); err != nil {
		return fmt.Errorf("pg expire failed: %w", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("pg delete failed: %w", err)
	}
	return nil
}

func (s *KVStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM kv_store WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2))`
	if err := s.db.Get(ctx, &exists, query, key, s.now().UTC()); err != nil {
		return false, fmt.Errorf("pg exists failed: %w", err)
	}
	return exists, nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *KVStore) Close() error {
	return s.db.Close()
}
