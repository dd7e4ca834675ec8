package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/admin/games/daily-guess/internal/domain"
	"github.com/admin/games/daily-guess/internal/ports/store"
)

type entry struct {
	value    string
	deadline time.Time // нулевой - без срока жизни
}

// Store in-memory реализация store.Store для локального запуска и тестов
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
	noClaim bool
}

type Option func(*Store)

// WithClock подменяет источник времени (для проверки TTL в тестах)
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithoutClaim эмулирует хранилище без атомарного set-if-absent
func WithoutClaim() Option {
	return func(s *Store) {
		s.noClaim = true
	}
}

// NewStore создаёт пустое in-memory хранилище
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ store.Store = (*Store)(nil)

// lookup вызывается под мьютексом, протухшие ключи удаляет
func (s *Store) lookup(key string) (entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return entry{}, false
	}
	if !e.deadline.IsZero() && !s.now().Before(e.deadline) {
		delete(s.entries, key)
		return entry{}, false
	}
	return e, true
}

func (s *Store) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	return e.value, nil
}

func (s *Store) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: value, deadline: s.deadline(ttl)}
	return nil
}

func (s *Store) SetNX(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if s.noClaim {
		return false, domain.ErrClaimUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	s.entries[key] = entry{value: value, deadline: s.deadline(ttl)}
	return true, nil
}

func (s *Store) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(key)
	if !ok {
		return nil
	}
	e.deadline = s.deadline(ttl)
	s.entries[key] = e
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.lookup(key)
	return ok, nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
