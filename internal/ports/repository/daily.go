package repository

import (
	"context"
	"time"

	"github.com/admin/games/daily-guess/internal/domain"
)

// IDailyPickRepo выбор картинки на UTC-день
type IDailyPickRepo interface {
	// Get возвращает id дня или domain.ErrKeyNotFound
	Get(ctx context.Context, day domain.DayKey) (string, error)
	// Claim пытается закрепить candidateID за днём. Возвращает итоговый id дня и исход
	Claim(ctx context.Context, day domain.DayKey, candidateID string, ttl time.Duration) (string, domain.PickOutcome, error)
	Reset(ctx context.Context, day domain.DayKey) error
}
