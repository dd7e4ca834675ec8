package dailyRepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/games/daily-guess/internal/domain"
	ports "github.com/admin/games/daily-guess/internal/ports/repository"
	"github.com/admin/games/daily-guess/internal/ports/store"
)

const dailyKeyPrefix = "daily:"

type Repository struct {
	store store.Store
	Log   *slog.Logger
}

// New создаёт репозиторий выбора дня: daily:{YYYY-MM-DD} -> id с TTL до полуночи UTC
func New(s store.Store, log *slog.Logger) ports.IDailyPickRepo {
	return &Repository{
		store: s,
		Log:   log,
	}
}

func dailyKey(day domain.DayKey) string {
	return dailyKeyPrefix + day.String()
}

// Get возвращает id дня или domain.ErrKeyNotFound
func (r *Repository) Get(ctx context.Context, day domain.DayKey) (string, error) {
	id, err := r.store.Get(ctx, dailyKey(day))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return "", err
		}
		r.Log.Error("failed to get daily pick", "error", err, "day", day)
		return "", fmt.Errorf("failed to get daily pick: %w", err)
	}
	return id, nil
}

// Claim закрепляет candidateID за днём через set-if-absent. Побеждает первый записавший:
// проигравший перечитывает ключ и получает чужой id.
// Без атомарного claim делается безусловная запись, два первых вызова дня могут кратко разойтись
func (r *Repository) Claim(ctx context.Context, day domain.DayKey, candidateID string, ttl time.Duration) (string, domain.PickOutcome, error) {
	key := dailyKey(day)

	ok, err := r.store.SetNX(ctx, key, candidateID, ttl)
	switch {
	case errors.Is(err, domain.ErrClaimUnsupported):
		r.Log.Warn("store has no atomic claim, falling back to plain set",
			"day", day,
			"image_id", candidateID)
		if err := r.store.Set(ctx, key, candidateID, ttl); err != nil {
			r.Log.Error("failed to set daily pick", "error", err, "day", day)
			return "", "", fmt.Errorf("failed to set daily pick: %w", err)
		}
		return candidateID, domain.PickOutcomeFallback, nil
	case err != nil:
		r.Log.Error("failed to claim daily pick", "error", err, "day", day)
		return "", "", fmt.Errorf("failed to claim daily pick: %w", err)
	case ok:
		return candidateID, domain.PickOutcomeClaimed, nil
	}

	winnerID, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			r.Log.Error("claim lost but daily pick is absent", "day", day)
			return "", "", fmt.Errorf("%w: %s", domain.ErrPickMissing, day)
		}
		r.Log.Error("failed to read daily pick after lost claim", "error", err, "day", day)
		return "", "", fmt.Errorf("failed to read daily pick: %w", err)
	}
	if winnerID == "" {
		return "", "", fmt.Errorf("%w: %s", domain.ErrPickMissing, day)
	}

	return winnerID, domain.PickOutcomeAdopted, nil
}

// Reset удаляет выбор дня
func (r *Repository) Reset(ctx context.Context, day domain.DayKey) error {
	if err := r.store.Delete(ctx, dailyKey(day)); err != nil {
		r.Log.Error("failed to reset daily pick", "error", err, "day", day)
		return fmt.Errorf("failed to reset daily pick: %w", err)
	}
	r.Log.Info("daily pick reset", "day", day)
	return nil
}
