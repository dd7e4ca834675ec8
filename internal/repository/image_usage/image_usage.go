package imageUsageRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/admin/games/daily-guess/internal/domain"
	ports "github.com/admin/games/daily-guess/internal/ports/repository"
	"github.com/admin/games/daily-guess/internal/ports/store"
)

const lastUsedKey = "images:lastUsed"

type Repository struct {
	store store.Store
	Log   *slog.Logger
}

// New создаёт журнал использования: JSON-мапа id -> YYYYMMDD на images:lastUsed
func New(s store.Store, log *slog.Logger) ports.IImageUsageRepo {
	return &Repository{
		store: s,
		Log:   log,
	}
}

// Scores возвращает все известные отметки. Отсутствующий id трактуется вызывающим как 0
func (r *Repository) Scores(ctx context.Context) (map[string]int64, error) {
	raw, err := r.store.Get(ctx, lastUsedKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return make(map[string]int64), nil
		}
		r.Log.Error("failed to get image usage", "error", err)
		return nil, fmt.Errorf("failed to get image usage: %w", err)
	}

	scores := make(map[string]int64)
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		r.Log.Error("failed to unmarshal image usage", "error", err)
		return nil, fmt.Errorf("failed to unmarshal image usage: %w", err)
	}
	return scores, nil
}

// InitIfMissing выставляет 0, только если для id ещё нет отметки
func (r *Repository) InitIfMissing(ctx context.Context, id string) error {
	scores, err := r.Scores(ctx)
	if err != nil {
		return err
	}
	if _, ok := scores[id]; ok {
		return nil
	}

	scores[id] = 0
	return r.save(ctx, scores, id)
}

// MarkUsed записывает отметку дня. Отметка никогда не уменьшается, повторная запись того же дня ничего не меняет
func (r *Repository) MarkUsed(ctx context.Context, id string, score int64) error {
	scores, err := r.Scores(ctx)
	if err != nil {
		return err
	}
	if scores[id] >= score {
		return nil
	}

	scores[id] = score
	if err := r.save(ctx, scores, id); err != nil {
		return err
	}

	r.Log.Debug("image usage updated", "image_id", id, "score", score)
	return nil
}

func (r *Repository) save(ctx context.Context, scores map[string]int64, id string) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal image usage: %w", err)
	}

	if err := r.store.Set(ctx, lastUsedKey, string(raw), 0); err != nil {
		r.Log.Error("failed to save image usage", "error", err, "image_id", id)
		return fmt.Errorf("failed to save image usage: %w", err)
	}
	return nil
}
