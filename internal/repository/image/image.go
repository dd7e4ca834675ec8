package imageRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/admin/games/daily-guess/internal/domain"
	ports "github.com/admin/games/daily-guess/internal/ports/repository"
	"github.com/admin/games/daily-guess/internal/ports/store"
)

const (
	imageKeyPrefix = "img:"
	allImagesKey   = "images:all"
)

type Repository struct {
	store store.Store
	Log   *slog.Logger
}

// New создаёт каталог картинок: запись на img:{id} и JSON-список id на images:all
func New(s store.Store, log *slog.Logger) ports.IImageRepo {
	return &Repository{
		store: s,
		Log:   log,
	}
}

func imageKey(id string) string {
	return imageKeyPrefix + id
}

// Save сохраняет (или перезаписывает) запись картинки
func (r *Repository) Save(ctx context.Context, image *domain.Image) error {
	raw, err := json.Marshal(image)
	if err != nil {
		return fmt.Errorf("failed to marshal image: %w", err)
	}

	if err := r.store.Set(ctx, imageKey(image.ID), string(raw), 0); err != nil {
		r.Log.Error("failed to save image",
			"error", err,
			"image_id", image.ID)
		return fmt.Errorf("failed to save image: %w", err)
	}

	r.Log.Debug("image saved successfully", "image_id", image.ID, "name", image.Name)
	return nil
}

// Get получает картинку по id
func (r *Repository) Get(ctx context.Context, id string) (*domain.Image, error) {
	raw, err := r.store.Get(ctx, imageKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			r.Log.Warn("image not found", "image_id", id)
			return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, id)
		}
		r.Log.Error("failed to get image", "error", err, "image_id", id)
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	var image domain.Image
	if err := json.Unmarshal([]byte(raw), &image); err != nil {
		r.Log.Error("failed to unmarshal image", "error", err, "image_id", id)
		return nil, fmt.Errorf("failed to unmarshal image %s: %w", id, err)
	}
	return &image, nil
}

// ListIDs возвращает id каталога в порядке добавления
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	raw, err := r.store.Get(ctx, allImagesKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return []string{}, nil
		}
		r.Log.Error("failed to get image ids", "error", err)
		return nil, fmt.Errorf("failed to get image ids: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		r.Log.Error("failed to unmarshal image ids", "error", err)
		return nil, fmt.Errorf("failed to unmarshal image ids: %w", err)
	}
	return ids, nil
}

// AppendID добавляет id в конец списка. false - id уже был в каталоге
func (r *Repository) AppendID(ctx context.Context, id string) (bool, error) {
	ids, err := r.ListIDs(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(ids, id) {
		return false, nil
	}

	raw, err := json.Marshal(append(ids, id))
	if err != nil {
		return false, fmt.Errorf("failed to marshal image ids: %w", err)
	}

	if err := r.store.Set(ctx, allImagesKey, string(raw), 0); err != nil {
		r.Log.Error("failed to save image ids", "error", err, "image_id", id)
		return false, fmt.Errorf("failed to save image ids: %w", err)
	}

	r.Log.Debug("image id appended", "image_id", id, "total", len(ids)+1)
	return true, nil
}
