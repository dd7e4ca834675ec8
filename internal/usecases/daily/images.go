package dailyService

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/admin/games/daily-guess/internal/domain"
)

// AddImage сидирует картинку. Повторное сидирование того же id перезаписывает запись,
// но не дублирует id в каталоге и не сбрасывает отметку использования
func (s *Service) AddImage(ctx context.Context, input domain.ImageInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		s.Log.Warn("invalid image input", "error", err, "name", input.Name)
		return "", domain.WrapBusinessError(fmt.Errorf("%w: %v", domain.ErrInvalidImageInput, err))
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}

	image := &domain.Image{
		ID:        id,
		Name:      input.Name,
		Labels:    input.Labels,
		ImageURL:  input.ImageURL,
		ThumbURL:  input.ThumbURL,
		Width:     input.Width,
		Height:    input.Height,
		CreatedAt: s.now().UTC(),
	}

	if err := s.ImageRepo.Save(ctx, image); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	added, err := s.ImageRepo.AppendID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to add image to catalog: %w", err)
	}

	if err := s.UsageRepo.InitIfMissing(ctx, id); err != nil {
		return "", fmt.Errorf("failed to init image usage: %w", err)
	}

	s.Log.Info("image seeded", "image_id", id, "name", image.Name, "new", added)
	return id, nil
}
