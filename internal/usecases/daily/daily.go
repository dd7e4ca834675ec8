package dailyService

import (
	"context"
	"errors"
	"fmt"

	"github.com/admin/games/daily-guess/internal/domain"
)

// GetDailyImage возвращает картинку текущего UTC-дня, одну и ту же для всех.
// Первый вызов дня выбирает самую давно не использованную картинку и закрепляет её через claim
func (s *Service) GetDailyImage(ctx context.Context) (*domain.DailyChallenge, error) {
	now := s.now()
	day := domain.DayKeyOf(now)

	imageID, err := s.DailyRepo.Get(ctx, day)
	outcome := domain.PickOutcomeCached
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			return nil, fmt.Errorf("failed to read daily pick: %w", err)
		}

		imageID, outcome, err = s.pickForDay(ctx, day)
		if err != nil {
			return nil, err
		}
	}

	image, err := s.ImageRepo.Get(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily image: %w", err)
	}

	s.Metrics.ObservePick(outcome)

	return &domain.DailyChallenge{
		DateUTC: day,
		Image:   image,
	}, nil
}

// pickForDay выбирает кандидата, закрепляет день и обновляет журнал использования
func (s *Service) pickForDay(ctx context.Context, day domain.DayKey) (string, domain.PickOutcome, error) {
	ids, err := s.ImageRepo.ListIDs(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to list images: %w", err)
	}
	if len(ids) == 0 {
		s.Log.Warn("daily pick requested but catalog is empty", "day", day)
		return "", "", domain.WrapBusinessError(domain.ErrNoImagesSeeded)
	}

	scores, err := s.UsageRepo.Scores(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image usage: %w", err)
	}

	candidateID := LeastRecentlyUsed(ids, scores)

	imageID, outcome, err := s.DailyRepo.Claim(ctx, day, candidateID, domain.UntilNextMidnight(s.now()))
	if err != nil {
		return "", "", fmt.Errorf("failed to claim daily pick: %w", err)
	}
	if imageID == "" {
		return "", "", fmt.Errorf("%w: %s", domain.ErrPickMissing, day)
	}

	// картинку показали сегодня независимо от того, кто выиграл claim
	if err := s.UsageRepo.MarkUsed(ctx, imageID, day.Score()); err != nil {
		return "", "", fmt.Errorf("failed to mark image used: %w", err)
	}

	s.Log.Info("daily image resolved",
		"day", day,
		"image_id", imageID,
		"candidate_id", candidateID,
		"outcome", outcome)

	if outcome != domain.PickOutcomeAdopted {
		s.publish(ctx, domain.GameEvent{
			Type:    domain.EventDailyPicked,
			DateUTC: day,
			ImageID: imageID,
			At:      s.now().UTC(),
		})
	}

	return imageID, outcome, nil
}

// LeastRecentlyUsed возвращает id с наименьшей отметкой использования.
// Отсутствующая отметка равна 0, при равенстве побеждает первый по порядку каталога
func LeastRecentlyUsed(ids []string, scores map[string]int64) string {
	if len(ids) == 0 {
		return ""
	}

	bestID := ids[0]
	bestScore := scores[bestID]
	for _, id := range ids[1:] {
		if score := scores[id]; score < bestScore {
			bestID = id
			bestScore = score
		}
	}
	return bestID
}

// ResetDaily удаляет выбор текущего дня (только для отладки)
func (s *Service) ResetDaily(ctx context.Context) (domain.DayKey, error) {
	day := domain.DayKeyOf(s.now())
	if err := s.DailyRepo.Reset(ctx, day); err != nil {
		return day, fmt.Errorf("failed to reset daily pick: %w", err)
	}
	return day, nil
}

func (s *Service) publish(ctx context.Context, event domain.GameEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		s.Log.Warn("failed to publish game event",
			"error", err,
			"type", event.Type,
			"image_id", event.ImageID)
	}
}
