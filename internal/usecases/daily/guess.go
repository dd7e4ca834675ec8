package dailyService

import (
	"context"

	"github.com/admin/games/daily-guess/internal/domain"
	"github.com/admin/games/daily-guess/internal/pkg/grading"
)

// SubmitGuess проверяет ответ против картинки текущего дня
func (s *Service) SubmitGuess(ctx context.Context, guess string) (*domain.GuessResult, error) {
	challenge, err := s.GetDailyImage(ctx)
	if err != nil {
		return nil, err
	}

	image := challenge.Image
	result := grading.Grade(guess, image.Canonical(), image.Aliases()...)

	s.Metrics.ObserveGuess(result)
	s.Log.Debug("guess graded",
		"day", challenge.DateUTC,
		"image_id", image.ID,
		"correct", result.Correct,
		"reason", result.Reason)

	correct := result.Correct
	s.publish(ctx, domain.GameEvent{
		Type:    domain.EventGuessGraded,
		DateUTC: challenge.DateUTC,
		ImageID: image.ID,
		Correct: &correct,
		Reason:  result.Reason,
		At:      s.now().UTC(),
	})

	return &result, nil
}
