package dailyService

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/admin/games/daily-guess/internal/pkg/metrics"
	"github.com/admin/games/daily-guess/internal/ports/events"
	ports "github.com/admin/games/daily-guess/internal/ports/repository"
)

type Service struct {
	ImageRepo ports.IImageRepo
	UsageRepo ports.IImageUsageRepo
	DailyRepo ports.IDailyPickRepo
	Events    events.IEventPublisher // может быть nil
	Metrics   *metrics.Metrics       // может быть nil
	Log       *slog.Logger

	validate *validator.Validate
	now      func() time.Time
}

func New(
	imageRepo ports.IImageRepo,
	usageRepo ports.IImageUsageRepo,
	dailyRepo ports.IDailyPickRepo,
	publisher events.IEventPublisher,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	return &Service{
		ImageRepo: imageRepo,
		UsageRepo: usageRepo,
		DailyRepo: dailyRepo,
		Events:    publisher,
		Metrics:   m,
		Log:       log,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// SetClock подменяет источник времени
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
