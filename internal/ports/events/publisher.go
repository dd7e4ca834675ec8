package events

import (
	"context"

	"github.com/admin/games/daily-guess/internal/domain"
)

// IEventPublisher отправка игровых событий наружу
type IEventPublisher interface {
	Publish(ctx context.Context, event domain.GameEvent) error
	Close() error
}
