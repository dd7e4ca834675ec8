package repository

import (
	"context"

	"github.com/admin/games/daily-guess/internal/domain"
)

// IImageRepo каталог картинок
type IImageRepo interface {
	Save(ctx context.Context, image *domain.Image) error
	Get(ctx context.Context, id string) (*domain.Image, error)
	ListIDs(ctx context.Context) ([]string, error)
	// AppendID добавляет id в общий список, если его там ещё нет
	AppendID(ctx context.Context, id string) (bool, error)
}
