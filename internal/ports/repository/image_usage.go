package repository

import (
	"context"
)

// IImageUsageRepo журнал последнего использования картинок (id -> YYYYMMDD, 0 - не использовалась)
type IImageUsageRepo interface {
	Scores(ctx context.Context) (map[string]int64, error)
	InitIfMissing(ctx context.Context, id string) error
	MarkUsed(ctx context.Context, id string, score int64) error
}
