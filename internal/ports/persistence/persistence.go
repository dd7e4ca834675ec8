package persistence

import "context"

// Persistence минимальный SQL-слой, которым пользуются адаптеры хранилища
type Persistence interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) error
	ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
