package domain

import "errors"

var (
	// ErrNoImagesSeeded каталог пуст, выбирать нечего
	ErrNoImagesSeeded = errors.New("no images seeded")
	// ErrInvalidImageInput не хватает обязательных полей при сидировании
	ErrInvalidImageInput = errors.New("invalid image input")
	// ErrPickMissing после claim не удалось получить id дня
	ErrPickMissing = errors.New("daily pick missing")
	// ErrImageNotFound id есть, а записи картинки нет
	ErrImageNotFound = errors.New("image not found")

	// ErrKeyNotFound ключа нет в хранилище
	ErrKeyNotFound = errors.New("key not found")
	// ErrClaimUnsupported хранилище не умеет set-if-absent
	ErrClaimUnsupported = errors.New("atomic claim unsupported")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase.
// Контроллеры её повторно не логируют
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
