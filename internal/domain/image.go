package domain

import "time"

// Image запись каталога картинок. Labels[0] - каноничный ответ, остальное синонимы
type Image struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Labels    []string  `json:"labels"`
	ImageURL  string    `json:"imageUrl"`
	ThumbURL  string    `json:"thumbUrl,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Canonical возвращает каноничный ответ для проверки угадывания
func (i *Image) Canonical() string {
	if len(i.Labels) > 0 && i.Labels[0] != "" {
		return i.Labels[0]
	}
	return i.Name
}

// Aliases возвращает допустимые синонимы: остальные labels и name
func (i *Image) Aliases() []string {
	var aliases []string
	if len(i.Labels) > 1 {
		aliases = append(aliases, i.Labels[1:]...)
	}
	if i.Name != "" && i.Name != i.Canonical() {
		aliases = append(aliases, i.Name)
	}
	return aliases
}

// ImageInput входные данные для сидирования картинки
type ImageInput struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name" validate:"required"`
	Labels   []string `json:"labels" validate:"required"`
	ImageURL string   `json:"imageUrl" validate:"required"`
	ThumbURL string   `json:"thumbUrl,omitempty"`
	Width    int      `json:"width,omitempty" validate:"gte=0"`
	Height   int      `json:"height,omitempty" validate:"gte=0"`
}
