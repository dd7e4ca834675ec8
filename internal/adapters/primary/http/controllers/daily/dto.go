package dailyController

import "github.com/admin/games/daily-guess/internal/domain"

// ImageDTO картинка для клиента, labels не отдаются
type ImageDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	ThumbURL string `json:"thumbUrl,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type DailyResponse struct {
	DateUTC string   `json:"dateUTC"`
	Image   ImageDTO `json:"image"`
}

type GuessRequest struct {
	Guess string `json:"guess"`
}

func toDailyResponse(challenge *domain.DailyChallenge) DailyResponse {
	image := challenge.Image
	return DailyResponse{
		DateUTC: challenge.DateUTC.String(),
		Image: ImageDTO{
			ID:       image.ID,
			Name:     image.Name,
			ImageURL: image.ImageURL,
			ThumbURL: image.ThumbURL,
			Width:    image.Width,
			Height:   image.Height,
		},
	}
}
