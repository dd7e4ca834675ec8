package domain

import "time"

// EventType тип игрового события
type EventType string

const (
	EventDailyPicked EventType = "daily.picked"
	EventGuessGraded EventType = "guess.graded"
)

// GameEvent событие для внешних потребителей (статистика и т.п.)
type GameEvent struct {
	Type    EventType   `json:"type"`
	DateUTC DayKey      `json:"dateUTC"`
	ImageID string      `json:"imageId"`
	Correct *bool       `json:"correct,omitempty"`
	Reason  GuessReason `json:"reason,omitempty"`
	At      time.Time   `json:"at"`
}
