package domain

import (
	"strconv"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey UTC-дата в формате YYYY-MM-DD
type DayKey string

// DayKeyOf возвращает ключ дня для момента t (в UTC)
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.UTC().Format(dayKeyLayout))
}

func (d DayKey) String() string {
	return string(d)
}

// Score возвращает дату как число YYYYMMDD. Более поздний день всегда даёт большее число
func (d DayKey) Score() int64 {
	t, err := time.Parse(dayKeyLayout, string(d))
	if err != nil {
		return 0
	}
	score, _ := strconv.ParseInt(t.Format("20060102"), 10, 64)
	return score
}

// UntilNextMidnight время до следующей полуночи UTC, не меньше секунды
func UntilNextMidnight(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	ttl := next.Sub(now).Truncate(time.Second)
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}

// DailyChallenge картинка дня
type DailyChallenge struct {
	DateUTC DayKey
	Image   *Image
}

// PickOutcome как был получен выбор дня
type PickOutcome string

const (
	PickOutcomeCached   PickOutcome = "cached"   // уже был выбран ранее
	PickOutcomeClaimed  PickOutcome = "claimed"  // выбрали и закрепили сами
	PickOutcomeAdopted  PickOutcome = "adopted"  // проиграли гонку, взяли чужой выбор
	PickOutcomeFallback PickOutcome = "fallback" // хранилище без атомарного claim
)
