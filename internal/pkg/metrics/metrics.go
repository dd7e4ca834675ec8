package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/admin/games/daily-guess/internal/domain"
)

// Metrics prometheus-метрики сервиса
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	DailyPicks       *prometheus.CounterVec
	Guesses          *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в reg (nil - глобальный регистратор)
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		DailyPicks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "daily",
				Name:      "picks_total",
				Help:      "Daily image resolutions by outcome (cached, claimed, adopted, fallback)",
			},
			[]string{"outcome"},
		),
		Guesses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "daily",
				Name:      "guesses_total",
				Help:      "Graded guesses by result (exact, tokens, incorrect)",
			},
			[]string{"result"},
		),
	}
}

// ObservePick считает исход выбора картинки дня
func (m *Metrics) ObservePick(outcome domain.PickOutcome) {
	if m == nil {
		return
	}
	m.DailyPicks.WithLabelValues(string(outcome)).Inc()
}

// ObserveGuess считает результат проверки ответа
func (m *Metrics) ObserveGuess(result domain.GuessResult) {
	if m == nil {
		return
	}
	label := "incorrect"
	if result.Correct {
		label = string(result.Reason)
	}
	m.Guesses.WithLabelValues(label).Inc()
}
