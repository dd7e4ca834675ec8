package kafka

import (
	"strings"
)

// Config конфигурация Kafka producer игровых событий
type Config struct {
	Brokers          string `envconfig:"BROKERS"`                           // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC" default:"daily-guess.events"` // название топика
	ClientID         string `envconfig:"CLIENT_ID" default:"daily-guess"`
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "SASL_PLAINTEXT", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// IsEnabled события публикуются только при заданных брокерах
func (c *Config) IsEnabled() bool {
	return strings.TrimSpace(c.Brokers) != ""
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	if c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	brokers := strings.Split(c.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}
