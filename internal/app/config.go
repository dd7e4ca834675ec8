package app

import (
	"fmt"
	"strings"

	server "github.com/admin/games/daily-guess/internal/adapters/primary/http"
	kafkaAdapter "github.com/admin/games/daily-guess/internal/adapters/secondary/kafka"
	"github.com/admin/games/daily-guess/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/games/daily-guess/internal/adapters/secondary/storage/redis"
	"github.com/admin/games/daily-guess/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Log      *logger.Config       `envconfig:"LOG"`
	Server   *server.Config       `envconfig:"APISERVER"`
	Store    StoreConfig          `envconfig:"STORE"`
	Redis    *redisAdapter.Config `envconfig:"REDIS"`
	Postgres *pg.Config           `envconfig:"POSTGRES"`
	Kafka    *kafkaAdapter.Config `envconfig:"KAFKA"`
	Game     GameConfig           `envconfig:"GAME"`
}

// StoreConfig выбор бэкенда KV-хранилища
type StoreConfig struct {
	Driver string `envconfig:"DRIVER" default:"redis"` // redis | postgres | memory
}

// GameConfig настройки игры
type GameConfig struct {
	DebugRoutes      bool   `envconfig:"DEBUG_ROUTES" default:"false"`
	AdminToken       string `envconfig:"ADMIN_TOKEN"`
	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"daily_guess"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreDriverRedis, StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Postgres == nil || c.Postgres.Database == "" {
			return fmt.Errorf("postgres database is required for store driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Store.Driver)
	}
	return nil
}
