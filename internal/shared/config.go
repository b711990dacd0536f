package shared

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" env-default:"prod"`
	HTTPAddr    string `env:"HTTP_ADDR" env-default:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`

	DBDriver    string `env:"DB_DRIVER" env-default:"mysql" validate:"oneof=mysql postgres sqlite"`
	DatabaseDSN string `env:"DATABASE_DSN" env-default:"root:root@tcp(localhost:3306)/hotels?parseTime=true&charset=utf8mb4&loc=UTC" validate:"required"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" env-default:"false"`

	SessionStore string `env:"SESSION_STORE" env-default:"sql" validate:"oneof=sql redis"`
	RedisAddr    string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPass    string `env:"REDIS_PASSWORD"`
	RedisDB      int    `env:"REDIS_DB" env-default:"0"`

	JWTSecret      string        `env:"JWT_SECRET" validate:"required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"15s"`

	CatalogBase        string  `env:"CATALOG_BASE_URL" env-default:"https://content-api.cupid.travel/v3.0"`
	CatalogKey         string  `env:"CATALOG_API_KEY"`
	CatalogRPS         int     `env:"CATALOG_RPS" env-default:"5"`
	CatalogPropertyIDs []int64 `env:"CATALOG_PROPERTY_IDS" env-separator:","`
	Workers            int     `env:"INGEST_WORKERS" env-default:"8" validate:"min=1"`
}

func Load() (Config, error) {
	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if c.CatalogKey == "" {
		log.Warn().Msg("CATALOG_API_KEY is empty")
	}
	return c, nil
}

// MustLoad is Load for main packages.
func MustLoad() Config {
	c, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	return c
}
