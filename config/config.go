package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Session  SessionConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Port         string        `env:"PORT" env-default:"5000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DatabaseConfig struct {
	// Driver selects the gorm dialector: "sqlite" or "postgres".
	Driver string `env:"DB_DRIVER" env-default:"sqlite"`
	DSN    string `env:"DB_DSN" env-default:"./tweets.db"`
}

type SessionConfig struct {
	// Secret signs the session cookie. When empty a random key is
	// generated at startup, which invalidates sessions on restart.
	Secret string        `env:"SESSION_SECRET" env-default:""`
	MaxAge time.Duration `env:"SESSION_MAX_AGE" env-default:"24h"`
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
