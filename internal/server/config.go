package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/itax/internal/repository"
)

// Config holds the service settings.
type Config struct {
	Addr          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
	Mode          string
	// MaxUploadBytes bounds a single extracted document.
	MaxUploadBytes int64
}

// DefaultConfig returns the settings used when nothing is configured.
// An empty RedisAddr selects the in-memory session store.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		SessionTTL:     repository.DefaultSessionTTL,
		Mode:           gin.ReleaseMode,
		MaxUploadBytes: 10 << 20,
	}
}

// LoadConfig applies environment overrides to DefaultConfig.
func LoadConfig() (Config, error) {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if v := getenv("ITAX_ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.RedisAddr = getenv("ITAX_REDIS_ADDR")
	cfg.RedisPassword = getenv("ITAX_REDIS_PASSWORD")
	if v := getenv("ITAX_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil || db < 0 {
			return Config{}, fmt.Errorf("ITAX_REDIS_DB must be a non-negative integer, got %q", v)
		}
		cfg.RedisDB = db
	}
	if v := getenv("ITAX_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("ITAX_SESSION_TTL must be a positive duration, got %q", v)
		}
		cfg.SessionTTL = ttl
	}
	if v := getenv(gin.EnvGinMode); v != "" {
		cfg.Mode = v
	}
	return cfg, nil
}

// NewSessionStore returns a Redis store when RedisAddr is set and an
// in-memory store otherwise.
func (c Config) NewSessionStore() repository.SessionStore {
	if c.RedisAddr == "" {
		return repository.NewMemoryStore(c.SessionTTL)
	}
	return repository.NewRedisStoreFromOptions(repository.RedisOptions{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		TTL:      c.SessionTTL,
	})
}
