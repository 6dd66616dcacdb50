// Package config loads server configuration from the environment and an optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Dictionary backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Words     WordsConfig
	Game      GameConfig
	Logging   LoggingConfig
	DebugHash string // bcrypt hash guarding /debug; routes are off when empty
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port         string
	Env          string // "development" or "production"
	ClientOrigin string
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string
}

// WordsConfig holds word list and dictionary settings.
type WordsConfig struct {
	StartFile         string
	DictionaryFile    string
	Language          string
	Backend           string // BackendMemory or BackendSQLite
	DBPath            string
	DictionaryTimeout time.Duration
}

// GameConfig holds session settings.
type GameConfig struct {
	SessionIdleTTL time.Duration
	DailySalt      string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string // "console" or "json"
}

// Load reads .env (if present) and then the environment, applying defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("read .env")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			Env:          getEnv("ENV", "development"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dev_secret_change_me"),
			TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),
			CookieName: getEnv("COOKIE_NAME", "wordgame_token"),
		},
		Words: WordsConfig{
			StartFile:         os.Getenv("WORDS_START_FILE"),
			DictionaryFile:    os.Getenv("DICTIONARY_FILE"),
			Language:          getEnv("DICTIONARY_LANGUAGE", "en"),
			Backend:           getEnv("DICTIONARY_BACKEND", BackendMemory),
			DBPath:            getEnv("DB_PATH", "./data/wordgame.db"),
			DictionaryTimeout: getEnvDuration("DICTIONARY_TIMEOUT", 2*time.Second),
		},
		Game: GameConfig{
			SessionIdleTTL: getEnvDuration("SESSION_IDLE_TTL", 6*time.Hour),
			DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		DebugHash: os.Getenv("DEBUG_PASSWORD_HASH"),
	}
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvDuration accepts Go durations ("90s", "6h") or plain seconds.
func getEnvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Warn().Str("key", k).Str("value", v).Msg("invalid duration, using default")
	return def
}
