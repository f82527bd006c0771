package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	PagesDir  string
	OutputDir string
	RulesPath string

	WikiBaseURL    string
	UserAgent      string
	FetchRPS       int
	FetchTimeoutMs int
	FetchMaxAgeHrs int

	WatchIntervalSec int

	Workers       int
	MaxExpansions int

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "recipes.db")),
		PagesDir:  getEnv("PAGES_DIR", filepath.Join(cwd, "data", "pages")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		RulesPath: getEnv("RULES_PATH", ""),

		WikiBaseURL:    getEnv("WIKI_BASE_URL", "https://minecraft.wiki"),
		UserAgent:      getEnv("USER_AGENT", "recipegraph/1.0"),
		FetchRPS:       getEnvInt("FETCH_RPS", 2),
		FetchTimeoutMs: getEnvInt("FETCH_TIMEOUT_MS", 15000),
		FetchMaxAgeHrs: getEnvInt("FETCH_MAX_AGE_HOURS", 24*7),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 3600),

		Workers:       getEnvInt("WORKERS", 4),
		MaxExpansions: getEnvInt("MAX_EXPANSIONS", 4096),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxExpansions <= 0 {
		return Config{}, fmt.Errorf("MAX_EXPANSIONS must be positive, got %d", cfg.MaxExpansions)
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
