package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Data     DataConfig
	Sources  SourcesConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	AppName     string
	Environment string
}

type DataConfig struct {
	RawDir       string
	ProcessedDir string
}

type SourcesConfig struct {
	GitHubAPIKey     string
	GitHubBaseURL    string
	JobBoardAppID    string
	JobBoardAPIKey   string
	JobBoardBaseURL  string
	CommunityBaseURL string
	ResearchBaseURL  string
}

type CacheConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
}

type DatabaseConfig struct {
	DSN string
}

type PipelineConfig struct {
	ForecastHorizonDays int
	ForecastStrategy    string
	RiskThresholdHigh   float64
	RiskThresholdLow    float64
	ScheduleHour        int
}

var errInvalidEnv = errors.New("invalid environment variable")

func Load() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := Config{}

	var invalid []string
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "skill-radar"),
		Environment: opt("APP_ENV", "development"),
	}

	cfg.Data = DataConfig{
		RawDir:       opt("DATA_RAW_DIR", "data/raw"),
		ProcessedDir: opt("DATA_PROCESSED_DIR", "data/processed"),
	}

	cfg.Sources = SourcesConfig{
		GitHubAPIKey:     opt("GITHUB_API_KEY", ""),
		GitHubBaseURL:    opt("GITHUB_BASE_URL", "https://api.github.com"),
		JobBoardAppID:    opt("JOB_BOARD_APP_ID", ""),
		JobBoardAPIKey:   opt("JOB_BOARD_API_KEY", ""),
		JobBoardBaseURL:  opt("JOB_BOARD_BASE_URL", "https://api.adzuna.com/v1/api/jobs/us/search/1"),
		CommunityBaseURL: opt("COMMUNITY_BASE_URL", ""),
		ResearchBaseURL:  opt("RESEARCH_BASE_URL", ""),
	}

	cfg.Cache = CacheConfig{
		RedisHost:     opt("REDIS_HOST", ""),
		RedisPort:     opt("REDIS_PORT", "6379"),
		RedisPassword: opt("REDIS_PASSWORD", ""),
	}

	cfg.Database = DatabaseConfig{
		DSN: opt("DATABASE_DSN", ""),
	}

	cfg.Pipeline = PipelineConfig{
		ForecastHorizonDays: optInt("FORECAST_HORIZON_DAYS", 90),
		ForecastStrategy:    opt("FORECAST_STRATEGY", "trend"),
		RiskThresholdHigh:   optFloat("RISK_THRESHOLD_HIGH", 0.7),
		RiskThresholdLow:    optFloat("RISK_THRESHOLD_LOW", 0.3),
		ScheduleHour:        optInt("PIPELINE_SCHEDULE_HOUR", 2),
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}
	if cfg.Pipeline.ScheduleHour < 0 || cfg.Pipeline.ScheduleHour > 23 {
		return Config{}, fmt.Errorf("%w: PIPELINE_SCHEDULE_HOUR", errInvalidEnv)
	}

	return cfg, nil
}
