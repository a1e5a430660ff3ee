package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"skill-radar/internal/cache"
	"skill-radar/internal/config"
	"skill-radar/internal/database"
	dbpostgres "skill-radar/internal/database/postgres"
	"skill-radar/internal/extract"
	"skill-radar/internal/features"
	"skill-radar/internal/forecast"
	"skill-radar/internal/history"
	"skill-radar/internal/pipeline"
	"skill-radar/internal/repository"
	"skill-radar/internal/risk"
	"skill-radar/internal/source"
)

// Container wires configuration into a runnable pipeline.
type Container struct {
	Config   config.Config
	Log      *zap.SugaredLogger
	Cache    *cache.Redis
	DB       database.DB
	Registry *pipeline.Registry
	Daily    *pipeline.Daily
}

func NewContainer(cfg config.Config, log *zap.SugaredLogger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	c.Cache = cache.NewRedis(cfg.Cache.RedisHost, cfg.Cache.RedisPort, cfg.Cache.RedisPassword, log)

	var runs repository.RunRepository
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := dbpostgres.Connect(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		c.DB = db
		runs = repository.NewPostgresRunRepository(db)
	}

	sources := []source.Source{
		source.NewGitHubSourceWithBaseURL(cfg.Sources.GitHubAPIKey, cfg.Sources.GitHubBaseURL, log),
		source.NewJobBoardSourceWithBaseURL(cfg.Sources.JobBoardAppID, cfg.Sources.JobBoardAPIKey, cfg.Sources.JobBoardBaseURL, log),
		source.NewCommunitySource(cfg.Sources.CommunityBaseURL, log),
		source.NewResearchSource(cfg.Sources.ResearchBaseURL, log),
	}

	store, err := history.NewStore(cfg.Data.RawDir, cfg.Data.ProcessedDir, log)
	if err != nil {
		return nil, err
	}

	strategy := forecast.StrategyFromName(cfg.Pipeline.ForecastStrategy, cfg.Pipeline.ForecastHorizonDays)

	c.Registry = pipeline.NewRegistry()
	c.Daily = pipeline.NewDaily(pipeline.Deps{
		Aggregator: source.NewAggregator(sources, c.Cache, log),
		Skills:     extract.NewSkillExtractor(log),
		Roles:      extract.NewRoleExtractor(log),
		Store:      store,
		Engineer:   features.NewEngineer(log),
		Forecaster: forecast.NewForecaster(strategy, cfg.Pipeline.ForecastHorizonDays, log),
		Classifier: risk.NewClassifier(cfg.Pipeline.RiskThresholdHigh, cfg.Pipeline.RiskThresholdLow, log),
		Registry:   c.Registry,
		Runs:       runs,
		Log:        log,
	})

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
