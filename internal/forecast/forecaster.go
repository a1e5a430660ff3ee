package forecast

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"skill-radar/internal/model"
)

const DefaultHorizonDays = 90

// Strategy produces a forecast for one skill. The second return reports
// whether the strategy could apply; the forecaster falls back to trend
// projection when it could not, so a missing model never fails the run.
type Strategy interface {
	Name() string
	Forecast(f model.SkillFeatures, hist []model.SkillObservation) (model.SkillForecast, bool)
}

// TrendStrategy projects current demand along the observed growth rate over
// the horizon. It always applies.
type TrendStrategy struct {
	HorizonDays int
}

func (s TrendStrategy) Name() string { return "trend" }

func (s TrendStrategy) Forecast(f model.SkillFeatures, _ []model.SkillObservation) (model.SkillForecast, bool) {
	horizon := s.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	demand := f.CurrentDemand * (1 + (f.JobPostingGrowth/100)*(float64(horizon)/365))
	return model.SkillForecast{
		Skill:          f.Skill,
		ForecastDemand: math.Max(0, demand),
		ForecastTrend:  ClassifyTrend(f.JobPostingGrowth),
	}, true
}

// RegressionStrategy fits a least-squares line through the skill's
// job-posting series and projects it to the horizon. With fewer than three
// points or a degenerate fit it does not apply.
type RegressionStrategy struct {
	HorizonDays int
}

func (s RegressionStrategy) Name() string { return "regression" }

func (s RegressionStrategy) Forecast(f model.SkillFeatures, hist []model.SkillObservation) (model.SkillForecast, bool) {
	if len(hist) < 3 {
		return model.SkillForecast{}, false
	}
	horizon := s.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	origin := hist[0].Date.Time
	xs := make([]float64, 0, len(hist))
	ys := make([]float64, 0, len(hist))
	for _, obs := range hist {
		xs = append(xs, obs.Date.Sub(origin).Hours()/24)
		ys = append(ys, obs.JobPostings)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return model.SkillForecast{}, false
	}

	projected := alpha + beta*(xs[len(xs)-1]+float64(horizon))
	return model.SkillForecast{
		Skill:          f.Skill,
		ForecastDemand: math.Max(0, projected),
		ForecastTrend:  ClassifyTrend(f.JobPostingGrowth),
	}, true
}

// ClassifyTrend buckets a growth rate, strongest tiers first.
func ClassifyTrend(growth float64) model.Trend {
	switch {
	case growth > 20:
		return model.TrendIncreasing
	case growth > 5:
		return model.TrendIncreasing
	case growth < -10:
		return model.TrendDecreasing
	case growth < 0:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

// Forecaster applies the configured strategy per skill, with a mandatory
// fallback to trend projection.
type Forecaster struct {
	strategy Strategy
	fallback TrendStrategy
	log      *zap.SugaredLogger
}

func NewForecaster(strategy Strategy, horizonDays int, log *zap.SugaredLogger) *Forecaster {
	fallback := TrendStrategy{HorizonDays: horizonDays}
	if strategy == nil {
		strategy = fallback
	}
	return &Forecaster{strategy: strategy, fallback: fallback, log: log}
}

// StrategyFromName maps a config value to a strategy; unknown names mean
// trend projection.
func StrategyFromName(name string, horizonDays int) Strategy {
	switch name {
	case "regression":
		return RegressionStrategy{HorizonDays: horizonDays}
	default:
		return TrendStrategy{HorizonDays: horizonDays}
	}
}

func (fc *Forecaster) Forecast(features []model.SkillFeatures, seriesBySkill map[string][]model.SkillObservation) []model.SkillForecast {
	if fc == nil || len(features) == 0 {
		return nil
	}
	out := make([]model.SkillForecast, 0, len(features))
	for _, f := range features {
		forecast, ok := fc.strategy.Forecast(f, seriesBySkill[f.Skill])
		if !ok {
			fc.log.Debugw("strategy not applicable, using trend projection", "strategy", fc.strategy.Name(), "skill", f.Skill)
			forecast, _ = fc.fallback.Forecast(f, nil)
		}
		out = append(out, forecast)
	}
	return out
}
