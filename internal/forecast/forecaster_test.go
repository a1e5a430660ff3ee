package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/logging"
	"skill-radar/internal/model"
)

func obs(skill, date string, jobs float64) model.SkillObservation {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.SkillObservation{Skill: skill, Date: model.NewDay(t), JobPostings: jobs}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		growth float64
		want   model.Trend
	}{
		{25, model.TrendIncreasing},
		{10, model.TrendIncreasing},
		{5, model.TrendStable},
		{0, model.TrendStable},
		{-5, model.TrendDecreasing},
		{-15, model.TrendDecreasing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTrend(tt.growth), "growth=%v", tt.growth)
	}
}

func TestTrendStrategyProjection(t *testing.T) {
	s := TrendStrategy{HorizonDays: 90}

	fc, ok := s.Forecast(model.SkillFeatures{Skill: "Go", CurrentDemand: 100, JobPostingGrowth: 20}, nil)
	require.True(t, ok)
	assert.Equal(t, "Go", fc.Skill)
	assert.InDelta(t, 100*(1+0.2*(90.0/365)), fc.ForecastDemand, 1e-9)
	assert.Equal(t, model.TrendStable, ClassifyTrend(0))
}

func TestTrendStrategyNeverNegative(t *testing.T) {
	s := TrendStrategy{HorizonDays: 365}

	fc, ok := s.Forecast(model.SkillFeatures{Skill: "Perl", CurrentDemand: 10, JobPostingGrowth: -400}, nil)
	require.True(t, ok)
	assert.GreaterOrEqual(t, fc.ForecastDemand, 0.0)
	assert.Equal(t, model.TrendDecreasing, fc.ForecastTrend)
}

func TestTrendStrategyDefaultHorizon(t *testing.T) {
	s := TrendStrategy{}
	fc, ok := s.Forecast(model.SkillFeatures{Skill: "Go", CurrentDemand: 100, JobPostingGrowth: 36.5}, nil)
	require.True(t, ok)
	assert.InDelta(t, 100*(1+0.365*(90.0/365)), fc.ForecastDemand, 1e-9)
}

func TestRegressionStrategyTooFewPoints(t *testing.T) {
	s := RegressionStrategy{HorizonDays: 90}
	hist := []model.SkillObservation{
		obs("Go", "2026-01-01", 10),
		obs("Go", "2026-01-02", 11),
	}
	_, ok := s.Forecast(model.SkillFeatures{Skill: "Go"}, hist)
	assert.False(t, ok)
}

func TestRegressionStrategyFitsLine(t *testing.T) {
	s := RegressionStrategy{HorizonDays: 10}
	// Perfectly linear: 10 + 2 per day.
	hist := []model.SkillObservation{
		obs("Go", "2026-01-01", 10),
		obs("Go", "2026-01-02", 12),
		obs("Go", "2026-01-03", 14),
		obs("Go", "2026-01-04", 16),
	}
	fc, ok := s.Forecast(model.SkillFeatures{Skill: "Go", JobPostingGrowth: 60}, hist)
	require.True(t, ok)
	// Last point is day 3; projecting 10 more days lands at day 13.
	assert.InDelta(t, 10+2*13, fc.ForecastDemand, 1e-6)
	assert.Equal(t, model.TrendIncreasing, fc.ForecastTrend)
}

func TestRegressionStrategyNeverNegative(t *testing.T) {
	s := RegressionStrategy{HorizonDays: 365}
	hist := []model.SkillObservation{
		obs("Perl", "2026-01-01", 30),
		obs("Perl", "2026-01-02", 20),
		obs("Perl", "2026-01-03", 10),
	}
	fc, ok := s.Forecast(model.SkillFeatures{Skill: "Perl"}, hist)
	require.True(t, ok)
	assert.GreaterOrEqual(t, fc.ForecastDemand, 0.0)
}

type refusingStrategy struct{}

func (refusingStrategy) Name() string { return "refusing" }
func (refusingStrategy) Forecast(model.SkillFeatures, []model.SkillObservation) (model.SkillForecast, bool) {
	return model.SkillForecast{}, false
}

func TestForecasterFallsBackToTrend(t *testing.T) {
	fc := NewForecaster(refusingStrategy{}, 90, logging.NewNop())

	feats := []model.SkillFeatures{{Skill: "Go", CurrentDemand: 100, JobPostingGrowth: 10}}
	out := fc.Forecast(feats, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "Go", out[0].Skill)
	assert.InDelta(t, 100*(1+0.1*(90.0/365)), out[0].ForecastDemand, 1e-9)
}

func TestForecasterOneForecastPerSkill(t *testing.T) {
	fc := NewForecaster(RegressionStrategy{HorizonDays: 90}, 90, logging.NewNop())

	feats := []model.SkillFeatures{
		{Skill: "Go", CurrentDemand: 100, JobPostingGrowth: 10},
		{Skill: "Rust", CurrentDemand: 40, JobPostingGrowth: 30},
	}
	series := map[string][]model.SkillObservation{
		"Go": {
			obs("Go", "2026-01-01", 90),
			obs("Go", "2026-01-02", 95),
			obs("Go", "2026-01-03", 100),
		},
		// Rust has too little history; the fallback covers it.
	}

	out := fc.Forecast(feats, series)
	require.Len(t, out, 2)
	for _, f := range out {
		assert.GreaterOrEqual(t, f.ForecastDemand, 0.0)
		assert.NotEmpty(t, f.ForecastTrend)
	}
}

func TestStrategyFromName(t *testing.T) {
	assert.Equal(t, "regression", StrategyFromName("regression", 90).Name())
	assert.Equal(t, "trend", StrategyFromName("trend", 90).Name())
	assert.Equal(t, "trend", StrategyFromName("", 90).Name())
	assert.Equal(t, "trend", StrategyFromName("prophet", 90).Name())
}
