package risk

import (
	"math"

	"go.uber.org/zap"

	"skill-radar/internal/model"
)

// Classifier scores obsolescence risk with a transparent additive rule
// ensemble: each firing signal contributes a bounded increment, summed and
// capped at 1.0. It is deliberately auditable, not a trained model, though
// any scorer with the same input row could be swapped in.
type Classifier struct {
	thresholdHigh float64
	thresholdLow  float64
	log           *zap.SugaredLogger
}

func NewClassifier(thresholdHigh, thresholdLow float64, log *zap.SugaredLogger) *Classifier {
	if thresholdHigh <= 0 {
		thresholdHigh = 0.7
	}
	if thresholdLow <= 0 {
		thresholdLow = 0.3
	}
	return &Classifier{thresholdHigh: thresholdHigh, thresholdLow: thresholdLow, log: log}
}

func (c *Classifier) Predict(features []model.SkillFeatures) []model.SkillRisk {
	if c == nil || len(features) == 0 {
		return nil
	}
	out := make([]model.SkillRisk, 0, len(features))
	for _, f := range features {
		out = append(out, model.SkillRisk{Skill: f.Skill, RiskScore: Score(f)})
	}
	return out
}

func (c *Classifier) Categorize(score float64) model.RiskCategory {
	high, low := 0.7, 0.3
	if c != nil {
		high, low = c.thresholdHigh, c.thresholdLow
	}
	return model.CategorizeRisk(score, high, low)
}

// Score computes the [0,1] risk score for one feature row.
func Score(f model.SkillFeatures) float64 {
	var score float64

	switch {
	case f.JobPostingGrowth < -20:
		score += 0.4
	case f.JobPostingGrowth < -10:
		score += 0.2
	case f.JobPostingGrowth < 0:
		score += 0.1
	}

	switch {
	case f.CommunityDecay > 30:
		score += 0.3
	case f.CommunityDecay > 15:
		score += 0.15
	}

	switch {
	case f.RecentJobPostings == 0:
		score += 0.2
	case f.RecentJobPostings < 5:
		score += 0.1
	}

	if f.JobVolatility > 50 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}

	// No signal fired: fall back to a base score so rankings still spread.
	if score == 0 {
		if f.JobPostingGrowth < 0 {
			score = math.Min(0.6, math.Abs(f.JobPostingGrowth)/100)
		} else {
			score = 0.1
		}
	}

	score = math.Round(score*1000) / 1000
	return math.Min(1.0, math.Max(0.0, score))
}
