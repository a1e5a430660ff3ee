package features

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"skill-radar/internal/model"
)

const recentWindowDays = 30

// Engineer turns the historical series into one statistics row per skill.
type Engineer struct {
	now func() time.Time
	log *zap.SugaredLogger
}

func NewEngineer(log *zap.SugaredLogger) *Engineer {
	return NewEngineerWithClock(log, time.Now)
}

func NewEngineerWithClock(log *zap.SugaredLogger, clock func() time.Time) *Engineer {
	if clock == nil {
		clock = time.Now
	}
	return &Engineer{now: clock, log: log}
}

// Compute returns one SkillFeatures row per distinct skill in the series.
// Output order is not a contract.
func (e *Engineer) Compute(series []model.SkillObservation) []model.SkillFeatures {
	if e == nil || len(series) == 0 {
		return nil
	}

	bySkill := GroupBySkill(series)

	skills := make([]string, 0, len(bySkill))
	for skill := range bySkill {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	out := make([]model.SkillFeatures, 0, len(skills))
	for _, skill := range skills {
		out = append(out, e.computeSkill(skill, bySkill[skill]))
	}
	return out
}

// GroupBySkill partitions the series per skill, each partition sorted by
// date ascending.
func GroupBySkill(series []model.SkillObservation) map[string][]model.SkillObservation {
	bySkill := make(map[string][]model.SkillObservation)
	for _, obs := range series {
		bySkill[obs.Skill] = append(bySkill[obs.Skill], obs)
	}
	for skill, rows := range bySkill {
		rows := rows
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Date.Before(rows[j].Date.Time)
		})
		bySkill[skill] = rows
	}
	return bySkill
}

func (e *Engineer) computeSkill(skill string, rows []model.SkillObservation) model.SkillFeatures {
	first := rows[0]
	last := rows[len(rows)-1]

	daysObserved := 1
	if len(rows) > 1 {
		daysObserved = int(last.Date.Sub(first.Date.Time).Hours() / 24)
	}

	jobs := make([]float64, 0, len(rows))
	stars := make([]float64, 0, len(rows))
	mentions := make([]float64, 0, len(rows))
	citations := make([]float64, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, r.JobPostings)
		stars = append(stars, r.GitHubStars)
		mentions = append(mentions, r.CommunityMentions)
		citations = append(citations, r.ResearchCitations)
	}

	cutoff := model.NewDay(e.now().Add(-recentWindowDays * 24 * time.Hour))
	var recentJobs, recentStars float64
	for _, r := range rows {
		if r.Date.Before(cutoff.Time) {
			continue
		}
		recentJobs += r.JobPostings
		recentStars += r.GitHubStars
	}

	volatility := 0.0
	if len(jobs) > 1 {
		volatility = stat.StdDev(jobs, nil)
	}

	return model.SkillFeatures{
		Skill:             skill,
		JobPostingGrowth:  GrowthRate(jobs),
		GitHubVelocity:    GrowthRate(stars),
		CommunityDecay:    DecayRate(mentions),
		ResearchTrend:     GrowthRate(citations),
		RecentJobPostings: recentJobs,
		RecentGitHubStars: recentStars,
		JobVolatility:     volatility,
		DaysObserved:      daysObserved,
		TotalObservations: len(rows),
		CurrentDemand:     last.JobPostings,
	}
}

// GrowthRate is the percentage change between the first and last positive
// observation. Zero values are stripped first; fewer than two positives
// yields 0.
func GrowthRate(values []float64) float64 {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) < 2 {
		return 0.0
	}

	first := positive[0]
	last := positive[len(positive)-1]
	if first == 0 {
		if last > 0 {
			return 100.0
		}
		return 0.0
	}
	return ((last - first) / first) * 100
}

// DecayRate is the arithmetic negation of the growth rate.
func DecayRate(values []float64) float64 {
	return -GrowthRate(values)
}
