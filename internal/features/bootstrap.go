package features

import (
	"math"
	"sort"
	"strings"

	"skill-radar/internal/model"
)

// Bootstrap synthesizes provisional features for a first run with no
// history. Growth is a deterministic, monotonic function of how often a
// skill was mentioned, so the first artifact is reproducible.
func Bootstrap(counts map[string]int, records []model.RawRecord) []model.SkillFeatures {
	if len(counts) == 0 {
		return nil
	}

	rawMentions := make(map[string]int)
	for _, rec := range records {
		for _, s := range rec.Skills {
			rawMentions[strings.ToLower(strings.TrimSpace(s))]++
		}
		for lang := range rec.Languages {
			rawMentions[strings.ToLower(strings.TrimSpace(lang))]++
		}
		for _, t := range rec.Technologies {
			rawMentions[strings.ToLower(strings.TrimSpace(t))]++
		}
	}

	skills := make([]string, 0, len(counts))
	for skill := range counts {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	out := make([]model.SkillFeatures, 0, len(skills))
	for _, skill := range skills {
		count := counts[skill]
		mentions := count + rawMentions[strings.ToLower(skill)]
		growth := bootstrapGrowth(mentions)

		out = append(out, model.SkillFeatures{
			Skill:             skill,
			JobPostingGrowth:  growth,
			GitHubVelocity:    round2(growth * 0.8),
			CommunityDecay:    round2(-growth * 0.3),
			ResearchTrend:     round2(growth * 0.2),
			RecentJobPostings: float64(count),
			RecentGitHubStars: math.Floor(float64(count) / 2),
			JobVolatility:     round2(float64(count) * 0.1),
			DaysObserved:      1,
			TotalObservations: 1,
			CurrentDemand:     float64(count),
		})
	}
	return out
}

// bootstrapGrowth maps mention frequency onto a plausible growth band:
// unmentioned skills read slightly negative, heavily mentioned ones cap at
// +50%, and the mapping is strictly monotonic in between.
func bootstrapGrowth(mentions int) float64 {
	if mentions < 0 {
		mentions = 0
	}
	g := 20*math.Log10(1+float64(mentions)) - 5
	if g < -10 {
		g = -10
	}
	if g > 50 {
		g = 50
	}
	return round2(g)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
