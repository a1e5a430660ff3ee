package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/model"
)

func TestBootstrapDeterministic(t *testing.T) {
	counts := map[string]int{"Go": 4, "React": 9}
	records := []model.RawRecord{
		{Source: model.SourceJobPosting, Skills: []string{"go", "react", "react"}},
		{Source: model.SourceRepoTrend, Languages: map[string]int{"Go": 12345}},
	}

	first := Bootstrap(counts, records)
	second := Bootstrap(counts, records)
	assert.Equal(t, first, second)
}

func TestBootstrapGrowthMonotonic(t *testing.T) {
	prev := bootstrapGrowth(0)
	for mentions := 1; mentions < 200; mentions++ {
		g := bootstrapGrowth(mentions)
		assert.GreaterOrEqual(t, g, prev, "mentions=%d", mentions)
		prev = g
	}
}

func TestBootstrapGrowthBounds(t *testing.T) {
	assert.InDelta(t, -5, bootstrapGrowth(0), 1e-9)
	assert.InDelta(t, 50, bootstrapGrowth(1_000_000), 1e-9)
	assert.InDelta(t, bootstrapGrowth(0), bootstrapGrowth(-3), 1e-9)
}

func TestBootstrapFeatureShape(t *testing.T) {
	counts := map[string]int{"Kubernetes": 7}
	feats := Bootstrap(counts, nil)
	require.Len(t, feats, 1)

	f := feats[0]
	assert.Equal(t, "Kubernetes", f.Skill)
	assert.Equal(t, 1, f.DaysObserved)
	assert.Equal(t, 1, f.TotalObservations)
	assert.InDelta(t, 7, f.CurrentDemand, 1e-9)
	assert.InDelta(t, 7, f.RecentJobPostings, 1e-9)
	assert.InDelta(t, 3, f.RecentGitHubStars, 1e-9)
	assert.InDelta(t, f.JobPostingGrowth*0.8, f.GitHubVelocity, 0.01)
	assert.InDelta(t, -f.JobPostingGrowth*0.3, f.CommunityDecay, 0.01)
}

func TestBootstrapEmptyCounts(t *testing.T) {
	assert.Nil(t, Bootstrap(nil, nil))
	assert.Nil(t, Bootstrap(map[string]int{}, nil))
}
