package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/logging"
	"skill-radar/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "raw"), filepath.Join(dir, "processed"), logging.NewNop())
	require.NoError(t, err)
	return s
}

func day(s string) model.Day {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return model.NewDay(t)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	series, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	series := []model.SkillObservation{
		{Skill: "Go", Date: day("2026-01-01"), JobPostings: 10, GitHubStars: 25, CommunityMentions: 5, ResearchCitations: 1},
		{Skill: "React", Date: day("2026-01-01"), JobPostings: 40},
		{Skill: "Go", Date: day("2026-01-02"), JobPostings: 12},
	}
	require.NoError(t, s.Save(series))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, series, loaded)
}

func TestLoadDropsMalformedDateRows(t *testing.T) {
	s := newTestStore(t)

	csv := "skill,date,job_postings,github_stars,community_mentions,research_citations\n" +
		"Go,2026-01-01,10,0,0,0\n" +
		"Rust,not-a-date,5,0,0,0\n" +
		",2026-01-01,3,0,0,0\n" +
		"React,2026-01-02,40,0,0,0\n"
	require.NoError(t, os.WriteFile(s.HistoricalPath(), []byte(csv), 0o644))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Go", loaded[0].Skill)
	assert.Equal(t, "React", loaded[1].Skill)
}

func TestLoadUnreadableFileStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.HistoricalPath(), []byte("not,a\nvalid\"csv"), 0o644))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestUpdateAppendsWithoutMerging(t *testing.T) {
	s := newTestStore(t)
	asOf := time.Date(2026, 1, 2, 14, 30, 0, 0, time.UTC)

	series := []model.SkillObservation{
		{Skill: "Go", Date: day("2026-01-02"), JobPostings: 10},
	}
	updated := s.Update(series, map[string]int{"Go": 12, "Rust": 3}, asOf)

	// Same skill and day appended again, never merged.
	require.Len(t, updated, 3)
	assert.Equal(t, "Go", updated[0].Skill)
	assert.InDelta(t, 10, updated[0].JobPostings, 1e-9)
	assert.Equal(t, "Go", updated[1].Skill)
	assert.InDelta(t, 12, updated[1].JobPostings, 1e-9)
	assert.Equal(t, "Rust", updated[2].Skill)
	assert.Equal(t, day("2026-01-02"), updated[1].Date)
}

func TestUpdateEmptyCountsKeepsSeries(t *testing.T) {
	s := newTestStore(t)
	series := []model.SkillObservation{{Skill: "Go", Date: day("2026-01-01"), JobPostings: 10}}
	assert.Equal(t, series, s.Update(series, nil, time.Now()))
}

func TestSaveSnapshot(t *testing.T) {
	s := newTestStore(t)
	asOf := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	path, err := s.SaveSnapshot([]model.RawRecord{{Source: model.SourceRepoTrend, Title: "repo"}}, asOf)
	require.NoError(t, err)
	assert.Contains(t, path, "raw_snapshot_20260102.json")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"repo-trend"`)
}

func TestSaveSnapshotNilRecords(t *testing.T) {
	s := newTestStore(t)
	path, err := s.SaveSnapshot(nil, time.Now())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(b))
}

func TestSaveOutput(t *testing.T) {
	s := newTestStore(t)
	asOf := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	rows := []model.ProcessedSkillRow{{
		Skill:          "Go",
		CurrentDemand:  10,
		ForecastDemand: 12,
		ForecastTrend:  model.TrendIncreasing,
		RiskScore:      0.1,
		RiskCategory:   model.RiskLow,
	}}
	path, err := s.SaveOutput(rows, asOf)
	require.NoError(t, err)
	assert.Contains(t, path, "processed_skills_20260102.csv")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Go")
	assert.Contains(t, string(b), "increasing")
}
