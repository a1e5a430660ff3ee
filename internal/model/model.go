package model

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceKind tags a RawRecord with the feed it came from.
type SourceKind string

const (
	SourceRepoTrend  SourceKind = "repo-trend"
	SourceJobPosting SourceKind = "job-posting"
	SourceCommunity  SourceKind = "community"
	SourceResearch   SourceKind = "research"
)

// RawRecord is one record pulled from an upstream feed. Only Source is
// guaranteed to be set; every other field is optional and extraction must
// tolerate absence.
type RawRecord struct {
	Source       SourceKind     `json:"source"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	Topic        string         `json:"topic,omitempty"`
	Skills       []string       `json:"skills,omitempty"`
	Languages    map[string]int `json:"languages,omitempty"`
	Technologies []string       `json:"technologies,omitempty"`
	Stars        int            `json:"stars,omitempty"`
	Forks        int            `json:"forks,omitempty"`
	Mentions     int            `json:"mentions,omitempty"`
	Citations    int            `json:"citations,omitempty"`
	FetchedAt    time.Time      `json:"fetched_at,omitempty"`
}

// Day is a calendar day persisted as YYYY-MM-DD. An unparseable value
// unmarshals to the zero Day instead of failing, so the store can drop the
// row and keep the run alive.
type Day struct {
	time.Time
}

func NewDay(t time.Time) Day {
	t = t.UTC()
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Day) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format("2006-01-02"), nil
}

func (d *Day) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDay(t)
			return nil
		}
	}
	d.Time = time.Time{}
	return nil
}

// SkillObservation is one appended row of the historical series. Multiple
// rows per (skill, date) are allowed; consumers aggregate.
type SkillObservation struct {
	Skill             string  `csv:"skill"`
	Date              Day     `csv:"date"`
	JobPostings       float64 `csv:"job_postings"`
	GitHubStars       float64 `csv:"github_stars"`
	CommunityMentions float64 `csv:"community_mentions"`
	ResearchCitations float64 `csv:"research_citations"`
}

// SkillFeatures is the per-skill statistics row consumed by the forecaster
// and the risk classifier.
type SkillFeatures struct {
	Skill             string  `csv:"skill"`
	JobPostingGrowth  float64 `csv:"job_posting_growth"`
	GitHubVelocity    float64 `csv:"github_velocity"`
	CommunityDecay    float64 `csv:"community_decay"`
	ResearchTrend     float64 `csv:"research_trend"`
	RecentJobPostings float64 `csv:"recent_job_postings"`
	RecentGitHubStars float64 `csv:"recent_github_stars"`
	JobVolatility     float64 `csv:"job_volatility"`
	DaysObserved      int     `csv:"days_observed"`
	TotalObservations int     `csv:"total_observations"`
	CurrentDemand     float64 `csv:"current_demand"`
}

// Trend is the forecast direction for a skill.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

type SkillForecast struct {
	Skill          string
	ForecastDemand float64
	ForecastTrend  Trend
}

// SkillRisk carries the [0,1] obsolescence score; higher means more obsolete.
type SkillRisk struct {
	Skill     string
	RiskScore float64
}

// RiskCategory buckets a risk score for the serving layer.
type RiskCategory string

const (
	RiskLow     RiskCategory = "low"
	RiskMedium  RiskCategory = "medium"
	RiskHigh    RiskCategory = "high"
	RiskUnknown RiskCategory = "unknown"
)

// ProcessedSkillRow is the durable output contract: one row per skill in the
// dated artifact the serving layer reads.
type ProcessedSkillRow struct {
	Skill             string       `csv:"skill"`
	JobPostingGrowth  float64      `csv:"job_posting_growth"`
	GitHubVelocity    float64      `csv:"github_velocity"`
	CommunityDecay    float64      `csv:"community_decay"`
	ResearchTrend     float64      `csv:"research_trend"`
	RecentJobPostings float64      `csv:"recent_job_postings"`
	RecentGitHubStars float64      `csv:"recent_github_stars"`
	JobVolatility     float64      `csv:"job_volatility"`
	DaysObserved      int          `csv:"days_observed"`
	TotalObservations int          `csv:"total_observations"`
	CurrentDemand     float64      `csv:"current_demand"`
	ForecastDemand    float64      `csv:"forecast_demand"`
	ForecastTrend     Trend        `csv:"forecast_trend"`
	RiskScore         float64      `csv:"risk_score"`
	RiskCategory      RiskCategory `csv:"risk_category"`
}

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// PipelineRun is the run result record. It is created when a run starts and
// finalized exactly once when the run reaches a terminal state.
type PipelineRun struct {
	ID               uuid.UUID  `json:"id"`
	Status           RunStatus  `json:"status"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	DurationSeconds  float64    `json:"duration_seconds"`
	RecordsProcessed int        `json:"records_processed"`
	SkillsExtracted  int        `json:"skills_extracted"`
	RolesExtracted   int        `json:"roles_extracted"`
	SnapshotPath     string     `json:"snapshot_path,omitempty"`
	OutputPath       string     `json:"output_path,omitempty"`
	Errors           []string   `json:"errors"`
}

// CategorizeRisk buckets a score using the given thresholds. NaN maps to
// unknown so a missing score never masquerades as a real category.
func CategorizeRisk(score, high, low float64) RiskCategory {
	if math.IsNaN(score) {
		return RiskUnknown
	}
	if score >= high {
		return RiskHigh
	}
	if score <= low {
		return RiskLow
	}
	return RiskMedium
}
