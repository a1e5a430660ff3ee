package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"skill-radar/internal/extract"
	"skill-radar/internal/features"
	"skill-radar/internal/forecast"
	"skill-radar/internal/history"
	"skill-radar/internal/metrics"
	"skill-radar/internal/model"
	"skill-radar/internal/repository"
	"skill-radar/internal/risk"
	"skill-radar/internal/source"
)

// Deps wires the daily pipeline. Runs is optional; a nil value disables run
// history persistence. Clock is optional and defaults to wall time.
type Deps struct {
	Aggregator *source.Aggregator
	Skills     *extract.SkillExtractor
	Roles      *extract.RoleExtractor
	Store      *history.Store
	Engineer   *features.Engineer
	Forecaster *forecast.Forecaster
	Classifier *risk.Classifier
	Registry   *Registry
	Runs       repository.RunRepository
	Log        *zap.SugaredLogger
	Clock      func() time.Time
}

// Daily orchestrates one full pipeline run: fetch, snapshot, extract,
// normalize, update history, engineer features, forecast, classify, combine
// and persist. Stages run strictly in order; a stage failure converts into
// a terminal failed run result and never escapes the orchestrator.
type Daily struct {
	agg        *source.Aggregator
	skills     *extract.SkillExtractor
	roles      *extract.RoleExtractor
	store      *history.Store
	engineer   *features.Engineer
	forecaster *forecast.Forecaster
	classifier *risk.Classifier
	registry   *Registry
	runs       repository.RunRepository
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewDaily(deps Deps) *Daily {
	runs := deps.Runs
	if runs == nil {
		runs = repository.NoopRunRepository{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Daily{
		agg:        deps.Aggregator,
		skills:     deps.Skills,
		roles:      deps.Roles,
		store:      deps.Store,
		engineer:   deps.Engineer,
		forecaster: deps.Forecaster,
		classifier: deps.Classifier,
		registry:   deps.Registry,
		runs:       runs,
		log:        deps.Log,
		now:        clock,
	}
}

// Run executes the pipeline once. The only error it returns is
// ErrAlreadyRunning; every other failure is reported inside the terminal
// run result.
func (d *Daily) Run(ctx context.Context) (model.PipelineRun, error) {
	run, err := d.registry.StartRun()
	if err != nil {
		return model.PipelineRun{}, err
	}

	if err := d.runs.InsertRun(ctx, run); err != nil {
		d.log.Warnw("run history insert failed", "run_id", run.ID, "err", err)
	}

	result := d.execute(ctx, run)
	d.registry.Complete(result)

	if err := d.runs.FinalizeRun(ctx, result); err != nil {
		d.log.Warnw("run history finalize failed", "run_id", result.ID, "err", err)
	}

	metrics.RunsTotal.WithLabelValues(string(result.Status)).Inc()
	metrics.RunDuration.Observe(result.DurationSeconds)
	metrics.RecordsProcessed.Add(float64(result.RecordsProcessed))
	metrics.SkillsExtracted.Set(float64(result.SkillsExtracted))

	return result, nil
}

func (d *Daily) execute(ctx context.Context, run model.PipelineRun) (result model.PipelineRun) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("pipeline stage panicked", "run_id", run.ID, "panic", r)
			result = d.finish(run, model.RunFailed, fmt.Sprintf("stage panic: %v", r))
		}
	}()

	d.log.Infow("pipeline started", "run_id", run.ID)
	asOf := d.now()

	records := d.agg.FetchAll(ctx)
	run.RecordsProcessed = len(records)
	d.log.Infow("fetched sources", "run_id", run.ID, "records", len(records))

	snapshotPath, err := d.store.SaveSnapshot(records, asOf)
	if err != nil {
		return d.finish(run, model.RunFailed, fmt.Sprintf("save snapshot: %v", err))
	}
	run.SnapshotPath = snapshotPath

	rawSkills := d.skills.FromRecords(records)
	roles := d.roles.Normalize(d.roles.FromRecords(records))
	run.RolesExtracted = len(roles)

	counts := d.skills.Normalize(rawSkills)
	run.SkillsExtracted = len(counts)
	d.log.Infow("extracted skills", "run_id", run.ID, "skills", len(counts), "roles", len(roles))

	series, err := d.store.Load()
	if err != nil {
		return d.finish(run, model.RunFailed, fmt.Sprintf("load history: %v", err))
	}
	updated := d.store.Update(series, counts, asOf)
	if err := d.store.Save(updated); err != nil {
		return d.finish(run, model.RunFailed, fmt.Sprintf("persist history: %v", err))
	}

	feats := d.engineer.Compute(updated)
	if len(feats) == 0 && len(counts) > 0 {
		d.log.Infow("no historical data, synthesizing bootstrap features", "run_id", run.ID)
		feats = features.Bootstrap(counts, records)
	}

	forecasts := d.forecaster.Forecast(feats, features.GroupBySkill(updated))
	risks := d.classifier.Predict(feats)

	rows := d.combine(feats, forecasts, risks)

	outputPath, err := d.store.SaveOutput(rows, asOf)
	if err != nil {
		return d.finish(run, model.RunFailed, fmt.Sprintf("persist output: %v", err))
	}
	run.OutputPath = outputPath

	done := d.finish(run, model.RunCompleted)
	d.log.Infow("pipeline completed",
		"run_id", run.ID,
		"duration_seconds", done.DurationSeconds,
		"records", done.RecordsProcessed,
		"skills", done.SkillsExtracted,
	)
	return done
}

func (d *Daily) combine(feats []model.SkillFeatures, forecasts []model.SkillForecast, risks []model.SkillRisk) []model.ProcessedSkillRow {
	byForecast := make(map[string]model.SkillForecast, len(forecasts))
	for _, fc := range forecasts {
		byForecast[fc.Skill] = fc
	}
	byRisk := make(map[string]model.SkillRisk, len(risks))
	for _, rk := range risks {
		byRisk[rk.Skill] = rk
	}

	rows := make([]model.ProcessedSkillRow, 0, len(feats))
	for _, f := range feats {
		row := model.ProcessedSkillRow{
			Skill:             f.Skill,
			JobPostingGrowth:  f.JobPostingGrowth,
			GitHubVelocity:    f.GitHubVelocity,
			CommunityDecay:    f.CommunityDecay,
			ResearchTrend:     f.ResearchTrend,
			RecentJobPostings: f.RecentJobPostings,
			RecentGitHubStars: f.RecentGitHubStars,
			JobVolatility:     f.JobVolatility,
			DaysObserved:      f.DaysObserved,
			TotalObservations: f.TotalObservations,
			CurrentDemand:     f.CurrentDemand,
			// Documented defaults for skills a model skipped.
			ForecastDemand: f.CurrentDemand,
			ForecastTrend:  model.TrendStable,
			RiskScore:      0.5,
		}
		if fc, ok := byForecast[f.Skill]; ok {
			row.ForecastDemand = fc.ForecastDemand
			row.ForecastTrend = fc.ForecastTrend
		}
		if rk, ok := byRisk[f.Skill]; ok {
			row.RiskScore = rk.RiskScore
		}
		row.RiskCategory = d.classifier.Categorize(row.RiskScore)
		rows = append(rows, row)
	}
	return rows
}

func (d *Daily) finish(run model.PipelineRun, status model.RunStatus, errs ...string) model.PipelineRun {
	end := d.now().UTC()
	run.Status = status
	run.CompletedAt = &end
	run.DurationSeconds = end.Sub(run.StartedAt).Seconds()
	run.Errors = append(run.Errors, errs...)
	return run
}
