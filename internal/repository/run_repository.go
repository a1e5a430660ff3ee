package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skill-radar/internal/database"
	"skill-radar/internal/model"
)

// RunRepository persists pipeline run records for audit. The pipeline
// treats it as best-effort: persistence failures are logged by the caller,
// never fatal.
type RunRepository interface {
	InsertRun(ctx context.Context, run model.PipelineRun) error
	FinalizeRun(ctx context.Context, run model.PipelineRun) error
	LatestRun(ctx context.Context) (model.PipelineRun, error)
}

type PostgresRunRepository struct {
	db database.DB
}

func NewPostgresRunRepository(db database.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

func (r *PostgresRunRepository) InsertRun(ctx context.Context, run model.PipelineRun) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil repository/db")
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO pipeline_runs (id, status, started_at) VALUES ($1,$2,$3)`,
		run.ID, string(run.Status), run.StartedAt.UTC(),
	)
	return err
}

func (r *PostgresRunRepository) FinalizeRun(ctx context.Context, run model.PipelineRun) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil repository/db")
	}
	var completed *time.Time
	if run.CompletedAt != nil {
		t := run.CompletedAt.UTC()
		completed = &t
	}
	_, err := r.db.Exec(ctx,
		`UPDATE pipeline_runs SET
			status = $2,
			completed_at = $3,
			duration_seconds = $4,
			records_processed = $5,
			skills_extracted = $6,
			errors = $7
		 WHERE id = $1`,
		run.ID,
		string(run.Status),
		completed,
		run.DurationSeconds,
		run.RecordsProcessed,
		run.SkillsExtracted,
		nullableText(strings.Join(run.Errors, "; ")),
	)
	return err
}

func (r *PostgresRunRepository) LatestRun(ctx context.Context) (model.PipelineRun, error) {
	if r == nil || r.db == nil {
		return model.PipelineRun{}, fmt.Errorf("nil repository/db")
	}
	row := r.db.QueryRow(ctx,
		`SELECT id, status, started_at, completed_at, duration_seconds, records_processed, skills_extracted, COALESCE(errors, '')
		 FROM pipeline_runs
		 ORDER BY started_at DESC
		 LIMIT 1`,
	)
	var run model.PipelineRun
	var status string
	var errText string
	if err := row.Scan(&run.ID, &status, &run.StartedAt, &run.CompletedAt, &run.DurationSeconds, &run.RecordsProcessed, &run.SkillsExtracted, &errText); err != nil {
		return model.PipelineRun{}, err
	}
	run.Status = model.RunStatus(status)
	if errText != "" {
		run.Errors = strings.Split(errText, "; ")
	} else {
		run.Errors = []string{}
	}
	return run, nil
}

// NoopRunRepository is used when no database is configured.
type NoopRunRepository struct{}

func (NoopRunRepository) InsertRun(context.Context, model.PipelineRun) error   { return nil }
func (NoopRunRepository) FinalizeRun(context.Context, model.PipelineRun) error { return nil }
func (NoopRunRepository) LatestRun(context.Context) (model.PipelineRun, error) {
	return model.PipelineRun{}, fmt.Errorf("no run history store configured")
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
