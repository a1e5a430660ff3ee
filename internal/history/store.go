package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"skill-radar/internal/model"
)

const historicalFileName = "historical_skills.csv"

// Store owns every durable artifact of the pipeline: the append-only
// historical series, the raw snapshot of a run, and the dated processed
// output. The orchestrator is its only writer.
type Store struct {
	rawDir       string
	processedDir string
	log          *zap.SugaredLogger
}

func NewStore(rawDir, processedDir string, log *zap.SugaredLogger) (*Store, error) {
	for _, dir := range []string{rawDir, processedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	return &Store{rawDir: rawDir, processedDir: processedDir, log: log}, nil
}

func (s *Store) HistoricalPath() string {
	return filepath.Join(s.processedDir, historicalFileName)
}

// Load reads the historical series. A missing file yields an empty series;
// a malformed file or malformed date rows are dropped rather than failing
// the run.
func (s *Store) Load() ([]model.SkillObservation, error) {
	f, err := os.Open(s.HistoricalPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []model.SkillObservation{}, nil
		}
		return nil, fmt.Errorf("open historical series: %w", err)
	}
	defer f.Close()

	rows := make([]model.SkillObservation, 0)
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		s.log.Warnw("historical series unreadable, starting empty", "path", s.HistoricalPath(), "err", err)
		return []model.SkillObservation{}, nil
	}

	out := rows[:0]
	dropped := 0
	for _, row := range rows {
		if row.Skill == "" || row.Date.IsZero() {
			dropped++
			continue
		}
		out = append(out, row)
	}
	if dropped > 0 {
		s.log.Warnw("dropped malformed historical rows", "dropped", dropped)
	}
	return out, nil
}

// Update appends one observation per skill for the given day. It never
// merges with existing rows: re-running on the same day appends again and
// consumers aggregate.
func (s *Store) Update(series []model.SkillObservation, counts map[string]int, asOf time.Time) []model.SkillObservation {
	if len(counts) == 0 {
		return series
	}
	day := model.NewDay(asOf)

	skills := make([]string, 0, len(counts))
	for skill := range counts {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	out := make([]model.SkillObservation, 0, len(series)+len(skills))
	out = append(out, series...)
	for _, skill := range skills {
		out = append(out, model.SkillObservation{
			Skill:       skill,
			Date:        day,
			JobPostings: float64(counts[skill]),
		})
	}
	return out
}

// Save rewrites the full historical series file.
func (s *Store) Save(series []model.SkillObservation) error {
	f, err := os.Create(s.HistoricalPath())
	if err != nil {
		return fmt.Errorf("create historical series: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&series, f); err != nil {
		return fmt.Errorf("write historical series: %w", err)
	}
	s.log.Infow("saved historical series", "path", s.HistoricalPath(), "rows", len(series))
	return nil
}

// SaveSnapshot writes the run's raw records as a dated JSON file.
func (s *Store) SaveSnapshot(records []model.RawRecord, asOf time.Time) (string, error) {
	path := filepath.Join(s.rawDir, fmt.Sprintf("raw_snapshot_%s.json", asOf.UTC().Format("20060102")))
	if records == nil {
		records = []model.RawRecord{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	s.log.Infow("saved raw snapshot", "path", path, "records", len(records))
	return path, nil
}

// SaveOutput writes the dated processed artifact, one row per skill.
func (s *Store) SaveOutput(rows []model.ProcessedSkillRow, asOf time.Time) (string, error) {
	path := filepath.Join(s.processedDir, fmt.Sprintf("processed_skills_%s.csv", asOf.UTC().Format("20060102")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output artifact: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return "", fmt.Errorf("write output artifact: %w", err)
	}
	s.log.Infow("saved processed output", "path", path, "rows", len(rows))
	return path, nil
}
