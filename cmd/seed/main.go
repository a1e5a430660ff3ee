package main

import (
	"flag"
	"log"
	"math"
	"time"

	"skill-radar/internal/config"
	"skill-radar/internal/history"
	"skill-radar/internal/logging"
	"skill-radar/internal/model"
)

// seedSkill describes one synthetic series: a base daily demand and a total
// growth factor applied linearly across the seeded window.
type seedSkill struct {
	name   string
	base   float64
	growth float64
}

var seedSkills = []seedSkill{
	{"Python", 120, 0.25},
	{"JavaScript", 110, 0.10},
	{"TypeScript", 80, 0.35},
	{"React", 95, 0.20},
	{"Go", 60, 0.30},
	{"Rust", 35, 0.45},
	{"Java", 100, -0.05},
	{"Kubernetes", 70, 0.25},
	{"Docker", 85, 0.10},
	{"AWS", 90, 0.15},
	{"Machine Learning", 65, 0.40},
	{"SQL", 105, 0.00},
	{"PHP", 45, -0.20},
	{"jQuery", 25, -0.40},
	{"Perl", 10, -0.50},
}

func main() {
	days := flag.Int("days", 30, "number of days of history to generate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	store, err := history.NewStore(cfg.Data.RawDir, cfg.Data.ProcessedDir, logger)
	if err != nil {
		logger.Fatalw("failed to init store", "err", err)
	}

	start := time.Now().UTC().AddDate(0, 0, -*days+1)
	series := make([]model.SkillObservation, 0, len(seedSkills)**days)
	for day := 0; day < *days; day++ {
		date := model.NewDay(start.AddDate(0, 0, day))
		progress := float64(day) / float64(*days)
		for _, s := range seedSkills {
			jobs := math.Max(0, math.Round(s.base*(1+s.growth*progress)))
			// Small deterministic ripple so volatility is non-zero.
			jobs += float64((day*7 + len(s.name)) % 5)
			series = append(series, model.SkillObservation{
				Skill:             s.name,
				Date:              date,
				JobPostings:       jobs,
				GitHubStars:       math.Round(jobs * 2.5),
				CommunityMentions: math.Round(jobs * 0.6),
				ResearchCitations: math.Round(jobs * 0.1),
			})
		}
	}

	if err := store.Save(series); err != nil {
		logger.Fatalw("failed to save seeded series", "err", err)
	}
	logger.Infow("seeded historical series",
		"path", store.HistoricalPath(),
		"skills", len(seedSkills),
		"days", *days,
		"rows", len(series),
	)
}
