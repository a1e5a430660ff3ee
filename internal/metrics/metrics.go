package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_radar_pipeline_runs_total",
			Help: "Total pipeline runs by terminal status",
		},
		[]string{"status"},
	)

	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skill_radar_pipeline_run_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	RecordsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skill_radar_records_processed_total",
			Help: "Raw records processed across runs",
		},
	)

	SkillsExtracted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skill_radar_skills_extracted",
			Help: "Distinct skills extracted by the most recent run",
		},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal, RunDuration, RecordsProcessed, SkillsExtracted)
}
