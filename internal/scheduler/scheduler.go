package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers the pipeline once a day at the configured hour.
type Scheduler struct {
	c   *cron.Cron
	log *zap.SugaredLogger
}

func New(hour int, job func(), log *zap.SugaredLogger) (*Scheduler, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("invalid schedule hour %d", hour)
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("0 %d * * *", hour), job); err != nil {
		return nil, fmt.Errorf("register schedule: %w", err)
	}
	log.Infow("scheduler configured", "hour", hour)
	return &Scheduler{c: c, log: log}, nil
}

func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.c.Start()
	s.log.Infow("scheduler started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	<-s.c.Stop().Done()
	s.log.Infow("scheduler stopped")
}
