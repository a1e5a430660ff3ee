package source

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skill-radar/internal/cache"
	"skill-radar/internal/model"
)

// Aggregator fans out to every connector concurrently and concatenates the
// successful contributions. One connector failing, or even panicking, never
// blocks the others from contributing.
type Aggregator struct {
	sources []Source
	cache   *cache.Redis
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewAggregator(sources []Source, c *cache.Redis, log *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		sources: sources,
		cache:   c,
		log:     log,
		now:     time.Now,
	}
}

func (a *Aggregator) FetchAll(ctx context.Context) []model.RawRecord {
	if a == nil || len(a.sources) == 0 {
		return nil
	}

	results := make([][]model.RawRecord, len(a.sources))

	var g errgroup.Group
	for i, s := range a.sources {
		i, s := i, s
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					a.log.Errorw("source panicked", "source", s.Name(), "panic", r)
				}
			}()

			key := fmt.Sprintf("source:%s:%s", s.Name(), a.now().UTC().Format("2006-01-02"))
			var cached []model.RawRecord
			if ok, _ := a.cache.GetJSON(ctx, key, &cached); ok && len(cached) > 0 {
				a.log.Infow("source served from cache", "source", s.Name(), "records", len(cached))
				results[i] = cached
				return nil
			}

			recs, err := s.Fetch(ctx)
			if err != nil {
				a.log.Errorw("source fetch failed", "source", s.Name(), "err", err)
				return nil
			}
			results[i] = recs
			if len(recs) > 0 {
				_ = a.cache.SetJSON(ctx, key, recs, 24*time.Hour)
			}
			a.log.Infow("source fetched", "source", s.Name(), "records", len(recs))
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]model.RawRecord, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
