package source

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"skill-radar/internal/model"
)

// CommunitySource scrapes a discussion-board listing page for post titles
// and tags. Unconfigured (empty base URL) it contributes nothing.
type CommunitySource struct {
	baseURL     string
	allowedHost string
	gate        rateGate
	log         *zap.SugaredLogger
}

func NewCommunitySource(baseURL string, log *zap.SugaredLogger) *CommunitySource {
	s := &CommunitySource{
		baseURL: strings.TrimSpace(baseURL),
		gate:    rateGate{delay: time.Second},
		log:     log,
	}
	s.allowedHost = hostFromBaseURL(s.baseURL)
	return s
}

func (s *CommunitySource) Name() string { return "community" }

func (s *CommunitySource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if s == nil || s.baseURL == "" {
		return nil, nil
	}
	if err := s.gate.wait(ctx); err != nil {
		return nil, err
	}
	defer s.gate.done()

	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost),
	)

	now := time.Now().UTC()
	records := make([]model.RawRecord, 0)

	c.OnHTML("article", func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText("h2"))
		if title == "" {
			title = strings.TrimSpace(e.ChildText("h3"))
		}
		if title == "" {
			return
		}
		tags := make([]string, 0)
		for _, t := range e.ChildTexts(".tag") {
			t = strings.TrimSpace(strings.TrimPrefix(t, "#"))
			if t != "" {
				tags = append(tags, t)
			}
		}
		records = append(records, model.RawRecord{
			Source:       model.SourceCommunity,
			Title:        title,
			Technologies: tags,
			Mentions:     1,
			FetchedAt:    now,
		})
	})

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(s.baseURL); err != nil {
		s.log.Errorw("community fetch failed", "err", err)
		return nil, nil
	}
	c.Wait()
	if reqErr != nil {
		s.log.Errorw("community fetch failed", "err", reqErr)
		return nil, nil
	}

	return records, nil
}
