package source

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"skill-radar/internal/model"
)

// ResearchSource pulls recent papers from an arXiv-compatible Atom API.
// Unconfigured (empty base URL) it contributes nothing.
type ResearchSource struct {
	client  *http.Client
	baseURL string
	gate    rateGate
	log     *zap.SugaredLogger
}

func NewResearchSource(baseURL string, log *zap.SugaredLogger) *ResearchSource {
	return &ResearchSource{
		client:  &http.Client{Timeout: 25 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		gate:    rateGate{delay: 3 * time.Second},
		log:     log,
	}
}

func (s *ResearchSource) Name() string { return "research" }

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title      string `xml:"title"`
	Summary    string `xml:"summary"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
}

func (s *ResearchSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if s == nil || s.baseURL == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("search_query", "cat:cs.SE OR cat:cs.PL OR cat:cs.LG")
	q.Set("start", "0")
	q.Set("max_results", "50")
	queryURL := s.baseURL + "/api/query?" + q.Encode()

	if err := s.gate.wait(ctx); err != nil {
		return nil, err
	}
	body, err := httpGetJSON(ctx, s.client, queryURL, nil, 3)
	s.gate.done()
	if err != nil {
		s.log.Errorw("research fetch failed", "err", err)
		return nil, nil
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		s.log.Errorw("research feed decode failed", "err", err)
		return nil, nil
	}

	now := time.Now().UTC()
	out := make([]model.RawRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		terms := make([]string, 0, len(entry.Categories))
		for _, c := range entry.Categories {
			if t := strings.TrimSpace(c.Term); t != "" {
				terms = append(terms, t)
			}
		}
		out = append(out, model.RawRecord{
			Source:      model.SourceResearch,
			Title:       strings.TrimSpace(entry.Title),
			Description: strings.TrimSpace(entry.Summary),
			Topic:       strings.Join(terms, " "),
			Citations:   1,
			FetchedAt:   now,
		})
	}
	return out, nil
}
