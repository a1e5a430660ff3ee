package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"skill-radar/internal/model"
)

// JobBoardSource pulls postings from the Adzuna search API. Credentials are
// optional; without them the connector degrades to an empty contribution so
// the rest of the run is unaffected.
type JobBoardSource struct {
	client  *http.Client
	baseURL string
	appID   string
	apiKey  string
	gate    rateGate
	log     *zap.SugaredLogger
}

func NewJobBoardSource(appID, apiKey string, log *zap.SugaredLogger) *JobBoardSource {
	return NewJobBoardSourceWithBaseURL(appID, apiKey, "https://api.adzuna.com/v1/api/jobs/us/search/1", log)
}

func NewJobBoardSourceWithBaseURL(appID, apiKey, baseURL string, log *zap.SugaredLogger) *JobBoardSource {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://api.adzuna.com/v1/api/jobs/us/search/1"
	}
	return &JobBoardSource{
		client:  &http.Client{Timeout: 25 * time.Second},
		baseURL: baseURL,
		appID:   strings.TrimSpace(appID),
		apiKey:  strings.TrimSpace(apiKey),
		gate:    rateGate{delay: 2 * time.Second},
		log:     log,
	}
}

func (s *JobBoardSource) Name() string { return "job_board" }

type jobBoardResponse struct {
	Results []jobBoardPosting `json:"results"`
}

type jobBoardPosting struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

func (s *JobBoardSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if s == nil {
		return nil, nil
	}
	if s.appID == "" || s.apiKey == "" {
		s.log.Warnw("job board credentials missing, skipping source")
		return nil, nil
	}

	q := url.Values{}
	q.Set("app_id", s.appID)
	q.Set("app_key", s.apiKey)
	q.Set("results_per_page", "50")
	q.Set("what", "python OR react OR javascript OR java OR go")

	sep := "?"
	if strings.Contains(s.baseURL, "?") {
		sep = "&"
	}

	if err := s.gate.wait(ctx); err != nil {
		return nil, err
	}
	body, err := httpGetJSON(ctx, s.client, s.baseURL+sep+q.Encode(), nil, 3)
	s.gate.done()
	if err != nil {
		s.log.Errorw("job board fetch failed", "err", err)
		return nil, nil
	}

	var resp jobBoardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		s.log.Errorw("job board decode failed", "err", err)
		return nil, nil
	}

	now := time.Now().UTC()
	out := make([]model.RawRecord, 0, len(resp.Results))
	for _, job := range resp.Results {
		out = append(out, model.RawRecord{
			Source:      model.SourceJobPosting,
			Title:       job.Title,
			Description: job.Description,
			Skills:      job.Tags,
			FetchedAt:   now,
		})
	}
	return out, nil
}
