package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"skill-radar/internal/model"
)

const githubTopRepos = 20

// GitHubSource pulls trending repositories from the GitHub search API and
// their per-repository language byte counts.
type GitHubSource struct {
	client  *http.Client
	baseURL string
	token   string
	gate    rateGate
	log     *zap.SugaredLogger
}

func NewGitHubSource(token string, log *zap.SugaredLogger) *GitHubSource {
	return NewGitHubSourceWithBaseURL(token, "https://api.github.com", log)
}

func NewGitHubSourceWithBaseURL(token, baseURL string, log *zap.SugaredLogger) *GitHubSource {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHubSource{
		client:  &http.Client{Timeout: 25 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		gate:    rateGate{delay: 500 * time.Millisecond},
		log:     log,
	}
}

func (s *GitHubSource) Name() string { return "github" }

type githubSearchResponse struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Description  string `json:"description"`
	Stars        int    `json:"stargazers_count"`
	Forks        int    `json:"forks_count"`
	LanguagesURL string `json:"languages_url"`
}

func (s *GitHubSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if s == nil {
		return nil, nil
	}

	q := url.Values{}
	q.Set("q", "stars:>1000 language:python language:javascript language:java language:go")
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", "50")
	searchURL := s.baseURL + "/search/repositories?" + q.Encode()

	if err := s.gate.wait(ctx); err != nil {
		return nil, err
	}
	body, err := httpGetJSON(ctx, s.client, searchURL, s.headers(), 3)
	s.gate.done()
	if err != nil {
		s.log.Errorw("github search failed", "err", err)
		return nil, nil
	}

	var search githubSearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		s.log.Errorw("github search decode failed", "err", err)
		return nil, nil
	}

	items := search.Items
	if len(items) > githubTopRepos {
		items = items[:githubTopRepos]
	}

	now := time.Now().UTC()
	out := make([]model.RawRecord, 0, len(items))
	for _, repo := range items {
		languages := s.fetchLanguages(ctx, repo.LanguagesURL)
		out = append(out, model.RawRecord{
			Source:      model.SourceRepoTrend,
			Title:       repo.Name,
			Topic:       repo.FullName,
			Description: repo.Description,
			Languages:   languages,
			Stars:       repo.Stars,
			Forks:       repo.Forks,
			FetchedAt:   now,
		})
	}
	return out, nil
}

func (s *GitHubSource) fetchLanguages(ctx context.Context, languagesURL string) map[string]int {
	languagesURL = strings.TrimSpace(languagesURL)
	if languagesURL == "" {
		return nil
	}
	if err := s.gate.wait(ctx); err != nil {
		return nil
	}
	body, err := httpGetJSON(ctx, s.client, languagesURL, s.headers(), 2)
	s.gate.done()
	if err != nil {
		s.log.Debugw("github languages fetch failed", "url", languagesURL, "err", err)
		return nil
	}
	var languages map[string]int
	if err := json.Unmarshal(body, &languages); err != nil {
		return nil
	}
	return languages
}

func (s *GitHubSource) headers() map[string]string {
	if s.token == "" {
		return nil
	}
	return map[string]string{"Authorization": fmt.Sprintf("token %s", s.token)}
}
