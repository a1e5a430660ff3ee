package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/logging"
	"skill-radar/internal/model"
)

type stubSource struct {
	name    string
	records []model.RawRecord
	err     error
	panics  bool
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(context.Context) ([]model.RawRecord, error) {
	if s.panics {
		panic("stub panic")
	}
	return s.records, s.err
}

func TestFetchAllConcatenatesSources(t *testing.T) {
	a := NewAggregator([]Source{
		stubSource{name: "a", records: []model.RawRecord{{Source: model.SourceRepoTrend, Title: "r1"}}},
		stubSource{name: "b", records: []model.RawRecord{
			{Source: model.SourceJobPosting, Title: "j1"},
			{Source: model.SourceJobPosting, Title: "j2"},
		}},
	}, nil, logging.NewNop())

	records := a.FetchAll(context.Background())
	require.Len(t, records, 3)
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	a := NewAggregator([]Source{
		stubSource{name: "broken", err: errors.New("boom")},
		stubSource{name: "panicky", panics: true},
		stubSource{name: "ok", records: []model.RawRecord{{Source: model.SourceCommunity, Title: "post"}}},
	}, nil, logging.NewNop())

	records := a.FetchAll(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, "post", records[0].Title)
}

func TestFetchAllAllSourcesFail(t *testing.T) {
	a := NewAggregator([]Source{
		stubSource{name: "a", err: errors.New("x")},
		stubSource{name: "b", err: errors.New("y")},
	}, nil, logging.NewNop())

	assert.Empty(t, a.FetchAll(context.Background()))
}

func TestFetchAllNoSources(t *testing.T) {
	a := NewAggregator(nil, nil, logging.NewNop())
	assert.Empty(t, a.FetchAll(context.Background()))
}
