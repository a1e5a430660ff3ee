package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/logging"
)

func TestNewRejectsInvalidHour(t *testing.T) {
	for _, hour := range []int{-1, 24, 100} {
		_, err := New(hour, func() {}, logging.NewNop())
		assert.Error(t, err, "hour=%d", hour)
	}
}

func TestStartStop(t *testing.T) {
	s, err := New(2, func() {}, logging.NewNop())
	require.NoError(t, err)

	s.Start()
	s.Stop()
}

func TestNilSchedulerIsSafe(t *testing.T) {
	var s *Scheduler
	s.Start()
	s.Stop()
}
