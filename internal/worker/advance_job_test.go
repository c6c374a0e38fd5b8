package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdvancer struct {
	calls []time.Time
	ret   int
}

func (s *stubAdvancer) Advance(ctx context.Context, now time.Time) int {
	s.calls = append(s.calls, now)
	return s.ret
}

func TestAdvanceJob(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	advancer := &stubAdvancer{ret: 2}
	job := NewAdvanceJob(advancer, func() time.Time { return now })

	require.NoError(t, job.Process(context.Background()))
	require.Len(t, advancer.calls, 1)
	assert.Equal(t, now, advancer.calls[0])
}
