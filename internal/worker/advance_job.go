package worker

import (
	"context"
	"time"

	"github.com/Yumichan48/foxrunner/internal/logger"
)

// QueueAdvancer resolves production jobs that are due at a given time.
type QueueAdvancer interface {
	Advance(ctx context.Context, now time.Time) int
}

// AdvanceJob resolves due production jobs on each tick.
type AdvanceJob struct {
	advancer QueueAdvancer
	clock    func() time.Time
}

// NewAdvanceJob creates a new AdvanceJob
func NewAdvanceJob(advancer QueueAdvancer, clock func() time.Time) *AdvanceJob {
	return &AdvanceJob{advancer: advancer, clock: clock}
}

// Process advances the production queue to the current time.
func (j *AdvanceJob) Process(ctx context.Context) error {
	resolved := j.advancer.Advance(ctx, j.clock())
	if resolved > 0 {
		logger.FromContext(ctx).Debug(LogMsgQueueAdvanceResolved, "resolved", resolved)
	}
	return nil
}
