package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Yumichan48/foxrunner/internal/worker"
)

// tickJob signals on Done each time the pool runs it.
type tickJob struct {
	Done chan struct{}
}

func (j *tickJob) Process(ctx context.Context) error {
	select {
	case j.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &tickJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for scheduled job to run")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}
