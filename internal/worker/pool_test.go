package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsSubmittedJobs(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start(context.Background())

	var ran int32
	for i := 0; i < 4; i++ {
		pool.Submit(func(context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&ran) == 4
	}, time.Second, 10*time.Millisecond)

	pool.Stop()
}

func TestWorkerPoolStopDrainsQueue(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Start(context.Background())

	var ran int32
	pool.Submit(func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	pool.Stop()
	require.Equal(t, int32(1), atomic.LoadInt32(&ran))
}
