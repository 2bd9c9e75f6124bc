package cmd

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSchedulerSkipsOverlappingRuns(t *testing.T) {
	c := newScheduler(zap.NewNop())

	var runs atomic.Int32
	release := make(chan struct{})
	id, err := c.AddFunc("@every 1h", func() {
		runs.Add(1)
		<-release
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job := c.Entry(id).WrappedJob

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for runs.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first run did not start")
		}
		time.Sleep(time.Millisecond)
	}

	job.Run()
	close(release)
	<-done

	if got := runs.Load(); got != 1 {
		t.Fatalf("expected the overlapping run to be skipped, got %d runs", got)
	}
}
