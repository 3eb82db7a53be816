package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/Abraxas-365/skillbridge/recruitment/job/jobinfra"
)

type recordingRunner struct {
	mu   sync.Mutex
	reqs []job.IngestionRequest
	err  error
	ran  chan struct{}
}

func (r *recordingRunner) Run(_ context.Context, req job.IngestionRequest) (*job.IngestionReport, error) {
	r.mu.Lock()
	r.reqs = append(r.reqs, req)
	r.mu.Unlock()
	r.ran <- struct{}{}
	if r.err != nil {
		return nil, r.err
	}
	return &job.IngestionReport{RunID: "run-1", Stored: 3}, nil
}

func TestWorkerRunsQueuedTasksInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := jobinfra.NewMemoryQueue(4)
	runner := &recordingRunner{ran: make(chan struct{}, 4)}
	w := NewIngestionWorker(runner, queue)
	w.pollTimeout = 20 * time.Millisecond

	for _, q := range []string{"first", "second"} {
		task := job.IngestionTask{ID: q, Source: job.TaskSourceManual, Request: job.IngestionRequest{Queries: []string{q}}}
		if err := queue.Enqueue(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	done := w.Start(ctx)
	for i := 0; i < 2; i++ {
		select {
		case <-runner.ran:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not run queued task")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	if len(runner.reqs) != 2 || runner.reqs[0].Queries[0] != "first" || runner.reqs[1].Queries[0] != "second" {
		t.Fatalf("runs = %+v", runner.reqs)
	}
}

func TestWorkerSurvivesOverlapRejection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := jobinfra.NewMemoryQueue(2)
	runner := &recordingRunner{ran: make(chan struct{}, 2), err: job.ErrIngestionAlreadyRunning()}
	w := NewIngestionWorker(runner, queue)
	w.pollTimeout = 20 * time.Millisecond
	done := w.Start(ctx)

	for _, id := range []string{"a", "b"} {
		if err := queue.Enqueue(ctx, job.IngestionTask{ID: id}); err != nil {
			t.Fatal(err)
		}
		select {
		case <-runner.ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("task %s not processed", id)
		}
	}

	cancel()
	<-done
}
