package worker

import (
	"context"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/errx"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
)

// Runner executes one ingestion run
type Runner interface {
	Run(ctx context.Context, req job.IngestionRequest) (*job.IngestionReport, error)
}

// IngestionWorker drains the task queue and runs each task in turn
type IngestionWorker struct {
	runner      Runner
	queue       job.TaskQueue
	pollTimeout time.Duration
}

func NewIngestionWorker(runner Runner, queue job.TaskQueue) *IngestionWorker {
	return &IngestionWorker{
		runner:      runner,
		queue:       queue,
		pollTimeout: 5 * time.Second,
	}
}

// Start launches the worker loop; it stops when ctx is cancelled
func (w *IngestionWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.processTasks(ctx)
	}()
	return done
}

func (w *IngestionWorker) processTasks(ctx context.Context) {
	logx.Info("Ingestion worker started")

	for {
		select {
		case <-ctx.Done():
			logx.Info("Ingestion worker stopping")
			return
		default:
			task, err := w.queue.Dequeue(ctx, w.pollTimeout)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				logx.Errorf("Ingestion worker dequeue error: %v", err)
				// avoid spinning against a broken queue
				sleep(ctx, time.Second)
				continue
			}

			if task == nil {
				continue
			}

			w.process(ctx, task)
		}
	}
}

func (w *IngestionWorker) process(ctx context.Context, task *job.IngestionTask) {
	logx.Infof("Ingestion worker processing task: TaskID=%s Source=%s", task.ID, task.Source)

	report, err := w.runner.Run(ctx, task.Request)
	if err != nil {
		if errx.IsType(err, errx.TypeConflict) {
			logx.Warnf("Ingestion task %s skipped: previous run still in progress", task.ID)
			return
		}
		logx.Errorf("Ingestion task %s failed: %v", task.ID, err)
		return
	}

	logx.WithFields(map[string]any{
		"task_id":       task.ID,
		"run_id":        report.RunID.String(),
		"stored":        report.Stored,
		"embedded":      report.Embedded,
		"skipped_pages": report.SkippedPages,
	}).Info("Ingestion task completed")
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
