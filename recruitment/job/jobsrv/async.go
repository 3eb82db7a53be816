package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/google/uuid"
)

// Dispatcher queues ingestion runs for the background worker
type Dispatcher struct {
	queue job.TaskQueue
}

func NewDispatcher(queue job.TaskQueue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

// Enqueue pushes a run onto the task queue
func (d *Dispatcher) Enqueue(ctx context.Context, source job.TaskSource, req job.IngestionRequest) (*job.IngestionTask, error) {
	task := job.IngestionTask{
		ID:         uuid.NewString(),
		Source:     source,
		Request:    req,
		EnqueuedAt: time.Now().UTC(),
	}

	if err := d.queue.Enqueue(ctx, task); err != nil {
		return nil, job.IngestionErrRegistry.NewWithCause(job.CodeEnqueueFailed, err).
			WithDetail("task_id", task.ID).
			WithDetail("source", string(source))
	}

	logx.Infof("Ingestion task queued: TaskID=%s Source=%s", task.ID, source)
	return &task, nil
}
