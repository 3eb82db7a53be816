package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/robfig/cron/v3"
)

// Enqueuer queues an ingestion run
type Enqueuer interface {
	Enqueue(ctx context.Context, source job.TaskSource, req job.IngestionRequest) (*job.IngestionTask, error)
}

// Scheduler triggers ingestion on a cron schedule
type Scheduler struct {
	cron     *cron.Cron
	enqueuer Enqueuer
	timeout  time.Duration
}

// New parses spec (standard five-field syntax or descriptors like @daily).
// An empty spec is rejected.
func New(spec string, enqueuer Enqueuer) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger{})),
		enqueuer: enqueuer,
		timeout:  10 * time.Second,
	}

	if spec == "" {
		return nil, fmt.Errorf("scheduler: empty cron spec")
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	logx.Info("Ingestion scheduler started")
	s.cron.Start()
}

// Stop prevents new ticks and waits for a running tick to return
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logx.Info("Ingestion scheduler stopped")
}

// Next reports the next planned trigger
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now())
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	// zero request: the run uses configured defaults
	if _, err := s.enqueuer.Enqueue(ctx, job.TaskSourceSchedule, job.IngestionRequest{}); err != nil {
		logx.Errorf("Scheduled ingestion could not be queued: %v", err)
	}
}

// cronLogger routes cron's own logging into logx
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logx.L().Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logx.L().Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
