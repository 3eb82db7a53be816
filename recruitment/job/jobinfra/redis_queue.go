package jobinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/redis/go-redis/v9"
)

const DefaultQueueName = "skillbridge:ingestion:tasks"

// RedisQueue implements job.TaskQueue on a Redis list
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

var _ job.TaskQueue = (*RedisQueue)(nil)

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	if queueName == "" {
		queueName = DefaultQueueName
	}
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a task to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, task job.IngestionTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal ingestion task %s: %w", task.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue ingestion task %s: %w", task.ID, err)
	}

	return nil
}

// Dequeue gets a task from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*job.IngestionTask, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue ingestion task: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var task job.IngestionTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal ingestion task: %w (data: %s)", err, result[1])
	}
	return &task, nil
}

// Size returns the number of pending tasks
func (q *RedisQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// MemoryQueue is an in-process job.TaskQueue used when Redis is not configured
type MemoryQueue struct {
	tasks chan job.IngestionTask
}

var _ job.TaskQueue = (*MemoryQueue)(nil)

func NewMemoryQueue(capacity int) *MemoryQueue {
	return &MemoryQueue{tasks: make(chan job.IngestionTask, capacity)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, task job.IngestionTask) error {
	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("enqueue ingestion task %s: queue full", task.ID)
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*job.IngestionTask, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case task := <-q.tasks:
		return &task, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
