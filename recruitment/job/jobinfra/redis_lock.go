package jobinfra

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultLockKey = "skillbridge:ingestion:lock"

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRunLock is a SET NX PX lock shared by every process
type RedisRunLock struct {
	client *redis.Client
	key    string
}

var _ job.RunLock = (*RedisRunLock)(nil)

func NewRedisRunLock(client *redis.Client, key string) *RedisRunLock {
	if key == "" {
		key = DefaultLockKey
	}
	return &RedisRunLock{client: client, key: key}
}

func (l *RedisRunLock) Acquire(ctx context.Context, ttl time.Duration) (func(), error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire ingestion lock: %w", err)
	}
	if !ok {
		return nil, job.ErrIngestionAlreadyRunning().WithDetail("lock", l.key)
	}

	release := func() {
		// the run context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			logx.Warnf("Failed to release ingestion lock %s: %v", l.key, err)
		}
	}
	return release, nil
}

// LocalRunLock excludes overlapping runs inside one process
type LocalRunLock struct {
	mu sync.Mutex
}

var _ job.RunLock = (*LocalRunLock)(nil)

func NewLocalRunLock() *LocalRunLock {
	return &LocalRunLock{}
}

func (l *LocalRunLock) Acquire(_ context.Context, _ time.Duration) (func(), error) {
	if !l.mu.TryLock() {
		return nil, job.ErrIngestionAlreadyRunning()
	}
	var once sync.Once
	return func() { once.Do(l.mu.Unlock) }, nil
}
