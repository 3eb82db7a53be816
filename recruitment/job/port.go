package job

import (
	"context"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

// Repository is the Job Store
type Repository interface {
	// DeleteAll removes every stored posting
	DeleteAll(ctx context.Context) error

	// Upsert stores a posting, replacing one with the same id
	Upsert(ctx context.Context, posting *Posting) error

	// GetByID returns ErrJobNotFound when no posting has the id
	GetByID(ctx context.Context, id kernel.JobID) (*Posting, error)

	// Count returns the number of stored postings
	Count(ctx context.Context) (int64, error)
}

// Embedder maps text to a kernel.EmbeddingDim wide vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SkillExtractor maps text to a set of skills. It may be unavailable.
type SkillExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// FeedQuery selects one page of feed results
type FeedQuery struct {
	Query      string
	Page       int
	Country    string
	DatePosted string
}

// Feed is the external job-search source
type Feed interface {
	// Configured reports whether credentials are present
	Configured() bool

	// Search fetches one page. Rate limiting and non-success responses
	// are returned as errors.
	Search(ctx context.Context, q FeedQuery) ([]Posting, error)
}

// MatchProfile is the part of a candidate the match engine reads
type MatchProfile struct {
	AccountID kernel.AccountID
	HasResume bool
	Skills    []string
}

// ProfileReader loads match profiles. A missing profile is reported as an
// errx NOT_FOUND error.
type ProfileReader interface {
	MatchProfile(ctx context.Context, accountID kernel.AccountID) (*MatchProfile, error)
}

// RunLock excludes overlapping ingestion runs
type RunLock interface {
	// Acquire returns ErrIngestionAlreadyRunning when another run holds the lock
	Acquire(ctx context.Context, ttl time.Duration) (release func(), err error)
}

// TaskQueue carries ingestion tasks from triggers to the worker
type TaskQueue interface {
	Enqueue(ctx context.Context, task IngestionTask) error

	// Dequeue blocks up to timeout; it returns nil, nil when nothing arrived
	Dequeue(ctx context.Context, timeout time.Duration) (*IngestionTask, error)
}
