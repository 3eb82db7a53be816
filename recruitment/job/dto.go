package job

import (
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

const (
	// DescriptionPreviewRunes is the description length returned with a match
	DescriptionPreviewRunes = 300

	// MaxMissingSkills caps the skill gap returned with a match
	MaxMissingSkills = 7

	DefaultPageSize = 10
	MaxPageSize     = 50

	// MaxRankDepth is the deepest rank a page may start at. It sits far above
	// any job pool a single ingestion run can store; later pages are empty.
	MaxRankDepth = 10000
	MaxPage      = MaxRankDepth + 1
)

// MatchResult is one ranked job annotated with the candidate's skill gap
type MatchResult struct {
	JobID          kernel.JobID `json:"job_id"`
	Title          string       `json:"title"`
	Company        string       `json:"company"`
	Location       string       `json:"location"`
	Country        string       `json:"country"`
	Description    string       `json:"description"`
	ApplyLink      string       `json:"apply_link"`
	EmploymentType string       `json:"employment_type"`
	PostedAt       *time.Time   `json:"posted_at"`
	MatchScore     float64      `json:"match_score"`
	MissingSkills  []string     `json:"missing_skills"`
}

// MatchPage is the response of GET /api/jobs
type MatchPage struct {
	HasResume bool          `json:"has_resume"`
	Jobs      []MatchResult `json:"jobs"`
	Page      int           `json:"page"`
	HasMore   bool          `json:"has_more"`
}

// IngestionRequest parameterizes one run. Zero fields take configured defaults.
type IngestionRequest struct {
	Queries    []string `json:"queries"`
	MaxJobs    int      `json:"max_jobs"`
	MaxPages   int      `json:"max_pages"`
	Country    string   `json:"country"`
	DatePosted string   `json:"date_posted"`
}

// IngestionReport summarizes a finished run. Stored is the run's job count.
type IngestionReport struct {
	RunID          kernel.RunID `json:"run_id"`
	Stored         int          `json:"stored"`
	Duplicates     int          `json:"duplicates"`
	SkippedPages   int          `json:"skipped_pages"`
	Embedded       int          `json:"embedded"`
	DegradedSkills int          `json:"degraded_skills"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
}

// TaskSource tells who triggered an ingestion task
type TaskSource string

const (
	TaskSourceSchedule TaskSource = "schedule"
	TaskSourceManual   TaskSource = "manual"
)

// IngestionTask is the queue message consumed by the ingestion worker
type IngestionTask struct {
	ID         string           `json:"id"`
	Source     TaskSource       `json:"source"`
	Request    IngestionRequest `json:"request"`
	EnqueuedAt time.Time        `json:"enqueued_at"`
}
