package job

import (
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

// Posting is a job listing pulled from the feed during an ingestion run.
// Postings are written once and never mutated; each run replaces the pool.
type Posting struct {
	ID             kernel.JobID `db:"job_id" json:"job_id"`
	Title          string       `db:"title" json:"title"`
	Company        string       `db:"company" json:"company"`
	Location       string       `db:"location" json:"location"`
	Country        string       `db:"country" json:"country"`
	Description    string       `db:"description" json:"description"`
	ApplyLink      string       `db:"apply_link" json:"apply_link"`
	EmploymentType string       `db:"employment_type" json:"employment_type"`
	PostedAt       *time.Time   `db:"posted_at" json:"posted_at,omitempty"`

	// Skills is nil for records stored before skills were precomputed.
	// An empty, non-nil slice means extraction ran and found nothing.
	Skills []string `db:"skills" json:"skills"`

	RunID      kernel.RunID `db:"run_id" json:"run_id"`
	IngestedAt time.Time    `db:"ingested_at" json:"ingested_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasPrecomputedSkills reports whether skills were extracted at ingestion
func (p *Posting) HasPrecomputedSkills() bool {
	return p.Skills != nil
}

// Embeddable reports whether the posting gets a vector point
func (p *Posting) Embeddable() bool {
	return p.Description != ""
}

// PointID is the vector index id derived from the posting id
func (p *Posting) PointID() kernel.PointID {
	return kernel.StablePointID(p.ID.String())
}

// VectorPayload is stored next to the posting's embedding
func (p *Posting) VectorPayload() map[string]string {
	return map[string]string{
		PayloadJobID: p.ID.String(),
		PayloadTitle: p.Title,
	}
}

const (
	PayloadJobID     = "job_id"
	PayloadTitle     = "title"
	PayloadAccountID = "account_id"
)
