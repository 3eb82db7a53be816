package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

var _ job.Repository = (*PostgresJobRepository)(nil)

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type postingModel struct {
	JobID          string         `db:"job_id"`
	Title          string         `db:"title"`
	Company        string         `db:"company"`
	Location       string         `db:"location"`
	Country        string         `db:"country"`
	Description    string         `db:"description"`
	ApplyLink      string         `db:"apply_link"`
	EmploymentType string         `db:"employment_type"`
	PostedAt       *time.Time     `db:"posted_at"`
	Skills         pq.StringArray `db:"skills"`
	RunID          string         `db:"run_id"`
	IngestedAt     time.Time      `db:"ingested_at"`
}

// toEntity converts database model to domain entity.
// A NULL skills column stays nil.
func (m *postingModel) toEntity() *job.Posting {
	var skills []string
	if m.Skills != nil {
		skills = append([]string{}, m.Skills...)
	}

	return &job.Posting{
		ID:             kernel.NewJobID(m.JobID),
		Title:          m.Title,
		Company:        m.Company,
		Location:       m.Location,
		Country:        m.Country,
		Description:    m.Description,
		ApplyLink:      m.ApplyLink,
		EmploymentType: m.EmploymentType,
		PostedAt:       m.PostedAt,
		Skills:         skills,
		RunID:          kernel.NewRunID(m.RunID),
		IngestedAt:     m.IngestedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(p *job.Posting) *postingModel {
	return &postingModel{
		JobID:          p.ID.String(),
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		Country:        p.Country,
		Description:    p.Description,
		ApplyLink:      p.ApplyLink,
		EmploymentType: p.EmploymentType,
		PostedAt:       p.PostedAt,
		Skills:         pq.StringArray(p.Skills),
		RunID:          p.RunID.String(),
		IngestedAt:     p.IngestedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// DeleteAll removes every posting of the previous generation
func (r *PostgresJobRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("failed to delete jobs: %w", err)
	}
	return nil
}

// Upsert stores a posting keyed by job_id
func (r *PostgresJobRepository) Upsert(ctx context.Context, posting *job.Posting) error {
	if posting.ID.IsEmpty() {
		return fmt.Errorf("posting without job_id")
	}

	query := `
		INSERT INTO jobs (
			job_id, title, company, location, country, description,
			apply_link, employment_type, posted_at, skills, run_id, ingested_at
		) VALUES (
			:job_id, :title, :company, :location, :country, :description,
			:apply_link, :employment_type, :posted_at, :skills, :run_id, :ingested_at
		)
		ON CONFLICT (job_id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			country = EXCLUDED.country,
			description = EXCLUDED.description,
			apply_link = EXCLUDED.apply_link,
			employment_type = EXCLUDED.employment_type,
			posted_at = EXCLUDED.posted_at,
			skills = EXCLUDED.skills,
			run_id = EXCLUDED.run_id,
			ingested_at = EXCLUDED.ingested_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(posting)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23502" { // not_null_violation
			return fmt.Errorf("incomplete posting %s: %w", posting.ID, err)
		}
		return fmt.Errorf("failed to upsert job: %w", err)
	}

	return nil
}

// GetByID retrieves a posting by its feed id
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Posting, error) {
	query := `
		SELECT
			job_id, title, company, location, country, description,
			apply_link, employment_type, posted_at, skills, run_id, ingested_at
		FROM jobs
		WHERE job_id = $1
	`

	var model postingModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity(), nil
}

// Count returns the number of stored postings
func (r *PostgresJobRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM jobs`); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return total, nil
}
