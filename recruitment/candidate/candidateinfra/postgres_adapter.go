package candidateinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresCandidateRepository implements candidate.Repository using PostgreSQL
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

var _ candidate.Repository = (*PostgresCandidateRepository)(nil)

func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type profileModel struct {
	AccountID       string         `db:"account_id"`
	Email           string         `db:"email"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	ProfileImageURL string         `db:"profile_image_url"`
	Phone           string         `db:"phone"`
	Location        string         `db:"location"`
	JobTitle        string         `db:"job_title"`
	Bio             string         `db:"bio"`
	ResumeURL       string         `db:"resume_url"`
	ResumeObjectKey string         `db:"resume_object_key"`
	Skills          pq.StringArray `db:"skills"`
	Role            string         `db:"role"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (m *profileModel) toEntity() *candidate.Profile {
	skills := make([]string, 0, len(m.Skills))
	skills = append(skills, m.Skills...)

	return &candidate.Profile{
		AccountID:       kernel.NewAccountID(m.AccountID),
		Email:           kernel.Email(m.Email),
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ProfileImageURL: m.ProfileImageURL,
		Phone:           m.Phone,
		Location:        m.Location,
		JobTitle:        m.JobTitle,
		Bio:             m.Bio,
		ResumeURL:       m.ResumeURL,
		ResumeObjectKey: m.ResumeObjectKey,
		Skills:          skills,
		Role:            candidate.Role(m.Role),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromEntity(p *candidate.Profile) *profileModel {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	role := p.Role
	if role == "" {
		role = candidate.RoleUser
	}

	return &profileModel{
		AccountID:       p.AccountID.String(),
		Email:           string(p.Email),
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		ProfileImageURL: p.ProfileImageURL,
		Phone:           p.Phone,
		Location:        p.Location,
		JobTitle:        p.JobTitle,
		Bio:             p.Bio,
		ResumeURL:       p.ResumeURL,
		ResumeObjectKey: p.ResumeObjectKey,
		Skills:          pq.StringArray(skills),
		Role:            string(role),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

const profileColumns = `
	account_id, email, first_name, last_name, profile_image_url,
	phone, location, job_title, bio, resume_url, resume_object_key,
	skills, role, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Sync upserts the identity fields; role and created_at survive conflicts
func (r *PostgresCandidateRepository) Sync(ctx context.Context, p *candidate.Profile) (*candidate.Profile, error) {
	query := `
		INSERT INTO candidates (` + profileColumns + `)
		VALUES (
			:account_id, :email, :first_name, :last_name, :profile_image_url,
			:phone, :location, :job_title, :bio, :resume_url, :resume_object_key,
			:skills, :role, :created_at, :updated_at
		)
		ON CONFLICT (account_id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + profileColumns

	rows, err := r.db.NamedQueryContext(ctx, query, fromEntity(p))
	if err != nil {
		return nil, fmt.Errorf("sync candidate %s: %w", p.AccountID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("sync candidate %s: %w", p.AccountID, err)
		}
		return nil, fmt.Errorf("sync candidate %s: no row returned", p.AccountID)
	}

	var m profileModel
	if err := rows.StructScan(&m); err != nil {
		return nil, fmt.Errorf("scan candidate %s: %w", p.AccountID, err)
	}
	return m.toEntity(), nil
}

// GetByAccountID retrieves a candidate by account id
func (r *PostgresCandidateRepository) GetByAccountID(ctx context.Context, accountID kernel.AccountID) (*candidate.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM candidates WHERE account_id = $1`

	var m profileModel
	if err := r.db.GetContext(ctx, &m, query, accountID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("account_id", accountID.String())
		}
		return nil, fmt.Errorf("get candidate %s: %w", accountID, err)
	}
	return m.toEntity(), nil
}

// Update persists the editable fields
func (r *PostgresCandidateRepository) Update(ctx context.Context, p *candidate.Profile) error {
	query := `
		UPDATE candidates SET
			first_name = :first_name,
			last_name = :last_name,
			email = :email,
			phone = :phone,
			location = :location,
			job_title = :job_title,
			bio = :bio,
			updated_at = :updated_at
		WHERE account_id = :account_id`

	return r.execOne(ctx, query, fromEntity(p), p.AccountID)
}

// UpdateSkills replaces the declared skills
func (r *PostgresCandidateRepository) UpdateSkills(ctx context.Context, accountID kernel.AccountID, skills []string) error {
	if skills == nil {
		skills = []string{}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE candidates SET skills = $2, updated_at = $3 WHERE account_id = $1`,
		accountID.String(), pq.Array(skills), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update skills %s: %w", accountID, err)
	}
	return requireRow(result, accountID)
}

// UpdateResume replaces the résumé location and the derived skills
func (r *PostgresCandidateRepository) UpdateResume(ctx context.Context, p *candidate.Profile) error {
	query := `
		UPDATE candidates SET
			resume_url = :resume_url,
			resume_object_key = :resume_object_key,
			skills = :skills,
			updated_at = :updated_at
		WHERE account_id = :account_id`

	return r.execOne(ctx, query, fromEntity(p), p.AccountID)
}

// ============================================================================
// Helper Functions
// ============================================================================

func (r *PostgresCandidateRepository) execOne(ctx context.Context, query string, m *profileModel, id kernel.AccountID) error {
	result, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("update candidate %s: %w", id, err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id kernel.AccountID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("account_id", id.String())
	}
	return nil
}
