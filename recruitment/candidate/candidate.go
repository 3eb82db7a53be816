package candidate

import (
	"strings"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

// Role of an account inside the application
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is a job seeker, keyed by the identity provider's subject
type Profile struct {
	AccountID       kernel.AccountID `db:"account_id" json:"account_id"`
	Email           kernel.Email     `db:"email" json:"email"`
	FirstName       string           `db:"first_name" json:"first_name"`
	LastName        string           `db:"last_name" json:"last_name"`
	ProfileImageURL string           `db:"profile_image_url" json:"profile_image_url"`
	Phone           string           `db:"phone" json:"phone"`
	Location        string           `db:"location" json:"location"`
	JobTitle        string           `db:"job_title" json:"job_title"`
	Bio             string           `db:"bio" json:"bio"`
	ResumeURL       string           `db:"resume_url" json:"resume_url"`
	ResumeObjectKey string           `db:"resume_object_key" json:"-"`
	Skills          []string         `db:"skills" json:"skills"`
	Role            Role             `db:"role" json:"role"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasResume reports whether a résumé was uploaded. The résumé embedding
// point is written in the same upload.
func (p *Profile) HasResume() bool {
	return p.ResumeURL != ""
}

// GetFullName returns the candidate's full name
func (p *Profile) GetFullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ApplyUpdate copies the non-nil fields of req. It reports whether
// anything changed.
func (p *Profile) ApplyUpdate(req UpdateProfileRequest) bool {
	changed := false
	set := func(dst *string, v *string) {
		if v == nil || *dst == *v {
			return
		}
		*dst = *v
		changed = true
	}

	set(&p.FirstName, req.FirstName)
	set(&p.LastName, req.LastName)
	set(&p.Phone, req.Phone)
	set(&p.Location, req.Location)
	set(&p.JobTitle, req.JobTitle)
	set(&p.Bio, req.Bio)

	if req.Email != nil && p.Email != kernel.Email(*req.Email) {
		p.Email = kernel.Email(*req.Email)
		changed = true
	}

	if changed {
		p.UpdatedAt = time.Now().UTC()
	}
	return changed
}

// SetSkills replaces the declared skills with their normalized form
func (p *Profile) SetSkills(skills []string) {
	p.Skills = kernel.NormalizeSkills(skills)
	p.UpdatedAt = time.Now().UTC()
}

// ReplaceResume points the profile at a new stored résumé and returns the
// object key of the one it replaces, if any.
func (p *Profile) ReplaceResume(url, objectKey string, skills []string) (previousKey string) {
	previousKey = p.ResumeObjectKey
	p.ResumeURL = url
	p.ResumeObjectKey = objectKey
	p.Skills = kernel.NormalizeSkills(skills)
	p.UpdatedAt = time.Now().UTC()
	return previousKey
}
