package candidate

import (
	"context"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

type Repository interface {
	// Sync inserts the profile or refreshes its identity fields.
	// Role and created_at are only written on insert.
	Sync(ctx context.Context, profile *Profile) (*Profile, error)

	// GetByAccountID returns ErrCandidateNotFound when absent
	GetByAccountID(ctx context.Context, accountID kernel.AccountID) (*Profile, error)

	// Update persists the editable profile fields
	Update(ctx context.Context, profile *Profile) error

	// UpdateSkills replaces the declared skills
	UpdateSkills(ctx context.Context, accountID kernel.AccountID, skills []string) error

	// UpdateResume replaces resume_url, resume_object_key and skills together
	UpdateResume(ctx context.Context, profile *Profile) error
}

// TextExtractor pulls plain text out of an uploaded document
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// SkillExtractor maps résumé text to skills; it may be unavailable
type SkillExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// Embedder maps text to a kernel.EmbeddingDim wide vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorWriter is the part of the vector index used for résumé points
type VectorWriter interface {
	Upsert(ctx context.Context, collection string, id kernel.PointID, vector []float32, payload map[string]string) error
}
