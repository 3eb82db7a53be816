package candidatesrv

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/errx"
	"github.com/Abraxas-365/skillbridge/pkg/fsx"
	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate"
)

// CandidateService provides business operations for candidate profiles
type CandidateService struct {
	repo      candidate.Repository
	files     fsx.FileSystem
	text      candidate.TextExtractor
	extractor candidate.SkillExtractor
	embedder  candidate.Embedder
	vectors   candidate.VectorWriter
}

// NewCandidateService creates a new instance of the candidate service.
// extractor may be nil; skill extraction is best effort.
func NewCandidateService(
	repo candidate.Repository,
	files fsx.FileSystem,
	text candidate.TextExtractor,
	extractor candidate.SkillExtractor,
	embedder candidate.Embedder,
	vectors candidate.VectorWriter,
) *CandidateService {
	return &CandidateService{
		repo:      repo,
		files:     files,
		text:      text,
		extractor: extractor,
		embedder:  embedder,
		vectors:   vectors,
	}
}

// SyncProfile creates the profile on first sign-in and refreshes the
// identity fields afterwards
func (s *CandidateService) SyncProfile(ctx context.Context, accountID kernel.AccountID, req candidate.SyncProfileRequest) (*candidate.Profile, error) {
	if accountID.IsEmpty() {
		return nil, candidate.ErrInvalidRequest().WithDetail("field", "account_id")
	}
	if req.Email != "" && !validEmail(req.Email) {
		return nil, candidate.ErrInvalidEmail().WithDetail("email", req.Email)
	}

	now := time.Now().UTC()
	profile := &candidate.Profile{
		AccountID:       accountID,
		Email:           kernel.Email(strings.TrimSpace(req.Email)),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		ProfileImageURL: req.ProfileImageURL,
		Skills:          []string{},
		Role:            candidate.RoleUser,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	synced, err := s.repo.Sync(ctx, profile)
	if err != nil {
		return nil, errx.Wrap(err, "failed to sync candidate", errx.TypeInternal)
	}
	return synced, nil
}

// GetProfile returns the caller's profile
func (s *CandidateService) GetProfile(ctx context.Context, accountID kernel.AccountID) (*candidate.Profile, error) {
	profile, err := s.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to load candidate", errx.TypeInternal)
	}
	return profile, nil
}

// UpdateProfile applies the editable fields. A request that changes
// nothing returns the current profile without writing.
func (s *CandidateService) UpdateProfile(ctx context.Context, accountID kernel.AccountID, req candidate.UpdateProfileRequest) (*candidate.Profile, error) {
	if req.Email != nil && !validEmail(*req.Email) {
		return nil, candidate.ErrInvalidEmail().WithDetail("email", *req.Email)
	}

	profile, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !profile.ApplyUpdate(req) {
		return profile, nil
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
	}
	return profile, nil
}

// UpdateSkills replaces the declared skills and returns the stored set
func (s *CandidateService) UpdateSkills(ctx context.Context, accountID kernel.AccountID, skills []string) ([]string, error) {
	normalized := kernel.NormalizeSkills(skills)

	if err := s.repo.UpdateSkills(ctx, accountID, normalized); err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to update skills", errx.TypeInternal)
	}
	return normalized, nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil && addr.Name == "" && strings.Contains(addr.Address, "@")
}
