package candidatesrv

import (
	"context"
	"errors"

	"github.com/Abraxas-365/skillbridge/internal/ai/skills"
	"github.com/Abraxas-365/skillbridge/internal/pdf"
	"github.com/Abraxas-365/skillbridge/internal/vectorindex"
	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/google/uuid"
)

// UploadResume stores a PDF résumé, derives skills from its text and
// replaces the candidate's résumé embedding point.
func (s *CandidateService) UploadResume(ctx context.Context, accountID kernel.AccountID, req candidate.UploadResumeRequest) (*candidate.UploadResumeResponse, error) {
	if len(req.Data) == 0 {
		return nil, candidate.ErrInvalidRequest().WithDetail("field", "resume")
	}
	if len(req.Data) > candidate.MaxResumeBytes {
		return nil, candidate.ErrFileTooLarge().
			WithDetail("size", len(req.Data)).
			WithDetail("max_size", candidate.MaxResumeBytes)
	}
	if !pdf.IsPDF(req.Data) {
		return nil, candidate.ErrInvalidFileType().
			WithDetail("file_name", req.FileName).
			WithDetail("content_type", req.ContentType)
	}

	profile, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	text, err := s.text.ExtractText(req.Data)
	if err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeResumeReadFailed, err).
			WithDetail("file_name", req.FileName)
	}
	if text == "" {
		return nil, candidate.ErrEmptyResume().WithDetail("file_name", req.FileName)
	}

	key := s.files.Join("resumes", accountID.String(), uuid.NewString()+".pdf")
	if err := s.files.WriteFile(ctx, key, req.Data); err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeUploadFailed, err)
	}

	extracted := s.extractSkills(ctx, accountID, text)

	if err := s.indexResume(ctx, accountID, text); err != nil {
		s.discard(ctx, key)
		return nil, err
	}

	url := s.files.URL(key)
	previous := profile.ReplaceResume(url, key, extracted)
	if err := s.repo.UpdateResume(ctx, profile); err != nil {
		s.discard(ctx, key)
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeStoreFailed, err)
	}

	if previous != "" && previous != key {
		s.discard(ctx, previous)
	}

	logx.Infof("Resume uploaded: AccountID=%s Key=%s Skills=%d", accountID, key, len(profile.Skills))

	return &candidate.UploadResumeResponse{
		ResumeURL: url,
		Skills:    profile.Skills,
	}, nil
}

func (s *CandidateService) extractSkills(ctx context.Context, accountID kernel.AccountID, text string) []string {
	if s.extractor == nil {
		return []string{}
	}

	extracted, err := s.extractor.Extract(ctx, text)
	if err != nil {
		if !errors.Is(err, skills.ErrNotReady) {
			logx.WithFields(map[string]any{"account_id": accountID.String()}).
				Warnf("Resume skill extraction failed: %v", err)
		}
		return []string{}
	}
	return kernel.NormalizeSkills(extracted)
}

// indexResume overwrites the one résumé point of the account
func (s *CandidateService) indexResume(ctx context.Context, accountID kernel.AccountID, text string) error {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return candidate.ErrRegistry.NewWithCause(candidate.CodeEmbeddingFailed, err)
	}

	payload := map[string]string{job.PayloadAccountID: accountID.String()}
	if err := s.vectors.Upsert(ctx, vectorindex.CollectionResumes, kernel.StablePointID(accountID.String()), vector, payload); err != nil {
		return candidate.ErrRegistry.NewWithCause(candidate.CodeEmbeddingFailed, err)
	}
	return nil
}

// discard removes a stored object, best effort
func (s *CandidateService) discard(ctx context.Context, key string) {
	if err := s.files.DeleteFile(ctx, key); err != nil {
		logx.Warnf("Failed to delete stored resume %s: %v", key, err)
	}
}
