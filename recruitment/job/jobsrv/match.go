package jobsrv

import (
	"context"
	"errors"
	"math"

	"github.com/Abraxas-365/skillbridge/internal/vectorindex"
	"github.com/Abraxas-365/skillbridge/pkg/errx"
	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
)

// MatchService ranks the job pool against a candidate's résumé embedding
type MatchService struct {
	repo      job.Repository
	index     vectorindex.Index
	profiles  job.ProfileReader
	extractor job.SkillExtractor
}

// NewMatchService creates the match engine. extractor may be nil, in which
// case postings without precomputed skills get an empty gap.
func NewMatchService(
	repo job.Repository,
	index vectorindex.Index,
	profiles job.ProfileReader,
	extractor job.SkillExtractor,
) *MatchService {
	return &MatchService{
		repo:      repo,
		index:     index,
		profiles:  profiles,
		extractor: extractor,
	}
}

func emptyPage(page int, hasResume bool) *job.MatchPage {
	return &job.MatchPage{
		HasResume: hasResume,
		Jobs:      []job.MatchResult{},
		Page:      page,
		HasMore:   false,
	}
}

// GetMatches returns one page of the similarity ranking.
//
// The index is always queried from rank 0 for offset+pageSize+1 points and
// the page is sliced out here. The extra point tells whether a next page
// exists. Native index offsets are never used: some backends return short
// pages at depth.
func (s *MatchService) GetMatches(ctx context.Context, accountID kernel.AccountID, page, pageSize int) (*job.MatchPage, error) {
	opts := kernel.PaginationOptions{Page: page, PageSize: pageSize}
	if !opts.Valid() {
		return nil, job.ErrInvalidPagination().
			WithDetail("page", page).
			WithDetail("limit", pageSize)
	}

	profile, err := s.profiles.MatchProfile(ctx, accountID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return emptyPage(page, false), nil
		}
		return nil, errx.Wrap(err, "failed to load candidate profile", errx.TypeInternal)
	}
	if !profile.HasResume {
		return emptyPage(page, false), nil
	}

	// Bounded before any offset arithmetic so huge page numbers cannot wrap.
	pageSize = min(pageSize, job.MaxPageSize)
	if page-1 > job.MaxRankDepth/pageSize {
		return emptyPage(page, true), nil
	}
	opts.PageSize = pageSize

	resumeVec, err := s.index.RetrieveVector(ctx, vectorindex.CollectionResumes, kernel.StablePointID(accountID.String()))
	if err != nil {
		if errors.Is(err, vectorindex.ErrPointNotFound) {
			logx.Warnf("Account %s has a résumé on file but no embedding point", accountID)
			return emptyPage(page, true), nil
		}
		return nil, job.ErrRegistry.NewWithCause(job.CodeMatchFailed, err).WithDetail("step", "retrieve_resume")
	}

	offset := opts.Offset()
	hits, err := s.index.QueryNearest(ctx, vectorindex.CollectionJobs, resumeVec, offset+pageSize+1)
	if err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeMatchFailed, err).WithDetail("step", "query_jobs")
	}

	result := emptyPage(page, true)
	result.HasMore = len(hits) > offset+pageSize

	if offset >= len(hits) {
		return result, nil
	}
	end := min(offset+pageSize, len(hits))

	for _, hit := range hits[offset:end] {
		m, ok := s.resolve(ctx, hit, profile.Skills)
		if ok {
			result.Jobs = append(result.Jobs, m)
		}
	}
	return result, nil
}

// resolve joins a ranked point with its posting. Points whose posting is
// gone are skipped.
func (s *MatchService) resolve(ctx context.Context, hit vectorindex.ScoredPoint, have []string) (job.MatchResult, bool) {
	jobID := kernel.NewJobID(hit.Payload[job.PayloadJobID])
	if jobID.IsEmpty() {
		return job.MatchResult{}, false
	}

	p, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if !errx.IsType(err, errx.TypeNotFound) {
			logx.Warnf("Failed to resolve matched job %s: %v", jobID, err)
		}
		return job.MatchResult{}, false
	}

	return job.MatchResult{
		JobID:          p.ID,
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		Country:        p.Country,
		Description:    kernel.Truncate(p.Description, job.DescriptionPreviewRunes),
		ApplyLink:      p.ApplyLink,
		EmploymentType: p.EmploymentType,
		PostedAt:       p.PostedAt,
		MatchScore:     MatchScore(hit.Score),
		MissingSkills:  s.missingSkills(ctx, p, have),
	}, true
}

// MatchScore rescales cosine similarity to 0-100 with one decimal
func MatchScore(similarity float64) float64 {
	return math.Round(similarity*1000) / 10
}
