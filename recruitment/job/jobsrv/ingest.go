package jobsrv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Abraxas-365/skillbridge/internal/vectorindex"
	"github.com/Abraxas-365/skillbridge/pkg/errx"
	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/google/uuid"
)

var errNoExtractor = errors.New("no skill extractor configured")

// IngestionDefaults fill the zero fields of a job.IngestionRequest
type IngestionDefaults struct {
	Queries    []string
	MaxJobs    int
	MaxPages   int
	Country    string
	DatePosted string
	LockTTL    time.Duration
}

// IngestionService replaces the job pool with a fresh generation from the feed
type IngestionService struct {
	repo      job.Repository
	index     vectorindex.Index
	feed      job.Feed
	embedder  job.Embedder
	extractor job.SkillExtractor
	lock      job.RunLock
	defaults  IngestionDefaults

	now func() time.Time
}

// NewIngestionService creates the ingestion pipeline. extractor may be nil.
func NewIngestionService(
	repo job.Repository,
	index vectorindex.Index,
	feed job.Feed,
	embedder job.Embedder,
	extractor job.SkillExtractor,
	lock job.RunLock,
	defaults IngestionDefaults,
) *IngestionService {
	if defaults.LockTTL <= 0 {
		defaults.LockTTL = 2 * time.Hour
	}
	return &IngestionService{
		repo:      repo,
		index:     index,
		feed:      feed,
		embedder:  embedder,
		extractor: extractor,
		lock:      lock,
		defaults:  defaults,
		now:       time.Now,
	}
}

func (s *IngestionService) resolve(req job.IngestionRequest) (job.IngestionRequest, error) {
	if len(req.Queries) == 0 {
		req.Queries = s.defaults.Queries
	}
	if req.MaxJobs == 0 {
		req.MaxJobs = s.defaults.MaxJobs
	}
	if req.MaxPages == 0 {
		req.MaxPages = s.defaults.MaxPages
	}
	if req.Country == "" {
		req.Country = s.defaults.Country
	}
	if req.DatePosted == "" {
		req.DatePosted = s.defaults.DatePosted
	}

	queries := make([]string, 0, len(req.Queries))
	for _, q := range req.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	req.Queries = queries

	switch {
	case len(req.Queries) == 0:
		return req, job.ErrInvalidIngestionRequest().WithDetail("queries", "at least one query is required")
	case req.MaxJobs < 1:
		return req, job.ErrInvalidIngestionRequest().WithDetail("max_jobs", req.MaxJobs)
	case req.MaxPages < 1:
		return req, job.ErrInvalidIngestionRequest().WithDetail("max_pages", req.MaxPages)
	}
	return req, nil
}

// Run executes one ingestion run. The previous generation is flushed first,
// then queries are walked in order, page by page, until every page has been
// tried or MaxJobs postings are stored.
func (s *IngestionService) Run(ctx context.Context, req job.IngestionRequest) (*job.IngestionReport, error) {
	req, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	if !s.feed.Configured() {
		return nil, job.ErrFeedNotConfigured()
	}

	release, err := s.lock.Acquire(ctx, s.defaults.LockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	report := &job.IngestionReport{
		RunID:     kernel.NewRunID(uuid.NewString()),
		StartedAt: s.now(),
	}
	logx.Infof("Ingestion %s started: queries=%d max_jobs=%d country=%s",
		report.RunID, len(req.Queries), req.MaxJobs, req.Country)

	if err := s.flush(ctx); err != nil {
		return nil, err
	}

	seen := make(map[kernel.JobID]struct{})

queries:
	for _, query := range req.Queries {
		for page := 1; page <= req.MaxPages; page++ {
			if report.Stored >= req.MaxJobs {
				break queries
			}
			if err := ctx.Err(); err != nil {
				return report, errx.Wrap(err, "ingestion cancelled", errx.TypeInternal)
			}

			postings, err := s.feed.Search(ctx, job.FeedQuery{
				Query:      query,
				Page:       page,
				Country:    req.Country,
				DatePosted: req.DatePosted,
			})
			if err != nil {
				report.SkippedPages++
				logx.Warnf("Ingestion %s: skipping page %d of %q: %v", report.RunID, page, query, err)
				continue
			}

			for i := range postings {
				if report.Stored >= req.MaxJobs {
					break queries
				}

				p := postings[i]
				if p.ID.IsEmpty() {
					continue
				}
				if _, dup := seen[p.ID]; dup {
					report.Duplicates++
					continue
				}
				seen[p.ID] = struct{}{}

				s.ingestPosting(ctx, report, &p)
			}
		}
	}

	report.FinishedAt = s.now()
	logx.Infof("Ingestion %s finished: stored=%d embedded=%d duplicates=%d skipped_pages=%d degraded_skills=%d",
		report.RunID, report.Stored, report.Embedded, report.Duplicates, report.SkippedPages, report.DegradedSkills)

	return report, nil
}

func (s *IngestionService) flush(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return job.IngestionErrRegistry.NewWithCause(job.CodeFlushFailed, err).WithDetail("store", "jobs")
	}
	if err := s.index.Flush(ctx, vectorindex.CollectionJobs); err != nil {
		return job.IngestionErrRegistry.NewWithCause(job.CodeFlushFailed, err).WithDetail("store", "vector_index")
	}
	logx.Info("Flushed job store and jobs vector collection")
	return nil
}

// ingestPosting stores one posting. Failures stay inside the posting.
func (s *IngestionService) ingestPosting(ctx context.Context, report *job.IngestionReport, p *job.Posting) {
	skills := s.extractSkills(ctx, p)
	if skills.Degraded {
		report.DegradedSkills++
		logx.Warnf("Skill extraction failed for job %s: %v", p.ID, skills.Reason)
	}

	p.Skills = skills.Value
	p.RunID = report.RunID
	p.IngestedAt = s.now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		logx.Errorf("Failed to store job %s: %v", p.ID, err)
		return
	}
	report.Stored++

	if !p.Embeddable() {
		return
	}

	vec, err := s.embedder.Embed(ctx, p.Description)
	if err != nil {
		logx.Errorf("Failed to embed job %s: %v", p.ID, err)
		return
	}
	if err := s.index.Upsert(ctx, vectorindex.CollectionJobs, p.PointID(), vec, p.VectorPayload()); err != nil {
		logx.Errorf("Failed to index job %s: %v", p.ID, err)
		return
	}
	report.Embedded++
}

// extractSkills never fails the posting: a failed extraction degrades to an
// empty skill set.
func (s *IngestionService) extractSkills(ctx context.Context, p *job.Posting) kernel.Outcome[[]string] {
	if p.Description == "" {
		return kernel.Ok([]string{})
	}
	if s.extractor == nil {
		return kernel.DegradeWith([]string{}, errNoExtractor)
	}

	skills, err := s.extractor.Extract(ctx, p.Description)
	if err != nil {
		return kernel.DegradeWith([]string{}, err)
	}
	if skills == nil {
		skills = []string{}
	}
	return kernel.Ok(skills)
}
