package jobsrv

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
)

type memRepo struct {
	mu       sync.Mutex
	postings map[kernel.JobID]*job.Posting
	failIDs  map[kernel.JobID]bool
}

func newMemRepo() *memRepo {
	return &memRepo{postings: map[kernel.JobID]*job.Posting{}, failIDs: map[kernel.JobID]bool{}}
}

func (r *memRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postings = map[kernel.JobID]*job.Posting{}
	return nil
}

func (r *memRepo) Upsert(_ context.Context, p *job.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIDs[p.ID] {
		return errors.New("disk full")
	}
	cp := *p
	r.postings[p.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id kernel.JobID) (*job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.postings[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.postings)), nil
}

func (r *memRepo) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.postings))
	for id := range r.postings {
		out = append(out, id.String())
	}
	sort.Strings(out)
	return out
}

// fakeFeed serves pages keyed by query then page number
type fakeFeed struct {
	configured bool
	pages      map[string]map[int][]job.Posting
	failPages  map[string]map[int]error
	calls      []job.FeedQuery
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		configured: true,
		pages:      map[string]map[int][]job.Posting{},
		failPages:  map[string]map[int]error{},
	}
}

func (f *fakeFeed) add(query string, page int, postings ...job.Posting) {
	if f.pages[query] == nil {
		f.pages[query] = map[int][]job.Posting{}
	}
	f.pages[query][page] = append(f.pages[query][page], postings...)
}

func (f *fakeFeed) fail(query string, page int, err error) {
	if f.failPages[query] == nil {
		f.failPages[query] = map[int]error{}
	}
	f.failPages[query][page] = err
}

func (f *fakeFeed) Configured() bool { return f.configured }

func (f *fakeFeed) Search(_ context.Context, q job.FeedQuery) ([]job.Posting, error) {
	f.calls = append(f.calls, q)
	if err := f.failPages[q.Query][q.Page]; err != nil {
		return nil, err
	}
	return f.pages[q.Query][q.Page], nil
}

func postings(prefix string, n int) []job.Posting {
	out := make([]job.Posting, n)
	for i := range out {
		out[i] = job.Posting{
			ID:          kernel.NewJobID(fmt.Sprintf("%s-%02d", prefix, i+1)),
			Title:       fmt.Sprintf("%s engineer %d", prefix, i+1),
			Company:     "Acme",
			Description: fmt.Sprintf("%s role number %d using Go", prefix, i+1),
		}
	}
	return out
}

// hashEmbedder returns a deterministic vector per text, or the same vector
// for every text when flat is set
type hashEmbedder struct {
	flat  bool
	fail  map[string]bool
	calls int
}

func (e *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.fail[text] {
		return nil, errors.New("embedding backend unavailable")
	}
	v := make([]float32, kernel.EmbeddingDim)
	if e.flat {
		v[0] = 1
		return v, nil
	}
	sum := sha256.Sum256([]byte(text))
	for i := range v {
		v[i] = float32(sum[i%len(sum)]) + 1
	}
	return v, nil
}

type stubExtractor struct {
	skills map[string][]string
	err    error
	calls  int
}

func (x *stubExtractor) Extract(_ context.Context, text string) ([]string, error) {
	x.calls++
	if x.err != nil {
		return nil, x.err
	}
	return x.skills[text], nil
}

type stubProfiles struct {
	profiles map[kernel.AccountID]*job.MatchProfile
}

func (s *stubProfiles) MatchProfile(_ context.Context, id kernel.AccountID) (*job.MatchProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return p, nil
}
