package jobsrv

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/Abraxas-365/skillbridge/internal/vectorindex"
	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
)

const candidate = kernel.AccountID("user_abc")

type matchFixture struct {
	repo      *memRepo
	index     *vectorindex.MemoryIndex
	profiles  *stubProfiles
	extractor *stubExtractor
	svc       *MatchService
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	f := &matchFixture{
		repo:      newMemRepo(),
		index:     vectorindex.NewMemoryIndex(),
		profiles:  &stubProfiles{profiles: map[kernel.AccountID]*job.MatchProfile{}},
		extractor: &stubExtractor{skills: map[string][]string{}},
	}
	if err := f.index.EnsureCollections(context.Background()); err != nil {
		t.Fatal(err)
	}
	f.svc = NewMatchService(f.repo, f.index, f.profiles, f.extractor)
	return f
}

func flat() []float32 {
	v := make([]float32, kernel.EmbeddingDim)
	v[0] = 1
	return v
}

// withResume registers a candidate whose embedding is the flat vector
func (f *matchFixture) withResume(t *testing.T, skills ...string) {
	t.Helper()
	f.profiles.profiles[candidate] = &job.MatchProfile{AccountID: candidate, HasResume: true, Skills: skills}
	err := f.index.Upsert(context.Background(), vectorindex.CollectionResumes,
		kernel.StablePointID(candidate.String()), flat(), map[string]string{job.PayloadAccountID: candidate.String()})
	if err != nil {
		t.Fatal(err)
	}
}

// addJob stores a posting and indexes it with vec
func (f *matchFixture) addJob(t *testing.T, p job.Posting, vec []float32) {
	t.Helper()
	ctx := context.Background()
	if err := f.repo.Upsert(ctx, &p); err != nil {
		t.Fatal(err)
	}
	if err := f.index.Upsert(ctx, vectorindex.CollectionJobs, p.PointID(), vec, p.VectorPayload()); err != nil {
		t.Fatal(err)
	}
}

func TestGetMatchesWithoutResume(t *testing.T) {
	f := newMatchFixture(t)
	f.profiles.profiles[candidate] = &job.MatchProfile{AccountID: candidate}

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	want := &job.MatchPage{HasResume: false, Jobs: []job.MatchResult{}, Page: 1, HasMore: false}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GetMatches = %+v, want %+v", got, want)
	}
}

func TestGetMatchesUnknownCandidate(t *testing.T) {
	f := newMatchFixture(t)

	got, err := f.svc.GetMatches(context.Background(), "user_nobody", 1, 10)
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if got.HasResume || len(got.Jobs) != 0 {
		t.Fatalf("GetMatches = %+v", got)
	}
}

func TestGetMatchesMissingResumePoint(t *testing.T) {
	f := newMatchFixture(t)
	f.profiles.profiles[candidate] = &job.MatchProfile{AccountID: candidate, HasResume: true}
	f.addJob(t, postings("j", 1)[0], flat())

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if !got.HasResume || len(got.Jobs) != 0 || got.HasMore {
		t.Fatalf("GetMatches = %+v", got)
	}
}

func TestGetMatchesPagination(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t)
	for _, p := range postings("j", 25) {
		f.addJob(t, p, flat())
	}

	cases := []struct {
		page, limit int
		wantFirst   string
		wantLen     int
		wantMore    bool
	}{
		{1, 10, "j-01", 10, true},
		{2, 10, "j-11", 10, true},
		{3, 10, "j-21", 5, false},
		{4, 10, "", 0, false},
		{5, 5, "j-21", 5, false},
		{1, 25, "j-01", 25, false},
		{1, 24, "j-01", 24, true},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("page=%d,limit=%d", tc.page, tc.limit), func(t *testing.T) {
			got, err := f.svc.GetMatches(context.Background(), candidate, tc.page, tc.limit)
			if err != nil {
				t.Fatalf("GetMatches: %v", err)
			}
			if len(got.Jobs) != tc.wantLen || got.HasMore != tc.wantMore || got.Page != tc.page {
				t.Fatalf("len=%d has_more=%v page=%d", len(got.Jobs), got.HasMore, got.Page)
			}
			if tc.wantLen > 0 && got.Jobs[0].JobID.String() != tc.wantFirst {
				t.Fatalf("first = %s, want %s", got.Jobs[0].JobID, tc.wantFirst)
			}
		})
	}
}

func TestGetMatchesThirdPageOfTwentyFive(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t)
	for _, p := range postings("j", 25) {
		f.addJob(t, p, flat())
	}

	got, err := f.svc.GetMatches(context.Background(), candidate, 3, 10)
	if err != nil {
		t.Fatal(err)
	}

	ids := make([]string, 0, len(got.Jobs))
	for _, m := range got.Jobs {
		ids = append(ids, m.JobID.String())
	}
	want := []string{"j-21", "j-22", "j-23", "j-24", "j-25"}
	if !reflect.DeepEqual(ids, want) || got.HasMore {
		t.Fatalf("ids = %v has_more = %v", ids, got.HasMore)
	}
}

func TestGetMatchesOrderAndScore(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t)

	near := make([]float32, kernel.EmbeddingDim)
	near[0], near[1] = 0.9, 0.1
	far := make([]float32, kernel.EmbeddingDim)
	far[0], far[1] = 0.1, 0.9

	ps := postings("j", 2)
	f.addJob(t, ps[0], far)
	f.addJob(t, ps[1], near)

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got.Jobs[0].JobID != ps[1].ID {
		t.Fatalf("best match = %s", got.Jobs[0].JobID)
	}
	if got.Jobs[0].MatchScore <= got.Jobs[1].MatchScore {
		t.Fatal("results must be ordered by descending score")
	}
	if got.Jobs[0].MatchScore > 100 || got.Jobs[1].MatchScore < 0 {
		t.Fatalf("scores out of range: %v", got.Jobs)
	}
}

func TestGetMatchesSkipsStalePoints(t *testing.T) {
	ctx := context.Background()
	f := newMatchFixture(t)
	f.withResume(t)

	ps := postings("j", 3)
	for _, p := range ps {
		f.addJob(t, p, flat())
	}
	// posting vanished from the store but its point is still indexed
	delete(f.repo.postings, ps[1].ID)
	// point without a job_id payload
	_ = f.index.Upsert(ctx, vectorindex.CollectionJobs, 42, flat(), map[string]string{})

	got, err := f.svc.GetMatches(ctx, candidate, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(got.Jobs))
	}
	for _, m := range got.Jobs {
		if m.JobID == ps[1].ID {
			t.Fatal("stale job returned")
		}
	}
}

func TestGetMatchesTruncatesDescription(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t)

	long := make([]rune, 500)
	for i := range long {
		long[i] = 'é'
	}
	p := job.Posting{ID: "long", Description: string(long), Skills: []string{}}
	f.addJob(t, p, flat())

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if n := len([]rune(got.Jobs[0].Description)); n != job.DescriptionPreviewRunes {
		t.Fatalf("description has %d runes", n)
	}
}

func TestGetMatchesSkillGap(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t, "Go", "SQL")

	p := job.Posting{
		ID:          "gap",
		Description: "platform role",
		Skills:      []string{"Terraform", "Go", "AWS", "Kubernetes", "SQL", "Docker", "Kafka", "Redis", "gRPC", "Linux"},
	}
	f.addJob(t, p, flat())

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	gap := got.Jobs[0].MissingSkills
	want := []string{"AWS", "Docker", "Kafka", "Kubernetes", "Linux", "Redis", "Terraform"}
	if !reflect.DeepEqual(gap, want) {
		t.Fatalf("missing = %v, want %v", gap, want)
	}
	if f.extractor.calls != 0 {
		t.Fatal("precomputed skills must not trigger extraction")
	}
}

func TestGetMatchesNilSkillsEmptyDescription(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t, "Go")

	// legacy record: no skills and no description, but still indexed
	f.addJob(t, job.Posting{ID: "legacy", Title: "Legacy"}, flat())

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got.Jobs[0].MissingSkills == nil || len(got.Jobs[0].MissingSkills) != 0 {
		t.Fatalf("missing = %#v, want []", got.Jobs[0].MissingSkills)
	}
	if f.extractor.calls != 0 {
		t.Fatal("extractor called for an empty description")
	}
}

func TestGetMatchesFallbackExtraction(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t, "Go")

	p := job.Posting{ID: "legacy", Description: "Go and Rust"}
	f.extractor.skills[p.Description] = []string{"Rust", "Go"}
	f.addJob(t, p, flat())

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Jobs[0].MissingSkills, []string{"Rust"}) {
		t.Fatalf("missing = %v", got.Jobs[0].MissingSkills)
	}
}

func TestGetMatchesFallbackExtractionFailure(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t)
	f.extractor.err = errors.New("not ready")
	f.addJob(t, job.Posting{ID: "legacy", Description: "Go and Rust"}, flat())

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, 10)
	if err != nil {
		t.Fatalf("extraction failure must not fail the page: %v", err)
	}
	if len(got.Jobs) != 1 || len(got.Jobs[0].MissingSkills) != 0 {
		t.Fatalf("got %+v", got.Jobs)
	}
}

func TestGetMatchesInvalidPagination(t *testing.T) {
	f := newMatchFixture(t)
	for _, tc := range [][2]int{{0, 10}, {1, 0}, {-1, -1}} {
		if _, err := f.svc.GetMatches(context.Background(), candidate, tc[0], tc[1]); !errors.Is(err, job.ErrInvalidPagination()) {
			t.Errorf("GetMatches(%d, %d) err = %v", tc[0], tc[1], err)
		}
	}
}

func TestGetMatchesHugePage(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t)
	for _, p := range postings("j", 5) {
		f.addJob(t, p, flat())
	}

	cases := [][2]int{
		{6148914691236517206, 3},
		{math.MaxInt/50 + 1, 50},
		{math.MaxInt, 1},
		{job.MaxPage, 1},
	}
	for _, tc := range cases {
		got, err := f.svc.GetMatches(context.Background(), candidate, tc[0], tc[1])
		if err != nil {
			t.Fatalf("GetMatches(%d, %d): %v", tc[0], tc[1], err)
		}
		if !got.HasResume || len(got.Jobs) != 0 || got.HasMore || got.Page != tc[0] {
			t.Fatalf("GetMatches(%d, %d) = %+v", tc[0], tc[1], got)
		}
	}
}

func TestGetMatchesOversizedLimit(t *testing.T) {
	f := newMatchFixture(t)
	f.withResume(t)
	for _, p := range postings("j", 5) {
		f.addJob(t, p, flat())
	}

	got, err := f.svc.GetMatches(context.Background(), candidate, 1, math.MaxInt)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Jobs) != 5 || got.HasMore {
		t.Fatalf("len=%d has_more=%v", len(got.Jobs), got.HasMore)
	}
}

func TestMatchScore(t *testing.T) {
	cases := map[float64]float64{
		1:       100,
		0:       0,
		0.87654: 87.7,
		0.12345: 12.3,
	}
	for in, want := range cases {
		if got := MatchScore(in); got != want {
			t.Errorf("MatchScore(%v) = %v, want %v", in, got, want)
		}
	}
}
