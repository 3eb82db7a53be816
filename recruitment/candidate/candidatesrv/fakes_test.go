package candidatesrv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate"
)

type memRepo struct {
	mu       sync.Mutex
	profiles map[kernel.AccountID]candidate.Profile
	writes   int
	failNext error
}

func newMemRepo() *memRepo {
	return &memRepo{profiles: make(map[kernel.AccountID]candidate.Profile)}
}

func (r *memRepo) take() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *memRepo) Sync(_ context.Context, p *candidate.Profile) (*candidate.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.take(); err != nil {
		return nil, err
	}
	r.writes++

	stored, ok := r.profiles[p.AccountID]
	if !ok {
		stored = *p
	} else {
		stored.Email = p.Email
		stored.FirstName = p.FirstName
		stored.LastName = p.LastName
		stored.ProfileImageURL = p.ProfileImageURL
		stored.UpdatedAt = p.UpdatedAt
	}
	r.profiles[p.AccountID] = stored
	out := stored
	return &out, nil
}

func (r *memRepo) GetByAccountID(_ context.Context, id kernel.AccountID) (*candidate.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound()
	}
	p.Skills = append([]string{}, p.Skills...)
	return &p, nil
}

func (r *memRepo) put(p *candidate.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.take(); err != nil {
		return err
	}
	if _, ok := r.profiles[p.AccountID]; !ok {
		return candidate.ErrCandidateNotFound()
	}
	r.writes++
	r.profiles[p.AccountID] = *p
	return nil
}

func (r *memRepo) Update(_ context.Context, p *candidate.Profile) error { return r.put(p) }

func (r *memRepo) UpdateResume(_ context.Context, p *candidate.Profile) error { return r.put(p) }

func (r *memRepo) UpdateSkills(_ context.Context, id kernel.AccountID, skills []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return candidate.ErrCandidateNotFound()
	}
	r.writes++
	p.Skills = skills
	r.profiles[id] = p
	return nil
}

type memFS struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	failPut bool
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) ReadFile(_ context.Context, p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("%s: not found", p)
	}
	return data, nil
}

func (m *memFS) ReadFileStream(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (m *memFS) WriteFile(_ context.Context, p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("bucket unavailable")
	}
	m.files[p] = data
	return nil
}

func (m *memFS) WriteFileStream(context.Context, string, io.Reader) error {
	return errors.New("not implemented")
}

func (m *memFS) DeleteFile(_ context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, p)
	m.deleted = append(m.deleted, p)
	return nil
}

func (m *memFS) Join(elem ...string) string { return path.Join(elem...) }
func (m *memFS) URL(p string) string        { return "https://files.test/" + p }

func (m *memFS) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for k := range m.files {
		out = append(out, k)
	}
	return out
}

type stubText struct {
	text string
	err  error
}

func (s stubText) ExtractText([]byte) (string, error) { return s.text, s.err }

type stubExtractor struct {
	skills []string
	err    error
}

func (x stubExtractor) Extract(context.Context, string) ([]string, error) { return x.skills, x.err }

type stubEmbedder struct {
	err   error
	texts []string
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.texts = append(e.texts, text)
	if e.err != nil {
		return nil, e.err
	}
	v := make([]float32, kernel.EmbeddingDim)
	v[len(text)%kernel.EmbeddingDim] = 1
	return v, nil
}
