package vectorindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

type memPoint struct {
	id      kernel.PointID
	vector  []float32
	payload map[string]string
}

type memCollection struct {
	points []memPoint
	byID   map[kernel.PointID]int
}

// MemoryIndex is a brute-force cosine index. Ties keep insertion order.
type MemoryIndex struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

var _ Index = (*MemoryIndex)(nil)

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{collections: make(map[string]*memCollection)}
}

func (m *MemoryIndex) EnsureCollections(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range Collections {
		if _, ok := m.collections[name]; !ok {
			m.collections[name] = newMemCollection()
		}
	}
	return nil
}

func (m *MemoryIndex) Upsert(_ context.Context, collection string, id kernel.PointID, vector []float32, payload map[string]string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if err := checkVector(vector); err != nil {
		return err
	}

	p := memPoint{
		id:      id,
		vector:  append([]float32(nil), vector...),
		payload: copyPayload(payload),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)
	if i, ok := c.byID[id]; ok {
		c.points[i] = p
		return nil
	}
	c.byID[id] = len(c.points)
	c.points = append(c.points, p)
	return nil
}

func (m *MemoryIndex) RetrieveVector(_ context.Context, collection string, id kernel.PointID) ([]float32, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return nil, ErrPointNotFound
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrPointNotFound
	}
	return append([]float32(nil), c.points[i].vector...), nil
}

func (m *MemoryIndex) QueryNearest(_ context.Context, collection string, vector []float32, limit int) ([]ScoredPoint, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	if err := checkVector(vector); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidQueryLimit
	}

	m.mu.RLock()
	c, ok := m.collections[collection]
	if !ok {
		m.mu.RUnlock()
		return []ScoredPoint{}, nil
	}
	hits := make([]ScoredPoint, 0, len(c.points))
	for _, p := range c.points {
		hits = append(hits, ScoredPoint{
			ID:      p.id,
			Score:   cosine(vector, p.vector),
			Payload: copyPayload(p.payload),
		})
	}
	m.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *MemoryIndex) Flush(_ context.Context, collection string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.collections[collection] = newMemCollection()
	return nil
}

func (m *MemoryIndex) Ping(_ context.Context) error { return nil }

// Count returns the number of points in a collection
func (m *MemoryIndex) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if c, ok := m.collections[collection]; ok {
		return len(c.points)
	}
	return 0
}

func (m *MemoryIndex) collection(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = newMemCollection()
		m.collections[name] = c
	}
	return c
}

func newMemCollection() *memCollection {
	return &memCollection{byID: make(map[kernel.PointID]int)}
}

func copyPayload(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
