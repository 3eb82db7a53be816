// Package vectorindex stores embedding points in named collections and
// answers nearest-neighbour queries over them.
//
// Queries always start at rank 0. Callers that need deeper pages fetch
// offset+limit results and slice them, since native offsets are not
// reliable on every backend.
package vectorindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

const (
	CollectionResumes = "resumes"
	CollectionJobs    = "jobs"

	// Dim is the vector width of both collections
	Dim = kernel.EmbeddingDim
)

// Collections lists every collection managed by EnsureCollections
var Collections = []string{CollectionResumes, CollectionJobs}

var (
	ErrPointNotFound     = errors.New("vectorindex: point not found")
	ErrDimensionMismatch = errors.New("vectorindex: vector dimension mismatch")
	ErrUnknownCollection = errors.New("vectorindex: unknown collection")
	ErrInvalidQueryLimit = errors.New("vectorindex: limit must be positive")
)

// ScoredPoint is one ranked query hit. Score is cosine similarity.
type ScoredPoint struct {
	ID      kernel.PointID
	Score   float64
	Payload map[string]string
}

// Index is implemented by every backend
type Index interface {
	// EnsureCollections creates the resumes and jobs collections if absent
	EnsureCollections(ctx context.Context) error

	// Upsert writes a point, replacing any point with the same id
	Upsert(ctx context.Context, collection string, id kernel.PointID, vector []float32, payload map[string]string) error

	// RetrieveVector returns the stored vector or ErrPointNotFound
	RetrieveVector(ctx context.Context, collection string, id kernel.PointID) ([]float32, error)

	// QueryNearest returns up to limit points ordered by descending similarity
	QueryNearest(ctx context.Context, collection string, vector []float32, limit int) ([]ScoredPoint, error)

	// Flush destroys and recreates a collection
	Flush(ctx context.Context, collection string) error

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}

func checkCollection(name string) error {
	for _, c := range Collections {
		if c == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

func checkVector(v []float32) error {
	if len(v) != Dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), Dim)
	}
	return nil
}
