package vectorindex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/qdrant/go-client/qdrant"
)

// QdrantIndex talks to Qdrant over gRPC. Collections use cosine distance.
type QdrantIndex struct {
	client *qdrant.Client
}

var _ Index = (*QdrantIndex)(nil)

// NewQdrantIndex connects to the gRPC endpoint in rawURL
// (e.g. http://localhost:6334 or https://xyz.cloud.qdrant.io:6334).
func NewQdrantIndex(rawURL, apiKey string) (*QdrantIndex, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("qdrant url is not configured")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse qdrant url: %w", err)
	}

	port := 6334
	if p := u.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("parse qdrant port: %w", err)
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   u.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("connect qdrant: %w", err)
	}
	return &QdrantIndex{client: client}, nil
}

func (ix *QdrantIndex) Close() error {
	return ix.client.Close()
}

func (ix *QdrantIndex) EnsureCollections(ctx context.Context) error {
	for _, c := range Collections {
		exists, err := ix.client.CollectionExists(ctx, c)
		if err != nil {
			return fmt.Errorf("check collection %s: %w", c, err)
		}
		if exists {
			continue
		}
		if err := ix.create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (ix *QdrantIndex) create(ctx context.Context, collection string) error {
	err := ix.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(Dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", collection, err)
	}
	return nil
}

func (ix *QdrantIndex) Upsert(ctx context.Context, collection string, id kernel.PointID, vector []float32, payload map[string]string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if err := checkVector(vector); err != nil {
		return err
	}

	values := make(map[string]any, len(payload))
	for k, v := range payload {
		values[k] = v
	}

	wait := true
	_, err := ix.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           &wait,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewIDNum(id.Uint64()),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(values),
		}},
	})
	if err != nil {
		return fmt.Errorf("upsert point %d into %s: %w", id, collection, err)
	}
	return nil
}

func (ix *QdrantIndex) RetrieveVector(ctx context.Context, collection string, id kernel.PointID) ([]float32, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	points, err := ix.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: collection,
		Ids:            []*qdrant.PointId{qdrant.NewIDNum(id.Uint64())},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve point %d from %s: %w", id, collection, err)
	}
	if len(points) == 0 {
		return nil, ErrPointNotFound
	}

	vec := points[0].GetVectors().GetVector().GetData()
	if len(vec) == 0 {
		return nil, ErrPointNotFound
	}
	return vec, nil
}

func (ix *QdrantIndex) QueryNearest(ctx context.Context, collection string, vector []float32, limit int) ([]ScoredPoint, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	if err := checkVector(vector); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidQueryLimit
	}

	n := uint64(limit)
	res, err := ix.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &n,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	hits := make([]ScoredPoint, 0, len(res))
	for _, p := range res {
		payload := make(map[string]string, len(p.GetPayload()))
		for k, v := range p.GetPayload() {
			payload[k] = v.GetStringValue()
		}
		hits = append(hits, ScoredPoint{
			ID:      kernel.PointID(p.GetId().GetNum()),
			Score:   float64(p.GetScore()),
			Payload: payload,
		})
	}
	return hits, nil
}

// Flush deletes and recreates the collection
func (ix *QdrantIndex) Flush(ctx context.Context, collection string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	exists, err := ix.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", collection, err)
	}
	if exists {
		if err := ix.client.DeleteCollection(ctx, collection); err != nil {
			return fmt.Errorf("delete collection %s: %w", collection, err)
		}
	}
	return ix.create(ctx, collection)
}

func (ix *QdrantIndex) Ping(ctx context.Context) error {
	_, err := ix.client.HealthCheck(ctx)
	return err
}
