package vectorindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PgVectorIndex keeps each collection in its own table (vec_<collection>).
// Queries are exact scans ordered by cosine distance, then point id. There is
// no HNSW index: an HNSW scan returns at most hnsw.ef_search rows, which would
// cut the ranking short for deep pages, and the job pool is small.
type PgVectorIndex struct {
	db *sqlx.DB
}

var _ Index = (*PgVectorIndex)(nil)

func NewPgVectorIndex(db *sqlx.DB) *PgVectorIndex {
	return &PgVectorIndex{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type pointRow struct {
	ID       int64           `db:"id"`
	Distance float64         `db:"distance"`
	Payload  []byte          `db:"payload"`
	Vector   pgvector.Vector `db:"embedding"`
}

func table(collection string) string {
	return pq.QuoteIdentifier("vec_" + collection)
}

// ============================================================================
// Index Implementation
// ============================================================================

func (ix *PgVectorIndex) EnsureCollections(ctx context.Context) error {
	if _, err := ix.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	for _, c := range Collections {
		if err := ix.create(ctx, ix.db, c); err != nil {
			return err
		}
	}
	return nil
}

func (ix *PgVectorIndex) create(ctx context.Context, exec sqlx.ExecerContext, collection string) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id        BIGINT PRIMARY KEY,
			embedding vector(%[2]d) NOT NULL,
			payload   JSONB NOT NULL DEFAULT '{}'::jsonb
		)`, table(collection), Dim)
	if _, err := exec.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create collection %s: %w", collection, err)
	}
	return nil
}

func (ix *PgVectorIndex) Upsert(ctx context.Context, collection string, id kernel.PointID, vector []float32, payload map[string]string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if err := checkVector(vector); err != nil {
		return err
	}

	body, err := encodePayload(payload)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, embedding, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			payload   = EXCLUDED.payload`, table(collection))

	if _, err := ix.db.ExecContext(ctx, query, id.Int64(), pgvector.NewVector(vector), body); err != nil {
		return fmt.Errorf("upsert point %d into %s: %w", id, collection, err)
	}
	return nil
}

func (ix *PgVectorIndex) RetrieveVector(ctx context.Context, collection string, id kernel.PointID) ([]float32, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	var row pointRow
	query := fmt.Sprintf(`SELECT id, embedding, payload, 0::float8 AS distance FROM %s WHERE id = $1`, table(collection))
	if err := ix.db.GetContext(ctx, &row, query, id.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, ErrPointNotFound
		}
		return nil, fmt.Errorf("retrieve point %d from %s: %w", id, collection, err)
	}
	return row.Vector.Slice(), nil
}

func (ix *PgVectorIndex) QueryNearest(ctx context.Context, collection string, vector []float32, limit int) ([]ScoredPoint, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	if err := checkVector(vector); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidQueryLimit
	}

	query := fmt.Sprintf(`
		SELECT id, embedding, payload, embedding <=> $1 AS distance
		FROM %s
		ORDER BY embedding <=> $1, id
		LIMIT $2`, table(collection))

	var rows []pointRow
	if err := ix.db.SelectContext(ctx, &rows, query, pgvector.NewVector(vector), limit); err != nil {
		if isUndefinedTable(err) {
			return []ScoredPoint{}, nil
		}
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	hits := make([]ScoredPoint, 0, len(rows))
	for _, r := range rows {
		payload, err := decodePayload(r.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode payload of point %d: %w", r.ID, err)
		}
		hits = append(hits, ScoredPoint{
			ID:      kernel.PointID(r.ID),
			Score:   1 - r.Distance,
			Payload: payload,
		})
	}
	return hits, nil
}

// Flush drops and recreates the collection table in one transaction
func (ix *PgVectorIndex) Flush(ctx context.Context, collection string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	tx, err := ix.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin flush of %s: %w", collection, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table(collection))); err != nil {
		return fmt.Errorf("drop collection %s: %w", collection, err)
	}
	if err := ix.create(ctx, tx, collection); err != nil {
		return err
	}
	return tx.Commit()
}

func (ix *PgVectorIndex) Ping(ctx context.Context) error {
	return ix.db.PingContext(ctx)
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}
