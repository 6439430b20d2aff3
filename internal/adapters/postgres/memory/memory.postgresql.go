// Package memory is the Postgres-backed implementation of the Memory
// aggregate's persistence contract. The embedding vector column is
// written through pgvector's text literal format and is never read
// back through this repository.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/memory"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpostgres"
)

const entityType = "Memory"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgreSQLRepository is the Postgres-specific implementation of
// memory.Repository.
type PostgreSQLRepository struct {
	Pool *pgxpool.Pool
}

// NewPostgreSQLRepository returns a memory.Repository backed by pool.
func NewPostgreSQLRepository(pool *pgxpool.Pool) memory.Repository {
	return &PostgreSQLRepository{Pool: pool}
}

const selectColumns = `id, space_id, original_content_ref, content_type, metadata, processing_status, created_at, updated_at, created_by_id, updated_by_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemory(row rowScanner) (*mmodel.Memory, error) {
	m := &mmodel.Memory{}

	var (
		status               string
		metadataRaw          []byte
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&m.ID, &m.SpaceID, &m.OriginalContentRef, &m.ContentType, &metadataRaw, &status,
		&createdAt, &updatedAt, &m.CreatedByID, &m.UpdatedByID); err != nil {
		return nil, err
	}

	m.ProcessingStatus = mmodel.ParseProcessingStatus(status)
	m.CreatedAt = mmodel.NewMillisTime(createdAt)
	m.UpdatedAt = mmodel.NewMillisTime(updatedAt)

	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &m.Metadata); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Create inserts a new memory row. Memories always start PENDING; the
// embedding vector itself is written later via UpdateVector once the
// async worker computes it.
func (r *PostgreSQLRepository) Create(ctx context.Context, m *mmodel.Memory) (*mmodel.Memory, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.create_memory")
	defer span.End()

	metadata, err := json.Marshal(m.Metadata)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal metadata", Err: err}
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO memory (id, space_id, original_content_ref, content_type, metadata, processing_status, created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10)`,
		m.ID, m.SpaceID, m.OriginalContentRef, m.ContentType, metadata, string(m.ProcessingStatus),
		m.CreatedAt.Time(), m.UpdatedAt.Time(), m.CreatedByID, m.UpdatedByID)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return m, nil
}

// Find retrieves a memory by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id midentifier.ID) (*mmodel.Memory, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM memory WHERE id = $1`, id)

	m, err := scanMemory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return m, nil
}

// FindAll lists memories within one space, optionally filtered by
// processing status.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, filter mmodel.MemoryListFilter, limit, offset int) ([]*mmodel.Memory, error) {
	q := psql.Select(selectColumns).From("memory").
		Where(squirrel.Eq{"space_id": filter.SpaceID}).
		OrderBy("created_at ASC").Limit(uint64(limit)).Offset(uint64(offset))

	if filter.Status != nil && *filter.Status != mmodel.ProcessingUnspecified {
		q = q.Where(squirrel.Eq{"processing_status": string(*filter.Status)})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, constant.InternalError{Message: "failed to build query", Err: err}
	}

	rows, err := r.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}
	defer rows.Close()

	var memories []*mmodel.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, constant.InternalError{Message: "failed to scan memory row", Err: err}
		}

		memories = append(memories, m)
	}

	return memories, rows.Err()
}

// UpdateProcessingStatus transitions a memory's processing status. The
// PENDING -> PROCESSING -> COMPLETED|FAILED legality check is the
// command service's responsibility (mmodel.ProcessingStatus.CanTransitionTo);
// this method performs the unconditional write.
func (r *PostgreSQLRepository) UpdateProcessingStatus(ctx context.Context, id midentifier.ID, status mmodel.ProcessingStatus) (*mmodel.Memory, error) {
	tag, err := r.Pool.Exec(ctx, `UPDATE memory SET processing_status = $1, updated_at = now() WHERE id = $2`, string(status), id)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return nil, constant.EntityNotFoundError{EntityType: entityType}
	}

	return r.Find(ctx, id)
}

// UpdateVector writes the embedding vector as a pgvector literal. pgx
// has no native vector codec, so the value travels in its textual
// literal form and is cast server-side.
func (r *PostgreSQLRepository) UpdateVector(ctx context.Context, id midentifier.ID, vector []float32) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE memory SET embedding = $1::vector WHERE id = $2`, vectorLiteral(vector), id)
	if err != nil {
		return mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return constant.EntityNotFoundError{EntityType: entityType}
	}

	return nil
}

func vectorLiteral(vector []float32) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}

	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}

// Delete removes a memory row.
func (r *PostgreSQLRepository) Delete(ctx context.Context, id midentifier.ID) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM memory WHERE id = $1`, id)
	if err != nil {
		return mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return constant.EntityNotFoundError{EntityType: entityType}
	}

	return nil
}
