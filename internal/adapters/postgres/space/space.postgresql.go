// Package space is the Postgres-backed implementation of the Space
// aggregate's persistence contract.
package space

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/space"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpostgres"
)

const entityType = "Space"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgreSQLRepository is the Postgres-specific implementation of
// space.Repository.
type PostgreSQLRepository struct {
	Pool *pgxpool.Pool
}

// NewPostgreSQLRepository returns a space.Repository backed by pool.
func NewPostgreSQLRepository(pool *pgxpool.Pool) space.Repository {
	return &PostgreSQLRepository{Pool: pool}
}

const selectColumns = `id, name, owner_id, embedder_id, labels, public_read, created_at, updated_at, created_by_id, updated_by_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpace(row rowScanner) (*mmodel.Space, error) {
	s := &mmodel.Space{}

	var (
		labelsRaw            []byte
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&s.ID, &s.Name, &s.OwnerID, &s.EmbedderID, &labelsRaw, &s.PublicRead,
		&createdAt, &updatedAt, &s.CreatedByID, &s.UpdatedByID); err != nil {
		return nil, err
	}

	s.CreatedAt = mmodel.NewMillisTime(createdAt)
	s.UpdatedAt = mmodel.NewMillisTime(updatedAt)

	if len(labelsRaw) > 0 {
		if err := json.Unmarshal(labelsRaw, &s.Labels); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Create inserts a new space row.
func (r *PostgreSQLRepository) Create(ctx context.Context, s *mmodel.Space) (*mmodel.Space, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.create_space")
	defer span.End()

	labels, err := json.Marshal(s.Labels)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal labels", Err: err}
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO space (id, name, owner_id, embedder_id, labels, public_read, created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.OwnerID, s.EmbedderID, labels, s.PublicRead,
		s.CreatedAt.Time(), s.UpdatedAt.Time(), s.CreatedByID, s.UpdatedByID)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return s, nil
}

// Find retrieves a space by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id midentifier.ID) (*mmodel.Space, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM space WHERE id = $1`, id)

	s, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return s, nil
}

// FindByOwnerAndName looks up a space by (ownerID, name), used to
// enforce the per-owner name-uniqueness invariant.
func (r *PostgreSQLRepository) FindByOwnerAndName(ctx context.Context, ownerID midentifier.ID, name string) (*mmodel.Space, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM space WHERE owner_id = $1 AND name = $2`, ownerID, name)

	s, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return s, nil
}

// FindAll lists spaces matching filter, sorted and paginated per the
// caller's request.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, filter mmodel.SpaceListFilter, sortBy mmodel.SortField, sortOrder mmodel.SortOrder, limit, offset int) ([]*mmodel.Space, error) {
	column := map[mmodel.SortField]string{
		mmodel.SortByName:        "name",
		mmodel.SortByUpdatedTime: "updated_at",
		mmodel.SortByCreatedTime: "created_at",
	}[sortBy]
	if column == "" {
		column = "created_at"
	}

	direction := "ASC"
	if sortOrder == mmodel.SortDescending {
		direction = "DESC"
	}

	q := psql.Select(selectColumns).From("space").OrderBy(column + " " + direction).Limit(uint64(limit)).Offset(uint64(offset))

	if filter.OwnerID != nil {
		q = q.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}

	if filter.NameFilter != "" {
		q = q.Where("name LIKE ?", toSQLPattern(filter.NameFilter))
	}

	for k, v := range filter.LabelSelectors {
		labelJSON, err := json.Marshal(mmodel.Labels{k: v})
		if err != nil {
			return nil, constant.InternalError{Message: "failed to marshal label selector", Err: err}
		}

		q = q.Where("labels @> ?::jsonb", string(labelJSON))
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

	var spaces []*mmodel.Space
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, constant.InternalError{Message: "failed to scan space row", Err: err}
		}

		spaces = append(spaces, s)
	}

	return spaces, rows.Err()
}

// toSQLPattern converts the API's '*' wildcard into SQL LIKE's '%'.
func toSQLPattern(glob string) string {
	out := make([]rune, 0, len(glob))
	for _, r := range glob {
		if r == '*' {
			out = append(out, '%')
			continue
		}

		out = append(out, r)
	}

	return string(out)
}

// Update updates a space's mutable fields (name, labels, publicRead).
func (r *PostgreSQLRepository) Update(ctx context.Context, id midentifier.ID, s *mmodel.Space) (*mmodel.Space, error) {
	labels, err := json.Marshal(s.Labels)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal labels", Err: err}
	}

	tag, err := r.Pool.Exec(ctx, `UPDATE space SET name = $1, labels = $2::jsonb, public_read = $3, updated_at = $4, updated_by_id = $5 WHERE id = $6`,
		s.Name, labels, s.PublicRead, s.UpdatedAt.Time(), s.UpdatedByID, id)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return nil, constant.EntityNotFoundError{EntityType: entityType}
	}

	return r.Find(ctx, id)
}

// Delete removes a space row. The memory table's foreign key is
// declared ON DELETE CASCADE, so deleting a space cascades to its
// memories.
func (r *PostgreSQLRepository) Delete(ctx context.Context, id midentifier.ID) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM space WHERE id = $1`, id)
	if err != nil {
		return mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return constant.EntityNotFoundError{EntityType: entityType}
	}

	return nil
}
