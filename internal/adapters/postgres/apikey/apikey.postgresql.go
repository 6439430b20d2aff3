// Package apikey is the Postgres-backed implementation of the ApiKey
// aggregate's persistence contract.
package apikey

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/apikey"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpostgres"
)

const entityType = "ApiKey"

// PostgreSQLRepository is the Postgres-specific implementation of
// apikey.Repository.
type PostgreSQLRepository struct {
	Pool *pgxpool.Pool
}

// NewPostgreSQLRepository returns an apikey.Repository backed by pool.
func NewPostgreSQLRepository(pool *pgxpool.Pool) apikey.Repository {
	return &PostgreSQLRepository{Pool: pool}
}

// Create inserts an API key row. hashedKey is the sha256 hex digest; the
// raw secret it was derived from is never persisted.
func (r *PostgreSQLRepository) Create(ctx context.Context, k *mmodel.ApiKey, hashedKey string) (*mmodel.ApiKey, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.create_apikey")
	defer span.End()

	labels, err := json.Marshal(k.Labels)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal labels", Err: err}
	}

	err = mpostgres.WithinTx(ctx, r.Pool, func(ctx context.Context, exec mpostgres.Executor) error {
		_, err := exec.Exec(ctx, `
			INSERT INTO api_key (id, user_id, key_prefix, hashed_key, status, labels, expires_at, created_at, updated_at, created_by_id, updated_by_id)
			VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, $11)`,
			k.ID, k.UserID, k.KeyPrefix, hashedKey, string(k.Status), labels, millisPtr(k.ExpiresAt),
			k.CreatedAt.Time(), k.UpdatedAt.Time(), k.CreatedByID, k.UpdatedByID)
		if err != nil {
			return mpostgres.TranslatePGError(err, entityType)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return k, nil
}

const selectColumns = `id, user_id, key_prefix, status, labels, expires_at, last_used_at, created_at, updated_at, created_by_id, updated_by_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApiKey(row rowScanner) (*mmodel.ApiKey, error) {
	k := &mmodel.ApiKey{}

	var (
		status                string
		labels                []byte
		expiresAt, lastUsedAt *time.Time
		createdAt, updatedAt  time.Time
	)

	if err := row.Scan(&k.ID, &k.UserID, &k.KeyPrefix, &status, &labels, &expiresAt, &lastUsedAt,
		&createdAt, &updatedAt, &k.CreatedByID, &k.UpdatedByID); err != nil {
		return nil, err
	}

	k.Status = mmodel.ParseApiKeyStatus(status)
	k.CreatedAt = mmodel.NewMillisTime(createdAt)
	k.UpdatedAt = mmodel.NewMillisTime(updatedAt)

	if len(labels) > 0 {
		if err := json.Unmarshal(labels, &k.Labels); err != nil {
			return nil, err
		}
	}

	if expiresAt != nil {
		mt := mmodel.NewMillisTime(*expiresAt)
		k.ExpiresAt = &mt
	}

	if lastUsedAt != nil {
		mt := mmodel.NewMillisTime(*lastUsedAt)
		k.LastUsedAt = &mt
	}

	return k, nil
}

func millisPtr(t *mmodel.MillisTime) *time.Time {
	if t == nil {
		return nil
	}

	v := t.Time()

	return &v
}

// Find retrieves an API key by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id midentifier.ID) (*mmodel.ApiKey, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM api_key WHERE id = $1`, id)

	k, err := scanApiKey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return k, nil
}

// FindByHash retrieves an API key by its hashed secret, the lookup path
// every authenticated request takes.
func (r *PostgreSQLRepository) FindByHash(ctx context.Context, hashedKey string) (*mmodel.ApiKey, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM api_key WHERE hashed_key = $1`, hashedKey)

	k, err := scanApiKey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return k, nil
}

// FindAllByOwner lists API keys, optionally narrowed to one owner.
func (r *PostgreSQLRepository) FindAllByOwner(ctx context.Context, ownerID *midentifier.ID, limit, offset int) ([]*mmodel.ApiKey, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if ownerID != nil {
		rows, err = r.Pool.Query(ctx, `SELECT `+selectColumns+` FROM api_key WHERE user_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`, *ownerID, limit, offset)
	} else {
		rows, err = r.Pool.Query(ctx, `SELECT `+selectColumns+` FROM api_key ORDER BY created_at ASC LIMIT $1 OFFSET $2`, limit, offset)
	}

	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}
	defer rows.Close()

	var keys []*mmodel.ApiKey
	for rows.Next() {
		k, err := scanApiKey(rows)
		if err != nil {
			return nil, constant.InternalError{Message: "failed to scan api_key row", Err: err}
		}

		keys = append(keys, k)
	}

	return keys, rows.Err()
}

// Update updates an API key's mutable fields (status, labels).
func (r *PostgreSQLRepository) Update(ctx context.Context, id midentifier.ID, k *mmodel.ApiKey) (*mmodel.ApiKey, error) {
	labels, err := json.Marshal(k.Labels)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal labels", Err: err}
	}

	tag, err := r.Pool.Exec(ctx, `UPDATE api_key SET status = $1, labels = $2::jsonb, updated_at = $3, updated_by_id = $4 WHERE id = $5`,
		string(k.Status), labels, k.UpdatedAt.Time(), k.UpdatedByID, id)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return nil, constant.EntityNotFoundError{EntityType: entityType}
	}

	return r.Find(ctx, id)
}

// Delete removes an API key row.
func (r *PostgreSQLRepository) Delete(ctx context.Context, id midentifier.ID) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM api_key WHERE id = $1`, id)
	if err != nil {
		return mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return constant.EntityNotFoundError{EntityType: entityType}
	}

	return nil
}

// TouchLastUsed stamps last_used_at with the current time, called on
// every successful authentication.
func (r *PostgreSQLRepository) TouchLastUsed(ctx context.Context, id midentifier.ID) error {
	_, err := r.Pool.Exec(ctx, `UPDATE api_key SET last_used_at = now() WHERE id = $1`, id)
	if err != nil {
		return mpostgres.TranslatePGError(err, entityType)
	}

	return nil
}

// FindHashByID returns the stored hash for id, used only to evict the
// auth cache entry keyed by hash when a key is updated or deleted.
func (r *PostgreSQLRepository) FindHashByID(ctx context.Context, id midentifier.ID) (string, error) {
	var hash string

	err := r.Pool.QueryRow(ctx, `SELECT hashed_key FROM api_key WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", constant.EntityNotFoundError{EntityType: entityType}
		}

		return "", mpostgres.TranslatePGError(err, entityType)
	}

	return hash, nil
}
