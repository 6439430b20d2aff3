// Package embedder is the Postgres-backed implementation of the
// Embedder aggregate's persistence contract.
package embedder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/embedder"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpostgres"
)

const entityType = "Embedder"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgreSQLRepository is the Postgres-specific implementation of
// embedder.Repository.
type PostgreSQLRepository struct {
	Pool *pgxpool.Pool
}

// NewPostgreSQLRepository returns an embedder.Repository backed by pool.
func NewPostgreSQLRepository(pool *pgxpool.Pool) embedder.Repository {
	return &PostgreSQLRepository{Pool: pool}
}

const selectColumns = `id, display_name, description, provider_type, endpoint_url, api_path, model_identifier,
	dimensionality, max_sequence_length, supported_modalities, labels, version, monitoring_endpoint,
	owner_id, created_at, updated_at, created_by_id, updated_by_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmbedder(row rowScanner) (*mmodel.Embedder, error) {
	e := &mmodel.Embedder{}

	var (
		providerType         string
		maxSeqLen            *int
		modalitiesRaw        []byte
		labelsRaw            []byte
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&e.ID, &e.DisplayName, &e.Description, &providerType, &e.EndpointURL, &e.APIPath,
		&e.ModelIdentifier, &e.Dimensionality, &maxSeqLen, &modalitiesRaw, &labelsRaw, &e.Version,
		&e.MonitoringEndpoint, &e.OwnerID, &createdAt, &updatedAt, &e.CreatedByID, &e.UpdatedByID); err != nil {
		return nil, err
	}

	e.ProviderType = mmodel.ParseProviderType(providerType)
	e.MaxSequenceLength = maxSeqLen
	e.CreatedAt = mmodel.NewMillisTime(createdAt)
	e.UpdatedAt = mmodel.NewMillisTime(updatedAt)

	if len(modalitiesRaw) > 0 {
		var raw []string
		if err := json.Unmarshal(modalitiesRaw, &raw); err != nil {
			return nil, err
		}

		for _, m := range raw {
			e.SupportedModalities = append(e.SupportedModalities, mmodel.ParseModality(m))
		}
	}

	if len(labelsRaw) > 0 {
		if err := json.Unmarshal(labelsRaw, &e.Labels); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func modalitiesJSON(modalities []mmodel.Modality) ([]byte, error) {
	raw := make([]string, len(modalities))
	for i, m := range modalities {
		raw[i] = string(m)
	}

	return json.Marshal(raw)
}

// Create inserts a new embedder row. credentials is stored write-only:
// the Embedder shape returned to callers never carries it back.
func (r *PostgreSQLRepository) Create(ctx context.Context, e *mmodel.Embedder, credentials string) (*mmodel.Embedder, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.create_embedder")
	defer span.End()

	modalities, err := modalitiesJSON(e.SupportedModalities)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal supported modalities", Err: err}
	}

	labels, err := json.Marshal(e.Labels)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal labels", Err: err}
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO embedder (id, display_name, description, provider_type, endpoint_url, api_path, model_identifier,
			dimensionality, max_sequence_length, supported_modalities, labels, version, monitoring_endpoint, credentials,
			owner_id, created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11::jsonb, $12, $13, $14, $15, $16, $17, $18, $19)`,
		e.ID, e.DisplayName, e.Description, string(e.ProviderType), e.EndpointURL, e.APIPath, e.ModelIdentifier,
		e.Dimensionality, e.MaxSequenceLength, modalities, labels, e.Version, e.MonitoringEndpoint, credentials,
		e.OwnerID, e.CreatedAt.Time(), e.UpdatedAt.Time(), e.CreatedByID, e.UpdatedByID)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return e, nil
}

// Find retrieves an embedder by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id midentifier.ID) (*mmodel.Embedder, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM embedder WHERE id = $1`, id)

	e, err := scanEmbedder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return e, nil
}

// FindByConnection looks up an embedder by its (endpointURL, apiPath,
// modelIdentifier) triple, used to enforce the connection-uniqueness
// invariant.
func (r *PostgreSQLRepository) FindByConnection(ctx context.Context, endpointURL, apiPath, modelIdentifier string) (*mmodel.Embedder, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM embedder WHERE endpoint_url = $1 AND api_path = $2 AND model_identifier = $3`,
		endpointURL, apiPath, modelIdentifier)

	e, err := scanEmbedder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	return e, nil
}

// FindAll lists embedders matching filter, built with squirrel.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, filter mmodel.EmbedderListFilter, limit, offset int) ([]*mmodel.Embedder, error) {
	q := psql.Select(selectColumns).From("embedder").OrderBy("created_at ASC").Limit(uint64(limit)).Offset(uint64(offset))

	if filter.OwnerID != nil {
		q = q.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}

	if filter.ProviderType != nil && *filter.ProviderType != mmodel.ProviderUnspecified {
		q = q.Where(squirrel.Eq{"provider_type": string(*filter.ProviderType)})
	}

	for k, v := range filter.LabelSelectors {
		q = q.Where("labels @> ?::jsonb", mustLabelJSON(mmodel.Labels{k: v}))
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

	var embedders []*mmodel.Embedder
	for rows.Next() {
		e, err := scanEmbedder(rows)
		if err != nil {
			return nil, constant.InternalError{Message: "failed to scan embedder row", Err: err}
		}

		embedders = append(embedders, e)
	}

	return embedders, rows.Err()
}

func mustLabelJSON(l mmodel.Labels) string {
	b, err := json.Marshal(l)
	if err != nil {
		return "{}"
	}

	return string(b)
}

// Update updates an embedder's mutable fields. credentials is nil when
// the caller left it unchanged.
func (r *PostgreSQLRepository) Update(ctx context.Context, id midentifier.ID, e *mmodel.Embedder, credentials *string) (*mmodel.Embedder, error) {
	modalities, err := modalitiesJSON(e.SupportedModalities)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal supported modalities", Err: err}
	}

	labels, err := json.Marshal(e.Labels)
	if err != nil {
		return nil, constant.InternalError{Message: "failed to marshal labels", Err: err}
	}

	q := psql.Update("embedder").
		Set("display_name", e.DisplayName).
		Set("description", e.Description).
		Set("max_sequence_length", e.MaxSequenceLength).
		Set("supported_modalities", squirrel.Expr("?::jsonb", modalities)).
		Set("labels", squirrel.Expr("?::jsonb", labels)).
		Set("monitoring_endpoint", e.MonitoringEndpoint).
		Set("version", e.Version).
		Set("updated_at", e.UpdatedAt.Time()).
		Set("updated_by_id", e.UpdatedByID).
		Where(squirrel.Eq{"id": id})

	if credentials != nil {
		q = q.Set("credentials", *credentials)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, constant.InternalError{Message: "failed to build query", Err: err}
	}

	tag, err := r.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return nil, constant.EntityNotFoundError{EntityType: entityType}
	}

	return r.Find(ctx, id)
}

// Delete removes an embedder row.
func (r *PostgreSQLRepository) Delete(ctx context.Context, id midentifier.ID) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM embedder WHERE id = $1`, id)
	if err != nil {
		return mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return constant.EntityNotFoundError{EntityType: entityType}
	}

	return nil
}
