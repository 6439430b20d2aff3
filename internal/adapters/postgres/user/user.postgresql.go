// Package user is the Postgres-backed implementation of the User
// aggregate's persistence contract.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/user"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpostgres"
)

const entityType = "User"

// PostgreSQLRepository is the Postgres-specific implementation of
// user.Repository.
type PostgreSQLRepository struct {
	Pool *pgxpool.Pool
}

// NewPostgreSQLRepository returns a user.Repository backed by pool.
func NewPostgreSQLRepository(pool *pgxpool.Pool) user.Repository {
	return &PostgreSQLRepository{Pool: pool}
}

// Create inserts a new user and its initial role rows inside a single
// transaction (the roles live in the separate user_role table per the
// persisted-state layout).
func (r *PostgreSQLRepository) Create(ctx context.Context, u *mmodel.User) (*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.create_user")
	defer span.End()

	err := mpostgres.WithinTx(ctx, r.Pool, func(ctx context.Context, exec mpostgres.Executor) error {
		_, err := exec.Exec(ctx, `INSERT INTO "user" (id, username, email, display_name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, u.Username, u.Email, u.DisplayName, u.CreatedAt.Time(), u.UpdatedAt.Time())
		if err != nil {
			return mpostgres.TranslatePGError(err, entityType)
		}

		for _, role := range u.Roles {
			if _, err := exec.Exec(ctx, `INSERT INTO user_role (user_id, role) VALUES ($1, $2)`, u.ID, string(role)); err != nil {
				return mpostgres.TranslatePGError(err, entityType)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *PostgreSQLRepository) rolesFor(ctx context.Context, id midentifier.ID) ([]mmodel.Role, error) {
	rows, err := r.Pool.Query(ctx, `SELECT role FROM user_role WHERE user_id = $1`, id)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}
	defer rows.Close()

	var roles []mmodel.Role
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, constant.InternalError{Message: "failed to scan user_role row", Err: err}
		}

		roles = append(roles, mmodel.ParseRole(role))
	}

	return roles, rows.Err()
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows, letting scanUser
// serve single-row lookups and FindAll's row iteration alike.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*mmodel.User, error) {
	u := &mmodel.User{}

	var (
		email     *string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&u.ID, &u.Username, &email, &u.DisplayName, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	u.Email = email
	u.CreatedAt = mmodel.NewMillisTime(createdAt)
	u.UpdatedAt = mmodel.NewMillisTime(updatedAt)

	return u, nil
}

// Find retrieves a user by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id midentifier.ID) (*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.find_user")
	defer span.End()

	row := r.Pool.QueryRow(ctx, `SELECT id, username, email, display_name, created_at, updated_at FROM "user" WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	roles, err := r.rolesFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles

	return u, nil
}

// FindByUsername retrieves a user by its unique username.
func (r *PostgreSQLRepository) FindByUsername(ctx context.Context, username string) (*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.find_user_by_username")
	defer span.End()

	row := r.Pool.QueryRow(ctx, `SELECT id, username, email, display_name, created_at, updated_at FROM "user" WHERE username = $1`, username)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	roles, err := r.rolesFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles

	return u, nil
}

// FindByEmail retrieves a user by its (optionally-unique) email.
func (r *PostgreSQLRepository) FindByEmail(ctx context.Context, email string) (*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.find_user_by_email")
	defer span.End()

	row := r.Pool.QueryRow(ctx, `SELECT id, username, email, display_name, created_at, updated_at FROM "user" WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.EntityNotFoundError{EntityType: entityType}
		}

		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	roles, err := r.rolesFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles

	return u, nil
}

// FindAll retrieves a page of users ordered by creation time.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, limit, offset int) ([]*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.find_all_users")
	defer span.End()

	rows, err := r.Pool.Query(ctx, `SELECT id, username, email, display_name, created_at, updated_at FROM "user" ORDER BY created_at ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}
	defer rows.Close()

	var users []*mmodel.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, constant.InternalError{Message: "failed to scan user row", Err: err}
		}

		roles, err := r.rolesFor(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		u.Roles = roles

		users = append(users, u)
	}

	return users, rows.Err()
}

// Update updates a user's mutable profile fields.
func (r *PostgreSQLRepository) Update(ctx context.Context, id midentifier.ID, u *mmodel.User) (*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.update_user")
	defer span.End()

	tag, err := r.Pool.Exec(ctx, `UPDATE "user" SET email = $1, display_name = $2, updated_at = $3 WHERE id = $4`,
		u.Email, u.DisplayName, u.UpdatedAt.Time(), id)
	if err != nil {
		return nil, mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return nil, constant.EntityNotFoundError{EntityType: entityType}
	}

	return r.Find(ctx, id)
}

// Delete removes a user row.
func (r *PostgreSQLRepository) Delete(ctx context.Context, id midentifier.ID) error {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.delete_user")
	defer span.End()

	tag, err := r.Pool.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, id)
	if err != nil {
		return mpostgres.TranslatePGError(err, entityType)
	}

	if tag.RowsAffected() == 0 {
		return constant.EntityNotFoundError{EntityType: entityType}
	}

	return nil
}
