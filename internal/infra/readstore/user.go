package readstore

import (
	"context"
	"errors"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/repository"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db repository.DBTX
}

func NewUserReadStore(db repository.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `SELECT id, name, email, phone, role FROM users WHERE id = $1`

	var view queries.UserView
	err := r.db.QueryRow(ctx, query, id).Scan(&view.ID, &view.Name, &view.Email, &view.Phone, &view.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

// FindByEmail also returns the stored password hash for credential checks.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	const query = `SELECT id, name, email, phone, role, password FROM users WHERE email = $1`

	var view queries.UserView
	var passwordHash string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&view.ID, &view.Name, &view.Email, &view.Phone, &view.Role, &passwordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, passwordHash, nil
}

func (r *UserReadStore) List(ctx context.Context) ([]*queries.UserView, error) {
	const query = `SELECT id, name, email, phone, role FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	result := make([]*queries.UserView, 0)
	for rows.Next() {
		var view queries.UserView
		if err := rows.Scan(&view.ID, &view.Name, &view.Email, &view.Phone, &view.Role); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user rows", err)
	}
	return result, nil
}
