package queries

import (
	"context"

	"github.com/google/uuid"
)

type UserQueries interface {
	List(ctx context.Context) ([]*UserView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindByEmail(ctx context.Context, email string) (*UserView, string, error)
	List(ctx context.Context) ([]*UserView, error)
}

type userQueriesImpl struct {
	reads UserReadStore
}

func NewUserQueries(reads UserReadStore) UserQueries {
	return &userQueriesImpl{reads: reads}
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	return q.reads.List(ctx)
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	return q.reads.FindByID(ctx, id)
}
