package queries

import (
	"context"

	"github.com/google/uuid"
)

type VehicleQueries interface {
	List(ctx context.Context) ([]*VehicleView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
}

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	List(ctx context.Context) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	reads VehicleReadStore
}

func NewVehicleQueries(reads VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{reads: reads}
}

func (q *vehicleQueriesImpl) List(ctx context.Context) ([]*VehicleView, error) {
	return q.reads.List(ctx)
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	return q.reads.FindByID(ctx, id)
}
