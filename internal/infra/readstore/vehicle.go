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

type VehicleReadStore struct {
	db repository.DBTX
}

func NewVehicleReadStore(db repository.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: db}
}

const vehicleViewColumns = `
	id, vehicle_name, type, registration_number, daily_rent_price, availability_status,
	created_at, updated_at`

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	query := `SELECT` + vehicleViewColumns + ` FROM vehicles WHERE id = $1`

	view, err := scanVehicleView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}
	return view, nil
}

func (r *VehicleReadStore) List(ctx context.Context) ([]*queries.VehicleView, error) {
	query := `SELECT` + vehicleViewColumns + ` FROM vehicles ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	result := make([]*queries.VehicleView, 0)
	for rows.Next() {
		view, err := scanVehicleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicle rows", err)
	}
	return result, nil
}

func scanVehicleView(row pgx.Row) (*queries.VehicleView, error) {
	var view queries.VehicleView
	err := row.Scan(
		&view.ID, &view.Name, &view.Category, &view.RegistrationNumber,
		&view.DailyRentPrice, &view.AvailabilityStatus,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
