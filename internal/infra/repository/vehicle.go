package repository

import (
	"context"
	"errors"

	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VehicleRepository struct {
	db DBTX
}

func NewVehicleRepository(db DBTX) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	const query = `
		INSERT INTO vehicles (id, vehicle_name, type, registration_number, daily_rent_price, availability_status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		v.ID(), v.Name(), v.Category().String(),
		v.RegistrationNumber(), v.DailyRate().Amount(), v.Availability().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create vehicle", err)
	}
	return nil
}

// Reserve is the availability compare-and-swap: the flip to booked and the
// read of the rate snapshot happen in one statement, so two concurrent
// reservations can never both see "available".
func (r *VehicleRepository) Reserve(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	const query = `
		UPDATE vehicles SET availability_status = 'booked', updated_at = now()
		WHERE id = $1 AND availability_status = 'available'
		RETURNING id, vehicle_name, type, registration_number, daily_rent_price, availability_status`

	snap, err := scanVehicleSnapshot(r.db.QueryRow(ctx, query, id))
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr("failed to reserve vehicle", err)
	}

	// No row matched: either the vehicle does not exist or it is not available.
	if _, findErr := r.findSnapshot(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, infra.WrapRepoErr("vehicle is currently not available", nil, infra.KindConflict)
}

func (r *VehicleRepository) Release(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE vehicles SET availability_status = 'available', updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to release vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, id uuid.UUID, params shared.UpdateVehicleParams) (*shared.VehicleSnapshot, error) {
	const query = `
		UPDATE vehicles SET
			vehicle_name = COALESCE($2, vehicle_name),
			type = COALESCE($3, type),
			registration_number = COALESCE($4, registration_number),
			daily_rent_price = COALESCE($5, daily_rent_price),
			availability_status = COALESCE($6, availability_status),
			updated_at = now()
		WHERE id = $1
		RETURNING id, vehicle_name, type, registration_number, daily_rent_price, availability_status`

	snap, err := scanVehicleSnapshot(r.db.QueryRow(ctx, query, id,
		params.Name, params.Category, params.RegistrationNumber, params.DailyRate, params.Availability,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update vehicle", err)
	}
	return snap, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VehicleRepository) findSnapshot(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	const query = `
		SELECT id, vehicle_name, type, registration_number, daily_rent_price, availability_status
		FROM vehicles
		WHERE id = $1`

	snap, err := scanVehicleSnapshot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle", err)
	}
	return snap, nil
}

func scanVehicleSnapshot(row pgx.Row) (*shared.VehicleSnapshot, error) {
	var snap shared.VehicleSnapshot
	var category, availability string
	err := row.Scan(&snap.ID, &snap.Name, &category, &snap.RegistrationNumber, &snap.DailyRate, &availability)
	if err != nil {
		return nil, err
	}
	snap.Category = vehicle.Category(category)
	snap.Availability = vehicle.Availability(availability)
	return &snap, nil
}
