package repository

import (
	"context"
	"errors"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		b.ID(), b.CustomerID(), b.VehicleID(),
		b.Period().Start(), b.Period().End(),
		b.TotalPrice(), b.Status().String(),
	)
	if err != nil {
		// The partial unique index rejects a second active booking for the
		// same vehicle; surface it as a reservation conflict.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("vehicle already has an active booking", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status
		FROM bookings
		WHERE id = $1
		FOR UPDATE`

	var snap shared.BookingSnapshot
	var status string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.CustomerID, &snap.VehicleID,
		&snap.RentStart, &snap.RentEnd, &snap.TotalPrice, &status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}

	snap.Status = booking.Status(status)
	return &snap, nil
}

func (r *BookingRepository) FinalizeStatus(ctx context.Context, id uuid.UUID, status booking.Status) (bool, error) {
	const query = `
		UPDATE bookings SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'active'`

	tag, err := r.db.Exec(ctx, query, id, status.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to finalize booking status", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) ExistsActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) (bool, error) {
	return r.existsActive(ctx, "vehicle_id", vehicleID)
}

func (r *BookingRepository) ExistsActiveByCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	return r.existsActive(ctx, "customer_id", customerID)
}

func (r *BookingRepository) existsActive(ctx context.Context, column string, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE ` + column + ` = $1 AND status = 'active')`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check active bookings", err)
	}
	return exists, nil
}
