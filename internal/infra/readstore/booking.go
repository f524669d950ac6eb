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

type BookingReadStore struct {
	db repository.DBTX
}

func NewBookingReadStore(db repository.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewColumns = `
	b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date,
	b.total_price, b.status, b.created_at, b.updated_at,
	v.vehicle_name, v.registration_number, v.type, v.daily_rent_price`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT` + bookingViewColumns + `
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.id = $1`

	view, err := scanBookingView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.BookingView, error) {
	query := `
		SELECT` + bookingViewColumns + `
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.customer_id = $1
		ORDER BY b.created_at`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	defer rows.Close()

	return collectBookingViews(rows, false)
}

// ListAll is the admin view: every booking, additionally enriched with a
// customer snapshot.
func (r *BookingReadStore) ListAll(ctx context.Context) ([]*queries.BookingView, error) {
	query := `
		SELECT` + bookingViewColumns + `, u.name, u.email
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		JOIN users u ON u.id = b.customer_id
		ORDER BY b.created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list all bookings", err)
	}
	defer rows.Close()

	return collectBookingViews(rows, true)
}

func collectBookingViews(rows pgx.Rows, withCustomer bool) ([]*queries.BookingView, error) {
	result := make([]*queries.BookingView, 0)
	for rows.Next() {
		var view queries.BookingView
		dest := []any{
			&view.ID, &view.CustomerID, &view.VehicleID,
			&view.RentStartDate, &view.RentEndDate,
			&view.TotalPrice, &view.Status, &view.CreatedAt, &view.UpdatedAt,
			&view.Vehicle.Name, &view.Vehicle.RegistrationNumber,
			&view.Vehicle.Category, &view.Vehicle.DailyRentPrice,
		}
		if withCustomer {
			view.Customer = &queries.CustomerSummary{}
			dest = append(dest, &view.Customer.Name, &view.Customer.Email)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID, &view.CustomerID, &view.VehicleID,
		&view.RentStartDate, &view.RentEndDate,
		&view.TotalPrice, &view.Status, &view.CreatedAt, &view.UpdatedAt,
		&view.Vehicle.Name, &view.Vehicle.RegistrationNumber,
		&view.Vehicle.Category, &view.Vehicle.DailyRentPrice,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
