package db

import (
	"context"

	"vehicle-rental/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied at process start. Statements are idempotent so repeated
// boots against the same database are safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		email VARCHAR(150) UNIQUE NOT NULL CHECK (email = LOWER(email)),
		password VARCHAR(100) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'customer' CHECK (role IN ('admin', 'customer')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vehicle_name VARCHAR(50) NOT NULL,
		type VARCHAR(50) NOT NULL CHECK (type IN ('car', 'bike', 'van', 'suv')),
		registration_number VARCHAR(50) UNIQUE NOT NULL,
		daily_rent_price INT NOT NULL CHECK (daily_rent_price > 0),
		availability_status VARCHAR(20) NOT NULL DEFAULT 'available'
			CHECK (availability_status IN ('available', 'booked')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		customer_id UUID NOT NULL REFERENCES users(id),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		rent_start_date DATE NOT NULL,
		rent_end_date DATE NOT NULL,
		total_price INT NOT NULL CHECK (total_price > 0),
		status VARCHAR(20) NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'cancelled', 'returned')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (rent_end_date > rent_start_date)
	)`,
	// Second line of defense behind the availability compare-and-swap:
	// the database itself refuses a second active booking for a vehicle.
	`CREATE UNIQUE INDEX IF NOT EXISTS one_active_booking_per_vehicle
		ON bookings (vehicle_id) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS bookings_customer_id_idx ON bookings (customer_id)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return errs.Wrap(err, "failed to apply schema statement")
		}
	}
	return nil
}
