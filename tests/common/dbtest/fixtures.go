//go:build e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"vehicle-rental/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal interface fixtures need, satisfied by both a pool
// and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultPassword is the plaintext behind every fixture user's hash.
const DefaultPassword = "password123"

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	hash, err := password.HashPassword(DefaultPassword)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(),
		"INSERT INTO users (id, name, email, password, phone, role) VALUES ($1, $2, $3, $4, $5, $6)",
		userID, "Test User", email, hash, "+15550000000", role)
	require.NoError(t, err)

	return userID
}

func CreateTestVehicle(t *testing.T, db DBLike, name, category, registration string, dailyRate int32) uuid.UUID {
	t.Helper()

	vehicleID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO vehicles (id, vehicle_name, type, registration_number, daily_rent_price) VALUES ($1, $2, $3, $4, $5)",
		vehicleID, name, category, registration, dailyRate)
	require.NoError(t, err)

	return vehicleID
}

// CreateTestBooking inserts a booking row directly and flips the vehicle to
// booked when the booking is active, mirroring what the create flow does.
func CreateTestBooking(t *testing.T, db DBLike, customerID, vehicleID uuid.UUID, start, end time.Time, totalPrice int32, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO bookings (id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		bookingID, customerID, vehicleID, start, end, totalPrice, status)
	require.NoError(t, err)

	if status == "active" {
		_, err = db.Exec(ctx, "UPDATE vehicles SET availability_status = 'booked' WHERE id = $1", vehicleID)
		require.NoError(t, err)
	}

	return bookingID
}

func VehicleAvailability(t *testing.T, db DBLike, vehicleID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT availability_status FROM vehicles WHERE id = $1", vehicleID).Scan(&status)
	require.NoError(t, err)
	return status
}

func BookingStatus(t *testing.T, db DBLike, bookingID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}
