package shared

import (
	"context"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/domain/vehicle"

	"github.com/google/uuid"
)

// UnitOfWork runs a function inside a single database transaction. The
// availability check, booking insert and availability flip always share one
// transaction so a failure can never leave a vehicle falsely bookable.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Vehicles() VehicleRepository
	Users() UserRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindForUpdate locks the booking row for the remainder of the transaction.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// FinalizeStatus moves an active booking into a terminal status. It is a
	// conditional update: false means the booking was not active anymore,
	// which concurrent sweeps treat as "someone else already did it".
	FinalizeStatus(ctx context.Context, id uuid.UUID, status booking.Status) (bool, error)
	ExistsActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) (bool, error)
	ExistsActiveByCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	// Reserve flips availability available -> booked as a compare-and-swap and
	// returns the vehicle snapshot taken by the same statement. A vehicle that
	// is missing reports KindNotFound, one already booked reports KindConflict.
	Reserve(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
	// Release flips availability back to available.
	Release(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, params UpdateVehicleParams) (*VehicleSnapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}
