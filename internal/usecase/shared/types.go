package shared

import (
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/domain/vehicle"

	"github.com/google/uuid"
)

// Actor is the authenticated principal attached to every request.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// Write-side snapshots prevent dependency on read-side query types
type BookingSnapshot struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	VehicleID  uuid.UUID
	RentStart  time.Time
	RentEnd    time.Time
	TotalPrice int32
	Status     booking.Status
}

type VehicleSnapshot struct {
	ID                 uuid.UUID
	Name               string
	Category           vehicle.Category
	RegistrationNumber string
	DailyRate          int32
	Availability       vehicle.Availability
}

type UpdateVehicleParams struct {
	Name               *string
	Category           *string
	RegistrationNumber *string
	DailyRate          *int32
	Availability       *string
}

type UpdateUserParams struct {
	Name  *string
	Email *string
	Phone *string
	Role  *string
}
