package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrAlreadyFinalized    = errors.New("booking is already finalized")
	ErrCancellationClosed  = errors.New("cannot cancel a booking after the rent start date")
	ErrNonPositivePrice    = errors.New("total price must be positive")
	ErrIllegalTransition   = errors.New("illegal booking status transition")
	ErrForbiddenTransition = errors.New("caller is not allowed to perform this transition")
)

type Booking struct {
	id         uuid.UUID
	customerID uuid.UUID
	vehicleID  uuid.UUID
	period     RentPeriod
	totalPrice int32
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking reserves a vehicle for the given period. The total price is a
// snapshot of days x the vehicle's daily rate at creation time; later rate
// changes never alter it.
func NewBooking(customerID, vehicleID uuid.UUID, period RentPeriod, dailyRate int32) (*Booking, error) {
	days := period.Days()
	if days <= 0 {
		return nil, ErrInvalidDateRange
	}

	total := days * dailyRate
	if total <= 0 {
		return nil, ErrNonPositivePrice
	}

	return &Booking{
		id:         uuid.New(),
		customerID: customerID,
		vehicleID:  vehicleID,
		period:     period,
		totalPrice: total,
		status:     StatusActive,
	}, nil
}

func ReconstructBooking(
	id, customerID, vehicleID uuid.UUID,
	period RentPeriod,
	totalPrice int32,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		customerID: customerID,
		vehicleID:  vehicleID,
		period:     period,
		totalPrice: totalPrice,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }
func (b *Booking) VehicleID() uuid.UUID  { return b.vehicleID }
func (b *Booking) Period() RentPeriod    { return b.period }
func (b *Booking) TotalPrice() int32     { return b.totalPrice }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status == StatusActive
}

// Cancel transitions an active booking to cancelled. Cancellation is only
// permitted strictly before the rental period begins.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	if !b.period.CancellableAt(now) {
		return ErrCancellationClosed
	}
	b.status = StatusCancelled
	return nil
}

// Return transitions an active booking to returned.
func (b *Booking) Return() error {
	if b.status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	b.status = StatusReturned
	return nil
}
