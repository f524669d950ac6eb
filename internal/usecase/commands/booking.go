package commands

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrVehicleUnavailable      = errs.New("vehicle is currently not available")
	ErrInvalidDateRange        = errs.New("rent end date must be after start date")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrAlreadyFinalized        = errs.New("booking is already finalized")
	ErrCancellationClosed      = errs.New("cannot cancel a booking after the rent start date")
	ErrForbidden               = errs.New("caller is not allowed to perform this operation")
	ErrInvalidTargetStatus     = errs.New("invalid target status")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	CustomerID    uuid.UUID
	VehicleID     uuid.UUID
	RentStartDate time.Time
	RentEndDate   time.Time
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, target booking.Status) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clock,
	}
}

// Create reserves a vehicle for a rental period. The availability
// compare-and-swap, the booking insert and the price snapshot all run inside
// one transaction: any failure rolls the reservation back completely.
func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error) {
	var bookingID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		vehicleSnap, err := tx.Vehicles().Reserve(ctx, in.VehicleID)
		if err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return ErrVehicleNotFound
			case infra.IsKind(err, infra.KindConflict):
				return ErrVehicleUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		period, err := booking.NewRentPeriod(in.RentStartDate, in.RentEndDate)
		if err != nil {
			return errs.Mark(err, ErrInvalidDateRange)
		}

		entity, err := booking.NewBooking(in.CustomerID, in.VehicleID, period, vehicleSnap.DailyRate)
		if err != nil {
			return errs.Mark(err, ErrInvalidDateRange)
		}

		if err := tx.Bookings().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrVehicleUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingID = entity.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// UpdateStatus finalizes an active booking as cancelled or returned and
// frees the vehicle, all in one transaction on a row lock.
func (c *bookingCommandsImpl) UpdateStatus(
	ctx context.Context,
	actor shared.Actor,
	bookingID uuid.UUID,
	target booking.Status,
) (*queries.BookingView, error) {
	if !booking.StatusActive.CanTransitionTo(target) {
		return nil, ErrInvalidTargetStatus
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Bookings().FindForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := booking.CanChangeStatus(actor.Role, actor.ID, snap.CustomerID, target); err != nil {
			return errs.Mark(err, ErrForbidden)
		}

		if snap.Status.IsTerminal() {
			return errs.Mark(errs.New("booking is already "+snap.Status.String()), ErrAlreadyFinalized)
		}

		if target == booking.StatusCancelled {
			period := booking.ReconstructRentPeriod(snap.RentStart, snap.RentEnd)
			if !period.CancellableAt(c.clock.Now()) {
				return ErrCancellationClosed
			}
		}

		finalized, err := tx.Bookings().FinalizeStatus(ctx, bookingID, target)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !finalized {
			return errs.Mark(errs.New("booking finalized concurrently"), ErrAlreadyFinalized)
		}

		return tx.Vehicles().Release(ctx, snap.VehicleID)
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
