package queries

import (
	"context"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingQueries interface {
	// List returns the caller's role-scoped bookings after applying the
	// lazy expiry sweep, so the result always reflects post-sweep status.
	List(ctx context.Context, actor shared.Actor) ([]*BookingView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*BookingView, error)
	ListAll(ctx context.Context) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	reads BookingReadStore
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(reads BookingReadStore, uow shared.UnitOfWork, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		reads: reads,
		uow:   uow,
		clock: clock,
	}
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor shared.Actor) ([]*BookingView, error) {
	var views []*BookingView
	var err error

	if actor.Role.IsAdmin() {
		views, err = q.reads.ListAll(ctx)
	} else {
		views, err = q.reads.ListByCustomer(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	if err := q.sweepExpired(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.reads.FindByID(ctx, id)
}

// sweepExpired is the lazy expiry sweep: overdue active bookings become
// returned and their vehicles become available as a read-path side effect.
// Each transition is a conditional update inside its own transaction, so a
// concurrent sweep applying the same transition is a no-op, not an error.
func (q *bookingQueriesImpl) sweepExpired(ctx context.Context, views []*BookingView) error {
	now := q.clock.Now()

	for _, view := range views {
		if view.Status != booking.StatusActive.String() || !view.RentEndDate.Before(now) {
			continue
		}

		err := q.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			finalized, err := tx.Bookings().FinalizeStatus(ctx, view.ID, booking.StatusReturned)
			if err != nil {
				return err
			}
			if !finalized {
				// A concurrent sweep or an explicit return got there first.
				return nil
			}
			return tx.Vehicles().Release(ctx, view.VehicleID)
		})
		if err != nil {
			return err
		}

		view.Status = booking.StatusReturned.String()
	}
	return nil
}
