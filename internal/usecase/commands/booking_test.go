//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/builder"
	queriesmock "vehicle-rental/tests/mock/queries"
	sharedmock "vehicle-rental/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUoW      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockBookings *sharedmock.MockBookingRepository
	mockVehicles *sharedmock.MockVehicleRepository
	mockQueries  *queriesmock.MockBookingQueries
	clock        *clock.MockClock
	commands     commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockVehicles = sharedmock.NewMockVehicleRepository(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC))
	s.commands = commands.NewBookingCommands(s.mockUoW, s.mockQueries, s.clock)

	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()
	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockTx.EXPECT().Vehicles().Return(s.mockVehicles).AnyTimes()
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func vehicleSnapshot(id uuid.UUID, rate int32) *shared.VehicleSnapshot {
	return &shared.VehicleSnapshot{
		ID:        id,
		Name:      "Test Sedan",
		DailyRate: rate,
	}
}

func (s *BookingCommandsTestSuite) TestCreate() {
	customerID := uuid.New()
	vehicleID := uuid.New()
	input := commands.CreateBookingInput{
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		RentStartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		RentEndDate:   time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
	}

	s.Run("reserves the vehicle and snapshots the price", func() {
		var created *booking.Booking

		s.mockVehicles.EXPECT().Reserve(gomock.Any(), vehicleID).Return(vehicleSnapshot(vehicleID, 50), nil)
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) error {
				created = b
				return nil
			})
		view := builder.NewBookingBuilder().WithCustomerID(customerID).WithVehicleID(vehicleID).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(view, nil)

		result, err := s.commands.Create(context.Background(), input)
		require.NoError(s.T(), err)
		require.NotNil(s.T(), result)

		require.NotNil(s.T(), created)
		assert.Equal(s.T(), int32(150), created.TotalPrice())
		assert.Equal(s.T(), booking.StatusActive, created.Status())
	})

	s.Run("missing vehicle", func() {
		s.mockVehicles.EXPECT().Reserve(gomock.Any(), vehicleID).
			Return(nil, infra.WrapRepoErr("vehicle not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.commands.Create(context.Background(), input)
		require.ErrorIs(s.T(), err, commands.ErrVehicleNotFound)
	})

	s.Run("vehicle already booked", func() {
		s.mockVehicles.EXPECT().Reserve(gomock.Any(), vehicleID).
			Return(nil, infra.WrapRepoErr("vehicle is currently not available", errors.New("cas miss"), infra.KindConflict))

		_, err := s.commands.Create(context.Background(), input)
		require.ErrorIs(s.T(), err, commands.ErrVehicleUnavailable)
	})

	s.Run("invalid dates roll the reservation back", func() {
		bad := input
		bad.RentEndDate = bad.RentStartDate

		// Reserve happens first; returning an error from the transaction body
		// undoes the availability flip together with everything else.
		s.mockVehicles.EXPECT().Reserve(gomock.Any(), vehicleID).Return(vehicleSnapshot(vehicleID, 50), nil)

		_, err := s.commands.Create(context.Background(), bad)
		require.ErrorIs(s.T(), err, commands.ErrInvalidDateRange)
	})

	s.Run("insert conflict on the active booking index", func() {
		s.mockVehicles.EXPECT().Reserve(gomock.Any(), vehicleID).Return(vehicleSnapshot(vehicleID, 50), nil)
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("vehicle already has an active booking", errors.New("23505"), infra.KindConflict))

		_, err := s.commands.Create(context.Background(), input)
		require.ErrorIs(s.T(), err, commands.ErrVehicleUnavailable)
	})
}

func (s *BookingCommandsTestSuite) TestUpdateStatus() {
	bookingID := uuid.New()
	vehicleID := uuid.New()
	ownerID := uuid.New()
	owner := shared.Actor{ID: ownerID, Role: user.RoleCustomer}
	admin := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}

	activeSnapshot := func() *shared.BookingSnapshot {
		return &shared.BookingSnapshot{
			ID:         bookingID,
			CustomerID: ownerID,
			VehicleID:  vehicleID,
			RentStart:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			RentEnd:    time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
			TotalPrice: 150,
			Status:     booking.StatusActive,
		}
	}

	s.Run("owner cancels before the rental starts", func() {
		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).Return(activeSnapshot(), nil)
		s.mockBookings.EXPECT().FinalizeStatus(gomock.Any(), bookingID, booking.StatusCancelled).Return(true, nil)
		s.mockVehicles.EXPECT().Release(gomock.Any(), vehicleID).Return(nil)

		view := builder.NewBookingBuilder().BuildView()
		view.Status = booking.StatusCancelled.String()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil)

		result, err := s.commands.UpdateStatus(context.Background(), owner, bookingID, booking.StatusCancelled)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), booking.StatusCancelled.String(), result.Status)
	})

	s.Run("owner cannot cancel once the rental started", func() {
		s.clock.Set(time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC))
		defer s.clock.Set(time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC))

		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).Return(activeSnapshot(), nil)

		_, err := s.commands.UpdateStatus(context.Background(), owner, bookingID, booking.StatusCancelled)
		require.ErrorIs(s.T(), err, commands.ErrCancellationClosed)
	})

	s.Run("admin may return after the window", func() {
		s.clock.Set(time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC))
		defer s.clock.Set(time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC))

		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).Return(activeSnapshot(), nil)
		s.mockBookings.EXPECT().FinalizeStatus(gomock.Any(), bookingID, booking.StatusReturned).Return(true, nil)
		s.mockVehicles.EXPECT().Release(gomock.Any(), vehicleID).Return(nil)

		view := builder.NewBookingBuilder().BuildView()
		view.Status = booking.StatusReturned.String()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil)

		_, err := s.commands.UpdateStatus(context.Background(), admin, bookingID, booking.StatusReturned)
		require.NoError(s.T(), err)
	})

	s.Run("customer cannot mark returned", func() {
		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).Return(activeSnapshot(), nil)

		_, err := s.commands.UpdateStatus(context.Background(), owner, bookingID, booking.StatusReturned)
		require.ErrorIs(s.T(), err, commands.ErrForbidden)
	})

	s.Run("customer cannot touch another customer's booking", func() {
		stranger := shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}
		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).Return(activeSnapshot(), nil)

		_, err := s.commands.UpdateStatus(context.Background(), stranger, bookingID, booking.StatusCancelled)
		require.ErrorIs(s.T(), err, commands.ErrForbidden)
	})

	s.Run("missing booking", func() {
		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.commands.UpdateStatus(context.Background(), admin, bookingID, booking.StatusReturned)
		require.ErrorIs(s.T(), err, commands.ErrBookingNotFound)
	})

	s.Run("terminal booking cannot change again", func() {
		snap := activeSnapshot()
		snap.Status = booking.StatusCancelled
		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).Return(snap, nil)

		_, err := s.commands.UpdateStatus(context.Background(), admin, bookingID, booking.StatusReturned)
		require.ErrorIs(s.T(), err, commands.ErrAlreadyFinalized)
	})

	s.Run("active is not a valid target", func() {
		_, err := s.commands.UpdateStatus(context.Background(), admin, bookingID, booking.StatusActive)
		require.ErrorIs(s.T(), err, commands.ErrInvalidTargetStatus)
	})

	s.Run("concurrent finalize loses gracefully", func() {
		s.mockBookings.EXPECT().FindForUpdate(gomock.Any(), bookingID).Return(activeSnapshot(), nil)
		s.mockBookings.EXPECT().FinalizeStatus(gomock.Any(), bookingID, booking.StatusCancelled).Return(false, nil)

		_, err := s.commands.UpdateStatus(context.Background(), owner, bookingID, booking.StatusCancelled)
		require.ErrorIs(s.T(), err, commands.ErrAlreadyFinalized)
	})
}
