//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/usecase/queries"
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

type BookingQueriesTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockReads    *queriesmock.MockBookingReadStore
	mockUoW      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockBookings *sharedmock.MockBookingRepository
	mockVehicles *sharedmock.MockVehicleRepository
	clock        *clock.MockClock
	queries      queries.BookingQueries
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockReads = queriesmock.NewMockBookingReadStore(s.mockCtrl)
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockVehicles = sharedmock.NewMockVehicleRepository(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))
	s.queries = queries.NewBookingQueries(s.mockReads, s.mockUoW, s.clock)
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) expectTxRun() {
	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()
	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockTx.EXPECT().Vehicles().Return(s.mockVehicles).AnyTimes()
}

func (s *BookingQueriesTestSuite) TestListScopesByRole() {
	admin := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
	customer := shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	s.Run("admin sees every booking", func() {
		s.mockReads.EXPECT().ListAll(gomock.Any()).Return([]*queries.BookingView{}, nil)

		views, err := s.queries.List(context.Background(), admin)
		require.NoError(s.T(), err)
		assert.Empty(s.T(), views)
	})

	s.Run("customer sees only their own", func() {
		s.mockReads.EXPECT().ListByCustomer(gomock.Any(), customer.ID).Return([]*queries.BookingView{}, nil)

		views, err := s.queries.List(context.Background(), customer)
		require.NoError(s.T(), err)
		assert.Empty(s.T(), views)
	})
}

func (s *BookingQueriesTestSuite) TestListSweepsExpiredBookings() {
	customer := shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	expired := builder.NewBookingBuilder().
		WithCustomerID(customer.ID).
		WithPeriod(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)).
		BuildView()
	current := builder.NewBookingBuilder().
		WithCustomerID(customer.ID).
		WithPeriod(time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)).
		BuildView()

	s.mockReads.EXPECT().ListByCustomer(gomock.Any(), customer.ID).
		Return([]*queries.BookingView{expired, current}, nil)

	s.expectTxRun()
	s.mockBookings.EXPECT().FinalizeStatus(gomock.Any(), expired.ID, booking.StatusReturned).Return(true, nil)
	s.mockVehicles.EXPECT().Release(gomock.Any(), expired.VehicleID).Return(nil)

	views, err := s.queries.List(context.Background(), customer)
	require.NoError(s.T(), err)
	require.Len(s.T(), views, 2)

	assert.Equal(s.T(), booking.StatusReturned.String(), views[0].Status)
	assert.Equal(s.T(), booking.StatusActive.String(), views[1].Status)
}

func (s *BookingQueriesTestSuite) TestSweepSkipsNonActiveBookings() {
	customer := shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	cancelled := builder.NewBookingBuilder().
		WithCustomerID(customer.ID).
		WithPeriod(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)).
		BuildView()
	cancelled.Status = booking.StatusCancelled.String()

	s.mockReads.EXPECT().ListByCustomer(gomock.Any(), customer.ID).
		Return([]*queries.BookingView{cancelled}, nil)

	// No transaction expected: a cancelled booking never re-enters the sweep.
	views, err := s.queries.List(context.Background(), customer)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StatusCancelled.String(), views[0].Status)
}

func (s *BookingQueriesTestSuite) TestSweepLosingRaceSkipsRelease() {
	customer := shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	expired := builder.NewBookingBuilder().
		WithCustomerID(customer.ID).
		WithPeriod(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)).
		BuildView()

	s.mockReads.EXPECT().ListByCustomer(gomock.Any(), customer.ID).
		Return([]*queries.BookingView{expired}, nil)

	s.expectTxRun()
	// Another sweep finalized it first: no vehicle release from this caller.
	s.mockBookings.EXPECT().FinalizeStatus(gomock.Any(), expired.ID, booking.StatusReturned).Return(false, nil)

	views, err := s.queries.List(context.Background(), customer)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StatusReturned.String(), views[0].Status)
}

func (s *BookingQueriesTestSuite) TestSweepBoundary() {
	customer := shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	// Ends exactly now: not expired yet, expiry is strict.
	s.clock.Set(time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC))
	boundary := builder.NewBookingBuilder().
		WithCustomerID(customer.ID).
		WithPeriod(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)).
		BuildView()

	s.mockReads.EXPECT().ListByCustomer(gomock.Any(), customer.ID).
		Return([]*queries.BookingView{boundary}, nil)

	views, err := s.queries.List(context.Background(), customer)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), booking.StatusActive.String(), views[0].Status)
}
