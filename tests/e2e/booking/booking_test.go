//go:build e2e

package booking_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/tests/common/builder"
	"vehicle-rental/tests/common/dbtest"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/e2e"
	jwtHelper "vehicle-rental/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite
	jwtHelper *jwtHelper.JWTTestHelper
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = jwtHelper.NewJWTTestHelper(s.DB, s.Config.JWT)
}

// futureDate returns midnight UTC n days from now, far enough out that the
// cancellation window stays open for the whole test run.
func futureDate(n int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, n)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *bookingSuite) seedCustomerAndVehicle(rate int32) (customerToken string, customerID, vehicleID uuid.UUID) {
	customerID, customerToken = s.jwtHelper.CreateAndLogin(s.T(), s.Router, "customer@example.com", "customer")
	vehicleID = dbtest.CreateTestVehicle(s.T(), s.DB, "Test Sedan", "car", "REG-0001", rate)
	return customerToken, customerID, vehicleID
}

func (s *bookingSuite) TestCreateBooking() {
	s.Run("snapshots the price as days times the daily rate", func() {
		token, customerID, vehicleID := s.seedCustomerAndVehicle(50)

		body := builder.NewBookingBuilder().
			WithVehicleID(vehicleID).
			WithPeriod(futureDate(30), futureDate(33)).
			BuildCreateRequestMap()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, token)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp response.BookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		s.Equal(int32(150), resp.TotalPrice)
		s.Equal("active", resp.Status)
		s.Equal(customerID, resp.CustomerID)
		s.Equal("Test Sedan", resp.Vehicle.Name)

		s.Equal("booked", dbtest.VehicleAvailability(s.T(), s.DB, vehicleID))
	})

	s.Run("a booked vehicle cannot be booked again", func() {
		token, _, vehicleID := s.seedCustomerAndVehicle(50)

		body := builder.NewBookingBuilder().
			WithVehicleID(vehicleID).
			WithPeriod(futureDate(30), futureDate(33)).
			BuildCreateRequestMap()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, token)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, token)
		s.Equal(http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("unknown vehicle is a 404", func() {
		token, _, _ := s.seedCustomerAndVehicle(50)

		body := builder.NewBookingBuilder().
			WithVehicleID(uuid.New()).
			WithPeriod(futureDate(30), futureDate(33)).
			BuildCreateRequestMap()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, token)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("end before start is a 400 and leaves the vehicle available", func() {
		token, _, vehicleID := s.seedCustomerAndVehicle(50)

		body := builder.NewBookingBuilder().
			WithVehicleID(vehicleID).
			WithPeriod(futureDate(33), futureDate(30)).
			BuildCreateRequestMap()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, token)
		s.Equal(http.StatusBadRequest, w.Code)

		s.Equal("available", dbtest.VehicleAvailability(s.T(), s.DB, vehicleID))
	})

	s.Run("requires authentication", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, map[string]any{}, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

// TestConcurrentCreation fires several simultaneous bookings for one vehicle
// and expects the availability compare-and-swap to let exactly one through.
func (s *bookingSuite) TestConcurrentCreation() {
	token, _, vehicleID := s.seedCustomerAndVehicle(50)

	body := builder.NewBookingBuilder().
		WithVehicleID(vehicleID).
		WithPeriod(futureDate(30), futureDate(33)).
		BuildCreateRequestMap()

	const attempts = 8

	var mu sync.Mutex
	codes := make(map[int]int)

	var g errgroup.Group
	for range attempts {
		g.Go(func() error {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, token)
			mu.Lock()
			codes[w.Code]++
			mu.Unlock()
			return nil
		})
	}
	require.NoError(s.T(), g.Wait())

	s.Equal(1, codes[http.StatusCreated], "exactly one attempt should win: %v", codes)
	s.Equal(attempts-1, codes[http.StatusConflict], "every other attempt should conflict: %v", codes)
	s.Equal("booked", dbtest.VehicleAvailability(s.T(), s.DB, vehicleID))
}

func (s *bookingSuite) TestListBookings() {
	s.Run("customers see only their own bookings", func() {
		_, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		otherID, otherToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "other@example.com", "customer")
		otherVehicleID := dbtest.CreateTestVehicle(s.T(), s.DB, "City Bike", "bike", "REG-0002", 10)

		dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID, futureDate(30), futureDate(33), 150, "active")
		dbtest.CreateTestBooking(s.T(), s.DB, otherID, otherVehicleID, futureDate(30), futureDate(33), 30, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL, nil, otherToken)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp []*response.BookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.Len(s.T(), resp, 1)
		s.Equal(otherID, resp[0].CustomerID)
	})

	s.Run("admins see every booking with customer details", func() {
		_, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		_, adminToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "admin@example.com", "admin")

		dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID, futureDate(30), futureDate(33), 150, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL, nil, adminToken)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp []*response.BookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.Len(s.T(), resp, 1)
		require.NotNil(s.T(), resp[0].Customer)
		s.Equal("customer@example.com", resp[0].Customer.Email)
	})

	s.Run("listing finalizes bookings whose period has ended", func() {
		_, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		_, adminToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "admin@example.com", "admin")

		expiredID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(-10), futureDate(-7), 150, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL, nil, adminToken)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp []*response.BookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.Len(s.T(), resp, 1)
		s.Equal("returned", resp[0].Status)

		// The sweep is persisted, not just reflected in the response.
		s.Equal("returned", dbtest.BookingStatus(s.T(), s.DB, expiredID))
		s.Equal("available", dbtest.VehicleAvailability(s.T(), s.DB, vehicleID))
	})
}

func (s *bookingSuite) TestGetBooking() {
	s.Run("owners and admins may read, strangers may not", func() {
		ownerToken, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		_, adminToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "admin@example.com", "admin")
		_, strangerToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "stranger@example.com", "customer")

		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(30), futureDate(33), 150, "active")
		url := bookingsURL + "/" + bookingID.String()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, ownerToken)
		s.Equal(http.StatusOK, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, adminToken)
		s.Equal(http.StatusOK, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, strangerToken)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("unknown booking is a 404", func() {
		ownerToken, _, _ := s.seedCustomerAndVehicle(50)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			bookingsURL+"/"+uuid.New().String(), nil, ownerToken)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *bookingSuite) TestUpdateBookingStatus() {
	statusURL := func(id uuid.UUID) string {
		return bookingsURL + "/" + id.String() + "/status"
	}
	cancelBody := map[string]any{"status": "cancelled"}
	returnBody := map[string]any{"status": "returned"}

	s.Run("owner cancels before the start date and frees the vehicle", func() {
		ownerToken, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(30), futureDate(33), 150, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL(bookingID), cancelBody, ownerToken)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.BookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		s.Equal("cancelled", resp.Status)
		s.Equal("available", dbtest.VehicleAvailability(s.T(), s.DB, vehicleID))
	})

	s.Run("cancellation is refused once the rental has started", func() {
		ownerToken, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(-1), futureDate(5), 300, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL(bookingID), cancelBody, ownerToken)
		s.Equal(http.StatusConflict, w.Code)
		s.Equal("active", dbtest.BookingStatus(s.T(), s.DB, bookingID))
	})

	s.Run("customers cannot mark a booking returned", func() {
		ownerToken, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(30), futureDate(33), 150, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL(bookingID), returnBody, ownerToken)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("admin returns a booking mid rental", func() {
		_, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		_, adminToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "admin@example.com", "admin")
		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(-1), futureDate(5), 300, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL(bookingID), returnBody, adminToken)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
		s.Equal("returned", dbtest.BookingStatus(s.T(), s.DB, bookingID))
		s.Equal("available", dbtest.VehicleAvailability(s.T(), s.DB, vehicleID))
	})

	s.Run("a stranger cannot cancel someone else's booking", func() {
		_, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		_, strangerToken := s.jwtHelper.CreateAndLogin(s.T(), s.Router, "stranger@example.com", "customer")
		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(30), futureDate(33), 150, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL(bookingID), cancelBody, strangerToken)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("terminal bookings stay terminal", func() {
		ownerToken, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(30), futureDate(33), 150, "cancelled")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL(bookingID), cancelBody, ownerToken)
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("active is not an accepted target", func() {
		ownerToken, ownerID, vehicleID := s.seedCustomerAndVehicle(50)
		bookingID := dbtest.CreateTestBooking(s.T(), s.DB, ownerID, vehicleID,
			futureDate(30), futureDate(33), 150, "active")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL(bookingID),
			map[string]any{"status": "active"}, ownerToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}
