//go:build unit || e2e

package builder

import (
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder assembles booking inputs with sensible defaults: a three day
// rental at 50 per day starting well in the future.
type BookingBuilder struct {
	customerID uuid.UUID
	vehicleID  uuid.UUID
	start      time.Time
	end        time.Time
	dailyRate  int32
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		customerID: uuid.New(),
		vehicleID:  uuid.New(),
		start:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		end:        time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
		dailyRate:  50,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *BookingBuilder) WithCustomerID(id uuid.UUID) *BookingBuilder {
	b.customerID = id
	return b
}

func (b *BookingBuilder) WithVehicleID(id uuid.UUID) *BookingBuilder {
	b.vehicleID = id
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *BookingBuilder) WithDailyRate(rate int32) *BookingBuilder {
	b.dailyRate = rate
	return b
}

func (b *BookingBuilder) Start() time.Time {
	return b.start
}

func (b *BookingBuilder) End() time.Time {
	return b.end
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := booking.NewRentPeriod(b.start, b.end)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.customerID, b.vehicleID, period, b.dailyRate)
}

// BuildCreateRequestMap produces the JSON body for the create endpoint.
func (b *BookingBuilder) BuildCreateRequestMap() map[string]any {
	return map[string]any{
		"vehicle_id":      b.vehicleID.String(),
		"rent_start_date": b.start.Format("2006-01-02"),
		"rent_end_date":   b.end.Format("2006-01-02"),
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	days := int32(b.end.Sub(b.start).Hours() / 24)
	return &queries.BookingView{
		ID:            uuid.New(),
		CustomerID:    b.customerID,
		VehicleID:     b.vehicleID,
		RentStartDate: b.start,
		RentEndDate:   b.end,
		TotalPrice:    days * b.dailyRate,
		Status:        booking.StatusActive.String(),
		Vehicle: queries.VehicleSummary{
			Name:               "Test Sedan",
			RegistrationNumber: "REG-0001",
			Category:           "car",
			DailyRentPrice:     b.dailyRate,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
