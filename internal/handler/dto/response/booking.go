package response

import (
	"time"

	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleSummaryResponse struct {
	Name               string `json:"vehicle_name"`
	RegistrationNumber string `json:"registration_number"`
	Category           string `json:"type"`
	DailyRentPrice     int32  `json:"daily_rent_price"`
}

type CustomerSummaryResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID            uuid.UUID                `json:"id"`
	CustomerID    uuid.UUID                `json:"customer_id"`
	VehicleID     uuid.UUID                `json:"vehicle_id"`
	RentStartDate time.Time                `json:"rent_start_date"`
	RentEndDate   time.Time                `json:"rent_end_date"`
	TotalPrice    int32                    `json:"total_price"`
	Status        string                   `json:"status"`
	Vehicle       VehicleSummaryResponse   `json:"vehicle"`
	Customer      *CustomerSummaryResponse `json:"customer,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, view := range views {
		result[i] = FromBookingView(view)
	}
	return result
}
