package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type VehicleSummary struct {
	Name               string `json:"vehicle_name"`
	RegistrationNumber string `json:"registration_number"`
	Category           string `json:"type"`
	DailyRentPrice     int32  `json:"daily_rent_price"`
}

type CustomerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingView struct {
	ID            uuid.UUID        `json:"id"`
	CustomerID    uuid.UUID        `json:"customer_id"`
	VehicleID     uuid.UUID        `json:"vehicle_id"`
	RentStartDate time.Time        `json:"rent_start_date"`
	RentEndDate   time.Time        `json:"rent_end_date"`
	TotalPrice    int32            `json:"total_price"`
	Status        string           `json:"status"`
	Vehicle       VehicleSummary   `json:"vehicle"`
	Customer      *CustomerSummary `json:"customer,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type VehicleView struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"vehicle_name"`
	Category           string    `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	DailyRentPrice     int32     `json:"daily_rent_price"`
	AvailabilityStatus string    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Role  string    `json:"role"`
}
