package response

import (
	"time"

	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"vehicle_name"`
	Category           string    `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	DailyRentPrice     int32     `json:"daily_rent_price"`
	AvailabilityStatus string    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func FromVehicleView(view *queries.VehicleView) *VehicleResponse {
	var resp VehicleResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromVehicleViews(views []*queries.VehicleView) []*VehicleResponse {
	result := make([]*VehicleResponse, len(views))
	for i, view := range views {
		result[i] = FromVehicleView(view)
	}
	return result
}
