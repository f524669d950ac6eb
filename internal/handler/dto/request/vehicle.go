package request

type CreateVehicleRequest struct {
	Name               string `json:"vehicle_name" binding:"required"`
	Category           string `json:"type" binding:"required,oneof=car bike van suv"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	DailyRentPrice     int32  `json:"daily_rent_price" binding:"required,gt=0"`
}

type UpdateVehicleRequest struct {
	Name               *string `json:"vehicle_name,omitempty"`
	Category           *string `json:"type,omitempty" binding:"omitempty,oneof=car bike van suv"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	DailyRentPrice     *int32  `json:"daily_rent_price,omitempty" binding:"omitempty,gt=0"`
	AvailabilityStatus *string `json:"availability_status,omitempty" binding:"omitempty,oneof=available booked"`
}
