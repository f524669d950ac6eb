package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidDate = errors.New("invalid date format")

type CreateBookingRequest struct {
	VehicleID     uuid.UUID `json:"vehicle_id" binding:"required"`
	RentStartDate string    `json:"rent_start_date" binding:"required"`
	RentEndDate   string    `json:"rent_end_date" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=cancelled returned"`
}

// ParseDate accepts a plain calendar date or a full timestamp.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
