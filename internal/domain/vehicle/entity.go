package vehicle

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory     = errors.New("invalid vehicle category")
	ErrInvalidAvailability = errors.New("invalid availability status")
	ErrInvalidDailyRate    = errors.New("daily rate must be positive")
	ErrEmptyName           = errors.New("vehicle name is required")
	ErrEmptyRegistration   = errors.New("registration number is required")
)

// DailyRate is the per-day rental price in currency minor units.
type DailyRate struct {
	amount int32
}

func NewDailyRate(amount int32) (DailyRate, error) {
	if amount <= 0 {
		return DailyRate{}, ErrInvalidDailyRate
	}
	return DailyRate{amount: amount}, nil
}

func (r DailyRate) Amount() int32 {
	return r.amount
}

type Vehicle struct {
	id                 uuid.UUID
	name               string
	category           Category
	registrationNumber string
	dailyRate          DailyRate
	availability       Availability
	createdAt          time.Time
	updatedAt          time.Time
}

func NewVehicle(name string, category Category, registrationNumber string, dailyRate DailyRate) (*Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	registrationNumber = strings.TrimSpace(registrationNumber)
	if registrationNumber == "" {
		return nil, ErrEmptyRegistration
	}

	return &Vehicle{
		id:                 uuid.New(),
		name:               name,
		category:           category,
		registrationNumber: registrationNumber,
		dailyRate:          dailyRate,
		availability:       Available,
	}, nil
}

func ReconstructVehicle(
	id uuid.UUID,
	name string,
	category Category,
	registrationNumber string,
	dailyRate DailyRate,
	availability Availability,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:                 id,
		name:               name,
		category:           category,
		registrationNumber: registrationNumber,
		dailyRate:          dailyRate,
		availability:       availability,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (v *Vehicle) ID() uuid.UUID              { return v.id }
func (v *Vehicle) Name() string               { return v.name }
func (v *Vehicle) Category() Category         { return v.category }
func (v *Vehicle) RegistrationNumber() string { return v.registrationNumber }
func (v *Vehicle) DailyRate() DailyRate       { return v.dailyRate }
func (v *Vehicle) Availability() Availability { return v.availability }
func (v *Vehicle) CreatedAt() time.Time       { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time       { return v.updatedAt }

func (v *Vehicle) IsAvailable() bool {
	return v.availability == Available
}
