package commands

import (
	"context"

	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidVehicleInput  = errs.New("invalid vehicle input")
	ErrDuplicateVehicle     = errs.New("vehicle with this registration number already exists")
	ErrVehicleHasBookings   = errs.New("vehicle has active bookings")
	ErrNoVehicleFieldsToSet = errs.New("no vehicle fields to update")
)

type CreateVehicleInput struct {
	Name               string
	Category           string
	RegistrationNumber string
	DailyRentPrice     int32
}

type UpdateVehicleInput struct {
	Name               *string
	Category           *string
	RegistrationNumber *string
	DailyRentPrice     *int32
	AvailabilityStatus *string
}

type VehicleCommands interface {
	Create(ctx context.Context, in CreateVehicleInput) (*queries.VehicleView, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateVehicleInput) (*queries.VehicleView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleCommandsImpl struct {
	uow            shared.UnitOfWork
	vehicleQueries queries.VehicleQueries
}

func NewVehicleCommands(uow shared.UnitOfWork, vehicleQueries queries.VehicleQueries) VehicleCommands {
	return &vehicleCommandsImpl{
		uow:            uow,
		vehicleQueries: vehicleQueries,
	}
}

func (c *vehicleCommandsImpl) Create(ctx context.Context, in CreateVehicleInput) (*queries.VehicleView, error) {
	category, err := vehicle.NewCategory(in.Category)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidVehicleInput)
	}
	rate, err := vehicle.NewDailyRate(in.DailyRentPrice)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidVehicleInput)
	}

	entity, err := vehicle.NewVehicle(in.Name, category, in.RegistrationNumber, rate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidVehicleInput)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vehicles().Create(ctx, entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateVehicle
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.vehicleQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *vehicleCommandsImpl) Update(ctx context.Context, id uuid.UUID, in UpdateVehicleInput) (*queries.VehicleView, error) {
	if in.Name == nil && in.Category == nil && in.RegistrationNumber == nil &&
		in.DailyRentPrice == nil && in.AvailabilityStatus == nil {
		return nil, ErrNoVehicleFieldsToSet
	}

	if in.Category != nil {
		if _, err := vehicle.NewCategory(*in.Category); err != nil {
			return nil, errs.Mark(err, ErrInvalidVehicleInput)
		}
	}
	if in.AvailabilityStatus != nil {
		if _, err := vehicle.NewAvailability(*in.AvailabilityStatus); err != nil {
			return nil, errs.Mark(err, ErrInvalidVehicleInput)
		}
	}
	if in.DailyRentPrice != nil {
		if _, err := vehicle.NewDailyRate(*in.DailyRentPrice); err != nil {
			return nil, errs.Mark(err, ErrInvalidVehicleInput)
		}
	}

	params := shared.UpdateVehicleParams{
		Name:               in.Name,
		Category:           in.Category,
		RegistrationNumber: in.RegistrationNumber,
		DailyRate:          in.DailyRentPrice,
		Availability:       in.AvailabilityStatus,
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Vehicles().Update(ctx, id, params)
		return err
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrVehicleNotFound
		case infra.IsKind(err, infra.KindDuplicateKey):
			return nil, ErrDuplicateVehicle
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.vehicleQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Delete removes a vehicle unless it still has an active booking.
func (c *vehicleCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		active, err := tx.Bookings().ExistsActiveByVehicle(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if active {
			return ErrVehicleHasBookings
		}
		return tx.Vehicles().Delete(ctx, id)
	})
	if err != nil {
		switch {
		case errs.Is(err, ErrVehicleHasBookings):
			return err
		case infra.IsKind(err, infra.KindNotFound):
			return ErrVehicleNotFound
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return ErrVehicleHasBookings
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
