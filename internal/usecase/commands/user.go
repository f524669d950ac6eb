package commands

import (
	"context"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errs.New("user not found")
	ErrInvalidUserInput  = errs.New("invalid user input")
	ErrDuplicateEmail    = errs.New("email is already registered")
	ErrUserHasBookings   = errs.New("user has active bookings")
	ErrNoUserFieldsToSet = errs.New("no user fields to update")
)

type UpdateUserInput struct {
	Name  *string
	Email *string
	Phone *string
	Role  *string
}

type UserCommands interface {
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*queries.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userCommandsImpl struct {
	uow         shared.UnitOfWork
	userQueries queries.UserQueries
}

func NewUserCommands(uow shared.UnitOfWork, userQueries queries.UserQueries) UserCommands {
	return &userCommandsImpl{
		uow:         uow,
		userQueries: userQueries,
	}
}

func (c *userCommandsImpl) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*queries.UserView, error) {
	if in.Name == nil && in.Email == nil && in.Phone == nil && in.Role == nil {
		return nil, ErrNoUserFieldsToSet
	}

	if in.Email != nil {
		email, err := user.NewEmail(*in.Email)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidUserInput)
		}
		normalized := email.Value()
		in.Email = &normalized
	}
	if in.Phone != nil {
		if _, err := user.NewPhone(*in.Phone); err != nil {
			return nil, errs.Mark(err, ErrInvalidUserInput)
		}
	}
	if in.Role != nil {
		if _, err := user.NewRole(*in.Role); err != nil {
			return nil, errs.Mark(err, ErrInvalidUserInput)
		}
	}

	params := shared.UpdateUserParams{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Role:  in.Role,
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Update(ctx, id, params)
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrUserNotFound
		case infra.IsKind(err, infra.KindDuplicateKey):
			return nil, ErrDuplicateEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := c.userQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Delete removes a user unless they still have an active booking.
func (c *userCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		active, err := tx.Bookings().ExistsActiveByCustomer(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if active {
			return ErrUserHasBookings
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		switch {
		case errs.Is(err, ErrUserHasBookings):
			return err
		case infra.IsKind(err, infra.KindNotFound):
			return ErrUserNotFound
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return ErrUserHasBookings
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
