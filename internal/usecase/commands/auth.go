package commands

import (
	"context"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/internal/pkg/password"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrWeakPassword       = errs.New("password does not meet requirements")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

type AuthResult struct {
	Token string
	User  *queries.UserView
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, plainPassword string) (*AuthResult, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	userReads queries.UserReadStore
	tokens    *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, userReads queries.UserReadStore, tokens *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		userReads: userReads,
		tokens:    tokens,
	}
}

func (c *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidUserInput)
	}
	plain, err := user.NewPassword(in.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrWeakPassword)
	}
	phone, err := user.NewPhone(in.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidUserInput)
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidUserInput)
	}

	hash, err := password.HashPassword(plain.Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	entity := user.NewUser(in.Name, email, hash, phone, role)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	token, err := c.tokens.GenerateToken(entity.ID(), entity.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign token")
	}

	view, err := c.userReads.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &AuthResult{Token: token, User: view}, nil
}

// Login verifies credentials and issues a signed token. A missing user and a
// wrong password report the same error to avoid leaking which one it was.
func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	normalized, err := user.NewEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	view, hash, err := c.userReads.FindByEmail(ctx, normalized.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(hash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	token, err := c.tokens.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign token")
	}

	return &AuthResult{Token: token, User: view}, nil
}
