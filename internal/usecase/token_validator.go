package usecase

import (
	"context"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"
)

var ErrUnauthorized = errs.New("unauthorized")

// TokenValidator turns a bearer token into an authenticated actor. The user
// row is looked up on every request so a deleted account or a changed role
// invalidates outstanding tokens immediately.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	tokens    *jwt.Service
	userReads queries.UserReadStore
}

func NewTokenValidator(tokens *jwt.Service, userReads queries.UserReadStore) TokenValidator {
	return &tokenValidatorImpl{
		tokens:    tokens,
		userReads: userReads,
	}
}

func (v *tokenValidatorImpl) Validate(ctx context.Context, token string) (shared.Actor, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return shared.Actor{}, errs.Mark(err, ErrUnauthorized)
	}

	view, err := v.userReads.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return shared.Actor{}, ErrUnauthorized
		}
		return shared.Actor{}, errs.Wrap(err, "failed to verify token subject")
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return shared.Actor{}, errs.Mark(err, ErrUnauthorized)
	}

	return shared.Actor{ID: view.ID, Role: role}, nil
}
