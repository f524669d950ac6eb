package response

import (
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Role  string    `json:"role"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

func FromUserView(view *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromUserViews(views []*queries.UserView) []*UserResponse {
	result := make([]*UserResponse, len(views))
	for i, view := range views {
		result[i] = FromUserView(view)
	}
	return result
}
