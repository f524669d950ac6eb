package request

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  *string `json:"role,omitempty" binding:"omitempty,oneof=admin customer"`
}
