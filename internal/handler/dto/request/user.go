package request

import (
	"slot-swapper/internal/usecase/commands"

	"github.com/google/uuid"
)

// ProvisionUserRequest is pushed by the identity service after sign-up.
type ProvisionUserRequest struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Name  string    `json:"name" binding:"required,max=100"`
	Email string    `json:"email" binding:"required,email"`
	Role  string    `json:"role" binding:"omitempty,oneof=viewer operator admin"`
}

func (r *ProvisionUserRequest) ToInput() commands.ProvisionUserInput {
	return commands.ProvisionUserInput{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Role:  r.Role,
	}
}
