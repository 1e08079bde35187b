package response

import (
	"time"

	"slot-swapper/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserResult(r *commands.UserResult) *UserResponse {
	var res UserResponse
	_ = copier.Copy(&res, r)
	return &res
}
