package usecase

import (
	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the caller as asserted by the identity service. Nothing here is
// looked up locally.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, errs.Wrap(err, "validate access token")
	}

	// a role this service does not know is as good as no token
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, errs.Mark(errs.Wrap(err, "access token role"), jwt.ErrInvalidToken)
	}

	return Identity{UserID: claims.UserID, Role: role}, nil
}
