package commands

import (
	"context"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

// ProvisionUserInput is what the identity service pushes when an account is
// created. The id is the identity service's, not one minted here.
type ProvisionUserInput struct {
	ID    uuid.UUID `validate:"required"`
	Name  string    `validate:"required,max=100"`
	Email string    `validate:"required,max=254"`
	Role  string    `validate:"omitempty,oneof=viewer operator admin"`
}

type UserResult struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

type UserCommands interface {
	// Provision mirrors an account so slots can be owned by it and
	// projections can show its name. ErrUserExists when id or email is taken.
	Provision(ctx context.Context, in ProvisionUserInput) (*UserResult, error)
}

type userUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserUseCase(uow shared.UnitOfWork, clk clock.Clock) UserCommands {
	return &userUseCaseImpl{uow: uow, clock: clk}
}

func (uc *userUseCaseImpl) Provision(ctx context.Context, in ProvisionUserInput) (*UserResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = user.RoleViewer.String()
	}

	u, err := newUser(in, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Users().Create(ctx, u)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, errs.ErrUserExists)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &UserResult{
		ID:        u.ID(),
		Name:      u.Name().Value(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}, nil
}

func newUser(in ProvisionUserInput, now time.Time) (*user.User, error) {
	name, err := user.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(in.ID, name, email, role, now)
}
