package repository

import (
	"context"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/infra"
	sqlc "slot-swapper/internal/infra/sqlc/generated"
	"slot-swapper/internal/pkg/pgconv"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) (sqlc.Users, error)
}

// UserRepository writes the account mirror slots and proposals reference.
// Email uniqueness is enforced by the users table.
type UserRepository struct {
	queries UserWriteQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserWriteQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{queries: queries, db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.queries.CreateUser(ctx, r.db, sqlc.CreateUserParams{
		ID:    u.ID(),
		Name:  u.Name().Value(),
		Email: u.Email().Value(),
		Role:  u.Role().String(),
	})
	switch {
	case err == nil:
		return nil
	case pgconv.IsUniqueViolation(err):
		return infra.WrapRepoErr("user id or email already taken", err, infra.KindDuplicateKey)
	default:
		return infra.WrapRepoErr("failed to provision user", err)
	}
}
