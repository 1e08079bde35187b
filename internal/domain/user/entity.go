package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity collaborator's view of an account. Accounts are
// provisioned outside this service; slots and proposals only reference them.
type User struct {
	id        uuid.UUID
	name      Name
	email     Email
	role      Role
	createdAt time.Time
}

// NewUser mirrors an account under the id the identity service assigned.
func NewUser(id uuid.UUID, name Name, email Email, role Role, now time.Time) (*User, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}
	return &User{
		id:        id,
		name:      name,
		email:     email,
		role:      role,
		createdAt: now,
	}, nil
}

func Reconstruct(id uuid.UUID, name, email string, role Role, createdAt time.Time) *User {
	return &User{
		id:        id,
		name:      Name{value: name},
		email:     Email{value: email},
		role:      role,
		createdAt: createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() Name           { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
