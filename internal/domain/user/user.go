package user

import (
	"github.com/Kir-Mi/shareit/internal/domain"
)

// User is the aggregate root for a registered user.
type User struct {
	id    int64
	name  string
	email string
}

// NewUser creates a new User with validated fields. The ID is assigned by the store.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("user email is required")
	}
	return &User{name: name, email: email}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

// ID returns the user's unique identifier.
func (u *User) ID() int64 { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's unique email address.
func (u *User) Email() string { return u.email }

// ApplyPatch applies a partial update; nil fields are left untouched.
func (u *User) ApplyPatch(name, email *string) {
	if name != nil {
		u.name = *name
	}
	if email != nil {
		u.email = *email
	}
}
