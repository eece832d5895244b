package user

import "context"

// Repository defines the persistence contract for users.
type Repository interface {
	// FindByID retrieves a user by ID, failing with NotFound if absent.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindAll retrieves all users.
	FindAll(ctx context.Context) ([]*User, error)

	// ExistsByID reports whether a user with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save persists a new user and assigns its ID.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id int64) error
}
