package request

import "context"

// Repository defines the persistence contract for item requests.
type Repository interface {
	// FindByID retrieves a request with its requestor attached.
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)

	// FindByRequestorID retrieves all requests of a user, newest first.
	FindByRequestorID(ctx context.Context, requestorID int64) ([]*ItemRequest, error)

	// FindNotOfUser retrieves a page of requests posted by other users,
	// newest first.
	FindNotOfUser(ctx context.Context, userID int64, offset, limit int) ([]*ItemRequest, error)

	// Save persists a new request and assigns its ID.
	Save(ctx context.Context, r *ItemRequest) error
}
